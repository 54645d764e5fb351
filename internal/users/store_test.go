// internal/users/store_test.go
package users

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidPersonalCode(t *testing.T) {
	cases := []struct {
		code int64
		ok   bool
	}{
		{38405120000, true},
		{10_000_000_001, true},
		{99_999_999_999, true},
		{10_000_000_000, false},
		{100_000_000_000, false},
		{0, false},
		{-38405120000, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, ValidPersonalCode(c.code), "code %d", c.code)
	}
}

func TestUserJSONShape(t *testing.T) {
	code := int64(38405120000)
	raw, err := json.Marshal(&User{PersonalCode: &code, FirstName: "Vardenis"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ak": 38405120000, "firstName": "Vardenis", "real": false}`, string(raw))

	// A blanked personal code disappears from the document entirely.
	raw, err = json.Marshal(&User{FirstName: "Vardenis"})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "ak")
}
