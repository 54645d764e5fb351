// pkg/viisp/shape_test.go
package viisp_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viispgw/pkg/viisp"
)

func TestTitleCase(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"JOHN SMITH", "John Smith"},
		{"o'brien,jane", "O'brien, Jane"},
		{"VARDENIS", "Vardenis"},
		{"PAVARDENIS,VARDENIS", "Pavardenis, Vardenis"},
		{"jean-claude", "Jean-claude"},
		{"ŽEMAITĖ", "Žemaitė"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, viisp.TitleCase(c.in), "input %q", c.in)
	}
}

func infoString(name, value string) viisp.UserInformation {
	return viisp.UserInformation{Name: name, Value: viisp.InformationValue{String: value}}
}

func TestNewUserRecord_Bags(t *testing.T) {
	rsp := &viisp.AuthenticationDataResponse{
		AuthenticationProvider: "auth.lt.bank",
		UserInformation: []viisp.UserInformation{
			infoString("firstName", "VARDENIS"),
			infoString("lastName", "PAVARDENIS"),
			infoString("email", "vardenis@example.lt"),
			infoString("address", "Gedimino pr. 1, Vilnius"),
			infoString("phoneNumber", "+37060000000"),
			infoString("companyName", "UAB Example"),
			infoString("proxyType", "natural"),
			{Name: "birthday", Value: viisp.InformationValue{Date: "1984-05-12"}},
			infoString("unknown-field", "ignored"),
		},
		AuthenticationAttributes: []viisp.AuthenticationAttribute{
			{Name: "lt-personal-code", Value: "38405120000"},
			{Name: "lt-company-code", Value: "300000001"},
			{Name: "eidas-eid", Value: "ignored"},
		},
	}

	rec := viisp.NewUserRecord(rsp)
	assert.Equal(t, "auth.lt.bank", rec.Provider)
	assert.Equal(t, "Vardenis", rec.FirstName)
	assert.Equal(t, "Pavardenis", rec.LastName)
	assert.Equal(t, "vardenis@example.lt", rec.Email)
	assert.Equal(t, "Gedimino pr. 1, Vilnius", rec.Address)
	assert.Equal(t, "+37060000000", rec.Phone)
	assert.Equal(t, "UAB Example", rec.CompanyName)
	assert.Equal(t, "natural", rec.ProxyType)
	assert.Equal(t, "38405120000", rec.PersonalCode)
	assert.Equal(t, "300000001", rec.CompanyCode)
	require.NotNil(t, rec.Birthday)
	assert.Equal(t, time.Date(1984, 5, 12, 0, 0, 0, 0, time.UTC), *rec.Birthday)
}

func TestNewUserRecord_SourceDataFillsUnsetOnly(t *testing.T) {
	rsp := &viisp.AuthenticationDataResponse{
		AuthenticationAttributes: []viisp.AuthenticationAttribute{
			{Name: "lt-personal-code", Value: "38405120000"},
		},
		SourceData: &viisp.SourceData{
			Type: "BANK",
			Parameters: []viisp.SourceDataParameter{
				{Name: "VK_USER_ID", Value: "99999999999"},
				{Name: "VK_USER_NAME", Value: "VARDENIS PAVARDENIS"},
				{Name: "VK_COUNTRY", Value: "LT"},
				{Name: "VK_SND_ID", Value: "BANK01"},
				{Name: "VK_REC_ID", Value: "VIISP"},
				{Name: "VK_LANG", Value: "LIT"},
				{Name: "VK_SERVICE", Value: "AUTH"},
				{Name: "CN", Value: "cert-service"},
				{Name: "O", Value: "cert-org"},
			},
		},
	}

	rec := viisp.NewUserRecord(rsp)
	// The structured attribute wins over the legacy bank parameter.
	assert.Equal(t, "38405120000", rec.PersonalCode)
	assert.Equal(t, "Vardenis Pavardenis", rec.Name)
	assert.Equal(t, "LT", rec.Country)
	assert.Equal(t, "VIISP", rec.ReceiverID)
	assert.Equal(t, "LIT", rec.Language)
	// First writer wins within the bag as well.
	assert.Equal(t, "AUTH", rec.Service)
	assert.Equal(t, "BANK01", rec.SenderID)
}

func TestNewUserRecord_CertificateParameters(t *testing.T) {
	rsp := &viisp.AuthenticationDataResponse{
		SourceData: &viisp.SourceData{
			Type: "CERTIFICATE",
			Parameters: []viisp.SourceDataParameter{
				{Name: "CN", Value: "signing-service"},
				{Name: "O", Value: "State Enterprise"},
			},
		},
	}
	rec := viisp.NewUserRecord(rsp)
	assert.Equal(t, "signing-service", rec.Service)
	assert.Equal(t, "State Enterprise", rec.SenderID)
}

func TestNewUserRecord_BirthdayLayouts(t *testing.T) {
	for _, raw := range []string{"1984-05-12", "1984-05-12T00:00:00", "1984-05-12T00:00:00Z"} {
		rsp := &viisp.AuthenticationDataResponse{
			UserInformation: []viisp.UserInformation{
				{Name: "birthday", Value: viisp.InformationValue{Date: raw}},
			},
		}
		rec := viisp.NewUserRecord(rsp)
		require.NotNil(t, rec.Birthday, "layout %q", raw)
		assert.Equal(t, 1984, rec.Birthday.Year())
	}

	rec := viisp.NewUserRecord(&viisp.AuthenticationDataResponse{
		UserInformation: []viisp.UserInformation{
			{Name: "birthday", Value: viisp.InformationValue{Date: "12/05/1984"}},
		},
	})
	assert.Nil(t, rec.Birthday)
}
