// pkg/tokens/broker.go
package tokens

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound reports a token that is unknown, expired or already redeemed.
// The three cases are indistinguishable on purpose: an unretrieved token is
// unrecoverable once its expiry passes.
var ErrNotFound = errors.New("token not found")

const (
	// DefaultTTL bounds how long an issued token stays redeemable.
	DefaultTTL = 300 * time.Second
	// DefaultCleanupInterval bounds how often the memory broker sweeps
	// expired entries.
	DefaultCleanupInterval = time.Hour
)

// Token is the externally-visible handle for a pending authentication
// attempt. The provider ticket it maps to never appears in JSON.
type Token struct {
	Token     uuid.UUID `json:"token"`
	Ticket    uuid.UUID `json:"-"`
	ExpiresIn int       `json:"expiresIn"`
	ExpiresOn time.Time `json:"expiresOn"`
	AuthURL   string    `json:"authUrl"`
}

// Broker maps opaque tokens to provider tickets with an independent expiry.
type Broker interface {
	// Issue stores token -> ticket. The caller supplies the token id so the
	// postback URL handed to the provider can already carry it.
	Issue(ctx context.Context, token, ticket uuid.UUID, authURL string) (Token, error)

	// Redeem removes and returns the ticket for a token: an atomic
	// take-if-present-and-unexpired. At most one caller ever succeeds for a
	// given token; everyone else gets ErrNotFound.
	Redeem(ctx context.Context, token uuid.UUID) (uuid.UUID, error)
}
