// pkg/tokens/memory.go
package tokens

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryBroker keeps the token map in process memory. Expired entries are
// swept opportunistically, at most once per cleanup interval, on the first
// Redeem after the interval elapses; Redeem is correct whether or not the
// sweep has run.
type MemoryBroker struct {
	ttl     time.Duration
	cleanup time.Duration

	mu        sync.Mutex
	entries   map[uuid.UUID]Token
	nextSweep time.Time
}

func NewMemoryBroker(ttl, cleanup time.Duration) *MemoryBroker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if cleanup <= 0 {
		cleanup = DefaultCleanupInterval
	}
	return &MemoryBroker{
		ttl:       ttl,
		cleanup:   cleanup,
		entries:   make(map[uuid.UUID]Token),
		nextSweep: time.Now().Add(cleanup),
	}
}

func (b *MemoryBroker) Issue(_ context.Context, token, ticket uuid.UUID, authURL string) (Token, error) {
	tk := Token{
		Token:     token,
		Ticket:    ticket,
		ExpiresIn: int(b.ttl / time.Second),
		ExpiresOn: time.Now().Add(b.ttl).UTC(),
		AuthURL:   authURL,
	}
	b.mu.Lock()
	b.entries[token] = tk
	b.mu.Unlock()
	return tk, nil
}

func (b *MemoryBroker) Redeem(_ context.Context, token uuid.UUID) (uuid.UUID, error) {
	now := time.Now()
	b.mu.Lock()
	defer b.mu.Unlock()

	if now.After(b.nextSweep) {
		b.nextSweep = now.Add(b.cleanup)
		for k, v := range b.entries {
			if v.ExpiresOn.Before(now) {
				delete(b.entries, k)
			}
		}
	}

	tk, ok := b.entries[token]
	if ok {
		// Removed regardless of expiry outcome: redemption is single-use.
		delete(b.entries, token)
	}
	if !ok || tk.ExpiresOn.Before(now) {
		return uuid.Nil, ErrNotFound
	}
	return tk.Ticket, nil
}
