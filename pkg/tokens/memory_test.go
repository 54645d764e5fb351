// pkg/tokens/memory_test.go
package tokens

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBroker_IssueRedeem(t *testing.T) {
	b := NewMemoryBroker(time.Minute, time.Hour)
	token, ticket := uuid.New(), uuid.New()

	tk, err := b.Issue(context.Background(), token, ticket, "https://provider.example/?ticket="+ticket.String())
	require.NoError(t, err)
	assert.Equal(t, token, tk.Token)
	assert.Equal(t, 60, tk.ExpiresIn)
	assert.WithinDuration(t, time.Now().Add(time.Minute), tk.ExpiresOn, 2*time.Second)

	got, err := b.Redeem(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, ticket, got)
}

func TestMemoryBroker_RedeemIsSingleUse(t *testing.T) {
	b := NewMemoryBroker(time.Minute, time.Hour)
	token := uuid.New()
	_, err := b.Issue(context.Background(), token, uuid.New(), "")
	require.NoError(t, err)

	_, err = b.Redeem(context.Background(), token)
	require.NoError(t, err)
	_, err = b.Redeem(context.Background(), token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryBroker_UnknownToken(t *testing.T) {
	b := NewMemoryBroker(time.Minute, time.Hour)
	_, err := b.Redeem(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryBroker_ExpiredWithoutSweep(t *testing.T) {
	// Cleanup interval far in the future: expiry must still be enforced on
	// the Redeem path itself.
	b := NewMemoryBroker(time.Millisecond, time.Hour)
	token := uuid.New()
	_, err := b.Issue(context.Background(), token, uuid.New(), "")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	_, err = b.Redeem(context.Background(), token)
	assert.ErrorIs(t, err, ErrNotFound)

	// The expired entry was removed even though redemption failed.
	b.mu.Lock()
	_, still := b.entries[token]
	b.mu.Unlock()
	assert.False(t, still)
}

func TestMemoryBroker_SweepDropsExpired(t *testing.T) {
	b := NewMemoryBroker(time.Millisecond, time.Millisecond)
	expired, live := uuid.New(), uuid.New()
	_, err := b.Issue(context.Background(), expired, uuid.New(), "")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	b.mu.Lock()
	b.entries[live] = Token{Token: live, Ticket: uuid.New(), ExpiresOn: time.Now().Add(time.Minute)}
	b.mu.Unlock()

	// Any redemption past the interval triggers the sweep.
	_, _ = b.Redeem(context.Background(), uuid.New())

	b.mu.Lock()
	defer b.mu.Unlock()
	_, hasExpired := b.entries[expired]
	_, hasLive := b.entries[live]
	assert.False(t, hasExpired)
	assert.True(t, hasLive)
}

func TestMemoryBroker_ConcurrentRedeemExactlyOnce(t *testing.T) {
	b := NewMemoryBroker(time.Minute, time.Hour)
	token := uuid.New()
	_, err := b.Issue(context.Background(), token, uuid.New(), "")
	require.NoError(t, err)

	const n = 32
	var wg sync.WaitGroup
	wins := make(chan struct{}, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := b.Redeem(context.Background(), token); err == nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)
	assert.Len(t, wins, 1, "exactly one concurrent redemption may succeed")
}

func TestMemoryBroker_Defaults(t *testing.T) {
	b := NewMemoryBroker(0, 0)
	assert.Equal(t, DefaultTTL, b.ttl)
	assert.Equal(t, DefaultCleanupInterval, b.cleanup)
}
