// pkg/tokens/redis.go
package tokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "authtoken:"

// RedisBroker stores token mappings in Redis so issue and redeem can land
// on different gateway instances. Server-side key expiry stands in for the
// memory broker's sweep, and GETDEL keeps redemption single-use.
type RedisBroker struct {
	cli *redis.Client
	ttl time.Duration
}

func NewRedisBroker(cli *redis.Client, ttl time.Duration) *RedisBroker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisBroker{cli: cli, ttl: ttl}
}

func (b *RedisBroker) Issue(ctx context.Context, token, ticket uuid.UUID, authURL string) (Token, error) {
	if err := b.cli.Set(ctx, redisKeyPrefix+token.String(), ticket.String(), b.ttl).Err(); err != nil {
		return Token{}, fmt.Errorf("store token: %w", err)
	}
	return Token{
		Token:     token,
		Ticket:    ticket,
		ExpiresIn: int(b.ttl / time.Second),
		ExpiresOn: time.Now().Add(b.ttl).UTC(),
		AuthURL:   authURL,
	}, nil
}

func (b *RedisBroker) Redeem(ctx context.Context, token uuid.UUID) (uuid.UUID, error) {
	val, err := b.cli.GetDel(ctx, redisKeyPrefix+token.String()).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, ErrNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("redeem token: %w", err)
	}
	ticket, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, ErrNotFound
	}
	return ticket, nil
}
