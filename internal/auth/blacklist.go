// AngelaMos | 2026
// blacklist.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistPrefix = "token:revoked:"

// RedisBlacklist records revoked token IDs until their natural expiry, so a
// logged-out token cannot be replayed for the rest of its lifetime.
type RedisBlacklist struct {
	client *redis.Client
}

func NewRedisBlacklist(client *redis.Client) *RedisBlacklist {
	return &RedisBlacklist{client: client}
}

func (b *RedisBlacklist) Revoke(
	ctx context.Context,
	tokenID string,
	expiresAt time.Time,
) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	err := b.client.Set(ctx, blacklistPrefix+tokenID, "1", ttl).Err()
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	return nil
}

func (b *RedisBlacklist) IsRevoked(
	ctx context.Context,
	tokenID string,
) (bool, error) {
	err := b.client.Get(ctx, blacklistPrefix+tokenID).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("check token revocation: %w", err)
	}

	return true, nil
}
