// File: utils/token_blacklist.go
package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// BlacklistToken revokes a refresh token until its natural expiry. The key
// carries a TTL matching the remaining token lifetime, so the blacklist never
// grows unbounded and is shared across instances.
func BlacklistToken(client *redis.Client, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired; nothing to revoke.
		return nil
	}
	ctx := context.Background()
	key := BlacklistPrefix + HashToken(token)
	if err := client.Set(ctx, key, "revoked", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

// IsTokenBlacklisted reports whether a refresh token has been revoked.
func IsTokenBlacklisted(client *redis.Client, token string) (bool, error) {
	ctx := context.Background()
	key := BlacklistPrefix + HashToken(token)
	_, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return true, nil
}
