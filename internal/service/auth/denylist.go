package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rmachado/library-api/internal/platform/logger"
)

// TokenDenylist records tokens revoked by signout. A revoked token stays
// on the list until its natural expiry, after which the signature check
// alone rejects it.
type TokenDenylist interface {
	// Revoke marks the token with the given ID as revoked until the
	// provided expiry time.
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error

	// IsRevoked reports whether the token with the given ID has been revoked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

const denylistKeyPrefix = "denylist:token:"

// RedisDenylist implements TokenDenylist on top of Redis, using the token's
// remaining lifetime as the entry TTL so the list cleans itself up.
type RedisDenylist struct {
	client   *redis.Client
	timeFunc func() time.Time
}

// Ensure RedisDenylist implements TokenDenylist interface
var _ TokenDenylist = (*RedisDenylist)(nil)

// NewRedisDenylist creates a Redis-backed token denylist.
func NewRedisDenylist(client *redis.Client) *RedisDenylist {
	if client == nil {
		panic("redis client cannot be nil")
	}
	return &RedisDenylist{client: client, timeFunc: time.Now}
}

// Revoke implements TokenDenylist.Revoke
// Tokens that have already expired are not stored; the signature and time
// checks reject them without a lookup.
func (d *RedisDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	log := logger.FromContext(ctx)

	ttl := expiresAt.Sub(d.timeFunc())
	if ttl <= 0 {
		log.Debug("skipping denylist entry for already-expired token",
			"token_id", tokenID)
		return nil
	}

	key := denylistKeyPrefix + tokenID
	if err := d.client.Set(ctx, key, "revoked", ttl).Err(); err != nil {
		log.Error("failed to record revoked token",
			"error", err,
			"token_id", tokenID)
		return fmt.Errorf("failed to record revoked token: %w", err)
	}

	log.Debug("token revoked", "token_id", tokenID, "ttl", ttl)
	return nil
}

// IsRevoked implements TokenDenylist.IsRevoked
func (d *RedisDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	log := logger.FromContext(ctx)

	key := denylistKeyPrefix + tokenID
	n, err := d.client.Exists(ctx, key).Result()
	if err != nil {
		log.Error("failed to check token denylist",
			"error", err,
			"token_id", tokenID)
		return false, fmt.Errorf("failed to check token denylist: %w", err)
	}

	return n > 0, nil
}
