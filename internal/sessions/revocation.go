// Package sessions keeps the list of access tokens revoked before expiry.
package sessions

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedPrefix = "docshare:revoked:"

// ErrRevocationUnavailable is returned by Revoke when no Redis client is
// configured.
var ErrRevocationUnavailable = errors.New("token revocation unavailable: redis not configured")

// RevocationList stores revoked access tokens in Redis. Without a client,
// nothing is ever revoked and Revoke fails with ErrRevocationUnavailable.
type RevocationList struct {
	client *redis.Client
}

func NewRevocationList(c *redis.Client) *RevocationList {
	return &RevocationList{client: c}
}

// tokens are stored by digest so raw credentials never reach Redis
func revokedKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return revokedPrefix + hex.EncodeToString(sum[:])
}

// Revoke marks token as revoked for ttl, normally its remaining lifetime.
func (r *RevocationList) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if r == nil || r.client == nil {
		return ErrRevocationUnavailable
	}
	return r.client.Set(ctx, revokedKey(token), "1", ttl).Err()
}

// IsRevoked reports whether token was revoked and has not expired yet.
func (r *RevocationList) IsRevoked(ctx context.Context, token string) (bool, error) {
	if r == nil || r.client == nil {
		return false, nil
	}
	n, err := r.client.Exists(ctx, revokedKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
