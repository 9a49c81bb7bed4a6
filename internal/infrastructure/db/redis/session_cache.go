package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/portfolio-site/portfolio-api/internal/core/domain"
)

// SessionCache stores resolved sessions keyed by a digest of the token, so
// raw session tokens never reach Redis.
// Key format: session:<sha256(token) hex>
type SessionCache struct {
	client *redis.Client
}

// NewSessionCache creates a SessionCache wrapping the given Redis client.
func NewSessionCache(client *redis.Client) *SessionCache {
	return &SessionCache{client: client}
}

type cachedSession struct {
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get returns the cached session for token, or (nil, nil) on a miss.
func (c *SessionCache) Get(ctx context.Context, token string) (*domain.Session, error) {
	raw, err := c.client.Get(ctx, c.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("session cache get: %w", err)
	}

	var cs cachedSession
	if err := json.Unmarshal(raw, &cs); err != nil {
		return nil, fmt.Errorf("session cache decode: %w", err)
	}
	return &domain.Session{Token: token, UserID: cs.UserID, ExpiresAt: cs.ExpiresAt}, nil
}

// Set caches s for ttl. Non-positive ttls are ignored since the session is
// already at or past its expiry.
func (c *SessionCache) Set(ctx context.Context, s *domain.Session, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(cachedSession{UserID: s.UserID, ExpiresAt: s.ExpiresAt})
	if err != nil {
		return fmt.Errorf("session cache encode: %w", err)
	}
	if err := c.client.Set(ctx, c.key(s.Token), raw, ttl).Err(); err != nil {
		return fmt.Errorf("session cache set: %w", err)
	}
	return nil
}

func (c *SessionCache) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "session:" + hex.EncodeToString(sum[:])
}
