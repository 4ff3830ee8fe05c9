// Package redis keeps session carts in Redis, one JSON document per
// session with a sliding TTL. Totals are never stored; the pricing engine
// recomputes them on every read so prices and tiers are always current.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"kicharme.com.br/storefront/pkg/cart"
)

// SessionStore persists carts keyed by session id.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore wraps an existing client. ttl bounds cart lifetime and is
// refreshed on every save.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

// Get loads the session cart. A missing or expired key is an empty cart.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*cart.Cart, error) {
	payload, err := s.client.Get(ctx, cartKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &cart.Cart{}, nil
		}
		return nil, fmt.Errorf("get cart %s: %w", sessionID, err)
	}

	var c cart.Cart
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return nil, fmt.Errorf("unmarshal cart %s: %w", sessionID, err)
	}
	return &c, nil
}

// Save stores the cart and refreshes its TTL. Saving an empty cart deletes
// the key instead.
func (s *SessionStore) Save(ctx context.Context, sessionID string, c *cart.Cart) error {
	if c.IsEmpty() {
		return s.Clear(ctx, sessionID)
	}

	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal cart %s: %w", sessionID, err)
	}
	if err := s.client.Set(ctx, cartKey(sessionID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("set cart %s: %w", sessionID, err)
	}
	return nil
}

// Clear drops the session cart. Clearing an absent cart is a no-op.
func (s *SessionStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear cart %s: %w", sessionID, err)
	}
	return nil
}

// Ping verifies the connection, for health checks.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
