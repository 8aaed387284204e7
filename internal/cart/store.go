package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fermedirect/storefront-backend/pkg/redis"
)

type redisStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

// Store persists cart state per session in Redis. A missing key reads as an
// empty cart; writing always refreshes the TTL so active carts stay alive.
type Store struct {
	redis redisStore
	ttl   time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{redis: client, ttl: ttl}
}

// Load returns the session's cart, or an empty state when none is stored.
func (s *Store) Load(ctx context.Context, sessionID string) (State, error) {
	raw, err := s.redis.Get(ctx, s.redis.CartKey(sessionID))
	if err != nil {
		if redis.IsNil(err) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("loading cart %s: %w", sessionID, err)
	}
	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return State{}, fmt.Errorf("decoding cart %s: %w", sessionID, err)
	}
	return state, nil
}

// Save writes the full cart snapshot in a single set, so items and promo
// state can never diverge between writes.
func (s *Store) Save(ctx context.Context, sessionID string, state State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding cart %s: %w", sessionID, err)
	}
	if err := s.redis.Set(ctx, s.redis.CartKey(sessionID), payload, s.ttl); err != nil {
		return fmt.Errorf("saving cart %s: %w", sessionID, err)
	}
	return nil
}

// Delete removes the session's cart key entirely.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.redis.Del(ctx, s.redis.CartKey(sessionID)); err != nil {
		return fmt.Errorf("deleting cart %s: %w", sessionID, err)
	}
	return nil
}
