package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pkgerrors "github.com/dermacart/dermacart-backend/pkg/errors"
	"github.com/dermacart/dermacart-backend/pkg/redis"
)

// Store is the durable key-value collaborator the cart persists through.
// Writes replace the whole value; concurrent writers race with last-write-wins
// semantics, which is accepted for this domain.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, sessionID string) error
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a Store backed by the shared redis client. A zero TTL
// keeps carts until explicitly deleted.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

// Load rehydrates the cart stored under the session id, or nil when absent.
func (s *redisStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode stored cart")
	}

	// Reads slide the expiry forward so an active session never loses its
	// cart mid-browse. Best effort; the read result stands either way.
	if s.ttl > 0 {
		_ = s.client.Expire(ctx, s.client.CartKey(sessionID), s.ttl)
	}
	return &cart, nil
}

// Save persists the full cart snapshot under its session id.
func (s *redisStore) Save(ctx context.Context, cart *Cart) error {
	if cart == nil || cart.SessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart session id is required")
	}
	payload, err := json.Marshal(cart)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.client.Set(ctx, s.client.CartKey(cart.SessionID), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}

// Delete removes the stored cart.
func (s *redisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.client.CartKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart")
	}
	return nil
}
