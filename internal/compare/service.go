package compare

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/dermacart/dermacart-backend/pkg/errors"
	"github.com/dermacart/dermacart-backend/pkg/redis"
)

// Store persists comparison sets keyed by session id. Like the cart store,
// writes replace the whole value.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Set, error)
	Save(ctx context.Context, set *Set) error
	Delete(ctx context.Context, sessionID string) error
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a Store backed by the shared redis client.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Load(ctx context.Context, sessionID string) (*Set, error) {
	raw, err := s.client.Get(ctx, s.client.CompareKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load comparison set")
	}

	var set Set
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode stored comparison set")
	}
	return &set, nil
}

func (s *redisStore) Save(ctx context.Context, set *Set) error {
	if set == nil || set.SessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "comparison session id is required")
	}
	payload, err := json.Marshal(set)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode comparison set")
	}
	if err := s.client.Set(ctx, s.client.CompareKey(set.SessionID), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save comparison set")
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.client.CompareKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete comparison set")
	}
	return nil
}

// Service owns comparison set lifecycle per session.
type Service interface {
	Get(ctx context.Context, sessionID string) (*Set, error)
	Add(ctx context.Context, sessionID string, productID uuid.UUID) (*Set, error)
	Remove(ctx context.Context, sessionID string, productID uuid.UUID) (*Set, error)
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	store Store
}

// NewService builds the comparison service.
func NewService(store Store) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("compare store required")
	}
	return &service{store: store}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*Set, error) {
	set, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if set == nil {
		set = NewSet(sessionID)
	}
	return set, nil
}

func (s *service) Add(ctx context.Context, sessionID string, productID uuid.UUID) (*Set, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	set, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !set.Add(productID) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("comparison set is limited to %d products", MaxProducts))
	}
	if err := s.store.Save(ctx, set); err != nil {
		return nil, err
	}
	return set, nil
}

func (s *service) Remove(ctx context.Context, sessionID string, productID uuid.UUID) (*Set, error) {
	set, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	set.Remove(productID)
	if err := s.store.Save(ctx, set); err != nil {
		return nil, err
	}
	return set, nil
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}
