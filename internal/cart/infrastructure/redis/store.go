// Package redis persists cart snapshots as JSON values keyed by shopping
// session.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/boolshop/storefront/internal/cart/domain"
)

const keyPrefix = "cart:"

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func (s *Store) Load(ctx context.Context, sessionID string) (domain.Cart, error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Cart{}, nil
	}
	if err != nil {
		return domain.Cart{}, err
	}

	var c domain.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return domain.Cart{}, err
	}
	return c, nil
}

func (s *Store) Save(ctx context.Context, sessionID string, cart domain.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyPrefix+sessionID, raw, s.ttl).Err()
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, keyPrefix+sessionID).Err()
}
