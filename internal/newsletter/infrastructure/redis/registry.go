package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const subscribersKey = "newsletter:subscribers"

type Registry struct {
	rdb *redis.Client
}

func NewRegistry(rdb *redis.Client) *Registry {
	return &Registry{rdb: rdb}
}

func (r *Registry) Add(ctx context.Context, email string) (bool, error) {
	added, err := r.rdb.SAdd(ctx, subscribersKey, email).Result()
	if err != nil {
		return false, err
	}
	return added > 0, nil
}
