package storage

import (
	"context"

	"github.com/redis/go-redis/v9"
)

type redisSlot struct {
	client *redis.Client
	key    string
}

// NewRedisSlot stores the cart under a single Redis key with no TTL;
// the cart persists across sessions until cleared.
func NewRedisSlot(client *redis.Client, key string) Slot {
	return &redisSlot{client: client, key: key}
}

func (s *redisSlot) Load(ctx context.Context) ([]byte, error) {
	value, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (s *redisSlot) Save(ctx context.Context, value []byte) error {
	return s.client.Set(ctx, s.key, value, 0).Err()
}
