package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "cart:"

// RedisStore keeps each cart as a JSON string that expires ttl after its
// last write.
type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisStore(client redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(key string) string {
	return redisKeyPrefix + key
}

func (s *RedisStore) Load(ctx context.Context, key string) ([]StoredItem, error) {
	data, err := s.client.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []StoredItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []StoredItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode cart %q: %w", key, err)
	}
	return items, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, items []StoredItem) error {
	if len(items) == 0 {
		return s.Delete(ctx, key)
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart %q: %w", key, err)
	}
	return s.client.Set(ctx, redisKey(key), string(data), s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, redisKey(key)).Err()
}
