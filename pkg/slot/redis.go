package slot

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// redisStore keeps the slot under a single redis key with no TTL — the
// cart should survive restarts exactly like the file driver.
type redisStore struct {
	rdb *redis.Client
	key string
}

// NewRedis returns a redis-backed slot stored under key.
func NewRedis(rdb *redis.Client, key string) Store {
	return &redisStore{rdb: rdb, key: key}
}

func (s *redisStore) Read() ([]byte, error) {
	val, err := s.rdb.Get(context.Background(), s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("slot/redis: read %s: %w", s.key, err)
	}
	return val, nil
}

func (s *redisStore) Write(data []byte) error {
	if err := s.rdb.Set(context.Background(), s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("slot/redis: write %s: %w", s.key, err)
	}
	return nil
}

func (s *redisStore) Clear() error {
	if err := s.rdb.Del(context.Background(), s.key).Err(); err != nil {
		return fmt.Errorf("slot/redis: clear %s: %w", s.key, err)
	}
	return nil
}
