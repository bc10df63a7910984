package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"file-sharing-server/internal/model"
)

// RedisCounterCache : временные метки запросов хранятся JSON-массивом unix-наносекунд
type RedisCounterCache struct {
	client redis.Cmdable
}

func NewRedisCounterCache(client redis.Cmdable) *RedisCounterCache {
	return &RedisCounterCache{client: client}
}

func (c *RedisCounterCache) Get(ctx context.Context, key string) ([]time.Time, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("[CounterCache] ошибка чтения %s: %w: %w", key, model.ErrDependencyFailure, err)
	}

	var nanos []int64
	if err := json.Unmarshal(raw, &nanos); err != nil {
		return nil, false, fmt.Errorf("[CounterCache] повреждённое значение %s: %w: %w", key, model.ErrDependencyFailure, err)
	}

	stamps := make([]time.Time, len(nanos))
	for i, n := range nanos {
		stamps[i] = time.Unix(0, n)
	}
	return stamps, true, nil
}

func (c *RedisCounterCache) SetWithTTL(ctx context.Context, key string, stamps []time.Time, ttl time.Duration) error {
	nanos := make([]int64, len(stamps))
	for i, stamp := range stamps {
		nanos[i] = stamp.UnixNano()
	}

	data, err := json.Marshal(nanos)
	if err != nil {
		return fmt.Errorf("[CounterCache] ошибка сериализации: %w", err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("[CounterCache] ошибка записи %s: %w: %w", key, model.ErrDependencyFailure, err)
	}
	return nil
}
