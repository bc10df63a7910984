package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"file-sharing-server/internal/model"
)

// fakeRedis : реализует только Get и Set
type fakeRedis struct {
	redis.Cmdable
	values map[string]string
	ttls   map[string]time.Duration
	err    error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	value, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.values[key] = string(value.([]byte))
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestRedisCounterCache_RoundTrip(t *testing.T) {
	client := newFakeRedis()
	cache := NewRedisCounterCache(client)
	ctx := context.Background()
	key := "rate_limit:sensitive:203.0.113.7"

	stamps, found, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, stamps)

	base := time.Unix(1_700_000_000, 123)
	written := []time.Time{base, base.Add(time.Second)}
	require.NoError(t, cache.SetWithTTL(ctx, key, written, time.Minute))
	assert.Equal(t, time.Minute, client.ttls[key])

	stamps, found, err = cache.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, stamps, 2)
	assert.True(t, written[0].Equal(stamps[0]))
	assert.True(t, written[1].Equal(stamps[1]))
}

func TestRedisCounterCache_Failures(t *testing.T) {
	client := newFakeRedis()
	cache := NewRedisCounterCache(client)
	ctx := context.Background()

	client.values["broken"] = "not-json"
	_, _, err := cache.Get(ctx, "broken")
	assert.ErrorIs(t, err, model.ErrDependencyFailure)

	client.err = errors.New("connection refused")
	_, _, err = cache.Get(ctx, "any")
	assert.ErrorIs(t, err, model.ErrDependencyFailure)
	assert.ErrorIs(t, cache.SetWithTTL(ctx, "any", nil, time.Minute), model.ErrDependencyFailure)
}
