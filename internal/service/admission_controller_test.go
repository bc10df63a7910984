package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"file-sharing-server/internal/service"
)

const window = 60 * time.Second

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func TestAdmissionController_SlidingWindow(t *testing.T) {
	clock := newClock()
	cache := newMemCounterCache(clock.Now)
	limiter := service.NewAdmissionController(cache, service.AdmissionSensitive, 10, window).WithClock(clock.Now)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		ok, err := limiter.Admit(ctx, "203.0.113.7")
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i+1)
		clock.Advance(time.Second)
	}

	ok, err := limiter.Admit(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, ok, "11th request in the window")

	clock.Advance(window + time.Second)
	ok, err = limiter.Admit(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAdmissionController_RequestsLeaveTheWindowOneByOne(t *testing.T) {
	clock := newClock()
	cache := newMemCounterCache(clock.Now)
	limiter := service.NewAdmissionController(cache, service.AdmissionDefault, 2, window).WithClock(clock.Now)
	ctx := context.Background()

	first, _ := limiter.Admit(ctx, "client")
	clock.Advance(30 * time.Second)
	second, _ := limiter.Admit(ctx, "client")
	third, _ := limiter.Admit(ctx, "client")
	assert.True(t, first)
	assert.True(t, second)
	assert.False(t, third)

	// первая метка ровно на границе окна уже не учитывается
	clock.Advance(30 * time.Second)
	fourth, _ := limiter.Admit(ctx, "client")
	assert.True(t, fourth)
}

func TestAdmissionController_RejectStoresPrunedStamps(t *testing.T) {
	clock := newClock()
	cache := newMemCounterCache(clock.Now)
	limiter := service.NewAdmissionController(cache, service.AdmissionDefault, 3, window).WithClock(clock.Now)
	key := "rate_limit:default:client"

	now := clock.Now()
	stale := []time.Time{now.Add(-5 * time.Minute), now.Add(-2 * time.Minute)}
	recent := []time.Time{now.Add(-30 * time.Second), now.Add(-20 * time.Second), now.Add(-10 * time.Second)}
	require.NoError(t, cache.SetWithTTL(context.Background(), key, append(stale, recent...), time.Hour))

	ok, err := limiter.Admit(context.Background(), "client")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, recent, cache.stored(key))
}

func TestAdmissionController_FailsOpen(t *testing.T) {
	clock := newClock()
	cache := newMemCounterCache(clock.Now)
	cache.getErr = errors.New("redis: connection refused")
	limiter := service.NewAdmissionController(cache, service.AdmissionSensitive, 1, window).WithClock(clock.Now)

	for i := 0; i < 3; i++ {
		ok, err := limiter.Admit(context.Background(), "client")
		assert.NoError(t, err)
		assert.True(t, ok)
	}
	assert.Zero(t, cache.sets)
}

func TestAdmissionController_WriteFailureStillAdmits(t *testing.T) {
	clock := newClock()
	cache := newMemCounterCache(clock.Now)
	cache.setErr = errors.New("redis: timeout")
	limiter := service.NewAdmissionController(cache, service.AdmissionDefault, 5, window).WithClock(clock.Now)

	ok, err := limiter.Admit(context.Background(), "client")

	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestAdmissionController_KeysAreIndependent(t *testing.T) {
	clock := newClock()
	cache := newMemCounterCache(clock.Now)
	sensitive := service.NewAdmissionController(cache, service.AdmissionSensitive, 1, window).WithClock(clock.Now)
	general := service.NewAdmissionController(cache, service.AdmissionDefault, 1, window).WithClock(clock.Now)
	ctx := context.Background()

	ok, _ := sensitive.Admit(ctx, "client-a")
	assert.True(t, ok)
	ok, _ = sensitive.Admit(ctx, "client-a")
	assert.False(t, ok)

	ok, _ = general.Admit(ctx, "client-a")
	assert.True(t, ok, "other class has its own budget")
	ok, _ = sensitive.Admit(ctx, "client-b")
	assert.True(t, ok, "other client has its own budget")

	assert.Len(t, cache.stored("rate_limit:sensitive:client-a"), 1)
	assert.Len(t, cache.stored("rate_limit:default:client-a"), 1)
}
