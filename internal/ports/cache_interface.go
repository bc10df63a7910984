package ports

import (
	"context"
	"time"
)

// CounterCache : общее хранилище счётчиков с TTL на ключ.
// Get возвращает found=false, если ключ отсутствует или истёк.
type CounterCache interface {
	Get(ctx context.Context, key string) ([]time.Time, bool, error)
	SetWithTTL(ctx context.Context, key string, stamps []time.Time, ttl time.Duration) error
}

type AdmissionController interface {
	Admit(ctx context.Context, clientKey string) (bool, error)
}
