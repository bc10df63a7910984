package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"file-sharing-server/internal/ports"
	"file-sharing-server/internal/util"
)

const (
	AdmissionSensitive = "sensitive"
	AdmissionDefault   = "default"
)

// AdmissionController : скользящее окно запросов на ключ клиента.
// Чтение, очистка и запись не атомарны, при конкурентных запросах одного клиента лимит может быть
// превышен не более чем на число одновременных запросов.
type AdmissionController struct {
	cache  ports.CounterCache
	class  string
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewAdmissionController(cache ports.CounterCache, class string, limit int, window time.Duration) *AdmissionController {
	return &AdmissionController{
		cache:  cache,
		class:  class,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// WithClock : подменяет источник времени
func (a *AdmissionController) WithClock(now func() time.Time) *AdmissionController {
	a.now = now
	return a
}

func (a *AdmissionController) key(clientKey string) string {
	return fmt.Sprintf("rate_limit:%s:%s", a.class, clientKey)
}

// Admit : при недоступном кэше запрос допускается, ошибка логируется
func (a *AdmissionController) Admit(ctx context.Context, clientKey string) (bool, error) {
	key := a.key(clientKey)
	now := a.now()

	stamps, _, err := a.cache.Get(ctx, key)
	if err != nil {
		util.Logger().Warn("[AdmissionController] кэш недоступен, запрос допущен",
			zap.String("key", key), zap.Error(err))
		return true, nil
	}

	recent := prune(stamps, now.Add(-a.window))

	if len(recent) >= a.limit {
		// очищенная последовательность сохраняется и при отказе, чтобы она не росла
		if err := a.cache.SetWithTTL(ctx, key, recent, a.window); err != nil {
			util.Logger().Warn("[AdmissionController] не удалось сохранить счётчик", zap.String("key", key), zap.Error(err))
		}
		util.Logger().Info("[AdmissionController] запрос отклонён",
			zap.String("class", a.class), zap.String("client_key", clientKey), zap.Int("count", len(recent)))
		return false, nil
	}

	recent = append(recent, now)
	if err := a.cache.SetWithTTL(ctx, key, recent, a.window); err != nil {
		util.Logger().Warn("[AdmissionController] не удалось сохранить счётчик", zap.String("key", key), zap.Error(err))
	}
	return true, nil
}

// prune : оставляет метки строго новее cutoff
func prune(stamps []time.Time, cutoff time.Time) []time.Time {
	recent := make([]time.Time, 0, len(stamps)+1)
	for _, stamp := range stamps {
		if stamp.After(cutoff) {
			recent = append(recent, stamp)
		}
	}
	return recent
}
