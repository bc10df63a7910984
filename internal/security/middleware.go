package security

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"file-sharing-server/internal/util"
)

// multipartOverhead : запас на заголовки и границы multipart поверх размера файла
const multipartOverhead = 1 << 20

// Admitter : решение о допуске запроса по ключу клиента
type Admitter interface {
	Admit(ctx context.Context, clientKey string) (bool, error)
}

// RequestLogger : уровень записи зависит от класса статуса ответа
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status_code", status),
				zap.Duration("latency", time.Since(start)),
				zap.String("client_key", ClientKey(r)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			}
			if r.URL.RawQuery != "" {
				fields = append(fields, zap.String("query", r.URL.RawQuery))
			}

			switch {
			case status >= http.StatusInternalServerError:
				logger.Error("Incoming Request", fields...)
			case status >= http.StatusBadRequest:
				logger.Warn("Incoming Request", fields...)
			default:
				logger.Info("Incoming Request", fields...)
			}
		})
	}
}

// RateLimit : 429 при превышении лимита; ошибка контроллера не блокирует запрос
func RateLimit(admitter Admitter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			admitted, err := admitter.Admit(r.Context(), ClientKey(r))
			if err != nil {
				util.Logger().Warn("[RateLimit] ошибка проверки лимита, запрос пропущен", zap.Error(err))
				admitted = true
			}
			if !admitted {
				util.HandleError(w, "Too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UploadGuard : отклоняет слишком большие тела до разбора и ограничивает чтение тела
func UploadGuard(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limit := maxBytes + multipartOverhead
			if r.ContentLength > limit {
				util.HandleErrorDetail(w, "file-too-large", http.StatusRequestEntityTooLarge, map[string]any{
					"max_bytes": maxBytes,
				})
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
