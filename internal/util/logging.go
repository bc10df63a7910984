package util

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger atomic.Pointer[zap.Logger]

// InitLogger : создаёт процессный логгер. level принимает debug, info, warn, error.
func InitLogger(level string, development bool) (*zap.Logger, error) {
	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("неверный уровень логирования %q: %w", level, err)
	}
	cfg.Level = zap.NewAtomicLevelAt(parsed)

	built, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("ошибка создания логгера: %w", err)
	}
	logger.Store(built)
	return built, nil
}

// Logger : до InitLogger возвращает no-op логгер
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

func LogError(message string, err error) error {
	Logger().Error(message, zap.Error(err))
	return fmt.Errorf("%s: %w", message, err)
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
	Detail  any    `json:"detail,omitempty"`
}

func HandleError(w http.ResponseWriter, message string, statusCode int) {
	HandleErrorDetail(w, message, statusCode, nil)
}

// HandleErrorDetail : detail описывает поле и значения, вызвавшие ошибку
func HandleErrorDetail(w http.ResponseWriter, message string, statusCode int, detail any) {
	WriteJSON(w, statusCode, errorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
		Detail:  detail,
	})
}

func WriteJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		Logger().Warn("ошибка записи ответа", zap.Error(err))
	}
}
