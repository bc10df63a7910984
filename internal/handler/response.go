package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"file-sharing-server/internal/model"
	"file-sharing-server/internal/security"
	"file-sharing-server/internal/util"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeJSON декодирует и валидирует тело запроса, при ошибке сам отвечает 400
func decodeJSON(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		util.HandleErrorDetail(w, model.CodeInvalidRequest, http.StatusBadRequest, map[string]any{
			"field": "body",
		})
		return false
	}

	if err := validate.Struct(target); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			util.HandleError(w, model.CodeInvalidRequest, http.StatusBadRequest)
			return false
		}
		fields := make([]map[string]string, 0, len(fieldErrors))
		for _, fe := range fieldErrors {
			fields = append(fields, map[string]string{"field": fe.Field(), "rule": fe.Tag()})
		}
		util.HandleErrorDetail(w, model.CodeInvalidRequest, http.StatusBadRequest, fields)
		return false
	}

	return true
}

// currentClaims : claims из контекста, при их отсутствии отвечает 401
func currentClaims(w http.ResponseWriter, r *http.Request) (*security.Claims, bool) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	return claims, true
}

// restrictToOwner проверяет, имеет ли пользователь право доступа к ресурсу
func restrictToOwner(w http.ResponseWriter, r *http.Request, targetUUID string) bool {
	claims, ok := currentClaims(w, r)
	if !ok {
		return false
	}

	if !claims.IsAdmin && claims.UserUUID != targetUUID {
		util.HandleError(w, "forbidden", http.StatusForbidden)
		return false
	}

	return true
}

func queryLimit(r *http.Request) int {
	limit := defaultListLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = min(l, maxListLimit)
		}
	}
	return limit
}

// statusFor : ошибка сервиса в HTTP статус и сообщение
func statusFor(err error) (int, string) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		switch verr.Code {
		case model.CodeFileTooLarge:
			return http.StatusRequestEntityTooLarge, verr.Code
		case model.CodeUnsupportedContentType:
			return http.StatusUnsupportedMediaType, verr.Code
		}
		return http.StatusBadRequest, verr.Code
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, "not-found"
	case errors.Is(err, model.ErrNotOwner):
		return http.StatusForbidden, "not-owner"
	case errors.Is(err, model.ErrAccessDenied):
		return http.StatusForbidden, string(model.ReasonAccessDenied)
	case errors.Is(err, model.ErrRateLimited):
		return http.StatusTooManyRequests, "rate-limited"
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, model.ErrCredentialIssuance):
		return http.StatusServiceUnavailable, "issuance-failed"
	case errors.Is(err, model.ErrDependencyFailure):
		return http.StatusServiceUnavailable, "dependency-failure"
	default:
		return http.StatusInternalServerError, "внутренняя ошибка сервера"
	}
}

// sendServiceError : единый ответ на ошибку сервиса
func sendServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		util.Logger().Error("[Handler] ошибка обработки запроса",
			zap.String("path", r.URL.Path), zap.Int("status_code", status), zap.Error(err))
	} else {
		util.Logger().Debug("[Handler] запрос отклонён",
			zap.String("path", r.URL.Path), zap.Int("status_code", status), zap.Error(err))
	}

	var verr *model.ValidationError
	if errors.As(err, &verr) {
		util.HandleErrorDetail(w, message, status, map[string]any{
			"field":  verr.Field,
			"values": verr.Values,
		})
		return
	}
	util.HandleError(w, message, status)
}
