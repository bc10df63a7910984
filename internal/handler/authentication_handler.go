package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"file-sharing-server/internal/model/requestresponse"
	"file-sharing-server/internal/ports"
	"file-sharing-server/internal/security"
	"file-sharing-server/internal/util"
)

type AuthenticationHandler struct {
	ports.AuthenticationService
	ports.JWTServiceInterface
	secretKey []byte
}

func NewAuthenticationHandler(
	authenticationService ports.AuthenticationService,
	jwtServiceInterface ports.JWTServiceInterface,
	secretKey []byte,
) *AuthenticationHandler {
	return &AuthenticationHandler{
		authenticationService,
		jwtServiceInterface,
		secretKey}
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Получение access и refresh токенов по логину и паролю
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Тело запроса"
// @Success 200 {object} requestresponse.LoginResponse "Успешная аутентификация"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или пустые поля"
// @Failure 401 {object} requestresponse.ErrorResponse "Неверный логин или пароль"
// @Failure 429 {object} requestresponse.ErrorResponse "Слишком много запросов"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tokens, err := h.AuthenticationService.Login(r.Context(), req.Login, req.Password, r.UserAgent(), security.ClientKey(r))
	if err != nil {
		sendServiceError(w, r, err)
		return
	}

	resp := requestresponse.LoginResponse{}
	resp.Response.Token = tokens.AccessToken
	resp.Response.RefreshToken = tokens.RefreshToken

	util.WriteJSON(w, http.StatusOK, resp)
}

// GetCurrentUsersUUID godoc
// @Summary Получение UUID текущего пользователя
// @Description Возвращает UUID пользователя, который авторизован в системе
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.CurrentUserResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthenticationHandler) GetCurrentUsersUUID(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}

	resp := requestresponse.CurrentUserResponse{}
	resp.Response.UserUUID = claims.UserUUID
	resp.Response.IsAdmin = claims.IsAdmin

	util.WriteJSON(w, http.StatusOK, resp)
}

// RefreshToken godoc
// @Summary Обновление токенов
// @Description Обновляет пару токенов (access и refresh) по выданной вместе паре. Смена User-Agent завершает сессию.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RefreshTokenRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.RefreshTokenResponse "Новые access и refresh токены"
// @Failure 400 {object} requestresponse.ErrorResponse "Неверный JSON"
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован или невалидный токен"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/refresh [post]
func (h *AuthenticationHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		util.HandleError(w, "пустой или неверный заголовок Authorization", http.StatusUnauthorized)
		return
	}
	accessToken := strings.TrimPrefix(authHeader, "Bearer ")

	var req requestresponse.RefreshTokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tokensPair, err := h.AuthenticationService.RefreshToken(r.Context(), r.UserAgent(), security.ClientKey(r), accessToken, req.RefreshToken)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}

	resp := requestresponse.RefreshTokenResponse{}
	resp.Response.AccessToken = tokensPair.AccessToken
	resp.Response.RefreshToken = tokensPair.RefreshToken

	util.WriteJSON(w, http.StatusOK, resp)
}

// Logout godoc
// @Summary Завершение авторизованной сессии
// @Description Инвалидирует refresh-токен и завершает сессию пользователя по access-токену, переданному в URL.
// @Tags Authentication
// @Produce json
// @Param token path string true "Access-токен пользователя (JWT)"
// @Success 200 {object} requestresponse.LogoutResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/auth/{token} [delete]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	accessToken := chi.URLParam(r, "token")
	if accessToken == "" {
		util.HandleError(w, "токен не указан", http.StatusBadRequest)
		return
	}

	claims, err := h.JWTServiceInterface.ValidateJWT(accessToken, h.secretKey)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}

	if err := h.AuthenticationService.Logout(r.Context(), claims.RefreshTokenUUID); err != nil {
		sendServiceError(w, r, err)
		return
	}

	resp := requestresponse.LogoutResponse{}
	resp.Response.SessionUUID = claims.RefreshTokenUUID
	resp.Response.Closed = true

	util.WriteJSON(w, http.StatusOK, resp)
}
