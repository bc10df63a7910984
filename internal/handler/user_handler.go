package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"file-sharing-server/internal/model"
	"file-sharing-server/internal/model/requestresponse"
	"file-sharing-server/internal/ports"
	"file-sharing-server/internal/security"
	"file-sharing-server/internal/util"
)

type UserHandler struct {
	ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService}
}

// RegisterUser godoc
// @Summary Регистрация нового пользователя
// @Description Создает нового пользователя с логином и паролем. Требуется токен администратора (admin_token в config.yaml).
// @Tags Users
// @Accept json
// @Produce json
// @Param body body requestresponse.RegisterRequest true "Тело запроса"
// @Success 200 {object} requestresponse.RegisterResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse "Логин занят"
// @Failure 429 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/register [post]
func (h *UserHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// пара токенов нового пользователя не отдаётся: регистрирует администратор
	_, err := h.UserService.Register(r.Context(), req.Token, req.Login, req.Password, r.UserAgent(), security.ClientKey(r))
	if err != nil {
		sendServiceError(w, r, err)
		return
	}

	resp := requestresponse.RegisterResponse{
		Response: requestresponse.RegisterData{
			Login: req.Login,
		},
	}

	util.WriteJSON(w, http.StatusOK, resp)
}

// GetUser godoc
// @Summary Получение информации о пользователе
// @Description Возвращает данные пользователя. Доступен самому пользователю и администратору.
// @Tags Users
// @Produce json
// @Param uuid path string true "UUID пользователя"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UserResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users/{uuid} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	targetUUID := chi.URLParam(r, "uuid")
	if !restrictToOwner(w, r, targetUUID) {
		return
	}

	user, err := h.UserService.GetUser(r.Context(), targetUUID)
	if err != nil {
		if r.Method == http.MethodHead {
			status, _ := statusFor(err)
			w.WriteHeader(status)
			return
		}
		sendServiceError(w, r, err)
		return
	}

	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}

	resp := requestresponse.UserResponse{}
	resp.Data.UUID = user.UUID
	resp.Data.Login = user.Login

	util.WriteJSON(w, http.StatusOK, resp)
}

// GetUserHead godoc
// @Summary Проверка существования пользователя
// @Tags Users
// @Param uuid path string true "UUID пользователя"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200
// @Failure 403
// @Failure 404
// @Router /api/users/{uuid} [head]
func (h *UserHandler) GetUserHead(w http.ResponseWriter, r *http.Request) {
	h.GetUser(w, r)
}

// UpdateUser godoc
// @Summary Обновление данных пользователя
// @Description Позволяет пользователю обновить свой логин.
// @Tags Users
// @Accept json
// @Produce json
// @Param uuid path string true "UUID пользователя"
// @Param body body requestresponse.UpdateUserRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UpdateUserResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users/{uuid} [put]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	targetUUID := chi.URLParam(r, "uuid")
	if !restrictToOwner(w, r, targetUUID) {
		return
	}

	var req requestresponse.UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updatedUser := &model.User{
		UUID:  targetUUID,
		Login: req.Login,
	}

	if err := h.UserService.UpdateUser(r.Context(), updatedUser); err != nil {
		sendServiceError(w, r, err)
		return
	}

	resp := requestresponse.UpdateUserResponse{}
	resp.Response.Login = req.Login

	util.WriteJSON(w, http.StatusOK, resp)
}

// UpdatePassword godoc
// @Summary Обновление пароля пользователя
// @Description Позволяет пользователю обновить свой пароль. Доступен только владельцу.
// @Tags Users
// @Accept json
// @Produce json
// @Param uuid path string true "UUID пользователя"
// @Param body body requestresponse.UpdatePasswordRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UpdatePasswordResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users/{uuid}/password [put]
func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	targetUUID := chi.URLParam(r, "uuid")
	if !restrictToOwner(w, r, targetUUID) {
		return
	}

	var req requestresponse.UpdatePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.UserService.UpdatePassword(r.Context(), targetUUID, req.NewPassword); err != nil {
		sendServiceError(w, r, err)
		return
	}

	resp := requestresponse.UpdatePasswordResponse{}
	resp.Response.Updated = true

	util.WriteJSON(w, http.StatusOK, resp)
}

// DeleteUser godoc
// @Summary Удаление пользователя
// @Description Удаляет пользователя. Доступен только владельцу или администратору.
// @Tags Users
// @Produce json
// @Param uuid path string true "UUID пользователя"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 204 "Пользователь успешно удалён"
// @Failure 403 {object} requestresponse.ErrorResponse "Доступ запрещён"
// @Failure 404 {object} requestresponse.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/users/{uuid} [delete]
// @Security BearerAuth
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	targetUUID := chi.URLParam(r, "uuid")
	if !restrictToOwner(w, r, targetUUID) {
		return
	}

	if err := h.UserService.DeleteUser(r.Context(), targetUUID); err != nil {
		sendServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListUsers godoc
// @Summary Получение списка пользователей
// @Description Возвращает список пользователей с постраничной навигацией (cursor-based). Нужен для выбора получателей грантов.
// @Tags Users
// @Produce json
// @Param cursor query string false "Курсор для пагинации"
// @Param limit query int false "Количество пользователей в списке" default(50) minimum(1) maximum(100)
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListUsersResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/users [get]
// @Security BearerAuth
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, nextCursor, err := h.UserService.ListUsers(r.Context(), r.URL.Query().Get("cursor"), queryLimit(r))
	if err != nil {
		sendServiceError(w, r, err)
		return
	}

	resp := requestresponse.ListUsersResponse{}
	resp.Data.Users = users
	resp.Data.NextCursor = nextCursor

	util.WriteJSON(w, http.StatusOK, resp)
}
