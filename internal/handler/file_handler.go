package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"file-sharing-server/internal/model"
	"file-sharing-server/internal/model/requestresponse"
	"file-sharing-server/internal/ports"
	"file-sharing-server/internal/util"
)

// multipartMemory : часть формы сверх этого объёма уходит во временные файлы
const multipartMemory = 32 << 20

type FileHandler struct {
	ports.FileService
}

func NewFileHandler(fileService ports.FileService) *FileHandler {
	return &FileHandler{fileService}
}

// readUpload разбирает multipart форму: поле file обязательно, name необязательно.
// Возвращённую функцию нужно вызвать после обработки, она освобождает временные файлы формы.
func readUpload(w http.ResponseWriter, r *http.Request) (ports.UploadInput, func(), bool) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			util.HandleErrorDetail(w, model.CodeFileTooLarge, http.StatusRequestEntityTooLarge, map[string]any{
				"max_bytes": maxBytesErr.Limit,
			})
			return ports.UploadInput{}, nil, false
		}
		util.HandleErrorDetail(w, model.CodeInvalidRequest, http.StatusBadRequest, map[string]any{"field": "file"})
		return ports.UploadInput{}, nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		_ = r.MultipartForm.RemoveAll()
		util.HandleErrorDetail(w, model.CodeInvalidRequest, http.StatusBadRequest, map[string]any{"field": "file"})
		return ports.UploadInput{}, nil, false
	}

	name := r.FormValue("name")
	if name == "" {
		name = header.Filename
	}

	cleanup := func() {
		if err := file.Close(); err != nil {
			util.Logger().Debug("[FileHandler] ошибка закрытия части формы", zap.Error(err))
		}
		_ = r.MultipartForm.RemoveAll()
	}

	return ports.UploadInput{
		Name:         name,
		DeclaredType: header.Header.Get("Content-Type"),
		Size:         header.Size,
		Body:         file,
	}, cleanup, true
}

// UploadFile godoc
// @Summary Загрузка файла
// @Description Загружает файл (multipart/form-data). Размер и тип содержимого проверяются до записи в хранилище.
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param file formData file true "Файл"
// @Param name formData string false "Имя файла, по умолчанию имя из формы"
// @Success 201 {object} requestresponse.FileResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 413 {object} requestresponse.ErrorResponse "Файл слишком большой"
// @Failure 415 {object} requestresponse.ErrorResponse "Недопустимый тип содержимого"
// @Failure 429 {object} requestresponse.ErrorResponse
// @Failure 503 {object} requestresponse.ErrorResponse "Хранилище недоступно"
// @Router /api/files [post]
func (h *FileHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	input, cleanup, ok := readUpload(w, r)
	if !ok {
		return
	}
	defer cleanup()

	file, err := h.FileService.Upload(r.Context(), claims.UserUUID, input)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, requestresponse.FileResponse{
		Data: requestresponse.NewFileData(file, nil),
	})
}

// GetFile godoc
// @Summary Получение файла
// @Description Метаданные файла и временная ссылка на скачивание. Для уровня view вместо ссылки возвращается reason download-not-permitted.
// @Tags Files
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "UUID файла"
// @Success 200 {object} requestresponse.FileResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse "access-denied"
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 503 {object} requestresponse.ErrorResponse "issuance-failed"
// @Router /api/files/{id} [get]
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	view, err := h.FileService.Retrieve(r.Context(), chi.URLParam(r, "id"), claims.UserUUID)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.FileResponse{
		Data: requestresponse.NewFileData(view.File, view.Download),
	})
}

// UpdateFile godoc
// @Summary Замена содержимого файла
// @Description Доступно только владельцу. Ключ в хранилище не меняется.
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "UUID файла"
// @Param file formData file true "Новое содержимое"
// @Param name formData string false "Новое имя файла"
// @Success 200 {object} requestresponse.FileResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse "not-owner"
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 413 {object} requestresponse.ErrorResponse
// @Failure 415 {object} requestresponse.ErrorResponse
// @Failure 503 {object} requestresponse.ErrorResponse
// @Router /api/files/{id} [put]
func (h *FileHandler) UpdateFile(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	input, cleanup, ok := readUpload(w, r)
	if !ok {
		return
	}
	defer cleanup()

	if r.FormValue("name") == "" {
		input.Name = ""
	}

	file, err := h.FileService.Update(r.Context(), chi.URLParam(r, "id"), claims.UserUUID, input)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.FileResponse{
		Data: requestresponse.NewFileData(file, nil),
	})
}

// DeleteFile godoc
// @Summary Удаление файла
// @Description Доступно только владельцу. Вместе с файлом удаляются все его гранты.
// @Tags Files
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "UUID файла"
// @Success 204 "Файл удалён"
// @Failure 403 {object} requestresponse.ErrorResponse "not-owner"
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 503 {object} requestresponse.ErrorResponse
// @Router /api/files/{id} [delete]
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	if err := h.FileService.Delete(r.Context(), chi.URLParam(r, "id"), claims.UserUUID); err != nil {
		sendServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListFiles godoc
// @Summary Список доступных файлов
// @Description Собственные файлы и файлы, которыми поделились напрямую или через команду. Каждый файл один раз.
// @Tags Files
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param limit query int false "Количество файлов" default(50) minimum(1) maximum(100)
// @Success 200 {object} requestresponse.ListFilesResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 503 {object} requestresponse.ErrorResponse
// @Router /api/files [get]
func (h *FileHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	views, err := h.FileService.List(r.Context(), claims.UserUUID, queryLimit(r))
	if err != nil {
		sendServiceError(w, r, err)
		return
	}

	resp := requestresponse.ListFilesResponse{}
	resp.Data.Files = make([]requestresponse.FileData, 0, len(views))
	for _, view := range views {
		resp.Data.Files = append(resp.Data.Files, requestresponse.NewFileData(view.File, view.Download))
	}

	util.WriteJSON(w, http.StatusOK, resp)
}

// ShareFile godoc
// @Summary Выдача доступа к файлу
// @Description Атомарно применяет гранты пользователям и командам. Уровни: view, view-and-download.
// @Tags Sharing
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "UUID файла"
// @Param body body requestresponse.ShareRequest true "Гранты"
// @Success 200 {object} requestresponse.ShareResponse
// @Failure 400 {object} requestresponse.ErrorResponse "invalid-permission, owner-self-share, invalid-request"
// @Failure 403 {object} requestresponse.ErrorResponse "not-owner"
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 429 {object} requestresponse.ErrorResponse
// @Failure 503 {object} requestresponse.ErrorResponse
// @Router /api/files/{id}/share [post]
func (h *FileHandler) ShareFile(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	var req requestresponse.ShareRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	applied, err := h.FileService.Share(r.Context(), model.GrantBatch{
		FileUUID:      chi.URLParam(r, "id"),
		RequesterUUID: claims.UserUUID,
		UserGrants:    toPermissionLevels(req.UserGrants),
		TeamGrants:    toPermissionLevels(req.TeamGrants),
	})
	if err != nil {
		sendServiceError(w, r, err)
		return
	}

	resp := requestresponse.ShareResponse{}
	resp.Response.Applied = applied

	util.WriteJSON(w, http.StatusOK, resp)
}

// значения проверяет координатор, чтобы ошибка называла неверный уровень
func toPermissionLevels(grants map[string]string) map[string]model.PermissionLevel {
	if grants == nil {
		return nil
	}
	levels := make(map[string]model.PermissionLevel, len(grants))
	for id, level := range grants {
		levels[id] = model.PermissionLevel(level)
	}
	return levels
}

// RevokeAccess godoc
// @Summary Отзыв доступа к файлу
// @Description Атомарно удаляет гранты. Отсутствующий грант не считается ошибкой.
// @Tags Sharing
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "UUID файла"
// @Param body body requestresponse.RevokeRequest true "Пользователи и команды"
// @Success 200 {object} requestresponse.RevokeResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse "not-owner"
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 503 {object} requestresponse.ErrorResponse
// @Router /api/files/{id}/revoke [post]
func (h *FileHandler) RevokeAccess(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	var req requestresponse.RevokeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	revoked, err := h.FileService.Revoke(r.Context(), model.RevokeBatch{
		FileUUID:      chi.URLParam(r, "id"),
		RequesterUUID: claims.UserUUID,
		UserUUIDs:     req.UserUUIDs,
		TeamUUIDs:     req.TeamUUIDs,
	})
	if err != nil {
		sendServiceError(w, r, err)
		return
	}

	resp := requestresponse.RevokeResponse{}
	resp.Response.Revoked = revoked

	util.WriteJSON(w, http.StatusOK, resp)
}

// ListGrants godoc
// @Summary Гранты файла
// @Description Пользовательские и командные гранты файла. Доступно только владельцу.
// @Tags Sharing
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "UUID файла"
// @Success 200 {object} requestresponse.GrantsResponse
// @Failure 403 {object} requestresponse.ErrorResponse "not-owner"
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/files/{id}/grants [get]
func (h *FileHandler) ListGrants(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	grants, err := h.FileService.Grants(r.Context(), chi.URLParam(r, "id"), claims.UserUUID)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.GrantsResponse{Data: grants})
}

// GetPermission godoc
// @Summary Уровень доступа к файлу
// @Description owner, view, view-and-download или denied для текущего пользователя
// @Tags Sharing
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "UUID файла"
// @Success 200 {object} requestresponse.PermissionResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 503 {object} requestresponse.ErrorResponse
// @Router /api/files/{id}/permission [get]
func (h *FileHandler) GetPermission(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	fileUUID := chi.URLParam(r, "id")
	level, err := h.FileService.Permission(r.Context(), fileUUID, claims.UserUUID)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}

	resp := requestresponse.PermissionResponse{}
	resp.Data.FileUUID = fileUUID
	resp.Data.Level = string(level)

	util.WriteJSON(w, http.StatusOK, resp)
}

// ListPermissionLevels godoc
// @Summary Доступные уровни доступа
// @Tags Sharing
// @Produce json
// @Success 200 {object} requestresponse.PermissionLevelsResponse
// @Router /api/files/permissions [get]
func (h *FileHandler) ListPermissionLevels(w http.ResponseWriter, r *http.Request) {
	resp := requestresponse.PermissionLevelsResponse{
		Data: make([]requestresponse.PermissionLevelData, 0, len(model.PermissionLevels)),
	}
	for _, level := range model.PermissionLevels {
		resp.Data = append(resp.Data, requestresponse.PermissionLevelData{
			Code:        string(level),
			Description: level.Description(),
		})
	}

	util.WriteJSON(w, http.StatusOK, resp)
}
