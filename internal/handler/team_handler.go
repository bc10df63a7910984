package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"file-sharing-server/internal/model/requestresponse"
	"file-sharing-server/internal/ports"
	"file-sharing-server/internal/util"
)

type TeamHandler struct {
	ports.TeamService
}

func NewTeamHandler(teamService ports.TeamService) *TeamHandler {
	return &TeamHandler{teamService}
}

// CreateTeam godoc
// @Summary Создание команды
// @Description Создатель становится участником команды. Имя команды уникально.
// @Tags Teams
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param body body requestresponse.CreateTeamRequest true "Команда"
// @Success 201 {object} requestresponse.TeamResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse "Имя занято"
// @Router /api/teams [post]
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	var req requestresponse.CreateTeamRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	team, err := h.TeamService.Create(r.Context(), claims.UserUUID, req.Name, req.Description)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, requestresponse.TeamResponse{Data: team})
}

// ListTeams godoc
// @Summary Команды текущего пользователя
// @Tags Teams
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListTeamsResponse
// @Router /api/teams [get]
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	teams, err := h.TeamService.ListForMember(r.Context(), claims.UserUUID)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}

	resp := requestresponse.ListTeamsResponse{}
	resp.Data.Teams = teams

	util.WriteJSON(w, http.StatusOK, resp)
}

// GetTeam godoc
// @Summary Получение команды
// @Description Команда вместе со списком участников. Доступно участникам.
// @Tags Teams
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "UUID команды"
// @Success 200 {object} requestresponse.TeamResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/teams/{id} [get]
func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	team, err := h.TeamService.Get(r.Context(), chi.URLParam(r, "id"), claims.UserUUID)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.TeamResponse{Data: team})
}

// UpdateTeam godoc
// @Summary Изменение команды
// @Tags Teams
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "UUID команды"
// @Param body body requestresponse.UpdateTeamRequest true "Изменяемые поля"
// @Success 200 {object} requestresponse.TeamResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse
// @Router /api/teams/{id} [patch]
func (h *TeamHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	var req requestresponse.UpdateTeamRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	team, err := h.TeamService.Update(r.Context(), chi.URLParam(r, "id"), claims.UserUUID, req.Name, req.Description)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.TeamResponse{Data: team})
}

// DeleteTeam godoc
// @Summary Удаление команды
// @Description Вместе с командой удаляются её участники и командные гранты.
// @Tags Teams
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "UUID команды"
// @Success 204 "Команда удалена"
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/teams/{id} [delete]
func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	if err := h.TeamService.Delete(r.Context(), chi.URLParam(r, "id"), claims.UserUUID); err != nil {
		sendServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddMember godoc
// @Summary Добавление участника
// @Tags Teams
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "UUID команды"
// @Param body body requestresponse.TeamMemberRequest true "Пользователь"
// @Success 204 "Участник добавлен"
// @Failure 400 {object} requestresponse.ErrorResponse "already-member"
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/teams/{id}/members [post]
func (h *TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	var req requestresponse.TeamMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.TeamService.AddMember(r.Context(), chi.URLParam(r, "id"), claims.UserUUID, req.UserUUID); err != nil {
		sendServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveMember godoc
// @Summary Удаление участника
// @Tags Teams
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "UUID команды"
// @Param user path string true "UUID пользователя"
// @Success 204 "Участник удалён"
// @Failure 400 {object} requestresponse.ErrorResponse "not-member"
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/teams/{id}/members/{user} [delete]
func (h *TeamHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	err := h.TeamService.RemoveMember(r.Context(), chi.URLParam(r, "id"), claims.UserUUID, chi.URLParam(r, "user"))
	if err != nil {
		sendServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListTeamFiles godoc
// @Summary Файлы команды
// @Description Файлы, которыми поделились с командой. Доступно участникам.
// @Tags Teams
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "UUID команды"
// @Success 200 {object} requestresponse.TeamFilesResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/teams/{id}/files [get]
func (h *TeamHandler) ListTeamFiles(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	files, err := h.TeamService.Files(r.Context(), chi.URLParam(r, "id"), claims.UserUUID)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}

	resp := requestresponse.TeamFilesResponse{}
	resp.Data.Files = make([]requestresponse.FileData, 0, len(files))
	for i := range files {
		resp.Data.Files = append(resp.Data.Files, requestresponse.NewFileData(&files[i], nil))
	}

	util.WriteJSON(w, http.StatusOK, resp)
}
