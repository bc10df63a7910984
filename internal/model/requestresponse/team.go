package requestresponse

import "file-sharing-server/internal/model"

// CreateTeamRequest : тело запроса на создание команды
type CreateTeamRequest struct {
	Name        string `json:"name" validate:"required,max=255" example:"backend"`
	Description string `json:"description" validate:"max=1024" example:"Команда бэкенда"`
}

// UpdateTeamRequest : изменяются только переданные поля
type UpdateTeamRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255" example:"platform"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1024" example:"Команда платформы"`
}

// TeamMemberRequest : пользователь, добавляемый в команду
type TeamMemberRequest struct {
	UserUUID string `json:"user_uuid" validate:"required,uuid" example:"123e4567-e89b-12d3-a456-426614174000"`
}

// TeamResponse : успешный ответ с командой
type TeamResponse struct {
	Data *model.Team `json:"data"`
}

// ListTeamsResponse : команды текущего пользователя
type ListTeamsResponse struct {
	Data struct {
		Teams []model.Team `json:"teams"`
	} `json:"data"`
}

// TeamFilesResponse : файлы, которыми поделились с командой
type TeamFilesResponse struct {
	Data struct {
		Files []FileData `json:"files"`
	} `json:"data"`
}
