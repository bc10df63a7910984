package requestresponse

import (
	"time"

	"file-sharing-server/internal/model"
)

// DownloadData : ссылка на скачивание либо причина отказа в ней
type DownloadData struct {
	Level     string     `json:"level" example:"view-and-download"`
	URL       string     `json:"url,omitempty" example:"https://bucket.s3.amazonaws.com/files/..."`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Reason    string     `json:"reason,omitempty" example:"download-not-permitted"`
}

// FileData : метаданные файла для запросившего пользователя
type FileData struct {
	UUID        string        `json:"uuid" example:"4b2f8f9e-7a1c-4c4e-9d3a-0f1e2d3c4b5a"`
	OwnerUUID   string        `json:"owner_uuid" example:"123e4567-e89b-12d3-a456-426614174000"`
	Name        string        `json:"name" example:"report.pdf"`
	SizeBytes   int64         `json:"size_bytes" example:"204800"`
	ContentType string        `json:"content_type" example:"application/pdf"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Download    *DownloadData `json:"download,omitempty"`
}

// FileResponse : успешный ответ с одним файлом
type FileResponse struct {
	Data FileData `json:"data"`
}

// ListFilesResponse : доступные пользователю файлы
type ListFilesResponse struct {
	Data struct {
		Files []FileData `json:"files"`
	} `json:"data"`
}

// ShareRequest : гранты по пользователям и командам, значение уровня view или view-and-download
type ShareRequest struct {
	UserGrants map[string]string `json:"user_grants" validate:"omitempty,dive,keys,uuid,endkeys,required" example:"123e4567-e89b-12d3-a456-426614174000:view"`
	TeamGrants map[string]string `json:"team_grants" validate:"omitempty,dive,keys,uuid,endkeys,required" example:"9f8e7d6c-5b4a-3c2d-1e0f-a1b2c3d4e5f6:view-and-download"`
}

// ShareResponse : количество применённых грантов
type ShareResponse struct {
	Response struct {
		Applied int `json:"applied" example:"2"`
	} `json:"response"`
}

// RevokeRequest : отзыв грантов по пользователям и командам
type RevokeRequest struct {
	UserUUIDs []string `json:"user_uuids" validate:"omitempty,dive,required,uuid"`
	TeamUUIDs []string `json:"team_uuids" validate:"omitempty,dive,required,uuid"`
}

// RevokeResponse : количество удалённых грантов
type RevokeResponse struct {
	Response struct {
		Revoked int `json:"revoked" example:"1"`
	} `json:"response"`
}

// GrantsResponse : все гранты файла
type GrantsResponse struct {
	Data *model.FileGrants `json:"data"`
}

// PermissionResponse : эффективный уровень доступа к файлу
type PermissionResponse struct {
	Data struct {
		FileUUID string `json:"file_uuid" example:"4b2f8f9e-7a1c-4c4e-9d3a-0f1e2d3c4b5a"`
		Level    string `json:"level" example:"view"`
	} `json:"data"`
}

type PermissionLevelData struct {
	Code        string `json:"code" example:"view"`
	Description string `json:"description" example:"View Only"`
}

// PermissionLevelsResponse : фиксированный набор уровней доступа
type PermissionLevelsResponse struct {
	Data []PermissionLevelData `json:"data"`
}

// NewFileData : представление файла с необязательной ссылкой на скачивание
func NewFileData(file *model.File, download *model.DownloadResult) FileData {
	data := FileData{
		UUID:        file.UUID,
		OwnerUUID:   file.OwnerUUID,
		Name:        file.Name,
		SizeBytes:   file.SizeBytes,
		ContentType: file.ContentType,
		CreatedAt:   file.CreatedAt,
		UpdatedAt:   file.UpdatedAt,
	}
	if download != nil {
		data.Download = &DownloadData{
			Level:  string(download.Level),
			URL:    download.URL,
			Reason: string(download.Reason),
		}
		if !download.ExpiresAt.IsZero() {
			expiresAt := download.ExpiresAt
			data.Download.ExpiresAt = &expiresAt
		}
	}
	return data
}
