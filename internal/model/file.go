package model

import "time"

// File : загруженный файл, владелец неизменяем после создания
type File struct {
	UUID        string    `db:"uuid" json:"uuid"`
	OwnerUUID   string    `db:"owner_uuid" json:"owner_uuid"`
	Name        string    `db:"name" json:"name"`
	SizeBytes   int64     `db:"size_bytes" json:"size_bytes"`
	ContentType string    `db:"content_type" json:"content_type"`
	StorageKey  string    `db:"storage_key" json:"storage_key"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// SharingRecord : корень всех грантов файла, не более одной записи на файл
type SharingRecord struct {
	UUID      string    `db:"uuid" json:"uuid"`
	FileUUID  string    `db:"file_uuid" json:"file_uuid"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// UserGrant : уникален по паре (user_uuid, sharing_record_uuid)
type UserGrant struct {
	SharingRecordUUID string          `db:"sharing_record_uuid" json:"sharing_record_uuid"`
	UserUUID          string          `db:"user_uuid" json:"user_uuid"`
	Permission        PermissionLevel `db:"permission" json:"permission"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}

// TeamGrant : уникален по паре (team_uuid, sharing_record_uuid).
// UpdatedAt может отсутствовать у старых записей, такой грант считается самым старым.
type TeamGrant struct {
	SharingRecordUUID string          `db:"sharing_record_uuid" json:"sharing_record_uuid"`
	TeamUUID          string          `db:"team_uuid" json:"team_uuid"`
	TeamName          string          `db:"team_name" json:"team_name,omitempty"`
	Permission        PermissionLevel `db:"permission" json:"permission"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         *time.Time      `db:"updated_at" json:"updated_at,omitempty"`
}

// FileGrants : все гранты одного файла (для владельца)
type FileGrants struct {
	FileUUID   string      `json:"file_uuid"`
	UserGrants []UserGrant `json:"user_grants"`
	TeamGrants []TeamGrant `json:"team_grants"`
}

// AccessRow : одна строка выборки доступных файлов.
// Файл повторяется по разу на каждый подходящий командный грант, строки одного файла идут подряд.
type AccessRow struct {
	File
	UserPermission *PermissionLevel `db:"user_permission"`
	TeamUUID       *string          `db:"team_uuid"`
	TeamPermission *PermissionLevel `db:"team_permission"`
	TeamUpdatedAt  *time.Time       `db:"team_updated_at"`
}

// AccessibleFile : файл вместе с вычисленным уровнем доступа
type AccessibleFile struct {
	File  File
	Level EffectivePermission
}

// DownloadResult : итог выдачи временной ссылки.
// Либо URL заполнен, либо Reason объясняет отказ; сбой хранилища возвращается ошибкой.
type DownloadResult struct {
	Level     EffectivePermission `json:"level"`
	URL       string              `json:"url,omitempty"`
	ExpiresAt time.Time           `json:"expires_at,omitempty"`
	Reason    DenialReason        `json:"reason,omitempty"`
}

// Allowed : true, если ссылка выдана
func (r *DownloadResult) Allowed() bool {
	return r != nil && r.URL != ""
}

// FileView : метаданные файла для запросившего пользователя
type FileView struct {
	File     *File
	Download *DownloadResult
}

// GrantBatch : типизированный запрос на изменение грантов файла
type GrantBatch struct {
	FileUUID      string
	RequesterUUID string
	UserGrants    map[string]PermissionLevel
	TeamGrants    map[string]PermissionLevel
}

// RevokeBatch : запрос на отзыв грантов файла
type RevokeBatch struct {
	FileUUID      string
	RequesterUUID string
	UserUUIDs     []string
	TeamUUIDs     []string
}
