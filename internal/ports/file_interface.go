package ports

import (
	"context"
	"io"
	"iter"
	"time"

	"github.com/jmoiron/sqlx"

	"file-sharing-server/internal/model"
)

// FileRepository : SQL слой файлов
type FileRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, file *model.File) error
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, fileUUID string) (*model.File, error)
	Update(ctx context.Context, exec sqlx.ExtContext, file *model.File) error
	Delete(ctx context.Context, exec sqlx.ExtContext, fileUUID string) error
	// AccessRows : строки одного файла идут подряд, порядок стабилен для снимка БД
	AccessRows(ctx context.Context, exec sqlx.ExtContext, userUUID string) iter.Seq2[model.AccessRow, error]
	ListByTeam(ctx context.Context, exec sqlx.ExtContext, teamUUID string) ([]model.File, error)
}

// FileCache : Redis слой метаданных файлов
type FileCache interface {
	SetFile(ctx context.Context, file *model.File) error
	GetFile(ctx context.Context, uuid string) (*model.File, error)
	DeleteFile(ctx context.Context, uuid string) error
}

// BlobStore : объектное хранилище
type BlobStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type PermissionResolver interface {
	Resolve(ctx context.Context, file *model.File, identity string) (model.EffectivePermission, error)
	IssueDownloadCredential(ctx context.Context, file *model.File, identity string) (*model.DownloadResult, error)
	ListAccessible(ctx context.Context, identity string) iter.Seq2[model.AccessibleFile, error]
}

// SharingCoordinator : PurgeFile и PurgeTeam выполняются в транзакции вызывающего
type SharingCoordinator interface {
	ApplyGrants(ctx context.Context, batch model.GrantBatch) (int, error)
	RevokeGrants(ctx context.Context, batch model.RevokeBatch) (int, error)
	PurgeFile(ctx context.Context, exec sqlx.ExtContext, fileUUID string) error
	PurgeTeam(ctx context.Context, exec sqlx.ExtContext, teamUUID string) error
	PurgeUser(ctx context.Context, exec sqlx.ExtContext, userUUID string) error
}

type UploadPolicy interface {
	Check(declaredType string, size int64, head []byte) (string, error)
	MaxBytes() int64
}

// UploadInput : содержимое и заявленные метаданные загружаемого файла
type UploadInput struct {
	Name         string
	DeclaredType string
	Size         int64
	Body         io.Reader
}

type FileService interface {
	Upload(ctx context.Context, ownerUUID string, input UploadInput) (*model.File, error)
	Retrieve(ctx context.Context, fileUUID, identity string) (*model.FileView, error)
	Update(ctx context.Context, fileUUID, identity string, input UploadInput) (*model.File, error)
	Delete(ctx context.Context, fileUUID, identity string) error
	List(ctx context.Context, identity string, limit int) ([]model.FileView, error)
	Share(ctx context.Context, batch model.GrantBatch) (int, error)
	Revoke(ctx context.Context, batch model.RevokeBatch) (int, error)
	Grants(ctx context.Context, fileUUID, identity string) (*model.FileGrants, error)
	Permission(ctx context.Context, fileUUID, identity string) (model.EffectivePermission, error)
}
