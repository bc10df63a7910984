package repository

import (
	"context"
	"iter"

	"github.com/jmoiron/sqlx"

	"file-sharing-server/config"
	"file-sharing-server/internal/model"
)

type FileRepository struct {
	*config.Database
}

func NewFileRepository(database *config.Database) *FileRepository {
	return &FileRepository{database}
}

// Create : сохраняет метаданные файла
func (r *FileRepository) Create(ctx context.Context, exec sqlx.ExtContext, file *model.File) error {
	query := `
	INSERT INTO files (uuid, owner_uuid, name, size_bytes, content_type, storage_key)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at, updated_at
	`
	err := exec.QueryRowxContext(ctx, query,
		file.UUID,
		file.OwnerUUID,
		file.Name,
		file.SizeBytes,
		file.ContentType,
		file.StorageKey,
	).Scan(&file.CreatedAt, &file.UpdatedAt)
	if err != nil {
		return storeError("[FileRepo] ошибка вставки файла", err)
	}
	return nil
}

func (r *FileRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, fileUUID string) (*model.File, error) {
	query := `
	SELECT uuid, owner_uuid, name, size_bytes, content_type, storage_key, created_at, updated_at
	FROM files WHERE uuid = $1
	`
	var file model.File
	if err := sqlx.GetContext(ctx, exec, &file, query, fileUUID); err != nil {
		return nil, storeError("[FileRepo] файл "+fileUUID+" не найден", err)
	}
	return &file, nil
}

// Update : владелец и ключ хранилища не меняются
func (r *FileRepository) Update(ctx context.Context, exec sqlx.ExtContext, file *model.File) error {
	query := `
	UPDATE files
	SET name = $2, size_bytes = $3, content_type = $4, updated_at = NOW()
	WHERE uuid = $1
	RETURNING updated_at
	`
	err := exec.QueryRowxContext(ctx, query, file.UUID, file.Name, file.SizeBytes, file.ContentType).Scan(&file.UpdatedAt)
	if err != nil {
		return storeError("[FileRepo] не удалось обновить файл", err)
	}
	return nil
}

func (r *FileRepository) Delete(ctx context.Context, exec sqlx.ExtContext, fileUUID string) error {
	result, err := exec.ExecContext(ctx, `DELETE FROM files WHERE uuid = $1`, fileUUID)
	if err != nil {
		return storeError("[FileRepo] не удалось удалить файл", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return storeError("[FileRepo] не удалось проверить удаление файла", err)
	}
	if rows == 0 {
		return model.NotFoundError("file", fileUUID)
	}
	return nil
}

// accessRowsQuery : свои файлы, файлы с прямым грантом и файлы с грантом команды пользователя.
// Файл с несколькими командными грантами даёт несколько строк.
const accessRowsQuery = `
	SELECT f.uuid, f.owner_uuid, f.name, f.size_bytes, f.content_type, f.storage_key, f.created_at, f.updated_at,
	       ug.permission  AS user_permission,
	       tg.team_uuid   AS team_uuid,
	       tg.permission  AS team_permission,
	       tg.updated_at  AS team_updated_at
	FROM files AS f
	LEFT JOIN sharing_records AS sr ON sr.file_uuid = f.uuid
	LEFT JOIN user_grants AS ug
	       ON ug.sharing_record_uuid = sr.uuid AND ug.user_uuid = $1
	LEFT JOIN team_grants AS tg
	       ON tg.sharing_record_uuid = sr.uuid
	      AND tg.team_uuid IN (SELECT team_uuid FROM team_members WHERE user_uuid = $1)
	WHERE f.owner_uuid = $1 OR ug.user_uuid IS NOT NULL OR tg.team_uuid IS NOT NULL
	ORDER BY f.created_at, f.uuid, tg.team_uuid
`

// AccessRows : курсор по строкам доступа, запрос выполняется при каждом обходе
func (r *FileRepository) AccessRows(ctx context.Context, exec sqlx.ExtContext, userUUID string) iter.Seq2[model.AccessRow, error] {
	return func(yield func(model.AccessRow, error) bool) {
		rows, err := exec.QueryxContext(ctx, accessRowsQuery, userUUID)
		if err != nil {
			yield(model.AccessRow{}, storeError("[FileRepo] не удалось получить доступные файлы", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var row model.AccessRow
			if err := rows.StructScan(&row); err != nil {
				yield(model.AccessRow{}, storeError("[FileRepo] ошибка чтения строки доступа", err))
				return
			}
			if !yield(row, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(model.AccessRow{}, storeError("[FileRepo] ошибка обхода строк доступа", err))
		}
	}
}

// ListByTeam : файлы, на которые у команды есть грант
func (r *FileRepository) ListByTeam(ctx context.Context, exec sqlx.ExtContext, teamUUID string) ([]model.File, error) {
	query := `
	SELECT f.uuid, f.owner_uuid, f.name, f.size_bytes, f.content_type, f.storage_key, f.created_at, f.updated_at
	FROM files AS f
	INNER JOIN sharing_records AS sr ON sr.file_uuid = f.uuid
	INNER JOIN team_grants AS tg ON tg.sharing_record_uuid = sr.uuid
	WHERE tg.team_uuid = $1
	ORDER BY f.created_at, f.uuid
	`
	files := []model.File{}
	if err := sqlx.SelectContext(ctx, exec, &files, query, teamUUID); err != nil {
		return nil, storeError("[FileRepo] не удалось получить файлы команды", err)
	}
	return files, nil
}
