package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"file-sharing-server/config"
	"file-sharing-server/internal/model"
)

type GrantRepository struct {
	database *config.Database
}

func NewGrantRepository(database *config.Database) *GrantRepository {
	return &GrantRepository{database: database}
}

func (r *GrantRepository) GetSharingRecord(ctx context.Context, exec sqlx.ExtContext, fileUUID string) (*model.SharingRecord, error) {
	var record model.SharingRecord
	err := sqlx.GetContext(ctx, exec, &record,
		`SELECT uuid, file_uuid, created_at FROM sharing_records WHERE file_uuid = $1`, fileUUID)
	if err != nil {
		return nil, storeError("[GrantRepo] запись о совместном доступе не найдена", err)
	}
	return &record, nil
}

// EnsureSharingRecord : создаёт запись, если её нет; повторный вызов возвращает существующую
func (r *GrantRepository) EnsureSharingRecord(ctx context.Context, exec sqlx.ExtContext, fileUUID string) (*model.SharingRecord, error) {
	query := `
	INSERT INTO sharing_records (uuid, file_uuid)
	VALUES ($1, $2)
	ON CONFLICT (file_uuid) DO UPDATE SET file_uuid = EXCLUDED.file_uuid
	RETURNING uuid, file_uuid, created_at
	`
	var record model.SharingRecord
	if err := sqlx.GetContext(ctx, exec, &record, query, uuid.New().String(), fileUUID); err != nil {
		return nil, storeError("[GrantRepo] не удалось создать запись о совместном доступе", err)
	}
	return &record, nil
}

// UpsertUserGrant : один грант на пару (пользователь, запись), повтор меняет уровень на месте
func (r *GrantRepository) UpsertUserGrant(ctx context.Context, exec sqlx.ExtContext, recordUUID, userUUID string, level model.PermissionLevel) error {
	query := `
	INSERT INTO user_grants (sharing_record_uuid, user_uuid, permission)
	VALUES ($1, $2, $3)
	ON CONFLICT (sharing_record_uuid, user_uuid)
	DO UPDATE SET permission = EXCLUDED.permission, updated_at = NOW()
	`
	if _, err := exec.ExecContext(ctx, query, recordUUID, userUUID, string(level)); err != nil {
		return storeError("[GrantRepo] не удалось сохранить грант пользователя", err)
	}
	return nil
}

func (r *GrantRepository) UpsertTeamGrant(ctx context.Context, exec sqlx.ExtContext, recordUUID, teamUUID string, level model.PermissionLevel) error {
	query := `
	INSERT INTO team_grants (sharing_record_uuid, team_uuid, permission, updated_at)
	VALUES ($1, $2, $3, NOW())
	ON CONFLICT (sharing_record_uuid, team_uuid)
	DO UPDATE SET permission = EXCLUDED.permission, updated_at = NOW()
	`
	if _, err := exec.ExecContext(ctx, query, recordUUID, teamUUID, string(level)); err != nil {
		return storeError("[GrantRepo] не удалось сохранить грант команды", err)
	}
	return nil
}

func (r *GrantRepository) DeleteUserGrant(ctx context.Context, exec sqlx.ExtContext, recordUUID, userUUID string) (int64, error) {
	result, err := exec.ExecContext(ctx,
		`DELETE FROM user_grants WHERE sharing_record_uuid = $1 AND user_uuid = $2`, recordUUID, userUUID)
	if err != nil {
		return 0, storeError("[GrantRepo] не удалось удалить грант пользователя", err)
	}
	return result.RowsAffected()
}

func (r *GrantRepository) DeleteTeamGrant(ctx context.Context, exec sqlx.ExtContext, recordUUID, teamUUID string) (int64, error) {
	result, err := exec.ExecContext(ctx,
		`DELETE FROM team_grants WHERE sharing_record_uuid = $1 AND team_uuid = $2`, recordUUID, teamUUID)
	if err != nil {
		return 0, storeError("[GrantRepo] не удалось удалить грант команды", err)
	}
	return result.RowsAffected()
}

// FindUserGrant : nil без ошибки, если гранта нет
func (r *GrantRepository) FindUserGrant(ctx context.Context, exec sqlx.ExtContext, fileUUID, userUUID string) (*model.UserGrant, error) {
	query := `
	SELECT ug.sharing_record_uuid, ug.user_uuid, ug.permission, ug.created_at, ug.updated_at
	FROM user_grants AS ug
	INNER JOIN sharing_records AS sr ON sr.uuid = ug.sharing_record_uuid
	WHERE sr.file_uuid = $1 AND ug.user_uuid = $2
	`
	var grant model.UserGrant
	err := sqlx.GetContext(ctx, exec, &grant, query, fileUUID, userUUID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError("[GrantRepo] ошибка поиска гранта пользователя", err)
	}
	return &grant, nil
}

// TeamGrantsForMember : гранты файла для всех команд, где состоит пользователь
func (r *GrantRepository) TeamGrantsForMember(ctx context.Context, exec sqlx.ExtContext, fileUUID, userUUID string) ([]model.TeamGrant, error) {
	query := `
	SELECT tg.sharing_record_uuid, tg.team_uuid, t.name AS team_name, tg.permission, tg.created_at, tg.updated_at
	FROM team_grants AS tg
	INNER JOIN sharing_records AS sr ON sr.uuid = tg.sharing_record_uuid
	INNER JOIN team_members AS tm ON tm.team_uuid = tg.team_uuid
	INNER JOIN teams AS t ON t.uuid = tg.team_uuid
	WHERE sr.file_uuid = $1 AND tm.user_uuid = $2
	ORDER BY tg.updated_at DESC NULLS LAST, tg.team_uuid
	`
	grants := []model.TeamGrant{}
	if err := sqlx.SelectContext(ctx, exec, &grants, query, fileUUID, userUUID); err != nil {
		return nil, storeError("[GrantRepo] ошибка поиска грантов команд", err)
	}
	return grants, nil
}

func (r *GrantRepository) ListUserGrants(ctx context.Context, exec sqlx.ExtContext, fileUUID string) ([]model.UserGrant, error) {
	query := `
	SELECT ug.sharing_record_uuid, ug.user_uuid, ug.permission, ug.created_at, ug.updated_at
	FROM user_grants AS ug
	INNER JOIN sharing_records AS sr ON sr.uuid = ug.sharing_record_uuid
	WHERE sr.file_uuid = $1
	ORDER BY ug.created_at, ug.user_uuid
	`
	grants := []model.UserGrant{}
	if err := sqlx.SelectContext(ctx, exec, &grants, query, fileUUID); err != nil {
		return nil, storeError("[GrantRepo] не удалось получить гранты пользователей", err)
	}
	return grants, nil
}

func (r *GrantRepository) ListTeamGrants(ctx context.Context, exec sqlx.ExtContext, fileUUID string) ([]model.TeamGrant, error) {
	query := `
	SELECT tg.sharing_record_uuid, tg.team_uuid, t.name AS team_name, tg.permission, tg.created_at, tg.updated_at
	FROM team_grants AS tg
	INNER JOIN sharing_records AS sr ON sr.uuid = tg.sharing_record_uuid
	INNER JOIN teams AS t ON t.uuid = tg.team_uuid
	WHERE sr.file_uuid = $1
	ORDER BY tg.created_at, tg.team_uuid
	`
	grants := []model.TeamGrant{}
	if err := sqlx.SelectContext(ctx, exec, &grants, query, fileUUID); err != nil {
		return nil, storeError("[GrantRepo] не удалось получить гранты команд", err)
	}
	return grants, nil
}

// DeleteAllForFile : гранты команд, гранты пользователей, затем сама запись.
// Вызывается внутри транзакции удаления файла.
func (r *GrantRepository) DeleteAllForFile(ctx context.Context, exec sqlx.ExtContext, fileUUID string) error {
	statements := []struct {
		query   string
		message string
	}{
		{
			`DELETE FROM team_grants WHERE sharing_record_uuid IN (SELECT uuid FROM sharing_records WHERE file_uuid = $1)`,
			"[GrantRepo] не удалось удалить гранты команд",
		},
		{
			`DELETE FROM user_grants WHERE sharing_record_uuid IN (SELECT uuid FROM sharing_records WHERE file_uuid = $1)`,
			"[GrantRepo] не удалось удалить гранты пользователей",
		},
		{
			`DELETE FROM sharing_records WHERE file_uuid = $1`,
			"[GrantRepo] не удалось удалить запись о совместном доступе",
		},
	}
	for _, stmt := range statements {
		if _, err := exec.ExecContext(ctx, stmt.query, fileUUID); err != nil {
			return storeError(stmt.message, err)
		}
	}
	return nil
}

func (r *GrantRepository) DeleteTeamGrantsByTeam(ctx context.Context, exec sqlx.ExtContext, teamUUID string) error {
	if _, err := exec.ExecContext(ctx, `DELETE FROM team_grants WHERE team_uuid = $1`, teamUUID); err != nil {
		return storeError("[GrantRepo] не удалось удалить гранты команды", err)
	}
	return nil
}

func (r *GrantRepository) DeleteUserGrantsByUser(ctx context.Context, exec sqlx.ExtContext, userUUID string) (int64, error) {
	res, err := exec.ExecContext(ctx, `DELETE FROM user_grants WHERE user_uuid = $1`, userUUID)
	if err != nil {
		return 0, storeError("[GrantRepo] не удалось удалить гранты пользователя", err)
	}
	return res.RowsAffected()
}
