package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"file-sharing-server/internal/model"
	"file-sharing-server/internal/ports"
	"file-sharing-server/internal/util"
)

// SharingCoordinator : единственный компонент, изменяющий SharingRecord и гранты.
// Пакет грантов применяется в одной транзакции целиком или не применяется вовсе.
type SharingCoordinator struct {
	db     ports.Store
	files  ports.FileRepository
	grants ports.GrantRepository
	users  ports.UserRepository
	teams  ports.TeamRepository
}

func NewSharingCoordinator(
	db ports.Store,
	files ports.FileRepository,
	grants ports.GrantRepository,
	users ports.UserRepository,
	teams ports.TeamRepository,
) *SharingCoordinator {
	return &SharingCoordinator{
		db:     db,
		files:  files,
		grants: grants,
		users:  users,
		teams:  teams,
	}
}

// ApplyGrants : возвращает число созданных или обновлённых грантов.
// Повторный вызов с тем же пакетом даёт то же состояние и то же число.
func (c *SharingCoordinator) ApplyGrants(ctx context.Context, batch model.GrantBatch) (int, error) {
	file, err := c.ownedFile(ctx, batch.FileUUID, batch.RequesterUUID)
	if err != nil {
		return 0, err
	}
	if err := validateGrantBatch(file.OwnerUUID, batch); err != nil {
		return 0, err
	}

	userIDs := sortedKeys(batch.UserGrants)
	teamIDs := sortedKeys(batch.TeamGrants)

	exec, rollback, commit, err := c.db.BeginTX(ctx)
	if err != nil {
		return 0, util.LogError("[SharingCoordinator] не удалось начать транзакцию", fmt.Errorf("%w: %w", model.ErrDependencyFailure, err))
	}
	defer rollback()

	for _, userUUID := range userIDs {
		exists, err := c.users.Exists(ctx, exec, userUUID)
		if err != nil {
			return 0, err
		}
		if !exists {
			return 0, model.NotFoundError("user", userUUID)
		}
	}
	for _, teamUUID := range teamIDs {
		exists, err := c.teams.Exists(ctx, exec, teamUUID)
		if err != nil {
			return 0, err
		}
		if !exists {
			return 0, model.NotFoundError("team", teamUUID)
		}
	}

	record, err := c.grants.EnsureSharingRecord(ctx, exec, file.UUID)
	if err != nil {
		return 0, err
	}

	for _, userUUID := range userIDs {
		if err := c.grants.UpsertUserGrant(ctx, exec, record.UUID, userUUID, batch.UserGrants[userUUID]); err != nil {
			return 0, err
		}
	}
	for _, teamUUID := range teamIDs {
		if err := c.grants.UpsertTeamGrant(ctx, exec, record.UUID, teamUUID, batch.TeamGrants[teamUUID]); err != nil {
			return 0, err
		}
	}

	if err := commit(); err != nil {
		return 0, util.LogError("[SharingCoordinator] не удалось закоммитить транзакцию", fmt.Errorf("%w: %w", model.ErrDependencyFailure, err))
	}

	applied := len(userIDs) + len(teamIDs)
	util.Logger().Info("[SharingCoordinator] гранты применены",
		zap.String("file_uuid", file.UUID), zap.Int("applied", applied))
	return applied, nil
}

// RevokeGrants : отзыв отсутствующего гранта не ошибка, возвращается число удалённых строк
func (c *SharingCoordinator) RevokeGrants(ctx context.Context, batch model.RevokeBatch) (int, error) {
	file, err := c.ownedFile(ctx, batch.FileUUID, batch.RequesterUUID)
	if err != nil {
		return 0, err
	}
	if len(batch.UserUUIDs) == 0 && len(batch.TeamUUIDs) == 0 {
		return 0, model.NewValidationError(model.CodeInvalidRequest, "grants")
	}

	exec, rollback, commit, err := c.db.BeginTX(ctx)
	if err != nil {
		return 0, util.LogError("[SharingCoordinator] не удалось начать транзакцию", fmt.Errorf("%w: %w", model.ErrDependencyFailure, err))
	}
	defer rollback()

	record, err := c.grants.GetSharingRecord(ctx, exec, file.UUID)
	if err != nil {
		if isNotFound(err) {
			return 0, nil
		}
		return 0, err
	}

	var removed int64
	for _, userUUID := range dedupe(batch.UserUUIDs) {
		n, err := c.grants.DeleteUserGrant(ctx, exec, record.UUID, userUUID)
		if err != nil {
			return 0, err
		}
		removed += n
	}
	for _, teamUUID := range dedupe(batch.TeamUUIDs) {
		n, err := c.grants.DeleteTeamGrant(ctx, exec, record.UUID, teamUUID)
		if err != nil {
			return 0, err
		}
		removed += n
	}

	if err := commit(); err != nil {
		return 0, util.LogError("[SharingCoordinator] не удалось закоммитить транзакцию", fmt.Errorf("%w: %w", model.ErrDependencyFailure, err))
	}
	return int(removed), nil
}

// PurgeFile : гранты команд, гранты пользователей и запись о совместном доступе файла
func (c *SharingCoordinator) PurgeFile(ctx context.Context, exec sqlx.ExtContext, fileUUID string) error {
	return c.grants.DeleteAllForFile(ctx, exec, fileUUID)
}

// PurgeTeam : все гранты команды на любые файлы
func (c *SharingCoordinator) PurgeTeam(ctx context.Context, exec sqlx.ExtContext, teamUUID string) error {
	return c.grants.DeleteTeamGrantsByTeam(ctx, exec, teamUUID)
}

// PurgeUser : все гранты пользователя на любые файлы
func (c *SharingCoordinator) PurgeUser(ctx context.Context, exec sqlx.ExtContext, userUUID string) error {
	removed, err := c.grants.DeleteUserGrantsByUser(ctx, exec, userUUID)
	if err != nil {
		return err
	}
	util.Logger().Debug("[SharingCoordinator] гранты пользователя удалены",
		zap.String("user_uuid", userUUID), zap.Int64("removed", removed))
	return nil
}

func (c *SharingCoordinator) ownedFile(ctx context.Context, fileUUID, requesterUUID string) (*model.File, error) {
	file, err := c.files.GetByUUID(ctx, c.db, fileUUID)
	if err != nil {
		return nil, err
	}
	if file.OwnerUUID != requesterUUID {
		return nil, fmt.Errorf("[SharingCoordinator] %w", model.ErrNotOwner)
	}
	return file, nil
}

// validateGrantBatch : порядок проверок фиксирован, самоназначение владельцу проверяется первым
func validateGrantBatch(ownerUUID string, batch model.GrantBatch) error {
	if len(batch.UserGrants) == 0 && len(batch.TeamGrants) == 0 {
		return model.NewValidationError(model.CodeInvalidRequest, "grants")
	}
	if _, ok := batch.UserGrants[ownerUUID]; ok {
		return model.NewValidationError(model.CodeOwnerSelfShare, "user_grants", ownerUUID)
	}

	var invalid []string
	for _, grants := range []map[string]model.PermissionLevel{batch.UserGrants, batch.TeamGrants} {
		for id, level := range grants {
			if id == "" {
				return model.NewValidationError(model.CodeInvalidRequest, "grants", id)
			}
			if !level.Valid() {
				invalid = append(invalid, string(level))
			}
		}
	}
	if len(invalid) > 0 {
		slices.Sort(invalid)
		return model.NewValidationError(model.CodeInvalidPermission, "permission", slices.Compact(invalid)...)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

func dedupe(ids []string) []string {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
