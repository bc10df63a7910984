package ports

import (
	"context"

	"github.com/jmoiron/sqlx"

	"file-sharing-server/internal/model"
)

// GrantRepository : SharingRecord и гранты. Изменяет их только SharingCoordinator и каскад удаления файла.
type GrantRepository interface {
	GetSharingRecord(ctx context.Context, exec sqlx.ExtContext, fileUUID string) (*model.SharingRecord, error)
	EnsureSharingRecord(ctx context.Context, exec sqlx.ExtContext, fileUUID string) (*model.SharingRecord, error)
	UpsertUserGrant(ctx context.Context, exec sqlx.ExtContext, recordUUID, userUUID string, level model.PermissionLevel) error
	UpsertTeamGrant(ctx context.Context, exec sqlx.ExtContext, recordUUID, teamUUID string, level model.PermissionLevel) error
	DeleteUserGrant(ctx context.Context, exec sqlx.ExtContext, recordUUID, userUUID string) (int64, error)
	DeleteTeamGrant(ctx context.Context, exec sqlx.ExtContext, recordUUID, teamUUID string) (int64, error)
	FindUserGrant(ctx context.Context, exec sqlx.ExtContext, fileUUID, userUUID string) (*model.UserGrant, error)
	TeamGrantsForMember(ctx context.Context, exec sqlx.ExtContext, fileUUID, userUUID string) ([]model.TeamGrant, error)
	ListUserGrants(ctx context.Context, exec sqlx.ExtContext, fileUUID string) ([]model.UserGrant, error)
	ListTeamGrants(ctx context.Context, exec sqlx.ExtContext, fileUUID string) ([]model.TeamGrant, error)
	DeleteAllForFile(ctx context.Context, exec sqlx.ExtContext, fileUUID string) error
	DeleteTeamGrantsByTeam(ctx context.Context, exec sqlx.ExtContext, teamUUID string) error
	DeleteUserGrantsByUser(ctx context.Context, exec sqlx.ExtContext, userUUID string) (int64, error)
}
