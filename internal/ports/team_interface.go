package ports

import (
	"context"

	"github.com/jmoiron/sqlx"

	"file-sharing-server/internal/model"
)

type TeamRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, team *model.Team) error
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, teamUUID string) (*model.Team, error)
	ListForMember(ctx context.Context, exec sqlx.ExtContext, userUUID string) ([]model.Team, error)
	Update(ctx context.Context, exec sqlx.ExtContext, team *model.Team) error
	Delete(ctx context.Context, exec sqlx.ExtContext, teamUUID string) error
	Exists(ctx context.Context, exec sqlx.ExtContext, teamUUID string) (bool, error)
	AddMember(ctx context.Context, exec sqlx.ExtContext, teamUUID, userUUID string) error
	RemoveMember(ctx context.Context, exec sqlx.ExtContext, teamUUID, userUUID string) (int64, error)
	RemoveAllMembers(ctx context.Context, exec sqlx.ExtContext, teamUUID string) error
	LeaveAll(ctx context.Context, exec sqlx.ExtContext, userUUID string) error
	IsMember(ctx context.Context, exec sqlx.ExtContext, teamUUID, userUUID string) (bool, error)
	Members(ctx context.Context, exec sqlx.ExtContext, teamUUID string) ([]string, error)
}

type TeamService interface {
	Create(ctx context.Context, creatorUUID, name, description string) (*model.Team, error)
	Get(ctx context.Context, teamUUID, identity string) (*model.Team, error)
	ListForMember(ctx context.Context, identity string) ([]model.Team, error)
	Update(ctx context.Context, teamUUID, identity string, name, description *string) (*model.Team, error)
	Delete(ctx context.Context, teamUUID, identity string) error
	AddMember(ctx context.Context, teamUUID, identity, userUUID string) error
	RemoveMember(ctx context.Context, teamUUID, identity, userUUID string) error
	Files(ctx context.Context, teamUUID, identity string) ([]model.File, error)
}
