package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"file-sharing-server/config"
	"file-sharing-server/internal/model"
)

type TeamRepository struct {
	*config.Database
}

func NewTeamRepository(database *config.Database) *TeamRepository {
	return &TeamRepository{database}
}

// Create : имя уникально, повтор даёт model.ErrConflict
func (r *TeamRepository) Create(ctx context.Context, exec sqlx.ExtContext, team *model.Team) error {
	query := `
	INSERT INTO teams (uuid, name, description)
	VALUES ($1, $2, $3)
	RETURNING created_at, updated_at
	`
	err := exec.QueryRowxContext(ctx, query, team.UUID, team.Name, team.Description).
		Scan(&team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		return storeError("[TeamRepo] не удалось создать команду", err)
	}
	return nil
}

func (r *TeamRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, teamUUID string) (*model.Team, error) {
	var team model.Team
	err := sqlx.GetContext(ctx, exec, &team,
		`SELECT uuid, name, description, created_at, updated_at FROM teams WHERE uuid = $1`, teamUUID)
	if err != nil {
		return nil, storeError("[TeamRepo] команда "+teamUUID+" не найдена", err)
	}
	return &team, nil
}

func (r *TeamRepository) ListForMember(ctx context.Context, exec sqlx.ExtContext, userUUID string) ([]model.Team, error) {
	query := `
	SELECT t.uuid, t.name, t.description, t.created_at, t.updated_at
	FROM teams AS t
	INNER JOIN team_members AS tm ON tm.team_uuid = t.uuid
	WHERE tm.user_uuid = $1
	ORDER BY t.name
	`
	teams := []model.Team{}
	if err := sqlx.SelectContext(ctx, exec, &teams, query, userUUID); err != nil {
		return nil, storeError("[TeamRepo] не удалось получить команды пользователя", err)
	}
	return teams, nil
}

func (r *TeamRepository) Update(ctx context.Context, exec sqlx.ExtContext, team *model.Team) error {
	query := `
	UPDATE teams SET name = $2, description = $3, updated_at = NOW()
	WHERE uuid = $1
	RETURNING updated_at
	`
	if err := exec.QueryRowxContext(ctx, query, team.UUID, team.Name, team.Description).Scan(&team.UpdatedAt); err != nil {
		return storeError("[TeamRepo] не удалось обновить команду", err)
	}
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, exec sqlx.ExtContext, teamUUID string) error {
	if _, err := exec.ExecContext(ctx, `DELETE FROM teams WHERE uuid = $1`, teamUUID); err != nil {
		return storeError("[TeamRepo] не удалось удалить команду", err)
	}
	return nil
}

func (r *TeamRepository) Exists(ctx context.Context, exec sqlx.ExtContext, teamUUID string) (bool, error) {
	if malformedID(teamUUID) {
		return false, nil
	}
	var exists bool
	err := sqlx.GetContext(ctx, exec, &exists, `SELECT EXISTS (SELECT 1 FROM teams WHERE uuid = $1)`, teamUUID)
	if err != nil {
		return false, storeError("[TeamRepo] ошибка проверки существования команды", err)
	}
	return exists, nil
}

func (r *TeamRepository) AddMember(ctx context.Context, exec sqlx.ExtContext, teamUUID, userUUID string) error {
	_, err := exec.ExecContext(ctx,
		`INSERT INTO team_members (team_uuid, user_uuid) VALUES ($1, $2)`, teamUUID, userUUID)
	if err != nil {
		return storeError("[TeamRepo] не удалось добавить участника", err)
	}
	return nil
}

func (r *TeamRepository) RemoveMember(ctx context.Context, exec sqlx.ExtContext, teamUUID, userUUID string) (int64, error) {
	result, err := exec.ExecContext(ctx,
		`DELETE FROM team_members WHERE team_uuid = $1 AND user_uuid = $2`, teamUUID, userUUID)
	if err != nil {
		return 0, storeError("[TeamRepo] не удалось удалить участника", err)
	}
	return result.RowsAffected()
}

func (r *TeamRepository) RemoveAllMembers(ctx context.Context, exec sqlx.ExtContext, teamUUID string) error {
	if _, err := exec.ExecContext(ctx, `DELETE FROM team_members WHERE team_uuid = $1`, teamUUID); err != nil {
		return storeError("[TeamRepo] не удалось удалить участников команды", err)
	}
	return nil
}

// LeaveAll : пользователь выходит из всех команд
func (r *TeamRepository) LeaveAll(ctx context.Context, exec sqlx.ExtContext, userUUID string) error {
	if _, err := exec.ExecContext(ctx, `DELETE FROM team_members WHERE user_uuid = $1`, userUUID); err != nil {
		return storeError("[TeamRepo] не удалось удалить членство пользователя", err)
	}
	return nil
}

func (r *TeamRepository) IsMember(ctx context.Context, exec sqlx.ExtContext, teamUUID, userUUID string) (bool, error) {
	var member bool
	err := sqlx.GetContext(ctx, exec, &member,
		`SELECT EXISTS (SELECT 1 FROM team_members WHERE team_uuid = $1 AND user_uuid = $2)`, teamUUID, userUUID)
	if err != nil {
		return false, storeError("[TeamRepo] ошибка проверки участника", err)
	}
	return member, nil
}

func (r *TeamRepository) Members(ctx context.Context, exec sqlx.ExtContext, teamUUID string) ([]string, error) {
	members := []string{}
	err := sqlx.SelectContext(ctx, exec, &members,
		`SELECT user_uuid FROM team_members WHERE team_uuid = $1 ORDER BY joined_at, user_uuid`, teamUUID)
	if err != nil {
		return nil, storeError("[TeamRepo] не удалось получить участников", err)
	}
	return members, nil
}
