package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"file-sharing-server/internal/model"
	"file-sharing-server/internal/ports"
	"file-sharing-server/internal/util"
)

// TeamService : управлять командой может любой её участник
type TeamService struct {
	db          ports.Store
	teams       ports.TeamRepository
	users       ports.UserRepository
	files       ports.FileRepository
	coordinator ports.SharingCoordinator
}

func NewTeamService(
	db ports.Store,
	teams ports.TeamRepository,
	users ports.UserRepository,
	files ports.FileRepository,
	coordinator ports.SharingCoordinator,
) *TeamService {
	return &TeamService{
		db:          db,
		teams:       teams,
		users:       users,
		files:       files,
		coordinator: coordinator,
	}
}

// Create : создатель становится первым участником
func (s *TeamService) Create(ctx context.Context, creatorUUID, name, description string) (*model.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.NewValidationError(model.CodeInvalidRequest, "name")
	}

	team := &model.Team{
		UUID:        uuid.New().String(),
		Name:        name,
		Description: description,
	}

	exec, rollback, commit, err := s.db.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[TeamService] не удалось начать транзакцию", fmt.Errorf("%w: %w", model.ErrDependencyFailure, err))
	}
	defer rollback()

	if err := s.teams.Create(ctx, exec, team); err != nil {
		return nil, err
	}
	if err := s.teams.AddMember(ctx, exec, team.UUID, creatorUUID); err != nil {
		return nil, err
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[TeamService] не удалось закоммитить транзакцию", fmt.Errorf("%w: %w", model.ErrDependencyFailure, err))
	}

	team.Members = []string{creatorUUID}
	util.Logger().Info("[TeamService] команда создана", zap.String("team_uuid", team.UUID), zap.String("name", team.Name))
	return team, nil
}

// memberTeam : команда, если identity её участник
func (s *TeamService) memberTeam(ctx context.Context, teamUUID, identity string) (*model.Team, error) {
	team, err := s.teams.GetByUUID(ctx, s.db, teamUUID)
	if err != nil {
		return nil, err
	}
	member, err := s.teams.IsMember(ctx, s.db, teamUUID, identity)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, fmt.Errorf("[TeamService] %w: not-member", model.ErrAccessDenied)
	}
	return team, nil
}

func (s *TeamService) Get(ctx context.Context, teamUUID, identity string) (*model.Team, error) {
	team, err := s.memberTeam(ctx, teamUUID, identity)
	if err != nil {
		return nil, err
	}
	members, err := s.teams.Members(ctx, s.db, teamUUID)
	if err != nil {
		return nil, err
	}
	team.Members = members
	return team, nil
}

func (s *TeamService) ListForMember(ctx context.Context, identity string) ([]model.Team, error) {
	return s.teams.ListForMember(ctx, s.db, identity)
}

// Update : nil оставляет поле без изменений
func (s *TeamService) Update(ctx context.Context, teamUUID, identity string, name, description *string) (*model.Team, error) {
	team, err := s.memberTeam(ctx, teamUUID, identity)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, model.NewValidationError(model.CodeInvalidRequest, "name")
		}
		team.Name = trimmed
	}
	if description != nil {
		team.Description = *description
	}

	if err := s.teams.Update(ctx, s.db, team); err != nil {
		return nil, err
	}
	return team, nil
}

// Delete : участники, гранты команды и сама команда удаляются в одной транзакции
func (s *TeamService) Delete(ctx context.Context, teamUUID, identity string) error {
	if _, err := s.memberTeam(ctx, teamUUID, identity); err != nil {
		return err
	}

	exec, rollback, commit, err := s.db.BeginTX(ctx)
	if err != nil {
		return util.LogError("[TeamService] не удалось начать транзакцию", fmt.Errorf("%w: %w", model.ErrDependencyFailure, err))
	}
	defer rollback()

	if err := s.teams.RemoveAllMembers(ctx, exec, teamUUID); err != nil {
		return err
	}
	if err := s.coordinator.PurgeTeam(ctx, exec, teamUUID); err != nil {
		return err
	}
	if err := s.teams.Delete(ctx, exec, teamUUID); err != nil {
		return err
	}

	if err := commit(); err != nil {
		return util.LogError("[TeamService] не удалось закоммитить транзакцию", fmt.Errorf("%w: %w", model.ErrDependencyFailure, err))
	}
	return nil
}

func (s *TeamService) AddMember(ctx context.Context, teamUUID, identity, userUUID string) error {
	if _, err := s.memberTeam(ctx, teamUUID, identity); err != nil {
		return err
	}

	exists, err := s.users.Exists(ctx, s.db, userUUID)
	if err != nil {
		return err
	}
	if !exists {
		return model.NotFoundError("user", userUUID)
	}

	already, err := s.teams.IsMember(ctx, s.db, teamUUID, userUUID)
	if err != nil {
		return err
	}
	if already {
		return model.NewValidationError(model.CodeAlreadyMember, "user_uuid", userUUID)
	}

	return s.teams.AddMember(ctx, s.db, teamUUID, userUUID)
}

// RemoveMember : уже выданные ссылки остаются действительными до истечения срока
func (s *TeamService) RemoveMember(ctx context.Context, teamUUID, identity, userUUID string) error {
	if _, err := s.memberTeam(ctx, teamUUID, identity); err != nil {
		return err
	}

	removed, err := s.teams.RemoveMember(ctx, s.db, teamUUID, userUUID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return model.NewValidationError(model.CodeNotMember, "user_uuid", userUUID)
	}
	return nil
}

// Files : файлы, выданные команде
func (s *TeamService) Files(ctx context.Context, teamUUID, identity string) ([]model.File, error) {
	if _, err := s.memberTeam(ctx, teamUUID, identity); err != nil {
		return nil, err
	}
	return s.files.ListByTeam(ctx, s.db, teamUUID)
}
