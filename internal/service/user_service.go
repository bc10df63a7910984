package service

import (
	"context"
	"fmt"
	"unicode"

	"github.com/google/uuid"

	"file-sharing-server/config"
	"file-sharing-server/internal/model"
	"file-sharing-server/internal/ports"
	"file-sharing-server/internal/security"
	"file-sharing-server/internal/util"
)

type UserService struct {
	db             ports.Store
	userRepository ports.UserRepository
	teamRepository ports.TeamRepository
	coordinator    ports.SharingCoordinator
	jwtService     ports.JWTServiceInterface
	jwtRepository  ports.JWTRepositoryInterface
	adminToken     *config.AdminConfig
}

func NewUserService(
	db ports.Store,
	userRepository ports.UserRepository,
	teamRepository ports.TeamRepository,
	coordinator ports.SharingCoordinator,
	jwtService ports.JWTServiceInterface,
	jwtRepository ports.JWTRepositoryInterface,
	adminToken *config.AdminConfig,
) *UserService {
	return &UserService{
		db:             db,
		userRepository: userRepository,
		teamRepository: teamRepository,
		coordinator:    coordinator,
		jwtService:     jwtService,
		jwtRepository:  jwtRepository,
		adminToken:     adminToken,
	}
}

// Register : регистрация возможна только с токеном администратора
func (s *UserService) Register(ctx context.Context, adminToken, login, password, userAgent, ipAddress string) (*model.TokensPair, error) {
	if s.adminToken == nil || s.adminToken.AdminToken == "" || adminToken != s.adminToken.AdminToken {
		return nil, fmt.Errorf("[UserService] %w: неверный токен администратора", model.ErrAccessDenied)
	}

	if err := validateLogin(login); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("[UserService] не удалось создать хэш пароля: %w", err)
	}

	user := &model.User{
		UUID:         uuid.New().String(),
		Login:        login,
		PasswordHash: hash,
	}

	created, err := s.userRepository.CreateUser(ctx, s.db, user)
	if err != nil {
		return nil, fmt.Errorf("[UserService] ошибка создания пользователя: %w", err)
	}

	tokens, refreshToken, err := s.jwtService.GenerateAccessRefreshTokens(created.UUID)
	if err != nil {
		return nil, fmt.Errorf("[UserService] ошибка генерации токенов: %w", err)
	}

	refreshToken.UserAgent = userAgent
	refreshToken.IpAddress = ipAddress
	if err := s.jwtRepository.SaveRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("[UserService] не удалось сохранить refresh токен: %w", err)
	}

	return tokens, nil
}

func validateLogin(login string) error {
	if len(login) < 8 {
		return model.NewValidationError(model.CodeInvalidRequest, "login", "логин должен быть не меньше 8 символов")
	}
	for _, c := range login {
		if c > unicode.MaxASCII || (!unicode.IsLetter(c) && !unicode.IsDigit(c)) {
			return model.NewValidationError(model.CodeInvalidRequest, "login", "логин должен содержать только латинские буквы и цифры")
		}
	}
	return nil
}

func validatePassword(password string) error {
	fail := func(reason string) error {
		return model.NewValidationError(model.CodeInvalidRequest, "password", reason)
	}

	if len(password) < 8 {
		return fail("пароль должен содержать минимум 8 символов")
	}

	var upperCount, lowerCount, digitCount, specialCount int
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			upperCount++
		case unicode.IsLower(c):
			lowerCount++
		case unicode.IsDigit(c):
			digitCount++
		case unicode.IsPunct(c) || unicode.IsSymbol(c):
			specialCount++
		}
	}

	if upperCount == 0 || lowerCount == 0 {
		return fail("пароль должен содержать минимум 2 буквы в разных регистрах")
	}
	if digitCount < 1 {
		return fail("пароль должен содержать хотя бы одну цифру")
	}
	if specialCount < 1 {
		return fail("пароль должен содержать хотя бы один специальный символ")
	}

	return nil
}

// authorize : администратор или сам пользователь
func authorize(ctx context.Context, uuid string, allowAdmin bool) error {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil {
		return err
	}
	if (allowAdmin && claims.IsAdmin) || claims.UserUUID == uuid {
		return nil
	}
	return fmt.Errorf("[UserService] %w", model.ErrAccessDenied)
}

func (s *UserService) GetUser(ctx context.Context, uuid string) (*model.User, error) {
	if err := authorize(ctx, uuid, true); err != nil {
		return nil, err
	}
	return s.userRepository.FindByUUID(ctx, s.db, uuid)
}

func (s *UserService) UpdateUser(ctx context.Context, updatedUser *model.User) error {
	if err := authorize(ctx, updatedUser.UUID, false); err != nil {
		return err
	}
	if err := validateLogin(updatedUser.Login); err != nil {
		return err
	}
	return s.userRepository.UpdateUser(ctx, s.db, updatedUser)
}

func (s *UserService) UpdatePassword(ctx context.Context, uuid, newPassword string) error {
	if err := authorize(ctx, uuid, false); err != nil {
		return err
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("[UserService] не удалось создать хэш пароля: %w", err)
	}
	return s.userRepository.UpdatePassword(ctx, s.db, uuid, hash)
}

// DeleteUser : гранты и членство в командах удаляются в одной транзакции с пользователем.
// Пользователь с файлами не удаляется.
func (s *UserService) DeleteUser(ctx context.Context, uuid string) error {
	if err := authorize(ctx, uuid, true); err != nil {
		return err
	}

	exec, rollback, commit, err := s.db.BeginTX(ctx)
	if err != nil {
		return util.LogError("[UserService] не удалось начать транзакцию", fmt.Errorf("%w: %w", model.ErrDependencyFailure, err))
	}
	defer rollback()

	if err := s.coordinator.PurgeUser(ctx, exec, uuid); err != nil {
		return err
	}
	if err := s.teamRepository.LeaveAll(ctx, exec, uuid); err != nil {
		return err
	}
	if err := s.userRepository.DeleteUser(ctx, exec, uuid); err != nil {
		return err
	}

	if err := commit(); err != nil {
		return util.LogError("[UserService] не удалось закоммитить транзакцию", fmt.Errorf("%w: %w", model.ErrDependencyFailure, err))
	}
	return nil
}

// ListUsers : доступно любому авторизованному пользователю
func (s *UserService) ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error) {
	if _, err := security.GetClaimsFromContext(ctx); err != nil {
		return nil, "", err
	}
	return s.userRepository.ListUsers(ctx, s.db, cursor, limit)
}
