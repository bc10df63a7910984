package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"file-sharing-server/config"
	"file-sharing-server/internal/model"
	"file-sharing-server/internal/ports"
	"file-sharing-server/internal/security"
	"file-sharing-server/internal/util"
)

type AuthenticationService struct {
	db                  ports.Store
	jwtRepoInterface    ports.JWTRepositoryInterface
	jwtConfig           *config.JWTConfig
	jwtServiceInterface ports.JWTServiceInterface
	userRepository      ports.UserRepository
	now                 func() time.Time
}

func NewAuthenticationService(
	db ports.Store,
	repo ports.JWTRepositoryInterface,
	jwtConfig *config.JWTConfig,
	service ports.JWTServiceInterface,
	userRepository ports.UserRepository,
) *AuthenticationService {
	return &AuthenticationService{
		db:                  db,
		jwtRepoInterface:    repo,
		jwtConfig:           jwtConfig,
		jwtServiceInterface: service,
		userRepository:      userRepository,
		now:                 time.Now,
	}
}

func (s *AuthenticationService) Login(ctx context.Context, login, password, userAgent, ipAddress string) (*model.TokensPair, error) {
	user, err := s.userRepository.FindByLogin(ctx, s.db, login)
	if err != nil {
		return nil, fmt.Errorf("[AuthService] %w: неверный логин или пароль", model.ErrUnauthorized)
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, fmt.Errorf("[AuthService] %w: неверный логин или пароль", model.ErrUnauthorized)
	}

	tokens, refreshToken, err := s.jwtServiceInterface.GenerateAccessRefreshTokens(user.UUID)
	if err != nil {
		return nil, fmt.Errorf("[AuthService] ошибка генерации токенов: %w", err)
	}

	refreshToken.UserAgent = userAgent
	refreshToken.IpAddress = ipAddress

	if err := s.jwtRepoInterface.SaveRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("[AuthService] ошибка сохранения refresh токена: %w", err)
	}

	return tokens, nil
}

// RefreshToken обновляет пару токенов.
//  1. Обновить можно только той парой токенов, которая была выдана вместе.
//  2. При смене User-Agent обновление запрещено, а сессия завершается.
//  3. Смена IP адреса только логируется.
func (s *AuthenticationService) RefreshToken(ctx context.Context, userAgent string, ipAddress string, accessToken string, refreshToken string) (*model.TokensPair, error) {
	claims, err := s.jwtServiceInterface.ValidateJWT(accessToken, []byte(s.jwtConfig.SecretKey))
	if err != nil {
		return nil, util.LogError("[AuthService] не удалось провалидировать токен", err)
	}

	refreshTokenUUID := claims.RefreshTokenUUID
	userUUID := claims.UserUUID

	storedRefreshToken, err := s.jwtRepoInterface.FindByUUID(ctx, refreshTokenUUID)
	if err != nil {
		return nil, util.LogError("[AuthService] не удалось найти рефреш токен", err)
	}
	if storedRefreshToken.Used {
		return nil, fmt.Errorf("[AuthService] %w: токен уже использован", model.ErrUnauthorized)
	}
	if storedRefreshToken.Expired(s.now()) {
		return nil, fmt.Errorf("[AuthService] %w: токен просрочен", model.ErrUnauthorized)
	}

	if storedRefreshToken.UserAgent != userAgent {
		if err := s.jwtRepoInterface.MarkRefreshTokenUsedByUUID(ctx, refreshTokenUUID); err != nil {
			util.Logger().Warn("[AuthService] не удалось пометить токен использованным", zap.Error(err))
		}
		util.Logger().Warn("[AuthService] попытка обновления с другого User-Agent",
			zap.String("refresh_token_uuid", refreshTokenUUID))
		return nil, fmt.Errorf("[AuthService] %w: User-Agent изменился", model.ErrUnauthorized)
	}

	if storedRefreshToken.IpAddress != ipAddress {
		util.Logger().Warn("[AuthService] обновление токена с нового IP адреса",
			zap.String("user_uuid", userUUID),
			zap.String("previous_ip", storedRefreshToken.IpAddress),
			zap.String("ip", ipAddress))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedRefreshToken.TokenHash), []byte(refreshToken)); err != nil {
		return nil, fmt.Errorf("[AuthService] %w: невалидный токен", model.ErrUnauthorized)
	}

	if err := s.jwtRepoInterface.MarkRefreshTokenUsedByUUID(ctx, refreshTokenUUID); err != nil {
		return nil, util.LogError("[AuthService] не удалось использовать токен", err)
	}

	tokensPair, newRefreshToken, err := s.jwtServiceInterface.GenerateAccessRefreshTokens(userUUID)
	if err != nil {
		return nil, util.LogError("[AuthService] ошибка генерации токенов", err)
	}

	newRefreshToken.UserAgent = userAgent
	newRefreshToken.IpAddress = ipAddress
	if err := s.jwtRepoInterface.SaveRefreshToken(ctx, newRefreshToken); err != nil {
		return nil, util.LogError("[AuthService] не удалось сохранить рефреш токен", err)
	}

	return tokensPair, nil
}

// Logout : помечает refresh-токен использованным, access-токены этой сессии перестают приниматься
func (s *AuthenticationService) Logout(ctx context.Context, refreshTokenUUID string) error {
	if err := s.jwtRepoInterface.MarkRefreshTokenUsedByUUID(ctx, refreshTokenUUID); err != nil {
		return fmt.Errorf("[AuthService] не удалось использовать токен: %w", err)
	}
	return nil
}
