package ports

import (
	"context"

	"file-sharing-server/internal/model"
	"file-sharing-server/internal/security"
)

type JWTRepositoryInterface interface {
	FindByUUID(ctx context.Context, uuid string) (*model.RefreshToken, error)
	MarkRefreshTokenUsedByUUID(ctx context.Context, uuid string) error
	SaveRefreshToken(ctx context.Context, token *model.RefreshToken) error
}

type JWTServiceInterface interface {
	GenerateAccessRefreshTokens(userUUID string) (*model.TokensPair, *model.RefreshToken, error)
	ValidateJWT(tokenString string, secret []byte) (*security.Claims, error)
}

type AuthenticationService interface {
	Login(ctx context.Context, login, password, userAgent, ipAddress string) (*model.TokensPair, error)
	RefreshToken(ctx context.Context, userAgent, ipAddress, accessToken, refreshToken string) (*model.TokensPair, error)
	Logout(ctx context.Context, refreshTokenUUID string) error
}
