package security

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"file-sharing-server/config"
	"file-sharing-server/internal/model"
	"file-sharing-server/internal/util"
)

type contextKey string

const (
	UserContextKey contextKey = "user"
	issuer                    = "file-sharing-server"
)

type Claims struct {
	UserUUID         string `json:"user_uuid"`
	RefreshTokenUUID string `json:"refresh_token_id"`
	IsAdmin          bool   `json:"is_admin,omitempty"`
	jwt.RegisteredClaims
}

// RefreshTokenFinder : хранилище refresh-токенов для проверки сессии
type RefreshTokenFinder interface {
	FindByUUID(ctx context.Context, uuid string) (*model.RefreshToken, error)
}

type JWTService struct {
	*config.JWTConfig
}

func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{cfg}
}

func (service *JWTService) GenerateAccessRefreshTokens(userUUID string) (*model.TokensPair, *model.RefreshToken, error) {
	refreshToken, refreshTokenStr, err := GenerateRefreshToken()
	if err != nil {
		return nil, nil, util.LogError("[JWT] ошибка генерации рефреш токена", err)
	}

	refreshTTL, err := time.ParseDuration(service.RefreshTokenTTL)
	if err != nil {
		return nil, nil, util.LogError("[JWT] ошибка парсинга refresh_token_ttl", err)
	}
	accessTTL, err := time.ParseDuration(service.AccessTokenTTL)
	if err != nil {
		return nil, nil, util.LogError("[JWT] ошибка парсинга access_token_ttl", err)
	}

	now := time.Now()
	refreshToken.UserUUID = userUUID
	refreshToken.ExpireAt = now.Add(refreshTTL)

	claims := Claims{
		UserUUID:         userUUID,
		RefreshTokenUUID: refreshToken.UUID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	accessToken, err := jwtToken.SignedString([]byte(service.SecretKey))
	if err != nil {
		return nil, nil, util.LogError("[JWT] ошибка подписи токена", err)
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenStr,
	}, refreshToken, nil
}

func GenerateRefreshToken() (*model.RefreshToken, string, error) {
	jwtTokenBytes := make([]byte, 32)
	if _, err := rand.Read(jwtTokenBytes); err != nil {
		return nil, "", util.LogError("[JWT] ошибка генерации", err)
	}
	refreshTokenStr := base64.StdEncoding.EncodeToString(jwtTokenBytes)

	hashedToken, err := bcrypt.GenerateFromPassword([]byte(refreshTokenStr), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", util.LogError("[JWT] ошибка хэширования", err)
	}

	// клиенту отдаётся refreshTokenStr, в БД хранится только хэш
	return &model.RefreshToken{
		UUID:      uuid.New().String(),
		TokenHash: string(hashedToken),
	}, refreshTokenStr, nil
}

func (service *JWTService) ValidateJWT(jwtTokenStr string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	jwtToken, err := jwt.ParseWithClaims(jwtTokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return secretKey, nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrUnauthorized, err)
	}
	if !jwtToken.Valid {
		return nil, fmt.Errorf("%w: невалидный токен", model.ErrUnauthorized)
	}

	return claims, nil
}

// JWTMiddleware : проверяет Bearer токен и кладёт Claims в контекст.
// Фиксированный токен администратора даёт Claims с IsAdmin.
func JWTMiddleware(secretKey []byte, tokens RefreshTokenFinder, jwtService *JWTService, adminToken string) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authorizationHeader := request.Header.Get("Authorization")
			if !strings.HasPrefix(authorizationHeader, "Bearer ") {
				util.HandleError(writer, "unauthorized", http.StatusUnauthorized)
				return
			}

			token := strings.TrimPrefix(authorizationHeader, "Bearer ")

			if adminToken != "" && token == adminToken {
				adminClaims := &Claims{
					UserUUID: "admin",
					IsAdmin:  true,
				}
				next.ServeHTTP(writer, request.WithContext(WithClaims(request.Context(), adminClaims)))
				return
			}

			claims, err := jwtService.ValidateJWT(token, secretKey)
			if err != nil {
				util.Logger().Debug("[JWT] невалидный токен", zap.Error(err))
				util.HandleError(writer, "невалидный токен", http.StatusUnauthorized)
				return
			}

			refreshToken, err := tokens.FindByUUID(request.Context(), claims.RefreshTokenUUID)
			if err != nil || refreshToken.Used || refreshToken.Expired(time.Now()) {
				util.HandleError(writer, "unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(writer, request.WithContext(WithClaims(request.Context(), claims)))
		})
	}
}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, UserContextKey, claims)
}

func GetClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(UserContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, fmt.Errorf("%w: пользователь не авторизован", model.ErrUnauthorized)
	}
	return claims, nil
}
