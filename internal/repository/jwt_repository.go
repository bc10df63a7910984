package repository

import (
	"context"

	"file-sharing-server/config"
	"file-sharing-server/internal/model"
	"file-sharing-server/internal/util"
)

type JWTRepository struct {
	*config.Database
}

func NewJWTRepository(database *config.Database) *JWTRepository {
	return &JWTRepository{database}
}

// SaveRefreshToken сохраняет хэш refresh-токена вместе с User-Agent и IP
func (r *JWTRepository) SaveRefreshToken(ctx context.Context, refreshToken *model.RefreshToken) error {
	query := `INSERT INTO refresh_tokens (uuid, user_uuid, token_hash, expire_at, used, user_agent, ip_address)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.DB.ExecContext(ctx, query,
		refreshToken.UUID,
		refreshToken.UserUUID,
		refreshToken.TokenHash,
		refreshToken.ExpireAt,
		refreshToken.Used,
		refreshToken.UserAgent,
		refreshToken.IpAddress,
	)
	if err != nil {
		return storeError("[JWTRepo] ошибка вставки refresh токена", err)
	}

	return nil
}

// MarkRefreshTokenUsedByUUID : повторная пометка уже использованного токена возвращает model.ErrNotFound
func (r *JWTRepository) MarkRefreshTokenUsedByUUID(ctx context.Context, refreshTokenUUID string) error {
	query := `UPDATE refresh_tokens SET used = TRUE, revoked_at = NOW() WHERE uuid = $1 AND used = FALSE`

	result, err := r.DB.ExecContext(ctx, query, refreshTokenUUID)
	if err != nil {
		return storeError("[JWTRepo] не удалось обновить рефреш токен", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storeError("[JWTRepo] не удалось проверить, обновлен ли токен", err)
	}
	if rowsAffected == 0 {
		return util.LogError("[JWTRepo] не удалось найти токен для его обновления", model.NotFoundError("refresh_token", refreshTokenUUID))
	}

	return nil
}

// FindByUUID ищет refresh-токен в базе данных
func (r *JWTRepository) FindByUUID(ctx context.Context, refreshTokenUUID string) (*model.RefreshToken, error) {
	query := `SELECT uuid, user_uuid, token_hash, expire_at, used, user_agent, ip_address, created_at, revoked_at
	FROM refresh_tokens WHERE uuid = $1`

	refreshToken := &model.RefreshToken{}
	if err := r.DB.GetContext(ctx, refreshToken, query, refreshTokenUUID); err != nil {
		return nil, storeError("[JWTRepo] токен не был найден", err)
	}

	return refreshToken, nil
}
