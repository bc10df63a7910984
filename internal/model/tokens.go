package model

import "time"

// RefreshToken : сессия пользователя. В БД хранится только bcrypt хэш токена.
// Used выставляется при обновлении пары, выходе или смене User-Agent.
type RefreshToken struct {
	UUID      string     `db:"uuid" json:"uuid"`
	UserUUID  string     `db:"user_uuid" json:"user_uuid"`
	TokenHash string     `db:"token_hash" json:"-"`
	ExpireAt  time.Time  `db:"expire_at" json:"expire_at"`
	Used      bool       `db:"used" json:"used"`
	UserAgent string     `db:"user_agent" json:"user_agent"`
	IpAddress string     `db:"ip_address" json:"ip_address"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	RevokedAt *time.Time `db:"revoked_at" json:"revoked_at,omitempty"`
}

func (t *RefreshToken) Expired(now time.Time) bool {
	return now.After(t.ExpireAt)
}

// TokensPair : access JWT и refresh токен, выданные вместе
// swagger:model
type TokensPair struct {
	// example: eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9...
	AccessToken string `json:"accessToken"`

	// example: vcSi0369y1I62wOpxZFpgZ...
	RefreshToken string `json:"refreshToken"`
}
