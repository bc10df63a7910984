package requestresponse

// LoginRequest : тело запроса на аутентификацию
type LoginRequest struct {
	Login    string `json:"login" validate:"required" example:"user1"`
	Password string `json:"password" validate:"required" example:"P@ssw0rd123"`
}

// LoginResponse : ответ на успешную аутентификацию
type LoginResponse struct {
	Response struct {
		Token        string `json:"token" example:"eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9..."`
		RefreshToken string `json:"refresh_token" example:"vcSi0369y1I62wOpxZFpgZ..."`
	} `json:"response"`
}

// CurrentUserResponse : информация о текущем пользователе
type CurrentUserResponse struct {
	Response struct {
		UserUUID string `json:"user_uuid" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
		IsAdmin  bool   `json:"is_admin" example:"false"`
	} `json:"response"`
}

// RefreshTokenRequest : запрос на обновление пары токенов
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required" example:"vcSi0369y1I62wOpxZFpgZ..."`
}

// RefreshTokenResponse : ответ на успешный запрос
type RefreshTokenResponse struct {
	Response struct {
		AccessToken  string `json:"access_token" example:"eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9..."`
		RefreshToken string `json:"refresh_token" example:"vcSi0369y1I62wOpxZFpgZ..."`
	} `json:"response"`
}

// LogoutResponse : ответ на завершение сессии
type LogoutResponse struct {
	Response struct {
		SessionUUID string `json:"session_uuid" example:"qwdj1q4o-34u3-4ih7-59ou-1234567890ab"`
		Closed      bool   `json:"closed" example:"true"`
	} `json:"response"`
}
