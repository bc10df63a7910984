package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"file-sharing-server/config"
	"file-sharing-server/internal/model"
)

const userColumns = `uuid, login, password_hash, created_at`

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

// CreateUser : занятый login даёт ErrConflict
func (r *UserRepository) CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error) {
	query := `INSERT INTO users (uuid, login, password_hash) VALUES ($1, $2, $3) RETURNING ` + userColumns

	created := &model.User{}
	if err := sqlx.GetContext(ctx, exec, created, query, user.UUID, user.Login, user.PasswordHash); err != nil {
		return nil, storeError("[UserRepo] не удалось создать пользователя "+user.Login, err)
	}
	return created, nil
}

func (r *UserRepository) FindByUUID(ctx context.Context, exec sqlx.ExtContext, userUUID string) (*model.User, error) {
	if malformedID(userUUID) {
		return nil, model.NotFoundError("user", userUUID)
	}
	return r.findBy(ctx, exec, "uuid", userUUID)
}

func (r *UserRepository) FindByLogin(ctx context.Context, exec sqlx.ExtContext, login string) (*model.User, error) {
	return r.findBy(ctx, exec, "login", login)
}

// findBy : column только из констант пакета
func (r *UserRepository) findBy(ctx context.Context, exec sqlx.ExtContext, column, value string) (*model.User, error) {
	var user model.User
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1`
	if err := sqlx.GetContext(ctx, exec, &user, query, value); err != nil {
		return nil, storeError("[UserRepo] пользователь с "+column+" "+value+" не найден", err)
	}
	return &user, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) error {
	return r.touch(ctx, exec, "[UserRepo] не удалось обновить login",
		`UPDATE users SET login = $2 WHERE uuid = $1`, user.UUID, user.Login)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, exec sqlx.ExtContext, userUUID, newPasswordHash string) error {
	return r.touch(ctx, exec, "[UserRepo] не удалось обновить пароль",
		`UPDATE users SET password_hash = $2 WHERE uuid = $1`, userUUID, newPasswordHash)
}

// DeleteUser : пользователь с файлами не удаляется, ErrConflict
func (r *UserRepository) DeleteUser(ctx context.Context, exec sqlx.ExtContext, userUUID string) error {
	return r.touch(ctx, exec, "[UserRepo] не удалось удалить пользователя",
		`DELETE FROM users WHERE uuid = $1`, userUUID)
}

// touch : изменение ровно одной строки users, первый аргумент запроса uuid пользователя
func (r *UserRepository) touch(ctx context.Context, exec sqlx.ExtContext, message, query, userUUID string, args ...any) error {
	if malformedID(userUUID) {
		return model.NotFoundError("user", userUUID)
	}

	res, err := exec.ExecContext(ctx, query, append([]any{userUUID}, args...)...)
	if err != nil {
		return storeError(message, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storeError(message, err)
	}
	if affected == 0 {
		return model.NotFoundError("user", userUUID)
	}
	return nil
}

func (r *UserRepository) Exists(ctx context.Context, exec sqlx.ExtContext, userUUID string) (bool, error) {
	if malformedID(userUUID) {
		return false, nil
	}

	var exists bool
	err := sqlx.GetContext(ctx, exec, &exists, `SELECT EXISTS (SELECT 1 FROM users WHERE uuid = $1)`, userUUID)
	if err != nil {
		return false, storeError("[UserRepo] ошибка проверки пользователя "+userUUID, err)
	}
	return exists, nil
}

// ListUsers : курсор это created_at последнего пользователя предыдущей страницы
func (r *UserRepository) ListUsers(ctx context.Context, exec sqlx.ExtContext, cursor string, limit int) ([]*model.User, string, error) {
	if limit < 1 {
		return nil, "", model.NewValidationError(model.CodeInvalidRequest, "limit")
	}
	after, err := parseUserCursor(cursor)
	if err != nil {
		return nil, "", err
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE created_at > $1 ORDER BY created_at, uuid LIMIT $2`

	var users []*model.User
	// строка сверх limit означает, что есть следующая страница
	if err := sqlx.SelectContext(ctx, exec, &users, query, after, limit+1); err != nil {
		return nil, "", storeError("[UserRepo] не удалось получить список пользователей", err)
	}
	if len(users) <= limit {
		return users, "", nil
	}

	users = users[:limit]
	return users, users[limit-1].CreatedAt.Format(time.RFC3339Nano), nil
}

func parseUserCursor(cursor string) (time.Time, error) {
	if cursor == "" {
		return time.Time{}, nil
	}
	after, err := time.Parse(time.RFC3339Nano, cursor)
	if err != nil {
		return time.Time{}, model.NewValidationError(model.CodeInvalidRequest, "cursor", cursor)
	}
	return after, nil
}
