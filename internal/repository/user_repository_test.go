package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"file-sharing-server/internal/model"
)

const aliceUUID = "3f2b8c1d-7e4a-4b9c-a5d6-0e1f2a3b4c5d"

var userRows = []string{"uuid", "login", "password_hash", "created_at"}

func TestUserRepository_CreateDuplicateLogin(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(nil)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (uuid, login, password_hash)`)).
		WithArgs(aliceUUID, "alice2024", "hash").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_login_key"})

	user, err := repo.CreateUser(context.Background(), db, &model.User{UUID: aliceUUID, Login: "alice2024", PasswordHash: "hash"})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, model.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByUUID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		created := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
		mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE uuid = $1`)).
			WithArgs(aliceUUID).
			WillReturnRows(sqlmock.NewRows(userRows).AddRow(aliceUUID, "alice2024", "hash", created))

		user, err := NewUserRepository(nil).FindByUUID(context.Background(), db, aliceUUID)

		require.NoError(t, err)
		assert.Equal(t, "alice2024", user.Login)
		assert.True(t, created.Equal(user.CreatedAt))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE uuid = $1`)).
			WithArgs(aliceUUID).
			WillReturnRows(sqlmock.NewRows(userRows))

		_, err := NewUserRepository(nil).FindByUUID(context.Background(), db, aliceUUID)

		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("malformed id does not reach the database", func(t *testing.T) {
		db, mock := newMockDB(t)

		_, err := NewUserRepository(nil).FindByUUID(context.Background(), db, "bob")

		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Exists(t *testing.T) {
	tests := []struct {
		name       string
		userUUID   string
		setupMock  func(mock sqlmock.Sqlmock)
		wantExists bool
		wantErr    error
	}{
		{
			name:     "existing user",
			userUUID: aliceUUID,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM users`)).
					WithArgs(aliceUUID).
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
			},
			wantExists: true,
		},
		{
			name:     "malformed id",
			userUUID: "bob",
		},
		{
			name:     "connection lost",
			userUUID: aliceUUID,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM users`)).
					WithArgs(aliceUUID).
					WillReturnError(&pq.Error{Code: "08006"})
			},
			wantErr: model.ErrDependencyFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			if tt.setupMock != nil {
				tt.setupMock(mock)
			}

			exists, err := NewUserRepository(nil).Exists(context.Background(), db, tt.userUUID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantExists, exists)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Delete(t *testing.T) {
	tests := []struct {
		name    string
		result  func(e *sqlmock.ExpectedExec)
		wantErr error
	}{
		{name: "deleted", result: func(e *sqlmock.ExpectedExec) { e.WillReturnResult(sqlmock.NewResult(0, 1)) }},
		{name: "missing", result: func(e *sqlmock.ExpectedExec) { e.WillReturnResult(sqlmock.NewResult(0, 0)) }, wantErr: model.ErrNotFound},
		{
			name:    "still owns files",
			result:  func(e *sqlmock.ExpectedExec) { e.WillReturnError(&pq.Error{Code: "23503", Constraint: "files_owner_uuid_fkey"}) },
			wantErr: model.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.result(mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE uuid = $1`)).WithArgs(aliceUUID))

			err := NewUserRepository(nil).DeleteUser(context.Background(), db, aliceUUID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET password_hash = $2 WHERE uuid = $1`)).
		WithArgs(aliceUUID, "new-hash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewUserRepository(nil).UpdatePassword(context.Background(), db, aliceUUID, "new-hash"))
	assert.ErrorIs(t, NewUserRepository(nil).UpdatePassword(context.Background(), db, "bob", "new-hash"), model.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ListUsers(t *testing.T) {
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	t.Run("next page", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE created_at > $1`)).
			WithArgs(time.Time{}, 3).
			WillReturnRows(sqlmock.NewRows(userRows).
				AddRow("u1", "user0001", "h", first).
				AddRow("u2", "user0002", "h", second).
				AddRow("u3", "user0003", "h", second.Add(time.Hour)))

		users, next, err := NewUserRepository(nil).ListUsers(context.Background(), db, "", 2)

		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, second.Format(time.RFC3339Nano), next)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("last page", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE created_at > $1`)).
			WithArgs(first, 11).
			WillReturnRows(sqlmock.NewRows(userRows).AddRow("u2", "user0002", "h", second))

		users, next, err := NewUserRepository(nil).ListUsers(context.Background(), db, first.Format(time.RFC3339Nano), 10)

		require.NoError(t, err)
		assert.Len(t, users, 1)
		assert.Empty(t, next)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("bad cursor", func(t *testing.T) {
		db, mock := newMockDB(t)

		_, _, err := NewUserRepository(nil).ListUsers(context.Background(), db, "yesterday", 10)

		var verr *model.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "cursor", verr.Field)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
