package service_test

import (
	"context"
	"database/sql"
	"io"
	"iter"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"file-sharing-server/internal/model"
	"file-sharing-server/internal/security"
)

// ===== ТРАНЗАКЦИИ =====

type fakeTx struct{}

func (f *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}
func (f *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}
func (f *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return &sql.Row{}
}
func (f *fakeTx) QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error) {
	return nil, nil
}
func (f *fakeTx) QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	return &sqlx.Row{}
}
func (f *fakeTx) BindNamed(query string, arg interface{}) (string, []interface{}, error) {
	return "", nil, nil
}
func (f *fakeTx) DriverName() string         { return "fake" }
func (f *fakeTx) Rebind(query string) string { return query }

// txRecorder : транзакция, запоминающая commit и rollback
type txRecorder struct {
	fakeTx
	mu         sync.Mutex
	committed  bool
	rolledBack bool
	commitErr  error
}

func (tx *txRecorder) commit() error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.commitErr != nil {
		return tx.commitErr
	}
	tx.committed = true
	return nil
}

func (tx *txRecorder) rollback() error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.committed {
		return sql.ErrTxDone
	}
	tx.rolledBack = true
	return nil
}

type MockStore struct {
	fakeTx
	mock.Mock
}

func (m *MockStore) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, nil, nil, args.Error(3)
	}
	return args.Get(0).(sqlx.ExtContext), args.Get(1).(func() error), args.Get(2).(func() error), args.Error(3)
}

func expectTx(store *MockStore) *txRecorder {
	tx := &txRecorder{}
	store.On("BeginTX", mock.Anything).Return(tx, tx.rollback, tx.commit, nil)
	return tx
}

// ===== РЕПОЗИТОРИИ =====

type MockFileRepository struct{ mock.Mock }

func (m *MockFileRepository) Create(ctx context.Context, exec sqlx.ExtContext, file *model.File) error {
	return m.Called(ctx, exec, file).Error(0)
}

func (m *MockFileRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, fileUUID string) (*model.File, error) {
	args := m.Called(ctx, exec, fileUUID)
	if f, ok := args.Get(0).(*model.File); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFileRepository) Update(ctx context.Context, exec sqlx.ExtContext, file *model.File) error {
	return m.Called(ctx, exec, file).Error(0)
}

func (m *MockFileRepository) Delete(ctx context.Context, exec sqlx.ExtContext, fileUUID string) error {
	return m.Called(ctx, exec, fileUUID).Error(0)
}

func (m *MockFileRepository) AccessRows(ctx context.Context, exec sqlx.ExtContext, userUUID string) iter.Seq2[model.AccessRow, error] {
	args := m.Called(ctx, exec, userUUID)
	rows, _ := args.Get(0).([]model.AccessRow)
	failure := args.Error(1)
	return func(yield func(model.AccessRow, error) bool) {
		for _, row := range rows {
			if !yield(row, nil) {
				return
			}
		}
		if failure != nil {
			yield(model.AccessRow{}, failure)
		}
	}
}

func (m *MockFileRepository) ListByTeam(ctx context.Context, exec sqlx.ExtContext, teamUUID string) ([]model.File, error) {
	args := m.Called(ctx, exec, teamUUID)
	if files, ok := args.Get(0).([]model.File); ok {
		return files, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockGrantRepository struct{ mock.Mock }

func (m *MockGrantRepository) GetSharingRecord(ctx context.Context, exec sqlx.ExtContext, fileUUID string) (*model.SharingRecord, error) {
	args := m.Called(ctx, exec, fileUUID)
	if r, ok := args.Get(0).(*model.SharingRecord); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGrantRepository) EnsureSharingRecord(ctx context.Context, exec sqlx.ExtContext, fileUUID string) (*model.SharingRecord, error) {
	args := m.Called(ctx, exec, fileUUID)
	if r, ok := args.Get(0).(*model.SharingRecord); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGrantRepository) UpsertUserGrant(ctx context.Context, exec sqlx.ExtContext, recordUUID, userUUID string, level model.PermissionLevel) error {
	return m.Called(ctx, exec, recordUUID, userUUID, level).Error(0)
}

func (m *MockGrantRepository) UpsertTeamGrant(ctx context.Context, exec sqlx.ExtContext, recordUUID, teamUUID string, level model.PermissionLevel) error {
	return m.Called(ctx, exec, recordUUID, teamUUID, level).Error(0)
}

func (m *MockGrantRepository) DeleteUserGrant(ctx context.Context, exec sqlx.ExtContext, recordUUID, userUUID string) (int64, error) {
	args := m.Called(ctx, exec, recordUUID, userUUID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGrantRepository) DeleteTeamGrant(ctx context.Context, exec sqlx.ExtContext, recordUUID, teamUUID string) (int64, error) {
	args := m.Called(ctx, exec, recordUUID, teamUUID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGrantRepository) FindUserGrant(ctx context.Context, exec sqlx.ExtContext, fileUUID, userUUID string) (*model.UserGrant, error) {
	args := m.Called(ctx, exec, fileUUID, userUUID)
	if g, ok := args.Get(0).(*model.UserGrant); ok {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGrantRepository) TeamGrantsForMember(ctx context.Context, exec sqlx.ExtContext, fileUUID, userUUID string) ([]model.TeamGrant, error) {
	args := m.Called(ctx, exec, fileUUID, userUUID)
	if g, ok := args.Get(0).([]model.TeamGrant); ok {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGrantRepository) ListUserGrants(ctx context.Context, exec sqlx.ExtContext, fileUUID string) ([]model.UserGrant, error) {
	args := m.Called(ctx, exec, fileUUID)
	if g, ok := args.Get(0).([]model.UserGrant); ok {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGrantRepository) ListTeamGrants(ctx context.Context, exec sqlx.ExtContext, fileUUID string) ([]model.TeamGrant, error) {
	args := m.Called(ctx, exec, fileUUID)
	if g, ok := args.Get(0).([]model.TeamGrant); ok {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGrantRepository) DeleteAllForFile(ctx context.Context, exec sqlx.ExtContext, fileUUID string) error {
	return m.Called(ctx, exec, fileUUID).Error(0)
}

func (m *MockGrantRepository) DeleteTeamGrantsByTeam(ctx context.Context, exec sqlx.ExtContext, teamUUID string) error {
	return m.Called(ctx, exec, teamUUID).Error(0)
}

func (m *MockGrantRepository) DeleteUserGrantsByUser(ctx context.Context, exec sqlx.ExtContext, userUUID string) (int64, error) {
	args := m.Called(ctx, exec, userUUID)
	return args.Get(0).(int64), args.Error(1)
}

type MockTeamRepository struct{ mock.Mock }

func (m *MockTeamRepository) Create(ctx context.Context, exec sqlx.ExtContext, team *model.Team) error {
	return m.Called(ctx, exec, team).Error(0)
}

func (m *MockTeamRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, teamUUID string) (*model.Team, error) {
	args := m.Called(ctx, exec, teamUUID)
	if t, ok := args.Get(0).(*model.Team); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTeamRepository) ListForMember(ctx context.Context, exec sqlx.ExtContext, userUUID string) ([]model.Team, error) {
	args := m.Called(ctx, exec, userUUID)
	if t, ok := args.Get(0).([]model.Team); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTeamRepository) Update(ctx context.Context, exec sqlx.ExtContext, team *model.Team) error {
	return m.Called(ctx, exec, team).Error(0)
}

func (m *MockTeamRepository) Delete(ctx context.Context, exec sqlx.ExtContext, teamUUID string) error {
	return m.Called(ctx, exec, teamUUID).Error(0)
}

func (m *MockTeamRepository) Exists(ctx context.Context, exec sqlx.ExtContext, teamUUID string) (bool, error) {
	args := m.Called(ctx, exec, teamUUID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTeamRepository) AddMember(ctx context.Context, exec sqlx.ExtContext, teamUUID, userUUID string) error {
	return m.Called(ctx, exec, teamUUID, userUUID).Error(0)
}

func (m *MockTeamRepository) RemoveMember(ctx context.Context, exec sqlx.ExtContext, teamUUID, userUUID string) (int64, error) {
	args := m.Called(ctx, exec, teamUUID, userUUID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTeamRepository) RemoveAllMembers(ctx context.Context, exec sqlx.ExtContext, teamUUID string) error {
	return m.Called(ctx, exec, teamUUID).Error(0)
}

func (m *MockTeamRepository) LeaveAll(ctx context.Context, exec sqlx.ExtContext, userUUID string) error {
	return m.Called(ctx, exec, userUUID).Error(0)
}

func (m *MockTeamRepository) IsMember(ctx context.Context, exec sqlx.ExtContext, teamUUID, userUUID string) (bool, error) {
	args := m.Called(ctx, exec, teamUUID, userUUID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTeamRepository) Members(ctx context.Context, exec sqlx.ExtContext, teamUUID string) ([]string, error) {
	args := m.Called(ctx, exec, teamUUID)
	if members, ok := args.Get(0).([]string); ok {
		return members, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error) {
	args := m.Called(ctx, exec, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error) {
	args := m.Called(ctx, exec, uuid)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByLogin(ctx context.Context, exec sqlx.ExtContext, login string) (*model.User, error) {
	args := m.Called(ctx, exec, login)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) error {
	return m.Called(ctx, exec, user).Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, exec sqlx.ExtContext, uuid string, newPasswordHash string) error {
	return m.Called(ctx, exec, uuid, newPasswordHash).Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	return m.Called(ctx, exec, uuid).Error(0)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, exec sqlx.ExtContext, cursor string, limit int) ([]*model.User, string, error) {
	args := m.Called(ctx, exec, cursor, limit)
	if users, ok := args.Get(0).([]*model.User); ok {
		return users, args.String(1), args.Error(2)
	}
	return nil, "", args.Error(2)
}

func (m *MockUserRepository) Exists(ctx context.Context, exec sqlx.ExtContext, uuid string) (bool, error) {
	args := m.Called(ctx, exec, uuid)
	return args.Bool(0), args.Error(1)
}

type MockJWTService struct{ mock.Mock }

func (m *MockJWTService) GenerateAccessRefreshTokens(userUUID string) (*model.TokensPair, *model.RefreshToken, error) {
	args := m.Called(userUUID)

	var tokens *model.TokensPair
	if t := args.Get(0); t != nil {
		tokens = t.(*model.TokensPair)
	}

	var refresh *model.RefreshToken
	if r := args.Get(1); r != nil {
		refresh = r.(*model.RefreshToken)
	}

	return tokens, refresh, args.Error(2)
}

func (m *MockJWTService) ValidateJWT(tokenString string, secret []byte) (*security.Claims, error) {
	args := m.Called(tokenString, secret)
	if claims, ok := args.Get(0).(*security.Claims); ok {
		return claims, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockJWTRepo struct{ mock.Mock }

func (m *MockJWTRepo) SaveRefreshToken(ctx context.Context, refreshToken *model.RefreshToken) error {
	return m.Called(ctx, refreshToken).Error(0)
}

func (m *MockJWTRepo) FindByUUID(ctx context.Context, uuid string) (*model.RefreshToken, error) {
	args := m.Called(ctx, uuid)
	if token, ok := args.Get(0).(*model.RefreshToken); ok {
		return token, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJWTRepo) MarkRefreshTokenUsedByUUID(ctx context.Context, uuid string) error {
	return m.Called(ctx, uuid).Error(0)
}

// ===== ХРАНИЛИЩА =====

type MockFileCache struct{ mock.Mock }

func (m *MockFileCache) SetFile(ctx context.Context, file *model.File) error {
	return m.Called(ctx, file).Error(0)
}

func (m *MockFileCache) GetFile(ctx context.Context, uuid string) (*model.File, error) {
	args := m.Called(ctx, uuid)
	if f, ok := args.Get(0).(*model.File); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFileCache) DeleteFile(ctx context.Context, uuid string) error {
	return m.Called(ctx, uuid).Error(0)
}

type MockBlobStore struct{ mock.Mock }

func (m *MockBlobStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	return m.Called(ctx, key, body, size, contentType).Error(0)
}

func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockBlobStore) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}

// memCounterCache : кэш счётчиков в памяти с управляемыми часами
type memCounterCache struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]memEntry
	getErr  error
	setErr  error
	sets    int
}

type memEntry struct {
	stamps    []time.Time
	expiresAt time.Time
}

func newMemCounterCache(now func() time.Time) *memCounterCache {
	return &memCounterCache{now: now, entries: map[string]memEntry{}}
}

func (c *memCounterCache) Get(ctx context.Context, key string) ([]time.Time, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	entry, ok := c.entries[key]
	if !ok || !c.now().Before(entry.expiresAt) {
		return nil, false, nil
	}
	return append([]time.Time(nil), entry.stamps...), true, nil
}

func (c *memCounterCache) SetWithTTL(ctx context.Context, key string, stamps []time.Time, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.sets++
	c.entries[key] = memEntry{stamps: append([]time.Time(nil), stamps...), expiresAt: c.now().Add(ttl)}
	return nil
}

func (c *memCounterCache) stored(key string) []time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key].stamps
}

// fakeClock : часы, которые двигает тест
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
