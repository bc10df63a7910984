package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"file-sharing-server/internal/model"
	"file-sharing-server/internal/ports"
)

type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) Upload(ctx context.Context, ownerUUID string, input ports.UploadInput) (*model.File, error) {
	args := m.Called(ctx, ownerUUID, input)
	file, _ := args.Get(0).(*model.File)
	return file, args.Error(1)
}

func (m *MockFileService) Retrieve(ctx context.Context, fileUUID, identity string) (*model.FileView, error) {
	args := m.Called(ctx, fileUUID, identity)
	view, _ := args.Get(0).(*model.FileView)
	return view, args.Error(1)
}

func (m *MockFileService) Update(ctx context.Context, fileUUID, identity string, input ports.UploadInput) (*model.File, error) {
	args := m.Called(ctx, fileUUID, identity, input)
	file, _ := args.Get(0).(*model.File)
	return file, args.Error(1)
}

func (m *MockFileService) Delete(ctx context.Context, fileUUID, identity string) error {
	return m.Called(ctx, fileUUID, identity).Error(0)
}

func (m *MockFileService) List(ctx context.Context, identity string, limit int) ([]model.FileView, error) {
	args := m.Called(ctx, identity, limit)
	views, _ := args.Get(0).([]model.FileView)
	return views, args.Error(1)
}

func (m *MockFileService) Share(ctx context.Context, batch model.GrantBatch) (int, error) {
	args := m.Called(ctx, batch)
	return args.Int(0), args.Error(1)
}

func (m *MockFileService) Revoke(ctx context.Context, batch model.RevokeBatch) (int, error) {
	args := m.Called(ctx, batch)
	return args.Int(0), args.Error(1)
}

func (m *MockFileService) Grants(ctx context.Context, fileUUID, identity string) (*model.FileGrants, error) {
	args := m.Called(ctx, fileUUID, identity)
	grants, _ := args.Get(0).(*model.FileGrants)
	return grants, args.Error(1)
}

func (m *MockFileService) Permission(ctx context.Context, fileUUID, identity string) (model.EffectivePermission, error) {
	args := m.Called(ctx, fileUUID, identity)
	return args.Get(0).(model.EffectivePermission), args.Error(1)
}

type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) Create(ctx context.Context, creatorUUID, name, description string) (*model.Team, error) {
	args := m.Called(ctx, creatorUUID, name, description)
	team, _ := args.Get(0).(*model.Team)
	return team, args.Error(1)
}

func (m *MockTeamService) Get(ctx context.Context, teamUUID, identity string) (*model.Team, error) {
	args := m.Called(ctx, teamUUID, identity)
	team, _ := args.Get(0).(*model.Team)
	return team, args.Error(1)
}

func (m *MockTeamService) ListForMember(ctx context.Context, identity string) ([]model.Team, error) {
	args := m.Called(ctx, identity)
	teams, _ := args.Get(0).([]model.Team)
	return teams, args.Error(1)
}

func (m *MockTeamService) Update(ctx context.Context, teamUUID, identity string, name, description *string) (*model.Team, error) {
	args := m.Called(ctx, teamUUID, identity, name, description)
	team, _ := args.Get(0).(*model.Team)
	return team, args.Error(1)
}

func (m *MockTeamService) Delete(ctx context.Context, teamUUID, identity string) error {
	return m.Called(ctx, teamUUID, identity).Error(0)
}

func (m *MockTeamService) AddMember(ctx context.Context, teamUUID, identity, userUUID string) error {
	return m.Called(ctx, teamUUID, identity, userUUID).Error(0)
}

func (m *MockTeamService) RemoveMember(ctx context.Context, teamUUID, identity, userUUID string) error {
	return m.Called(ctx, teamUUID, identity, userUUID).Error(0)
}

func (m *MockTeamService) Files(ctx context.Context, teamUUID, identity string) ([]model.File, error) {
	args := m.Called(ctx, teamUUID, identity)
	files, _ := args.Get(0).([]model.File)
	return files, args.Error(1)
}
