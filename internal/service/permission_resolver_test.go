package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"file-sharing-server/internal/model"
	"file-sharing-server/internal/service"
)

const credentialTTL = time.Hour

func newTestResolver(timeout time.Duration) (*service.PermissionResolver, *MockStore, *MockFileRepository, *MockGrantRepository, *MockBlobStore) {
	store := new(MockStore)
	files := new(MockFileRepository)
	grants := new(MockGrantRepository)
	blobs := new(MockBlobStore)
	resolver := service.NewPermissionResolver(store, files, grants, blobs, credentialTTL, timeout)
	return resolver, store, files, grants, blobs
}

func testFile() *model.File {
	return &model.File{
		UUID:       "file-1",
		OwnerUUID:  "owner-1",
		Name:       "report.pdf",
		StorageKey: "files/owner-1/file-1",
	}
}

func at(minutes int) *time.Time {
	t := time.Date(2025, 1, 1, 12, minutes, 0, 0, time.UTC)
	return &t
}

func TestPermissionResolver_Resolve(t *testing.T) {
	viewGrant := &model.UserGrant{UserUUID: "user-1", Permission: model.PermissionView}

	tests := []struct {
		name       string
		identity   string
		setupMocks func(g *MockGrantRepository)
		want       model.EffectivePermission
		wantErr    error
	}{
		{
			name:     "owner wins without store reads",
			identity: "owner-1",
			want:     model.EffectiveOwner,
		},
		{
			name:     "direct user grant",
			identity: "user-1",
			setupMocks: func(g *MockGrantRepository) {
				g.On("FindUserGrant", mock.Anything, mock.Anything, "file-1", "user-1").Return(viewGrant, nil)
			},
			want: model.EffectiveView,
		},
		{
			name:     "most recently updated team grant wins",
			identity: "user-2",
			setupMocks: func(g *MockGrantRepository) {
				g.On("FindUserGrant", mock.Anything, mock.Anything, "file-1", "user-2").Return(nil, nil)
				g.On("TeamGrantsForMember", mock.Anything, mock.Anything, "file-1", "user-2").Return([]model.TeamGrant{
					{TeamUUID: "team-a", Permission: model.PermissionViewAndDownload, UpdatedAt: at(1)},
					{TeamUUID: "team-b", Permission: model.PermissionView, UpdatedAt: at(5)},
				}, nil)
			},
			want: model.EffectiveView,
		},
		{
			name:     "missing update timestamp is least recent",
			identity: "user-2",
			setupMocks: func(g *MockGrantRepository) {
				g.On("FindUserGrant", mock.Anything, mock.Anything, "file-1", "user-2").Return(nil, nil)
				g.On("TeamGrantsForMember", mock.Anything, mock.Anything, "file-1", "user-2").Return([]model.TeamGrant{
					{TeamUUID: "team-a", Permission: model.PermissionViewAndDownload},
					{TeamUUID: "team-b", Permission: model.PermissionView, UpdatedAt: at(0)},
				}, nil)
			},
			want: model.EffectiveView,
		},
		{
			name:     "no grants",
			identity: "stranger",
			setupMocks: func(g *MockGrantRepository) {
				g.On("FindUserGrant", mock.Anything, mock.Anything, "file-1", "stranger").Return(nil, nil)
				g.On("TeamGrantsForMember", mock.Anything, mock.Anything, "file-1", "stranger").Return([]model.TeamGrant{}, nil)
			},
			want: model.EffectiveDenied,
		},
		{
			name:     "store failure",
			identity: "user-1",
			setupMocks: func(g *MockGrantRepository) {
				g.On("FindUserGrant", mock.Anything, mock.Anything, "file-1", "user-1").
					Return(nil, model.ErrDependencyFailure)
			},
			want:    model.EffectiveDenied,
			wantErr: model.ErrDependencyFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver, _, _, grants, _ := newTestResolver(time.Second)
			if tt.setupMocks != nil {
				tt.setupMocks(grants)
			}

			got, err := resolver.Resolve(context.Background(), testFile(), tt.identity)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			grants.AssertExpectations(t)
		})
	}
}

func TestPermissionResolver_ResolveStableAcrossCalls(t *testing.T) {
	resolver, _, _, grants, _ := newTestResolver(time.Second)
	grants.On("FindUserGrant", mock.Anything, mock.Anything, "file-1", "user-2").Return(nil, nil)
	grants.On("TeamGrantsForMember", mock.Anything, mock.Anything, "file-1", "user-2").Return([]model.TeamGrant{
		{TeamUUID: "team-b", Permission: model.PermissionView, UpdatedAt: at(1)},
		{TeamUUID: "team-a", Permission: model.PermissionViewAndDownload, UpdatedAt: at(9)},
	}, nil)

	for i := 0; i < 3; i++ {
		got, err := resolver.Resolve(context.Background(), testFile(), "user-2")
		require.NoError(t, err)
		assert.Equal(t, model.EffectiveViewAndDownload, got)
	}
}

func TestPermissionResolver_ResolveNilFile(t *testing.T) {
	resolver, _, _, _, _ := newTestResolver(time.Second)

	got, err := resolver.Resolve(context.Background(), nil, "owner-1")

	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Equal(t, model.EffectiveDenied, got)
}

func TestPermissionResolver_IssueDownloadCredential(t *testing.T) {
	tests := []struct {
		name       string
		identity   string
		setupMocks func(g *MockGrantRepository, b *MockBlobStore)
		wantLevel  model.EffectivePermission
		wantReason model.DenialReason
		wantURL    string
		wantErr    []error
	}{
		{
			name:     "owner gets url",
			identity: "owner-1",
			setupMocks: func(g *MockGrantRepository, b *MockBlobStore) {
				b.On("PresignGet", mock.Anything, "files/owner-1/file-1", credentialTTL).Return("https://blob/url", nil)
			},
			wantLevel: model.EffectiveOwner,
			wantURL:   "https://blob/url",
		},
		{
			name:     "view-and-download grant gets url",
			identity: "user-1",
			setupMocks: func(g *MockGrantRepository, b *MockBlobStore) {
				g.On("FindUserGrant", mock.Anything, mock.Anything, "file-1", "user-1").
					Return(&model.UserGrant{Permission: model.PermissionViewAndDownload}, nil)
				b.On("PresignGet", mock.Anything, "files/owner-1/file-1", credentialTTL).Return("https://blob/url", nil)
			},
			wantLevel: model.EffectiveViewAndDownload,
			wantURL:   "https://blob/url",
		},
		{
			name:     "view only never reaches blob store",
			identity: "user-1",
			setupMocks: func(g *MockGrantRepository, b *MockBlobStore) {
				g.On("FindUserGrant", mock.Anything, mock.Anything, "file-1", "user-1").
					Return(&model.UserGrant{Permission: model.PermissionView}, nil)
			},
			wantLevel:  model.EffectiveView,
			wantReason: model.ReasonDownloadNotPermitted,
		},
		{
			name:     "no access",
			identity: "stranger",
			setupMocks: func(g *MockGrantRepository, b *MockBlobStore) {
				g.On("FindUserGrant", mock.Anything, mock.Anything, "file-1", "stranger").Return(nil, nil)
				g.On("TeamGrantsForMember", mock.Anything, mock.Anything, "file-1", "stranger").Return(nil, nil)
			},
			wantLevel:  model.EffectiveDenied,
			wantReason: model.ReasonAccessDenied,
		},
		{
			name:     "blob store failure is distinct from denial",
			identity: "owner-1",
			setupMocks: func(g *MockGrantRepository, b *MockBlobStore) {
				b.On("PresignGet", mock.Anything, "files/owner-1/file-1", credentialTTL).Return("", errors.New("s3 down"))
			},
			wantErr: []error{model.ErrCredentialIssuance, model.ErrDependencyFailure},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver, _, _, grants, blobs := newTestResolver(time.Second)
			tt.setupMocks(grants, blobs)

			result, err := resolver.IssueDownloadCredential(context.Background(), testFile(), tt.identity)

			if len(tt.wantErr) > 0 {
				for _, want := range tt.wantErr {
					assert.ErrorIs(t, err, want)
				}
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantLevel, result.Level)
				assert.Equal(t, tt.wantReason, result.Reason)
				assert.Equal(t, tt.wantURL, result.URL)
				if tt.wantURL != "" {
					assert.True(t, result.Allowed())
					assert.WithinDuration(t, time.Now().Add(credentialTTL), result.ExpiresAt, 5*time.Second)
				} else {
					assert.False(t, result.Allowed())
				}
			}
			grants.AssertExpectations(t)
			blobs.AssertExpectations(t)
		})
	}
}

func TestPermissionResolver_IssueDownloadCredentialTimeout(t *testing.T) {
	resolver, _, _, _, blobs := newTestResolver(20 * time.Millisecond)
	release := make(chan struct{})
	defer close(release)

	blobs.On("PresignGet", mock.Anything, "files/owner-1/file-1", credentialTTL).
		Run(func(args mock.Arguments) { <-release }).
		Return("https://late/url", nil)

	start := time.Now()
	result, err := resolver.IssueDownloadCredential(context.Background(), testFile(), "owner-1")

	assert.ErrorIs(t, err, model.ErrCredentialIssuance)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, result)
	assert.Less(t, time.Since(start), time.Second)
}

func TestPermissionResolver_ListAccessible(t *testing.T) {
	resolver, _, files, _, _ := newTestResolver(time.Second)

	view := model.PermissionView
	full := model.PermissionViewAndDownload
	teamA, teamB := "team-a", "team-b"

	own := model.File{UUID: "f-own", OwnerUUID: "user-1"}
	both := model.File{UUID: "f-both", OwnerUUID: "owner-2"}
	teams := model.File{UUID: "f-teams", OwnerUUID: "owner-3"}

	rows := []model.AccessRow{
		{File: own},
		{File: both, UserPermission: &view, TeamUUID: &teamA, TeamPermission: &full, TeamUpdatedAt: at(3)},
		{File: both, UserPermission: &view, TeamUUID: &teamB, TeamPermission: &full, TeamUpdatedAt: at(4)},
		{File: teams, TeamUUID: &teamA, TeamPermission: &full, TeamUpdatedAt: at(1)},
		{File: teams, TeamUUID: &teamB, TeamPermission: &view, TeamUpdatedAt: at(2)},
	}
	files.On("AccessRows", mock.Anything, mock.Anything, "user-1").Return(rows, nil)

	collect := func() map[string]model.EffectivePermission {
		seen := map[string]model.EffectivePermission{}
		for item, err := range resolver.ListAccessible(context.Background(), "user-1") {
			require.NoError(t, err)
			_, dup := seen[item.File.UUID]
			assert.False(t, dup, "file %s listed twice", item.File.UUID)
			seen[item.File.UUID] = item.Level
		}
		return seen
	}

	want := map[string]model.EffectivePermission{
		"f-own":   model.EffectiveOwner,
		"f-both":  model.EffectiveView,
		"f-teams": model.EffectiveView,
	}
	assert.Equal(t, want, collect())
	// повторный обход заново читает хранилище
	assert.Equal(t, want, collect())
	files.AssertNumberOfCalls(t, "AccessRows", 2)
}

func TestPermissionResolver_ListAccessibleEarlyStopAndError(t *testing.T) {
	resolver, _, files, _, _ := newTestResolver(time.Second)
	files.On("AccessRows", mock.Anything, mock.Anything, "user-1").Return([]model.AccessRow{
		{File: model.File{UUID: "a", OwnerUUID: "user-1"}},
		{File: model.File{UUID: "b", OwnerUUID: "user-1"}},
	}, model.ErrDependencyFailure)

	count := 0
	for _, err := range resolver.ListAccessible(context.Background(), "user-1") {
		require.NoError(t, err)
		count++
		break
	}
	assert.Equal(t, 1, count)

	var lastErr error
	for _, err := range resolver.ListAccessible(context.Background(), "user-1") {
		if err != nil {
			lastErr = err
		}
	}
	assert.ErrorIs(t, lastErr, model.ErrDependencyFailure)
}
