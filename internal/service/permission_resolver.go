package service

import (
	"context"
	"fmt"
	"iter"
	"time"

	"go.uber.org/zap"

	"file-sharing-server/internal/model"
	"file-sharing-server/internal/ports"
	"file-sharing-server/internal/util"
)

// PermissionResolver : вычисляет эффективный уровень доступа и выдаёт ссылки на скачивание.
// Только читает гранты, ничего не изменяет.
type PermissionResolver struct {
	db            ports.Store
	files         ports.FileRepository
	grants        ports.GrantRepository
	blobs         ports.BlobStore
	credentialTTL time.Duration
	blobTimeout   time.Duration
	now           func() time.Time
}

func NewPermissionResolver(
	db ports.Store,
	files ports.FileRepository,
	grants ports.GrantRepository,
	blobs ports.BlobStore,
	credentialTTL time.Duration,
	blobTimeout time.Duration,
) *PermissionResolver {
	return &PermissionResolver{
		db:            db,
		files:         files,
		grants:        grants,
		blobs:         blobs,
		credentialTTL: credentialTTL,
		blobTimeout:   blobTimeout,
		now:           time.Now,
	}
}

// teamCandidate : командный грант, претендующий на определение уровня
type teamCandidate struct {
	TeamUUID  string
	Level     model.PermissionLevel
	UpdatedAt *time.Time
}

// newerThan : грант без времени обновления старше любого другого, при равенстве меньший UUID команды
func (c teamCandidate) newerThan(other teamCandidate) bool {
	switch {
	case c.UpdatedAt == nil && other.UpdatedAt == nil:
		return c.TeamUUID < other.TeamUUID
	case c.UpdatedAt == nil:
		return false
	case other.UpdatedAt == nil:
		return true
	case c.UpdatedAt.Equal(*other.UpdatedAt):
		return c.TeamUUID < other.TeamUUID
	default:
		return c.UpdatedAt.After(*other.UpdatedAt)
	}
}

// resolveLevel : владелец, затем прямой грант, затем самый свежий командный грант
func resolveLevel(ownerUUID, identity string, userLevel *model.PermissionLevel, teams []teamCandidate) model.EffectivePermission {
	if identity != "" && identity == ownerUUID {
		return model.EffectiveOwner
	}
	if userLevel != nil {
		return model.EffectiveFromGrant(*userLevel)
	}
	if len(teams) == 0 {
		return model.EffectiveDenied
	}

	latest := teams[0]
	for _, candidate := range teams[1:] {
		if candidate.newerThan(latest) {
			latest = candidate
		}
	}
	return model.EffectiveFromGrant(latest.Level)
}

func (r *PermissionResolver) Resolve(ctx context.Context, file *model.File, identity string) (model.EffectivePermission, error) {
	if file == nil {
		return model.EffectiveDenied, fmt.Errorf("[PermissionResolver] %w: file", model.ErrNotFound)
	}
	if identity != "" && identity == file.OwnerUUID {
		return model.EffectiveOwner, nil
	}

	userGrant, err := r.grants.FindUserGrant(ctx, r.db, file.UUID, identity)
	if err != nil {
		return model.EffectiveDenied, fmt.Errorf("[PermissionResolver] ошибка чтения гранта пользователя: %w", err)
	}
	if userGrant != nil {
		return resolveLevel(file.OwnerUUID, identity, &userGrant.Permission, nil), nil
	}

	teamGrants, err := r.grants.TeamGrantsForMember(ctx, r.db, file.UUID, identity)
	if err != nil {
		return model.EffectiveDenied, fmt.Errorf("[PermissionResolver] ошибка чтения грантов команд: %w", err)
	}
	return resolveLevel(file.OwnerUUID, identity, nil, teamCandidates(teamGrants)), nil
}

func teamCandidates(grants []model.TeamGrant) []teamCandidate {
	candidates := make([]teamCandidate, 0, len(grants))
	for _, grant := range grants {
		candidates = append(candidates, teamCandidate{
			TeamUUID:  grant.TeamUUID,
			Level:     grant.Permission,
			UpdatedAt: grant.UpdatedAt,
		})
	}
	return candidates
}

// IssueDownloadCredential : отказ возвращается результатом с Reason, сбой хранилища ошибкой ErrCredentialIssuance
func (r *PermissionResolver) IssueDownloadCredential(ctx context.Context, file *model.File, identity string) (*model.DownloadResult, error) {
	level, err := r.Resolve(ctx, file, identity)
	if err != nil {
		return nil, err
	}

	switch {
	case !level.CanView():
		return &model.DownloadResult{Level: model.EffectiveDenied, Reason: model.ReasonAccessDenied}, nil
	case !level.CanDownload():
		return &model.DownloadResult{Level: level, Reason: model.ReasonDownloadNotPermitted}, nil
	}

	url, err := r.presign(ctx, file.StorageKey)
	if err != nil {
		util.Logger().Warn("[PermissionResolver] не удалось выдать ссылку",
			zap.String("file_uuid", file.UUID), zap.Error(err))
		return nil, fmt.Errorf("[PermissionResolver] %w: %w", model.ErrCredentialIssuance, err)
	}

	return &model.DownloadResult{
		Level:     level,
		URL:       url,
		ExpiresAt: r.now().Add(r.credentialTTL),
	}, nil
}

type presignResult struct {
	url string
	err error
}

// presign : вызов хранилища ограничен blobTimeout, даже если хранилище не учитывает контекст
func (r *PermissionResolver) presign(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.blobTimeout)
	defer cancel()

	done := make(chan presignResult, 1)
	go func() {
		url, err := r.blobs.PresignGet(ctx, key, r.credentialTTL)
		done <- presignResult{url: url, err: err}
	}()

	select {
	case res := <-done:
		if res.err == nil && res.url == "" {
			return "", fmt.Errorf("хранилище вернуло пустую ссылку")
		}
		return res.url, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// ListAccessible : ленивая последовательность, каждый обход заново читает хранилище.
// Файл, доступный и по прямому, и по командному гранту, возвращается один раз.
func (r *PermissionResolver) ListAccessible(ctx context.Context, identity string) iter.Seq2[model.AccessibleFile, error] {
	return func(yield func(model.AccessibleFile, error) bool) {
		var (
			current   *model.File
			userLevel *model.PermissionLevel
			teams     []teamCandidate
		)

		flush := func() bool {
			if current == nil {
				return true
			}
			level := resolveLevel(current.OwnerUUID, identity, userLevel, teams)
			file := *current
			current, userLevel, teams = nil, nil, nil
			if !level.CanView() {
				return true
			}
			return yield(model.AccessibleFile{File: file, Level: level}, nil)
		}

		for row, err := range r.files.AccessRows(ctx, r.db, identity) {
			if err != nil {
				yield(model.AccessibleFile{}, err)
				return
			}
			if current != nil && current.UUID != row.UUID {
				if !flush() {
					return
				}
			}
			if current == nil {
				file := row.File
				current = &file
			}
			if row.UserPermission != nil {
				level := *row.UserPermission
				userLevel = &level
			}
			if row.TeamUUID != nil && row.TeamPermission != nil {
				teams = append(teams, teamCandidate{
					TeamUUID:  *row.TeamUUID,
					Level:     *row.TeamPermission,
					UpdatedAt: row.TeamUpdatedAt,
				})
			}
		}
		flush()
	}
}
