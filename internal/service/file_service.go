package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"file-sharing-server/internal/model"
	"file-sharing-server/internal/ports"
	"file-sharing-server/internal/util"
)

// sniffLen : столько байт читается для определения типа содержимого
const sniffLen = 3072

// FileService : загрузка, чтение, изменение, удаление и совместный доступ к файлам
type FileService struct {
	db          ports.Store
	files       ports.FileRepository
	cache       ports.FileCache
	blobs       ports.BlobStore
	resolver    ports.PermissionResolver
	coordinator ports.SharingCoordinator
	grants      ports.GrantRepository
	policy      ports.UploadPolicy
}

func NewFileService(
	db ports.Store,
	files ports.FileRepository,
	cache ports.FileCache,
	blobs ports.BlobStore,
	resolver ports.PermissionResolver,
	coordinator ports.SharingCoordinator,
	grants ports.GrantRepository,
	policy ports.UploadPolicy,
) *FileService {
	return &FileService{
		db:          db,
		files:       files,
		cache:       cache,
		blobs:       blobs,
		resolver:    resolver,
		coordinator: coordinator,
		grants:      grants,
		policy:      policy,
	}
}

// checkUpload : проверка политики до обращения к хранилищу
func (s *FileService) checkUpload(input ports.UploadInput) (string, io.Reader, error) {
	if input.Body == nil {
		return "", nil, model.NewValidationError(model.CodeInvalidRequest, "file")
	}
	body := bufio.NewReaderSize(input.Body, sniffLen)
	head, err := body.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return "", nil, model.NewValidationError(model.CodeInvalidRequest, "file", err.Error())
	}

	contentType, err := s.policy.Check(input.DeclaredType, input.Size, head)
	if err != nil {
		return "", nil, err
	}
	return contentType, body, nil
}

// Upload : содержимое пишется в хранилище до вставки метаданных, при ошибке вставки объект удаляется
func (s *FileService) Upload(ctx context.Context, ownerUUID string, input ports.UploadInput) (*model.File, error) {
	if input.Name == "" {
		return nil, model.NewValidationError(model.CodeInvalidRequest, "name")
	}
	contentType, body, err := s.checkUpload(input)
	if err != nil {
		return nil, err
	}

	fileUUID := uuid.New().String()
	file := &model.File{
		UUID:        fileUUID,
		OwnerUUID:   ownerUUID,
		Name:        input.Name,
		SizeBytes:   input.Size,
		ContentType: contentType,
		StorageKey:  fmt.Sprintf("files/%s/%s", ownerUUID, fileUUID),
	}

	if err := s.blobs.Put(ctx, file.StorageKey, body, file.SizeBytes, file.ContentType); err != nil {
		return nil, err
	}

	if err := s.createMetadata(ctx, file); err != nil {
		if delErr := s.blobs.Delete(context.WithoutCancel(ctx), file.StorageKey); delErr != nil {
			util.Logger().Error("[FileService] объект остался в хранилище без метаданных",
				zap.String("storage_key", file.StorageKey), zap.Error(delErr))
		}
		return nil, err
	}

	util.Logger().Info("[FileService] файл загружен",
		zap.String("file_uuid", file.UUID), zap.String("owner_uuid", ownerUUID), zap.Int64("size", file.SizeBytes))
	return file, nil
}

func (s *FileService) createMetadata(ctx context.Context, file *model.File) error {
	exec, rollback, commit, err := s.db.BeginTX(ctx)
	if err != nil {
		return util.LogError("[FileService] не удалось начать транзакцию", fmt.Errorf("%w: %w", model.ErrDependencyFailure, err))
	}
	defer rollback()

	if err := s.files.Create(ctx, exec, file); err != nil {
		return err
	}

	if err := commit(); err != nil {
		return util.LogError("[FileService] не удалось закоммитить транзакцию", fmt.Errorf("%w: %w", model.ErrDependencyFailure, err))
	}
	return nil
}

// getFile : сначала кэш, затем БД; ошибки кэша не прерывают запрос
func (s *FileService) getFile(ctx context.Context, fileUUID string) (*model.File, error) {
	if cached, err := s.cache.GetFile(ctx, fileUUID); err == nil && cached != nil {
		return cached, nil
	}

	file, err := s.files.GetByUUID(ctx, s.db, fileUUID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetFile(ctx, file); err != nil {
		util.Logger().Warn("[FileService] не удалось закэшировать файл", zap.String("file_uuid", fileUUID), zap.Error(err))
	}
	return file, nil
}

// ownedFile : метаданные читаются из БД, кэш не используется для проверки владельца
func (s *FileService) ownedFile(ctx context.Context, fileUUID, identity string) (*model.File, error) {
	file, err := s.files.GetByUUID(ctx, s.db, fileUUID)
	if err != nil {
		return nil, err
	}
	if file.OwnerUUID != identity {
		return nil, fmt.Errorf("[FileService] %w", model.ErrNotOwner)
	}
	return file, nil
}

// Retrieve : метаданные и ссылка на скачивание либо причина отказа в ней
func (s *FileService) Retrieve(ctx context.Context, fileUUID, identity string) (*model.FileView, error) {
	file, err := s.getFile(ctx, fileUUID)
	if err != nil {
		return nil, err
	}

	download, err := s.resolver.IssueDownloadCredential(ctx, file, identity)
	if err != nil {
		return nil, err
	}
	if download.Level == model.EffectiveDenied {
		return nil, fmt.Errorf("[FileService] %w", model.ErrAccessDenied)
	}

	return &model.FileView{File: file, Download: download}, nil
}

// Update : новое содержимое под тем же ключом хранилища
func (s *FileService) Update(ctx context.Context, fileUUID, identity string, input ports.UploadInput) (*model.File, error) {
	contentType, body, err := s.checkUpload(input)
	if err != nil {
		return nil, err
	}
	file, err := s.ownedFile(ctx, fileUUID, identity)
	if err != nil {
		return nil, err
	}

	if err := s.blobs.Put(ctx, file.StorageKey, body, input.Size, contentType); err != nil {
		return nil, err
	}

	if input.Name != "" {
		file.Name = input.Name
	}
	file.SizeBytes = input.Size
	file.ContentType = contentType
	if err := s.files.Update(ctx, s.db, file); err != nil {
		return nil, err
	}

	s.invalidate(ctx, fileUUID)
	return file, nil
}

// Delete : гранты, запись о доступе и файл удаляются в одной транзакции.
// Объект удаляется из хранилища только после коммита.
func (s *FileService) Delete(ctx context.Context, fileUUID, identity string) error {
	file, err := s.ownedFile(ctx, fileUUID, identity)
	if err != nil {
		return err
	}

	exec, rollback, commit, err := s.db.BeginTX(ctx)
	if err != nil {
		return util.LogError("[FileService] не удалось начать транзакцию", fmt.Errorf("%w: %w", model.ErrDependencyFailure, err))
	}
	defer rollback()

	if err := s.coordinator.PurgeFile(ctx, exec, file.UUID); err != nil {
		return err
	}
	if err := s.files.Delete(ctx, exec, file.UUID); err != nil {
		return err
	}

	if err := commit(); err != nil {
		return util.LogError("[FileService] не удалось закоммитить транзакцию", fmt.Errorf("%w: %w", model.ErrDependencyFailure, err))
	}

	s.invalidate(ctx, fileUUID)
	if err := s.blobs.Delete(context.WithoutCancel(ctx), file.StorageKey); err != nil {
		util.Logger().Error("[FileService] объект остался в хранилище без метаданных",
			zap.String("storage_key", file.StorageKey), zap.Error(err))
	}
	util.Logger().Info("[FileService] файл удалён", zap.String("file_uuid", fileUUID))
	return nil
}

func (s *FileService) invalidate(ctx context.Context, fileUUID string) {
	if err := s.cache.DeleteFile(ctx, fileUUID); err != nil {
		util.Logger().Warn("[FileService] не удалось удалить файл из кэша", zap.String("file_uuid", fileUUID), zap.Error(err))
	}
}

// List : доступные файлы с уровнем доступа; ссылки выдаются только для скачиваемых.
// Сбой выдачи ссылки оставляет URL пустым и не прерывает список.
func (s *FileService) List(ctx context.Context, identity string, limit int) ([]model.FileView, error) {
	views := []model.FileView{}

	for accessible, err := range s.resolver.ListAccessible(ctx, identity) {
		if err != nil {
			return nil, err
		}
		if limit > 0 && len(views) >= limit {
			break
		}

		file := accessible.File
		view := model.FileView{
			File:     &file,
			Download: &model.DownloadResult{Level: accessible.Level},
		}

		if accessible.Level.CanDownload() {
			download, err := s.resolver.IssueDownloadCredential(ctx, &file, identity)
			if err != nil {
				util.Logger().Warn("[FileService] ссылка не выдана", zap.String("file_uuid", file.UUID), zap.Error(err))
			} else {
				view.Download = download
			}
		} else {
			view.Download.Reason = model.ReasonDownloadNotPermitted
		}

		views = append(views, view)
	}

	return views, nil
}

func (s *FileService) Share(ctx context.Context, batch model.GrantBatch) (int, error) {
	return s.coordinator.ApplyGrants(ctx, batch)
}

func (s *FileService) Revoke(ctx context.Context, batch model.RevokeBatch) (int, error) {
	return s.coordinator.RevokeGrants(ctx, batch)
}

// Grants : только для владельца
func (s *FileService) Grants(ctx context.Context, fileUUID, identity string) (*model.FileGrants, error) {
	if _, err := s.ownedFile(ctx, fileUUID, identity); err != nil {
		return nil, err
	}

	userGrants, err := s.grants.ListUserGrants(ctx, s.db, fileUUID)
	if err != nil {
		return nil, err
	}
	teamGrants, err := s.grants.ListTeamGrants(ctx, s.db, fileUUID)
	if err != nil {
		return nil, err
	}

	return &model.FileGrants{FileUUID: fileUUID, UserGrants: userGrants, TeamGrants: teamGrants}, nil
}

func (s *FileService) Permission(ctx context.Context, fileUUID, identity string) (model.EffectivePermission, error) {
	file, err := s.getFile(ctx, fileUUID)
	if err != nil {
		return model.EffectiveDenied, err
	}
	return s.resolver.Resolve(ctx, file, identity)
}
