package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/port"
	"github.com/anthanhphan/gosdk/logger"
)

const msgFolderNameRequired = "Folder name is required"

// folderService handles folder CRUD.
type folderService struct {
	core *DriveServiceImpl
}

func newFolderService(core *DriveServiceImpl) *folderService {
	return &folderService{core: core}
}

func (s *folderService) list(ctx context.Context, userID string) ([]domain.Folder, error) {
	folders, err := s.core.folders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return folders, nil
}

func (s *folderService) create(ctx context.Context, userID, name string) (*domain.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, port.NewError(port.ErrInvalidArgument, msgFolderNameRequired)
	}

	id, err := s.core.idGen.NextString()
	if err != nil {
		return nil, fmt.Errorf("generate folder id: %w", err)
	}

	folder := &domain.Folder{
		ID:        id,
		UserID:    userID,
		Name:      name,
		CreatedAt: s.core.now(),
	}
	if err := s.core.folders.Create(ctx, folder); err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}

	logger.Infow("Folder created", "folder_id", folder.ID, "user_id", userID)
	return folder, nil
}

func (s *folderService) rename(ctx context.Context, userID, folderID, name string) (*domain.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, port.NewError(port.ErrInvalidArgument, msgFolderNameRequired)
	}

	folder, err := s.core.loadOwnedFolder(ctx, userID, folderID, "update")
	if err != nil {
		return nil, err
	}
	if err := s.core.folders.Rename(ctx, folderID, name); err != nil {
		return nil, fmt.Errorf("rename folder %s: %w", folderID, err)
	}

	folder.Name = name
	return folder, nil
}

// remove deletes the folder with all of its files. Blob removal is best-effort.
func (s *folderService) remove(ctx context.Context, userID, folderID string) error {
	if _, err := s.core.loadOwnedFolder(ctx, userID, folderID, "delete"); err != nil {
		return err
	}

	keys, err := s.core.files.DeleteByFolder(ctx, folderID)
	if err != nil {
		return fmt.Errorf("delete files of folder %s: %w", folderID, err)
	}
	if err := s.core.folders.Delete(ctx, folderID); err != nil {
		return fmt.Errorf("delete folder %s: %w", folderID, err)
	}

	for _, key := range keys {
		if err := s.core.blobs.Remove(ctx, key); err != nil {
			logger.Warnw("Failed to remove file bytes of deleted folder", "folder_id", folderID, "storage_key", key, "error", err.Error())
		}
	}

	logger.Infow("Folder deleted", "folder_id", folderID, "user_id", userID, "files", len(keys))
	return nil
}
