package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/port"
	"github.com/anthanhphan/gosdk/logger"
)

const msgNotInTrash = "File is not in trash"

// trashService restores and purges soft-deleted files.
type trashService struct {
	core *DriveServiceImpl
}

func newTrashService(core *DriveServiceImpl) *trashService {
	return &trashService{core: core}
}

func (s *trashService) list(ctx context.Context, userID string) ([]domain.FileRecord, error) {
	files, err := s.core.files.ListTrashed(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list trash: %w", err)
	}
	return files, nil
}

func (s *trashService) restore(ctx context.Context, userID, fileID string) error {
	file, err := s.loadTrashed(ctx, userID, fileID, "restore")
	if err != nil {
		return err
	}

	file.DeletedAt = nil
	if err := s.core.files.Update(ctx, file); err != nil {
		return fmt.Errorf("restore file %s: %w", fileID, err)
	}

	logger.Infow("File restored from trash", "file_id", fileID, "user_id", userID)
	return nil
}

// purge removes the bytes first, then the record.
func (s *trashService) purge(ctx context.Context, userID, fileID string) error {
	file, err := s.loadTrashed(ctx, userID, fileID, "permanently delete")
	if err != nil {
		return err
	}

	if err := s.core.blobs.Remove(ctx, file.StorageKey); err != nil && !errors.Is(err, port.ErrBlobNotFound) {
		return fmt.Errorf("remove bytes of file %s: %w", fileID, err)
	}
	if err := s.core.files.Delete(ctx, fileID); err != nil {
		return fmt.Errorf("delete file %s: %w", fileID, err)
	}

	logger.Infow("File purged", "file_id", fileID, "user_id", userID)
	return nil
}

func (s *trashService) loadTrashed(ctx context.Context, userID, fileID, action string) (*domain.FileRecord, error) {
	file, err := s.core.loadOwnedFile(ctx, userID, fileID, action, true)
	if err != nil {
		return nil, err
	}
	if !file.InTrash() {
		return nil, port.NewError(port.ErrInvalidArgument, msgNotInTrash)
	}
	return file, nil
}
