package service

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/port"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/google/uuid"
)

const (
	msgFileNotFound        = "File not found"
	msgFileNameRequired    = "New file name is required"
	msgFileNameSeparator   = "File name must not contain path separators"
	msgSharedFileNotFound  = "Shared file not found"
	msgShareLinkExpired    = "This link has expired."
	msgUploadMissing       = "No file uploaded"
	defaultContentType     = "application/octet-stream"
	defaultShareTTL        = 24 * time.Hour
	publicLinkPathTemplate = "%s/public/%s"
)

// fileService handles single-file operations.
type fileService struct {
	core     *DriveServiceImpl
	previews *previewRegistry
}

func newFileService(core *DriveServiceImpl, previews *previewRegistry) *fileService {
	return &fileService{core: core, previews: previews}
}

func (s *fileService) list(ctx context.Context, userID, folderID string) ([]domain.FileRecord, error) {
	if _, err := s.core.loadOwnedFolder(ctx, userID, folderID, "view"); err != nil {
		return nil, err
	}
	files, err := s.core.files.ListByFolder(ctx, userID, folderID)
	if err != nil {
		return nil, fmt.Errorf("list files of folder %s: %w", folderID, err)
	}
	return files, nil
}

// upload streams the body into blob storage first, then inserts the record.
// The blob is removed again if the record cannot be stored.
func (s *fileService) upload(ctx context.Context, userID, folderID string, upload domain.Upload) (*domain.FileRecord, error) {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(upload.Name), `\`, "/"))
	if upload.Body == nil || name == "" || name == "." || name == ".." || name == "/" {
		return nil, port.NewError(port.ErrInvalidArgument, msgUploadMissing)
	}

	folder, err := s.core.loadOwnedFolder(ctx, userID, folderID, "upload to")
	if err != nil {
		return nil, err
	}

	id, err := s.core.idGen.NextString()
	if err != nil {
		return nil, fmt.Errorf("generate file id: %w", err)
	}

	key := uuid.NewString()
	size, err := s.core.blobs.Save(ctx, key, upload.Body)
	if err != nil {
		return nil, fmt.Errorf("store file bytes: %w", err)
	}

	record := &domain.FileRecord{
		ID:          id,
		UserID:      userID,
		FolderID:    folder.ID,
		Name:        name,
		Size:        size,
		ContentType: detectContentType(upload.ContentType, name),
		StorageKey:  key,
		CreatedAt:   s.core.now(),
	}
	if err := s.core.files.Create(ctx, record); err != nil {
		if rmErr := s.core.blobs.Remove(ctx, key); rmErr != nil {
			logger.Warnw("Failed to clean up orphaned upload", "storage_key", key, "error", rmErr.Error())
		}
		return nil, fmt.Errorf("create file record: %w", err)
	}

	logger.Infow("File uploaded", "file_id", record.ID, "folder_id", folder.ID, "size_bytes", size)
	return record, nil
}

func (s *fileService) download(ctx context.Context, userID, fileID string) (*domain.Download, error) {
	file, err := s.core.loadOwnedFile(ctx, userID, fileID, "download", false)
	if err != nil {
		return nil, err
	}

	dl, err := s.core.openBlob(ctx, file)
	if err != nil {
		return nil, err
	}
	dl.Headers = streamHeaders(file.ContentType, contentDisposition(dispositionAttachment, file.Name))

	s.core.touch(ctx, file)
	return dl, nil
}

func (s *fileService) preview(ctx context.Context, userID, fileID string) (*domain.Download, error) {
	file, err := s.core.loadOwnedFile(ctx, userID, fileID, "preview", false)
	if err != nil {
		return nil, err
	}

	dl, err := s.previews.forFile(file).render(ctx, s.core, file)
	if err != nil {
		return nil, err
	}

	s.core.touch(ctx, file)
	return dl, nil
}

func (s *fileService) rename(ctx context.Context, userID, fileID, name string) (*domain.FileRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, port.NewError(port.ErrInvalidArgument, msgFileNameRequired)
	}
	if strings.ContainsAny(name, `/\`) {
		return nil, port.NewError(port.ErrInvalidArgument, msgFileNameSeparator)
	}

	file, err := s.core.loadOwnedFile(ctx, userID, fileID, "rename", false)
	if err != nil {
		return nil, err
	}

	file.Name = name
	if err := s.core.files.Update(ctx, file); err != nil {
		return nil, fmt.Errorf("rename file %s: %w", fileID, err)
	}
	return file, nil
}

// trash soft-deletes the file. The bytes stay until the file is purged.
func (s *fileService) trash(ctx context.Context, userID, fileID string) error {
	file, err := s.core.loadOwnedFile(ctx, userID, fileID, "delete", false)
	if err != nil {
		return err
	}

	now := s.core.now()
	file.DeletedAt = &now
	if err := s.core.files.Update(ctx, file); err != nil {
		return fmt.Errorf("trash file %s: %w", fileID, err)
	}

	logger.Infow("File moved to trash", "file_id", fileID, "user_id", userID)
	return nil
}

// share issues a fresh public id, replacing any previous link.
func (s *fileService) share(ctx context.Context, userID, fileID string) (*domain.ShareLink, error) {
	file, err := s.core.loadOwnedFile(ctx, userID, fileID, "share", false)
	if err != nil {
		return nil, err
	}

	ttl := s.core.cfg.ShareTTL()
	if ttl <= 0 {
		ttl = defaultShareTTL
	}
	expiresAt := s.core.now().Add(ttl)

	file.PublicID = uuid.NewString()
	file.ShareExpiresAt = &expiresAt
	if err := s.core.files.Update(ctx, file); err != nil {
		return nil, fmt.Errorf("share file %s: %w", fileID, err)
	}

	baseURL := strings.TrimRight(s.core.cfg.App.BaseURL, "/")
	return &domain.ShareLink{
		PublicID:  file.PublicID,
		URL:       fmt.Sprintf(publicLinkPathTemplate, baseURL, file.PublicID),
		ExpiresAt: expiresAt,
	}, nil
}

func (s *fileService) openPublic(ctx context.Context, publicID string) (*domain.Download, error) {
	file, err := s.core.files.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil, port.NewError(port.ErrNotFound, msgSharedFileNotFound)
		}
		return nil, fmt.Errorf("load shared file: %w", err)
	}
	if file.InTrash() {
		return nil, port.NewError(port.ErrNotFound, msgSharedFileNotFound)
	}
	if file.ShareExpired(s.core.now()) {
		return nil, port.NewError(port.ErrGone, msgShareLinkExpired)
	}

	dl, err := s.core.openBlob(ctx, file)
	if err != nil {
		return nil, err
	}
	dl.Headers = streamHeaders(file.ContentType, contentDisposition(dispositionAttachment, file.Name))
	return dl, nil
}

// detectContentType prefers the declared type, then the extension.
func detectContentType(declared, name string) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != defaultContentType {
		return declared
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); byExt != "" {
		return byExt
	}
	return defaultContentType
}
