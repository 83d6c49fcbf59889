package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/port"
	"github.com/anthanhphan/gosdk/logger"
)

//go:generate mockgen -destination=mocks/zip_dependencies_mock.go -package=mocks -source=zip_guard.go

// QuotaGate decides and records archive quota usage.
type QuotaGate interface {
	Check(ctx context.Context, userID string) domain.QuotaStatus
	RecordUsage(ctx context.Context, userID, folderID string, fileCount int)
}

// Archiver turns resolved files into an archive stream.
type Archiver interface {
	Build(ctx context.Context, folder *domain.Folder, files []domain.FileRecord) (*domain.Download, error)
}

const (
	DefaultMaxArchiveFiles = 5

	msgFolderNotFound   = "Folder not found"
	msgFolderForbidden  = "Not authorized to view this folder"
	msgNoFileSelected   = "No file is selected"
	msgTooManyFilesTmpl = "Maximum %d files allowed"
)

// ZipAccessGuard runs every precondition of an archive download before any byte is produced:
// ownership, quota, selection bounds, file resolution, then usage bookkeeping.
type ZipAccessGuard struct {
	folders  port.FolderStore
	files    port.FileStore
	quota    QuotaGate
	archiver Archiver
	maxFiles int
}

// Ensure ZipAccessGuard implements port.ZipService.
var _ port.ZipService = (*ZipAccessGuard)(nil)

func NewZipAccessGuard(folders port.FolderStore, files port.FileStore, quota QuotaGate, archiver Archiver, maxFiles int) *ZipAccessGuard {
	if maxFiles <= 0 {
		maxFiles = DefaultMaxArchiveFiles
	}
	return &ZipAccessGuard{
		folders:  folders,
		files:    files,
		quota:    quota,
		archiver: archiver,
		maxFiles: maxFiles,
	}
}

// BuildArchive validates the request and delegates to the archiver.
// Requested ids that do not match a file of the folder are dropped.
func (g *ZipAccessGuard) BuildArchive(ctx context.Context, userID, folderID string, fileIDs []string) (*domain.Download, error) {
	folder, err := g.folders.GetByID(ctx, folderID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil, port.NewError(port.ErrNotFound, msgFolderNotFound)
		}
		return nil, fmt.Errorf("load folder %s: %w", folderID, err)
	}
	if folder.UserID != userID {
		logger.Warnw("Archive request for foreign folder", "user_id", userID, "folder_id", folderID)
		return nil, port.NewError(port.ErrForbidden, msgFolderForbidden)
	}

	if status := g.quota.Check(ctx, userID); status.OverLimit {
		logger.Infow("Archive quota exceeded", "user_id", userID, "count", status.Count, "limit", status.Limit)
		return nil, &port.RateLimitError{
			Count:      status.Count,
			Limit:      status.Limit,
			Window:     status.Window,
			RetryAfter: status.RetryAfter(),
		}
	}

	if len(fileIDs) == 0 {
		return nil, port.NewError(port.ErrInvalidArgument, msgNoFileSelected)
	}
	if len(fileIDs) > g.maxFiles {
		return nil, port.NewError(port.ErrInvalidArgument, fmt.Sprintf(msgTooManyFilesTmpl, g.maxFiles))
	}

	all, err := g.files.ListByFolder(ctx, userID, folderID)
	if err != nil {
		return nil, fmt.Errorf("list files of folder %s: %w", folderID, err)
	}
	selected := selectFiles(all, fileIDs)
	if len(selected) < len(fileIDs) {
		logger.Debugw("Dropped unknown archive ids", "folder_id", folderID, "requested", len(fileIDs), "resolved", len(selected))
	}

	g.quota.RecordUsage(ctx, userID, folderID, len(selected))

	return g.archiver.Build(ctx, folder, selected)
}

// selectFiles keeps the files whose canonical id was requested, in folder order.
func selectFiles(files []domain.FileRecord, ids []string) []domain.FileRecord {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[domain.CanonicalID(id)] = struct{}{}
	}

	selected := make([]domain.FileRecord, 0, len(ids))
	for _, f := range files {
		if _, ok := wanted[domain.CanonicalID(f.ID)]; ok {
			selected = append(selected, f)
		}
	}
	return selected
}
