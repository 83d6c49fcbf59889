package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/config"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/port"
	"github.com/anthanhphan/gosdk/logger"
)

// IDGenerator produces identifiers for new folders and files.
type IDGenerator interface {
	NextString() (string, error)
}

// Dependencies are the outbound adapters the drive service runs on.
type Dependencies struct {
	Folders     port.FolderStore
	Files       port.FileStore
	Blobs       port.BlobStorage
	QuotaEvents port.QuotaEventStore
	Events      EventPublisher
	IDGen       IDGenerator
}

// DriveServiceImpl is the facade that wires the use-case services of the drive.
type DriveServiceImpl struct {
	cfg     *config.Config
	folders port.FolderStore
	files   port.FileStore
	blobs   port.BlobStorage
	idGen   IDGenerator
	now     func() time.Time

	quota         *QuotaTracker
	archiver      *ArchiveBuilder
	zipGuard      *ZipAccessGuard
	folderUseCase *folderService
	fileUseCase   *fileService
	trashUseCase  *trashService
	recentUseCase *recentService
}

// Ensure DriveServiceImpl implements port.DriveService.
var _ port.DriveService = (*DriveServiceImpl)(nil)

// NewDriveService builds the facade and all use-case services.
func NewDriveService(cfg *config.Config, deps Dependencies) *DriveServiceImpl {
	svc := &DriveServiceImpl{
		cfg:     cfg,
		folders: deps.Folders,
		files:   deps.Files,
		blobs:   deps.Blobs,
		idGen:   deps.IDGen,
		now:     time.Now,
	}

	svc.quota = NewQuotaTracker(deps.QuotaEvents, QuotaConfig{
		Limit:  cfg.Quota.Limit,
		Window: cfg.QuotaWindow(),
	})
	svc.archiver = NewArchiveBuilder(deps.Blobs, deps.Events, cfg.Zip.CompressionLevel)
	svc.zipGuard = NewZipAccessGuard(deps.Folders, deps.Files, svc.quota, svc.archiver, cfg.Zip.MaxFiles)
	svc.folderUseCase = newFolderService(svc)
	svc.fileUseCase = newFileService(svc, newPreviewRegistry())
	svc.trashUseCase = newTrashService(svc)
	svc.recentUseCase = newRecentService(svc)

	return svc
}

// BuildArchive delegates to the zip access guard.
func (s *DriveServiceImpl) BuildArchive(ctx context.Context, userID, folderID string, fileIDs []string) (*domain.Download, error) {
	return s.zipGuard.BuildArchive(ctx, userID, folderID, fileIDs)
}

func (s *DriveServiceImpl) ListFolders(ctx context.Context, userID string) ([]domain.Folder, error) {
	return s.folderUseCase.list(ctx, userID)
}

func (s *DriveServiceImpl) CreateFolder(ctx context.Context, userID, name string) (*domain.Folder, error) {
	return s.folderUseCase.create(ctx, userID, name)
}

func (s *DriveServiceImpl) RenameFolder(ctx context.Context, userID, folderID, name string) (*domain.Folder, error) {
	return s.folderUseCase.rename(ctx, userID, folderID, name)
}

func (s *DriveServiceImpl) DeleteFolder(ctx context.Context, userID, folderID string) error {
	return s.folderUseCase.remove(ctx, userID, folderID)
}

func (s *DriveServiceImpl) ListFiles(ctx context.Context, userID, folderID string) ([]domain.FileRecord, error) {
	return s.fileUseCase.list(ctx, userID, folderID)
}

func (s *DriveServiceImpl) UploadFile(ctx context.Context, userID, folderID string, upload domain.Upload) (*domain.FileRecord, error) {
	return s.fileUseCase.upload(ctx, userID, folderID, upload)
}

func (s *DriveServiceImpl) GetFile(ctx context.Context, userID, fileID string) (*domain.FileRecord, error) {
	return s.loadOwnedFile(ctx, userID, fileID, "view", false)
}

func (s *DriveServiceImpl) OpenFile(ctx context.Context, userID, fileID string) (*domain.Download, error) {
	return s.fileUseCase.download(ctx, userID, fileID)
}

func (s *DriveServiceImpl) PreviewFile(ctx context.Context, userID, fileID string) (*domain.Download, error) {
	return s.fileUseCase.preview(ctx, userID, fileID)
}

func (s *DriveServiceImpl) RenameFile(ctx context.Context, userID, fileID, name string) (*domain.FileRecord, error) {
	return s.fileUseCase.rename(ctx, userID, fileID, name)
}

func (s *DriveServiceImpl) TrashFile(ctx context.Context, userID, fileID string) error {
	return s.fileUseCase.trash(ctx, userID, fileID)
}

func (s *DriveServiceImpl) ShareFile(ctx context.Context, userID, fileID string) (*domain.ShareLink, error) {
	return s.fileUseCase.share(ctx, userID, fileID)
}

func (s *DriveServiceImpl) OpenPublic(ctx context.Context, publicID string) (*domain.Download, error) {
	return s.fileUseCase.openPublic(ctx, publicID)
}

func (s *DriveServiceImpl) ListTrash(ctx context.Context, userID string) ([]domain.FileRecord, error) {
	return s.trashUseCase.list(ctx, userID)
}

func (s *DriveServiceImpl) RestoreFile(ctx context.Context, userID, fileID string) error {
	return s.trashUseCase.restore(ctx, userID, fileID)
}

func (s *DriveServiceImpl) PurgeFile(ctx context.Context, userID, fileID string) error {
	return s.trashUseCase.purge(ctx, userID, fileID)
}

func (s *DriveServiceImpl) ListRecent(ctx context.Context, userID string) ([]domain.FileRecord, error) {
	return s.recentUseCase.list(ctx, userID)
}

// loadOwnedFolder resolves a folder and checks that userID owns it.
func (s *DriveServiceImpl) loadOwnedFolder(ctx context.Context, userID, folderID, action string) (*domain.Folder, error) {
	folder, err := s.folders.GetByID(ctx, folderID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil, port.NewError(port.ErrNotFound, msgFolderNotFound)
		}
		return nil, fmt.Errorf("load folder %s: %w", folderID, err)
	}
	if folder.UserID != userID {
		return nil, port.NewError(port.ErrForbidden, "Not authorized to "+action+" this folder")
	}
	return folder, nil
}

// loadOwnedFile resolves a file and checks that userID owns it. Trashed files are
// reported as missing unless allowTrashed is set.
func (s *DriveServiceImpl) loadOwnedFile(ctx context.Context, userID, fileID, action string, allowTrashed bool) (*domain.FileRecord, error) {
	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil, port.NewError(port.ErrNotFound, msgFileNotFound)
		}
		return nil, fmt.Errorf("load file %s: %w", fileID, err)
	}
	if file.UserID != userID {
		return nil, port.NewError(port.ErrForbidden, "Not authorized to "+action+" this file")
	}
	if file.InTrash() && !allowTrashed {
		return nil, port.NewError(port.ErrNotFound, msgFileNotFound)
	}
	return file, nil
}

// openBlob opens the bytes of file, mapping a missing blob to a caller-facing NotFound.
func (s *DriveServiceImpl) openBlob(ctx context.Context, file *domain.FileRecord) (*domain.Download, error) {
	rc, err := s.blobs.Open(ctx, file.StorageKey)
	if err != nil {
		if errors.Is(err, port.ErrBlobNotFound) {
			logger.Warnw("File bytes missing from storage", "file_id", file.ID, "storage_key", file.StorageKey)
			return nil, port.NewError(port.ErrNotFound, "File not found on server")
		}
		return nil, fmt.Errorf("open blob for file %s: %w", file.ID, err)
	}
	return &domain.Download{Stream: rc, Filename: file.Name, Size: file.Size}, nil
}

// touch records an access for the recent list. Failures are logged only.
func (s *DriveServiceImpl) touch(ctx context.Context, file *domain.FileRecord) {
	if err := s.files.TouchAccess(ctx, file.ID, s.now()); err != nil {
		logger.Warnw("Failed to update last access", "file_id", file.ID, "error", err.Error())
	}
}
