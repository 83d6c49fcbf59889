package port

import (
	"context"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
)

// AuthService resolves a bearer credential into a user identifier.
type AuthService interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// ArchiveObserver reacts to finished archive builds. Returned errors are only logged.
type ArchiveObserver interface {
	Name() string
	OnArchiveCompleted(ctx context.Context, event domain.ArchiveCompletionEvent) error
}

// ZipService builds folder archives.
type ZipService interface {
	// BuildArchive checks ownership, quota and selection, then streams the selected files as a zip.
	BuildArchive(ctx context.Context, userID, folderID string, fileIDs []string) (*domain.Download, error)
}

// FolderService manages folders.
type FolderService interface {
	ListFolders(ctx context.Context, userID string) ([]domain.Folder, error)
	CreateFolder(ctx context.Context, userID, name string) (*domain.Folder, error)
	RenameFolder(ctx context.Context, userID, folderID, name string) (*domain.Folder, error)
	DeleteFolder(ctx context.Context, userID, folderID string) error
}

// FileService manages files inside folders.
type FileService interface {
	ListFiles(ctx context.Context, userID, folderID string) ([]domain.FileRecord, error)
	UploadFile(ctx context.Context, userID, folderID string, upload domain.Upload) (*domain.FileRecord, error)
	GetFile(ctx context.Context, userID, fileID string) (*domain.FileRecord, error)
	OpenFile(ctx context.Context, userID, fileID string) (*domain.Download, error)
	PreviewFile(ctx context.Context, userID, fileID string) (*domain.Download, error)
	RenameFile(ctx context.Context, userID, fileID, name string) (*domain.FileRecord, error)
	TrashFile(ctx context.Context, userID, fileID string) error
	ShareFile(ctx context.Context, userID, fileID string) (*domain.ShareLink, error)
	OpenPublic(ctx context.Context, publicID string) (*domain.Download, error)
}

// TrashService manages soft-deleted files.
type TrashService interface {
	ListTrash(ctx context.Context, userID string) ([]domain.FileRecord, error)
	RestoreFile(ctx context.Context, userID, fileID string) error
	PurgeFile(ctx context.Context, userID, fileID string) error
}

// RecentService lists recently accessed files.
type RecentService interface {
	ListRecent(ctx context.Context, userID string) ([]domain.FileRecord, error)
}

// DriveService is everything the HTTP adapter needs.
type DriveService interface {
	ZipService
	FolderService
	FileService
	TrashService
	RecentService
}
