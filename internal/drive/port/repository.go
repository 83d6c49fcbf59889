package port

import (
	"context"
	"time"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
)

//go:generate mockgen -destination=../service/mocks/repository_mock.go -package=mocks -source=repository.go

// FolderStore persists folder metadata.
type FolderStore interface {
	// Create inserts a new folder.
	Create(ctx context.Context, folder *domain.Folder) error

	// GetByID returns ErrNotFound when the folder does not exist.
	GetByID(ctx context.Context, id string) (*domain.Folder, error)

	// ListByUser returns the user's folders, newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.Folder, error)

	// Rename changes the folder name.
	Rename(ctx context.Context, id, name string) error

	// Delete removes the folder record.
	Delete(ctx context.Context, id string) error
}

// FileStore persists file metadata.
type FileStore interface {
	// Create inserts a new file record.
	Create(ctx context.Context, file *domain.FileRecord) error

	// GetByID returns ErrNotFound when the record does not exist.
	GetByID(ctx context.Context, id string) (*domain.FileRecord, error)

	// GetByPublicID looks up a record by its share identifier.
	GetByPublicID(ctx context.Context, publicID string) (*domain.FileRecord, error)

	// ListByFolder returns the non-trashed files of a folder owned by userID, in folder order.
	ListByFolder(ctx context.Context, userID, folderID string) ([]domain.FileRecord, error)

	// ListTrashed returns the user's trashed files, most recently deleted first.
	ListTrashed(ctx context.Context, userID string) ([]domain.FileRecord, error)

	// ListRecent returns up to limit accessed files, most recently accessed first.
	ListRecent(ctx context.Context, userID string, limit int) ([]domain.FileRecord, error)

	// Update overwrites the mutable fields of a record.
	Update(ctx context.Context, file *domain.FileRecord) error

	// TouchAccess sets the last access time.
	TouchAccess(ctx context.Context, id string, at time.Time) error

	// Delete removes the record.
	Delete(ctx context.Context, id string) error

	// DeleteByFolder removes every record of a folder and returns their storage keys.
	DeleteByFolder(ctx context.Context, folderID string) ([]string, error)
}

// QuotaEventStore is the append-only log behind the quota window.
type QuotaEventStore interface {
	Append(ctx context.Context, event domain.QuotaEvent) error
	CountSince(ctx context.Context, userID string, since time.Time) (int, error)
}

// AuditLog stores audit entries durably.
type AuditLog interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}

// UsageJournal appends human-readable usage lines.
type UsageJournal interface {
	Append(ctx context.Context, line string) error
}
