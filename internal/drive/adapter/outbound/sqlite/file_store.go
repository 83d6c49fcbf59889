package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/port"
)

const fileColumns = `id, user_id, folder_id, name, size, mime_type, storage_key,
	public_id, share_expires_at, deleted_at, last_accessed_at, created_at`

// FileStore implements port.FileStore.
type FileStore struct {
	db *sql.DB
}

var _ port.FileStore = (*FileStore)(nil)

func NewFileStore(d *DB) *FileStore {
	return &FileStore{db: d.db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFile(row rowScanner) (*domain.FileRecord, error) {
	var (
		file                       domain.FileRecord
		publicID                   sql.NullString
		expires, deleted, accessed sql.NullInt64
		created                    int64
	)
	err := row.Scan(
		&file.ID,
		&file.UserID,
		&file.FolderID,
		&file.Name,
		&file.Size,
		&file.ContentType,
		&file.StorageKey,
		&publicID,
		&expires,
		&deleted,
		&accessed,
		&created,
	)
	if err != nil {
		return nil, err
	}

	file.PublicID = publicID.String
	file.ShareExpiresAt = timePtr(expires)
	file.DeletedAt = timePtr(deleted)
	file.LastAccessedAt = timePtr(accessed)
	file.CreatedAt = fromMillis(created)
	return &file, nil
}

func (s *FileStore) Create(ctx context.Context, file *domain.FileRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO files (`+fileColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		file.ID,
		file.UserID,
		file.FolderID,
		file.Name,
		file.Size,
		file.ContentType,
		file.StorageKey,
		nullString(file.PublicID),
		nullMillis(file.ShareExpiresAt),
		nullMillis(file.DeletedAt),
		nullMillis(file.LastAccessedAt),
		toMillis(file.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create file record: %w", err)
	}
	return nil
}

func (s *FileStore) GetByID(ctx context.Context, id string) (*domain.FileRecord, error) {
	return s.getOne(ctx, `SELECT `+fileColumns+` FROM files WHERE id = ?`, id)
}

func (s *FileStore) GetByPublicID(ctx context.Context, publicID string) (*domain.FileRecord, error) {
	if publicID == "" {
		return nil, fmt.Errorf("empty public id: %w", port.ErrNotFound)
	}
	return s.getOne(ctx, `SELECT `+fileColumns+` FROM files WHERE public_id = ?`, publicID)
}

func (s *FileStore) getOne(ctx context.Context, query, arg string) (*domain.FileRecord, error) {
	file, err := scanFile(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("file %s: %w", arg, port.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find file: %w", err)
	}
	return file, nil
}

func (s *FileStore) ListByFolder(ctx context.Context, userID, folderID string) ([]domain.FileRecord, error) {
	return s.list(ctx,
		`SELECT `+fileColumns+` FROM files
		WHERE user_id = ? AND folder_id = ? AND deleted_at IS NULL
		ORDER BY created_at ASC, rowid ASC`,
		userID, folderID,
	)
}

func (s *FileStore) ListTrashed(ctx context.Context, userID string) ([]domain.FileRecord, error) {
	return s.list(ctx,
		`SELECT `+fileColumns+` FROM files
		WHERE user_id = ? AND deleted_at IS NOT NULL
		ORDER BY deleted_at DESC, rowid DESC`,
		userID,
	)
}

func (s *FileStore) ListRecent(ctx context.Context, userID string, limit int) ([]domain.FileRecord, error) {
	return s.list(ctx,
		`SELECT `+fileColumns+` FROM files
		WHERE user_id = ? AND deleted_at IS NULL AND last_accessed_at IS NOT NULL
		ORDER BY last_accessed_at DESC, rowid DESC
		LIMIT ?`,
		userID, limit,
	)
}

func (s *FileStore) list(ctx context.Context, query string, args ...any) ([]domain.FileRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer rows.Close()

	files := make([]domain.FileRecord, 0)
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		files = append(files, *file)
	}
	return files, rows.Err()
}

func (s *FileStore) Update(ctx context.Context, file *domain.FileRecord) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE files SET name = ?, public_id = ?, share_expires_at = ?, deleted_at = ?, last_accessed_at = ?
		WHERE id = ?`,
		file.Name,
		nullString(file.PublicID),
		nullMillis(file.ShareExpiresAt),
		nullMillis(file.DeletedAt),
		nullMillis(file.LastAccessedAt),
		file.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update file: %w", err)
	}
	return expectRow(res, "file", file.ID)
}

func (s *FileStore) TouchAccess(ctx context.Context, id string, at time.Time) error {
	res, err := s.db.ExecContext(ctx, `UPDATE files SET last_accessed_at = ? WHERE id = ?`, toMillis(at), id)
	if err != nil {
		return fmt.Errorf("failed to touch file: %w", err)
	}
	return expectRow(res, "file", id)
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM files WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// DeleteByFolder removes trashed and live files alike.
func (s *FileStore) DeleteByFolder(ctx context.Context, folderID string) ([]string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, `SELECT storage_key FROM files WHERE folder_id = ?`, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query folder files: %w", err)
	}
	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan storage key: %w", err)
		}
		keys = append(keys, key)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate folder files: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM files WHERE folder_id = ?`, folderID); err != nil {
		return nil, fmt.Errorf("failed to delete folder files: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit folder delete: %w", err)
	}
	return keys, nil
}
