package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/port"
)

// FolderStore implements port.FolderStore.
type FolderStore struct {
	db *sql.DB
}

var _ port.FolderStore = (*FolderStore)(nil)

func NewFolderStore(d *DB) *FolderStore {
	return &FolderStore{db: d.db}
}

func (s *FolderStore) Create(ctx context.Context, folder *domain.Folder) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO folders (id, user_id, name, created_at) VALUES (?, ?, ?, ?)`,
		folder.ID, folder.UserID, folder.Name, toMillis(folder.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create folder: %w", err)
	}
	return nil
}

func (s *FolderStore) GetByID(ctx context.Context, id string) (*domain.Folder, error) {
	var (
		folder  domain.Folder
		created int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, created_at FROM folders WHERE id = ?`, id,
	).Scan(&folder.ID, &folder.UserID, &folder.Name, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("folder %s: %w", id, port.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find folder: %w", err)
	}

	folder.CreatedAt = fromMillis(created)
	return &folder, nil
}

func (s *FolderStore) ListByUser(ctx context.Context, userID string) ([]domain.Folder, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, name, created_at FROM folders WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query folders: %w", err)
	}
	defer rows.Close()

	folders := make([]domain.Folder, 0)
	for rows.Next() {
		var (
			folder  domain.Folder
			created int64
		)
		if err := rows.Scan(&folder.ID, &folder.UserID, &folder.Name, &created); err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		folder.CreatedAt = fromMillis(created)
		folders = append(folders, folder)
	}
	return folders, rows.Err()
}

func (s *FolderStore) Rename(ctx context.Context, id, name string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE folders SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("failed to rename folder: %w", err)
	}
	return expectRow(res, "folder", id)
}

func (s *FolderStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	return nil
}

func expectRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, port.ErrNotFound)
	}
	return nil
}
