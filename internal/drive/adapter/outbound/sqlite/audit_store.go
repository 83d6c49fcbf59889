package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/port"
)

// AuditStore appends rows to zip_audit.
type AuditStore struct {
	db *sql.DB
}

var _ port.AuditLog = (*AuditStore)(nil)

func NewAuditStore(d *DB) *AuditStore {
	return &AuditStore{db: d.db}
}

func (s *AuditStore) Record(ctx context.Context, entry domain.AuditEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO zip_audit (action, user_id, folder_id, file_count, created_at) VALUES (?, ?, ?, ?, ?)`,
		entry.Action, entry.UserID, entry.FolderID, entry.FileCount, toMillis(entry.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

// listByUser returns the user's audit trail, oldest first.
func (s *AuditStore) listByUser(ctx context.Context, userID string) ([]domain.AuditEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT action, user_id, folder_id, file_count, created_at FROM zip_audit WHERE user_id = ? ORDER BY id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.AuditEntry, 0)
	for rows.Next() {
		var (
			entry   domain.AuditEntry
			created int64
		)
		if err := rows.Scan(&entry.Action, &entry.UserID, &entry.FolderID, &entry.FileCount, &created); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entry.CreatedAt = fromMillis(created)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
