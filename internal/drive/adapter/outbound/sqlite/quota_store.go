package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/port"
)

// QuotaStore keeps quota events in the quota_events table.
type QuotaStore struct {
	db *sql.DB
}

var _ port.QuotaEventStore = (*QuotaStore)(nil)

func NewQuotaStore(d *DB) *QuotaStore {
	return &QuotaStore{db: d.db}
}

func (s *QuotaStore) Append(ctx context.Context, event domain.QuotaEvent) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO quota_events (user_id, folder_id, file_count, created_at) VALUES (?, ?, ?, ?)`,
		event.UserID, event.FolderID, event.FileCount, toMillis(event.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to append quota event: %w", err)
	}
	return nil
}

func (s *QuotaStore) CountSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM quota_events WHERE user_id = ? AND created_at >= ?`,
		userID, toMillis(since),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count quota events: %w", err)
	}
	return n, nil
}

// Prune drops events older than before. The window never looks that far back.
func (s *QuotaStore) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quota_events WHERE created_at < ?`, toMillis(before))
	if err != nil {
		return 0, fmt.Errorf("failed to prune quota events: %w", err)
	}
	return res.RowsAffected()
}
