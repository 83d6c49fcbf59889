package service

import (
	"context"
	"time"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/port"
	"github.com/anthanhphan/gosdk/logger"
)

// QuotaConfig bounds how many archives a user may create per window.
type QuotaConfig struct {
	Limit  int
	Window time.Duration
}

// QuotaTracker is a sliding-window counter over the quota event log.
type QuotaTracker struct {
	store  port.QuotaEventStore
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewQuotaTracker creates a tracker. Non-positive values fall back to 3 per minute.
func NewQuotaTracker(store port.QuotaEventStore, cfg QuotaConfig) *QuotaTracker {
	if cfg.Limit <= 0 {
		cfg.Limit = 3
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return &QuotaTracker{
		store:  store,
		limit:  cfg.Limit,
		window: cfg.Window,
		now:    time.Now,
	}
}

// Check counts the user's events inside the window. A store failure is logged and
// reported as under the limit.
func (t *QuotaTracker) Check(ctx context.Context, userID string) domain.QuotaStatus {
	status := domain.QuotaStatus{Limit: t.limit, Window: t.window}

	count, err := t.store.CountSince(ctx, userID, t.now().Add(-t.window))
	if err != nil {
		logger.Warnw("Quota count failed, allowing request", "user_id", userID, "error", err.Error())
		return status
	}

	status.Count = count
	status.OverLimit = count >= t.limit
	return status
}

// IsOverLimit reports whether the user exhausted the current window.
func (t *QuotaTracker) IsOverLimit(ctx context.Context, userID string) bool {
	return t.Check(ctx, userID).OverLimit
}

// RecordUsage appends one quota event. Failures are logged and dropped.
func (t *QuotaTracker) RecordUsage(ctx context.Context, userID, folderID string, fileCount int) {
	event := domain.QuotaEvent{
		UserID:    userID,
		FolderID:  folderID,
		FileCount: fileCount,
		CreatedAt: t.now(),
	}
	if err := t.store.Append(ctx, event); err != nil {
		logger.Warnw("Failed to record quota usage",
			"user_id", userID,
			"folder_id", folderID,
			"file_count", fileCount,
			"error", err.Error(),
		)
	}
}
