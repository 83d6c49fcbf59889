package service

import (
	"context"
	"fmt"
	"time"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/port"
	"github.com/anthanhphan/gosdk/logger"
)

// UsageLogObserver appends a one-line usage record per archive.
type UsageLogObserver struct {
	journal port.UsageJournal
}

var _ port.ArchiveObserver = (*UsageLogObserver)(nil)

func NewUsageLogObserver(journal port.UsageJournal) *UsageLogObserver {
	return &UsageLogObserver{journal: journal}
}

func (o *UsageLogObserver) Name() string { return "usage_log" }

func (o *UsageLogObserver) OnArchiveCompleted(ctx context.Context, event domain.ArchiveCompletionEvent) error {
	if err := o.journal.Append(ctx, usageLine(event)); err != nil {
		logger.Warnw("Failed to write usage log", "folder_id", event.FolderID, "error", err.Error())
	}
	return nil
}

func usageLine(event domain.ArchiveCompletionEvent) string {
	return fmt.Sprintf("[%s] user=%s folder=%s files=%d createdAt=%s",
		domain.ActionZipCreated,
		event.UserID,
		event.FolderID,
		event.FileCount,
		event.CompletedAt.UTC().Format(time.RFC3339),
	)
}
