package service

import (
	"context"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/port"
	"github.com/anthanhphan/gosdk/logger"
)

// AuditObserver persists one audit entry per archive.
type AuditObserver struct {
	log port.AuditLog
}

var _ port.ArchiveObserver = (*AuditObserver)(nil)

func NewAuditObserver(log port.AuditLog) *AuditObserver {
	return &AuditObserver{log: log}
}

func (o *AuditObserver) Name() string { return "audit" }

// OnArchiveCompleted never returns an error: a failed write only leaves a diagnostic.
func (o *AuditObserver) OnArchiveCompleted(ctx context.Context, event domain.ArchiveCompletionEvent) error {
	entry := domain.AuditEntry{
		Action:    domain.ActionZipCreated,
		UserID:    event.UserID,
		FolderID:  event.FolderID,
		FileCount: event.FileCount,
		CreatedAt: event.CompletedAt,
	}
	if err := o.log.Record(ctx, entry); err != nil {
		logger.Warnw("Failed to record audit log",
			"user_id", event.UserID,
			"folder_id", event.FolderID,
			"error", err.Error(),
		)
		return nil
	}

	logger.Debugw("Audit entry recorded", "user_id", event.UserID, "folder_id", event.FolderID, "files", event.FileCount)
	return nil
}
