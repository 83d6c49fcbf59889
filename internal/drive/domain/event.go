package domain

import "time"

const ActionZipCreated = "ZIP_CREATED"

// QuotaEvent is one archive-creation attempt. Events are only appended.
type QuotaEvent struct {
	UserID    string
	FolderID  string
	FileCount int
	CreatedAt time.Time
}

// QuotaStatus is the outcome of a sliding-window quota check.
type QuotaStatus struct {
	Count     int
	Limit     int
	Window    time.Duration
	OverLimit bool
}

// RetryAfter is how long a limited caller should wait. The window is counted
// from now, so a full window always clears the oldest counted event.
func (s QuotaStatus) RetryAfter() time.Duration {
	return s.Window
}

// ArchiveCompletionEvent is published once per archive build. It is never persisted as is.
type ArchiveCompletionEvent struct {
	FolderID    string
	UserID      string
	FileCount   int
	CompletedAt time.Time
}

// AuditEntry is the durable audit record derived from an ArchiveCompletionEvent.
type AuditEntry struct {
	Action    string
	UserID    string
	FolderID  string
	FileCount int
	CreatedAt time.Time
}
