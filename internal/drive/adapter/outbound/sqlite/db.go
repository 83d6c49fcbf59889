package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/anthanhphan/gosdk/logger"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS folders (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	name       TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_folders_user ON folders(user_id, created_at);

CREATE TABLE IF NOT EXISTS files (
	id               TEXT PRIMARY KEY,
	user_id          TEXT NOT NULL,
	folder_id        TEXT NOT NULL,
	name             TEXT NOT NULL,
	size             INTEGER NOT NULL,
	mime_type        TEXT NOT NULL,
	storage_key      TEXT NOT NULL,
	public_id        TEXT,
	share_expires_at INTEGER,
	deleted_at       INTEGER,
	last_accessed_at INTEGER,
	created_at       INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_files_folder ON files(folder_id, created_at);
CREATE INDEX IF NOT EXISTS idx_files_user_access ON files(user_id, last_accessed_at);
CREATE UNIQUE INDEX IF NOT EXISTS idx_files_public ON files(public_id) WHERE public_id IS NOT NULL;

CREATE TABLE IF NOT EXISTS quota_events (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id    TEXT NOT NULL,
	folder_id  TEXT NOT NULL,
	file_count INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_quota_events_user ON quota_events(user_id, created_at);

CREATE TABLE IF NOT EXISTS zip_audit (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	action     TEXT NOT NULL,
	user_id    TEXT NOT NULL,
	folder_id  TEXT NOT NULL,
	file_count INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);
`

// DB owns the SQLite handle shared by every store of this package.
type DB struct {
	db *sql.DB
}

// Open creates the database file if needed and applies the schema.
func Open(ctx context.Context, path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// pragmas below apply per connection
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Infow("SQLite database ready", "path", path)
	return &DB{db: db}, nil
}

func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *DB) Close() error {
	return d.db.Close()
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func nullMillis(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixMilli(), Valid: true}
}

func timePtr(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := fromMillis(n.Int64)
	return &t
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
