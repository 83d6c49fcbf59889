package journal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/port"
)

// File appends one line per entry to a single log file.
type File struct {
	mu   sync.Mutex
	path string
	f    *os.File
}

var _ port.UsageJournal = (*File)(nil)

// Open creates the parent directory and opens path for appending.
func Open(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640) // #nosec G304 -- path from config
	if err != nil {
		return nil, fmt.Errorf("failed to open journal %s: %w", path, err)
	}
	return &File{path: path, f: f}, nil
}

// Append writes line followed by a newline. Embedded newlines are flattened.
func (j *File) Append(ctx context.Context, line string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	line = strings.ReplaceAll(line, "\n", " ")

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.f == nil {
		return fmt.Errorf("journal %s is closed", j.path)
	}
	if _, err := j.f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("failed to append to journal: %w", err)
	}
	return nil
}

func (j *File) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.f == nil {
		return nil
	}
	err := j.f.Close()
	j.f = nil
	return err
}
