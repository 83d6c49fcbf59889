package service

import (
	"archive/zip"
	"compress/flate"
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/port"
	"github.com/anthanhphan/gosdk/logger"
)

const ContentTypeZip = "application/zip"

// EventPublisher receives archive completion events.
type EventPublisher interface {
	Publish(event domain.ArchiveCompletionEvent)
}

// ArchiveBuilder streams folder files as a zip archive through an io.Pipe.
// Blob reads are paced by the consumer of the returned stream.
type ArchiveBuilder struct {
	blobs     port.BlobStorage
	publisher EventPublisher
	level     int
	now       func() time.Time
}

// NewArchiveBuilder creates a builder that compresses entries at level.
func NewArchiveBuilder(blobs port.BlobStorage, publisher EventPublisher, level int) *ArchiveBuilder {
	if level < flate.HuffmanOnly || level > flate.BestCompression {
		level = flate.BestCompression
	}
	return &ArchiveBuilder{
		blobs:     blobs,
		publisher: publisher,
		level:     level,
		now:       time.Now,
	}
}

// Build starts streaming files in order and publishes one completion event before returning.
// Failures after this point surface as read errors on the returned stream.
// Closing the stream early aborts the writer and releases any open blob.
func (b *ArchiveBuilder) Build(ctx context.Context, folder *domain.Folder, files []domain.FileRecord) (*domain.Download, error) {
	entries := make([]domain.FileRecord, len(files))
	copy(entries, files)

	pr, pw := io.Pipe()
	go b.writeArchive(ctx, pw, folder.ID, entries)

	filename := folder.Name + ".zip"
	b.publisher.Publish(domain.ArchiveCompletionEvent{
		FolderID:    folder.ID,
		UserID:      folder.UserID,
		FileCount:   len(entries),
		CompletedAt: b.now(),
	})

	return &domain.Download{
		Stream:   pr,
		Filename: filename,
		Size:     -1,
		Headers:  streamHeaders(ContentTypeZip, contentDisposition(dispositionAttachment, filename)),
	}, nil
}

func (b *ArchiveBuilder) writeArchive(ctx context.Context, pw *io.PipeWriter, folderID string, files []domain.FileRecord) {
	zw := zip.NewWriter(pw)
	level := b.level
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})

	for i := range files {
		if err := b.appendEntry(ctx, zw, &files[i]); err != nil {
			logger.Warnw("Archive stream aborted",
				"folder_id", folderID,
				"file_id", files[i].ID,
				"error", err.Error(),
			)
			_ = pw.CloseWithError(err)
			return
		}
	}

	if err := zw.Close(); err != nil {
		_ = pw.CloseWithError(port.StreamError("finalize archive", err))
		return
	}
	_ = pw.Close()
}

// appendEntry opens the blob before writing the entry header, so a missing blob
// fails the stream before any of its bytes are emitted.
func (b *ArchiveBuilder) appendEntry(ctx context.Context, zw *zip.Writer, file *domain.FileRecord) error {
	if err := ctx.Err(); err != nil {
		return port.StreamError("append "+file.Name, err)
	}

	rc, err := b.blobs.Open(ctx, file.StorageKey)
	if err != nil {
		return port.StreamError("open "+file.Name, err)
	}
	defer func() { _ = rc.Close() }()

	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     entryName(file),
		Method:   zip.Deflate,
		Modified: file.CreatedAt,
	})
	if err != nil {
		return port.StreamError("create entry "+file.Name, err)
	}

	if _, err := io.Copy(w, &contextReader{ctx: ctx, r: rc}); err != nil {
		return port.StreamError("copy "+file.Name, err)
	}
	return nil
}

// entryName keeps every entry inside the extraction directory: backslashes become
// slashes, and leading "/" and ".." segments are dropped.
func entryName(file *domain.FileRecord) string {
	name := path.Clean("/" + strings.ReplaceAll(file.Name, `\`, "/"))
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return file.ID
	}
	return name
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
