package http_handler

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
	"github.com/gofiber/fiber/v2"
)

const peekBufferSize = 32 * 1024

// streamBody keeps the buffered reader used for peeking and closes the source stream.
type streamBody struct {
	*bufio.Reader
	closer io.Closer
}

func (b *streamBody) Close() error {
	return b.closer.Close()
}

// sendDownload waits for the first byte before committing status and headers, so a
// failure that happens before any output still gets a JSON error. Later failures end
// the chunked body early.
func (s *Server) sendDownload(c *fiber.Ctx, dl *domain.Download) error {
	br := bufio.NewReaderSize(dl.Stream, peekBufferSize)
	if _, err := br.Peek(1); err != nil && !errors.Is(err, io.EOF) {
		_ = dl.Stream.Close()
		return s.writeError(c, err)
	}

	for k, v := range dl.Headers {
		c.Set(k, v)
	}
	c.Status(fiber.StatusOK)

	size := -1
	if dl.Size >= 0 {
		size = int(dl.Size)
	}
	return c.SendStream(&streamBody{Reader: br, closer: dl.Stream}, size)
}

// parseFileIDs splits a comma-separated list, trimming entries and dropping empty ones.
func parseFileIDs(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}

func (s *Server) handleZip(c *fiber.Ctx) error {
	ids := parseFileIDs(c.Query("files"))
	dl, err := s.service.BuildArchive(c.UserContext(), currentUser(c), c.Params("folderId"), ids)
	if err != nil {
		return s.writeError(c, err)
	}
	return s.sendDownload(c, dl)
}

func (s *Server) handleDownload(c *fiber.Ctx) error {
	dl, err := s.service.OpenFile(c.UserContext(), currentUser(c), c.Params("fileId"))
	if err != nil {
		return s.writeError(c, err)
	}
	return s.sendDownload(c, dl)
}

func (s *Server) handlePreview(c *fiber.Ctx) error {
	dl, err := s.service.PreviewFile(c.UserContext(), currentUser(c), c.Params("fileId"))
	if err != nil {
		return s.writeError(c, err)
	}
	return s.sendDownload(c, dl)
}

func (s *Server) handlePublic(c *fiber.Ctx) error {
	dl, err := s.service.OpenPublic(c.UserContext(), c.Params("publicId"))
	if err != nil {
		return s.writeError(c, err)
	}
	return s.sendDownload(c, dl)
}
