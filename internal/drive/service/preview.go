package service

import (
	"context"
	"strings"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/port"
)

const msgPreviewUnsupported = "Unsupported file type for preview"

// previewer renders one family of content types inline.
type previewer interface {
	supports(contentType string) bool
	render(ctx context.Context, core *DriveServiceImpl, file *domain.FileRecord) (*domain.Download, error)
}

// previewRegistry picks the first previewer that supports a file. The last entry always matches.
type previewRegistry struct {
	previewers []previewer
}

func newPreviewRegistry() *previewRegistry {
	return &previewRegistry{
		previewers: []previewer{
			imagePreviewer{},
			pdfPreviewer{},
			fallbackPreviewer{},
		},
	}
}

func (r *previewRegistry) forFile(file *domain.FileRecord) previewer {
	ct := strings.ToLower(strings.TrimSpace(file.ContentType))
	for _, p := range r.previewers {
		if p.supports(ct) {
			return p
		}
	}
	return r.previewers[len(r.previewers)-1]
}

type imagePreviewer struct{}

func (imagePreviewer) supports(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

func (imagePreviewer) render(ctx context.Context, core *DriveServiceImpl, file *domain.FileRecord) (*domain.Download, error) {
	return renderInline(ctx, core, file, file.ContentType)
}

type pdfPreviewer struct{}

func (pdfPreviewer) supports(contentType string) bool {
	return contentType == "application/pdf"
}

func (pdfPreviewer) render(ctx context.Context, core *DriveServiceImpl, file *domain.FileRecord) (*domain.Download, error) {
	return renderInline(ctx, core, file, "application/pdf")
}

type fallbackPreviewer struct{}

func (fallbackPreviewer) supports(string) bool { return true }

func (fallbackPreviewer) render(context.Context, *DriveServiceImpl, *domain.FileRecord) (*domain.Download, error) {
	return nil, port.NewError(port.ErrUnsupportedMedia, msgPreviewUnsupported)
}

func renderInline(ctx context.Context, core *DriveServiceImpl, file *domain.FileRecord, contentType string) (*domain.Download, error) {
	dl, err := core.openBlob(ctx, file)
	if err != nil {
		return nil, err
	}
	dl.Headers = streamHeaders(contentType, dispositionInline)
	return dl, nil
}
