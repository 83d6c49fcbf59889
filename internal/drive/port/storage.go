package port

import (
	"context"
	"errors"
	"io"
)

var ErrBlobNotFound = errors.New("blob not found")

//go:generate mockgen -destination=../service/mocks/storage_mock.go -package=mocks -source=storage.go

// BlobStorage keeps raw file bytes under opaque keys.
type BlobStorage interface {
	// Save streams r into storage under key and returns the number of bytes written.
	Save(ctx context.Context, key string, r io.Reader) (int64, error)

	// Open returns an independent read stream. Missing keys yield ErrBlobNotFound.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Remove deletes the bytes. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
