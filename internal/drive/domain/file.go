package domain

import (
	"io"
	"time"
)

// FileRecord is the metadata of one stored file. The bytes live in blob storage under StorageKey.
type FileRecord struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user"`
	FolderID       string     `json:"folder"`
	Name           string     `json:"name"`
	Size           int64      `json:"size"`
	ContentType    string     `json:"mimetype"`
	StorageKey     string     `json:"-"`
	PublicID       string     `json:"publicId,omitempty"`
	ShareExpiresAt *time.Time `json:"expiresAt,omitempty"`
	DeletedAt      *time.Time `json:"deletedAt,omitempty"`
	LastAccessedAt *time.Time `json:"lastAccessedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// InTrash reports whether the file has been soft-deleted.
func (f *FileRecord) InTrash() bool {
	return f.DeletedAt != nil
}

// ShareExpired reports whether the public link stopped being valid at now.
func (f *FileRecord) ShareExpired(now time.Time) bool {
	return f.ShareExpiresAt != nil && now.After(*f.ShareExpiresAt)
}

// Upload is an incoming file body with its client-supplied name and type.
type Upload struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// ShareLink is the result of publishing a file.
type ShareLink struct {
	PublicID  string    `json:"publicId"`
	URL       string    `json:"publicUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Download is a byte stream handed to the transport together with its response headers.
// Size is -1 when unknown. The receiver must close Stream.
type Download struct {
	Stream   io.ReadCloser
	Filename string
	Size     int64
	Headers  map[string]string
}
