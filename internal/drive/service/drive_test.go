package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/config"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/port"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

type driveFixture struct {
	svc     *DriveServiceImpl
	folders *mocks.MockFolderStore
	files   *mocks.MockFileStore
	blobs   *memBlobs
}

func newDriveFixture(t *testing.T, ids ...string) *driveFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &driveFixture{
		folders: mocks.NewMockFolderStore(ctrl),
		files:   mocks.NewMockFileStore(ctrl),
		blobs:   newMemBlobs(map[string]string{"blob-1": "hello"}),
	}
	cfg := config.DefaultConfig()
	cfg.App.BaseURL = "https://drive.example.com/"

	f.svc = NewDriveService(cfg, Dependencies{
		Folders:     f.folders,
		Files:       f.files,
		Blobs:       f.blobs,
		QuotaEvents: &memQuotaEvents{},
		Events:      &recordingPublisher{},
		IDGen:       &fixedIDs{ids: ids},
	})
	f.svc.now = func() time.Time { return testNow }
	return f
}

func ownedFile() *domain.FileRecord {
	return &domain.FileRecord{
		ID:          "file-1",
		UserID:      "u1",
		FolderID:    "f1",
		Name:        "hello.txt",
		Size:        5,
		ContentType: "text/plain",
		StorageKey:  "blob-1",
	}
}

func assertKind(t *testing.T, err error, kind error, msg string) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, kind)
	assert.Equal(t, msg, err.Error())
}

func TestFolderService(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateTrimsName", func(t *testing.T) {
		f := newDriveFixture(t, "100")
		f.folders.EXPECT().Create(gomock.Any(), &domain.Folder{ID: "100", UserID: "u1", Name: "Reports", CreatedAt: testNow}).Return(nil)

		folder, err := f.svc.CreateFolder(ctx, "u1", "  Reports ")
		require.NoError(t, err)
		assert.Equal(t, "100", folder.ID)
	})

	t.Run("CreateRequiresName", func(t *testing.T) {
		f := newDriveFixture(t)
		_, err := f.svc.CreateFolder(ctx, "u1", "   ")
		assertKind(t, err, port.ErrInvalidArgument, "Folder name is required")
	})

	t.Run("RenameForeignFolder", func(t *testing.T) {
		f := newDriveFixture(t)
		f.folders.EXPECT().GetByID(gomock.Any(), "f1").Return(&domain.Folder{ID: "f1", UserID: "u2"}, nil)

		_, err := f.svc.RenameFolder(ctx, "u1", "f1", "New")
		assertKind(t, err, port.ErrForbidden, "Not authorized to update this folder")
	})

	t.Run("RenameMissingFolder", func(t *testing.T) {
		f := newDriveFixture(t)
		f.folders.EXPECT().GetByID(gomock.Any(), "f9").Return(nil, port.ErrNotFound)

		_, err := f.svc.RenameFolder(ctx, "u1", "f9", "New")
		assertKind(t, err, port.ErrNotFound, "Folder not found")
	})

	t.Run("DeleteCascades", func(t *testing.T) {
		f := newDriveFixture(t)
		gomock.InOrder(
			f.folders.EXPECT().GetByID(gomock.Any(), "f1").Return(&domain.Folder{ID: "f1", UserID: "u1"}, nil),
			f.files.EXPECT().DeleteByFolder(gomock.Any(), "f1").Return([]string{"blob-1"}, nil),
			f.folders.EXPECT().Delete(gomock.Any(), "f1").Return(nil),
		)

		require.NoError(t, f.svc.DeleteFolder(ctx, "u1", "f1"))
		_, err := f.blobs.Open(ctx, "blob-1")
		assert.ErrorIs(t, err, port.ErrBlobNotFound)
	})
}

func TestFileService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newDriveFixture(t, "200")
		f.folders.EXPECT().GetByID(gomock.Any(), "f1").Return(&domain.Folder{ID: "f1", UserID: "u1"}, nil)

		var stored *domain.FileRecord
		f.files.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, rec *domain.FileRecord) error {
			stored = rec
			return nil
		})

		rec, err := f.svc.UploadFile(ctx, "u1", "f1", domain.Upload{
			Name: "../notes.md",
			Body: strings.NewReader("# notes"),
		})
		require.NoError(t, err)
		assert.Same(t, stored, rec)
		assert.Equal(t, "200", rec.ID)
		assert.Equal(t, "notes.md", rec.Name)
		assert.Equal(t, int64(7), rec.Size)
		assert.NotEmpty(t, rec.StorageKey)

		rc, err := f.blobs.Open(ctx, rec.StorageKey)
		require.NoError(t, err)
		body, _ := io.ReadAll(rc)
		assert.Equal(t, "# notes", string(body))
	})

	t.Run("RecordFailureRemovesBlob", func(t *testing.T) {
		f := newDriveFixture(t, "201")
		f.folders.EXPECT().GetByID(gomock.Any(), "f1").Return(&domain.Folder{ID: "f1", UserID: "u1"}, nil)

		var key string
		f.files.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, rec *domain.FileRecord) error {
			key = rec.StorageKey
			return errors.New("constraint failed")
		})

		_, err := f.svc.UploadFile(ctx, "u1", "f1", domain.Upload{Name: "a.txt", Body: strings.NewReader("x")})
		require.Error(t, err)
		_, err = f.blobs.Open(ctx, key)
		assert.ErrorIs(t, err, port.ErrBlobNotFound)
	})

	t.Run("ForeignFolder", func(t *testing.T) {
		f := newDriveFixture(t)
		f.folders.EXPECT().GetByID(gomock.Any(), "f1").Return(&domain.Folder{ID: "f1", UserID: "u2"}, nil)

		_, err := f.svc.UploadFile(ctx, "u1", "f1", domain.Upload{Name: "a.txt", Body: strings.NewReader("x")})
		assertKind(t, err, port.ErrForbidden, "Not authorized to upload to this folder")
	})
}

func TestDetectContentType(t *testing.T) {
	tests := []struct {
		declared string
		name     string
		want     string
	}{
		{declared: "image/png", name: "x.bin", want: "image/png"},
		{declared: "", name: "doc.pdf", want: "application/pdf"},
		{declared: "application/octet-stream", name: "doc.PDF", want: "application/pdf"},
		{declared: "", name: "noext", want: "application/octet-stream"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, detectContentType(tt.declared, tt.name), tt.name)
	}
}

func TestFileService_Access(t *testing.T) {
	ctx := context.Background()

	t.Run("DownloadTouchesAccess", func(t *testing.T) {
		f := newDriveFixture(t)
		f.files.EXPECT().GetByID(gomock.Any(), "file-1").Return(ownedFile(), nil)
		f.files.EXPECT().TouchAccess(gomock.Any(), "file-1", testNow).Return(nil)

		dl, err := f.svc.OpenFile(ctx, "u1", "file-1")
		require.NoError(t, err)
		defer dl.Stream.Close()
		assert.Equal(t, `attachment; filename="hello.txt"`, dl.Headers["Content-Disposition"])
		assert.Equal(t, int64(5), dl.Size)
	})

	t.Run("DownloadMissingBytes", func(t *testing.T) {
		f := newDriveFixture(t)
		rec := ownedFile()
		rec.StorageKey = "gone"
		f.files.EXPECT().GetByID(gomock.Any(), "file-1").Return(rec, nil)

		_, err := f.svc.OpenFile(ctx, "u1", "file-1")
		assertKind(t, err, port.ErrNotFound, "File not found on server")
	})

	t.Run("TrashedFileHidden", func(t *testing.T) {
		f := newDriveFixture(t)
		rec := ownedFile()
		rec.DeletedAt = &testNow
		f.files.EXPECT().GetByID(gomock.Any(), "file-1").Return(rec, nil)

		_, err := f.svc.GetFile(ctx, "u1", "file-1")
		assertKind(t, err, port.ErrNotFound, "File not found")
	})

	t.Run("PreviewUnsupported", func(t *testing.T) {
		f := newDriveFixture(t)
		f.files.EXPECT().GetByID(gomock.Any(), "file-1").Return(ownedFile(), nil)

		_, err := f.svc.PreviewFile(ctx, "u1", "file-1")
		assertKind(t, err, port.ErrUnsupportedMedia, "Unsupported file type for preview")
	})

	t.Run("PreviewImageInline", func(t *testing.T) {
		f := newDriveFixture(t)
		rec := ownedFile()
		rec.ContentType = "IMAGE/PNG"
		f.files.EXPECT().GetByID(gomock.Any(), "file-1").Return(rec, nil)
		f.files.EXPECT().TouchAccess(gomock.Any(), "file-1", testNow).Return(errors.New("busy"))

		dl, err := f.svc.PreviewFile(ctx, "u1", "file-1")
		require.NoError(t, err)
		defer dl.Stream.Close()
		assert.Equal(t, "inline", dl.Headers["Content-Disposition"])
	})

	t.Run("RenameForeign", func(t *testing.T) {
		f := newDriveFixture(t)
		rec := ownedFile()
		rec.UserID = "u2"
		f.files.EXPECT().GetByID(gomock.Any(), "file-1").Return(rec, nil)

		_, err := f.svc.RenameFile(ctx, "u1", "file-1", "x.txt")
		assertKind(t, err, port.ErrForbidden, "Not authorized to rename this file")
	})

	t.Run("RenameRequiresName", func(t *testing.T) {
		f := newDriveFixture(t)
		_, err := f.svc.RenameFile(ctx, "u1", "file-1", " ")
		assertKind(t, err, port.ErrInvalidArgument, "New file name is required")
	})

	t.Run("RenameRejectsSeparators", func(t *testing.T) {
		for _, name := range []string{"../../evil.txt", "/abs.txt", `dir\x.txt`} {
			f := newDriveFixture(t)
			_, err := f.svc.RenameFile(ctx, "u1", "file-1", name)
			assertKind(t, err, port.ErrInvalidArgument, "File name must not contain path separators")
		}
	})

	t.Run("TrashSetsDeletedAt", func(t *testing.T) {
		f := newDriveFixture(t)
		f.files.EXPECT().GetByID(gomock.Any(), "file-1").Return(ownedFile(), nil)
		f.files.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, rec *domain.FileRecord) error {
			require.NotNil(t, rec.DeletedAt)
			assert.Equal(t, testNow, *rec.DeletedAt)
			return nil
		})

		require.NoError(t, f.svc.TrashFile(ctx, "u1", "file-1"))
	})
}

func TestFileService_Share(t *testing.T) {
	ctx := context.Background()
	f := newDriveFixture(t)
	f.files.EXPECT().GetByID(gomock.Any(), "file-1").Return(ownedFile(), nil)
	f.files.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	link, err := f.svc.ShareFile(ctx, "u1", "file-1")
	require.NoError(t, err)
	assert.NotEmpty(t, link.PublicID)
	assert.Equal(t, "https://drive.example.com/public/"+link.PublicID, link.URL)
	assert.Equal(t, testNow.Add(24*time.Hour), link.ExpiresAt)
}

func TestFileService_OpenPublic(t *testing.T) {
	ctx := context.Background()
	past := testNow.Add(-time.Minute)
	future := testNow.Add(time.Hour)

	tests := []struct {
		name     string
		record   *domain.FileRecord
		lookErr  error
		wantKind error
		wantMsg  string
	}{
		{name: "Unknown", lookErr: port.ErrNotFound, wantKind: port.ErrNotFound, wantMsg: "Shared file not found"},
		{name: "Expired", record: &domain.FileRecord{ID: "x", StorageKey: "blob-1", ShareExpiresAt: &past}, wantKind: port.ErrGone, wantMsg: "This link has expired."},
		{name: "Trashed", record: &domain.FileRecord{ID: "x", StorageKey: "blob-1", ShareExpiresAt: &future, DeletedAt: &past}, wantKind: port.ErrNotFound, wantMsg: "Shared file not found"},
		{name: "Valid", record: &domain.FileRecord{ID: "x", Name: "hello.txt", StorageKey: "blob-1", ShareExpiresAt: &future}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDriveFixture(t)
			f.files.EXPECT().GetByPublicID(gomock.Any(), "pub").Return(tt.record, tt.lookErr)

			dl, err := f.svc.OpenPublic(ctx, "pub")
			if tt.wantKind != nil {
				assertKind(t, err, tt.wantKind, tt.wantMsg)
				return
			}
			require.NoError(t, err)
			defer dl.Stream.Close()
			body, _ := io.ReadAll(dl.Stream)
			assert.Equal(t, "hello", string(body))
		})
	}
}

func TestTrashService(t *testing.T) {
	ctx := context.Background()

	t.Run("RestoreNotTrashed", func(t *testing.T) {
		f := newDriveFixture(t)
		f.files.EXPECT().GetByID(gomock.Any(), "file-1").Return(ownedFile(), nil)

		err := f.svc.RestoreFile(ctx, "u1", "file-1")
		assertKind(t, err, port.ErrInvalidArgument, "File is not in trash")
	})

	t.Run("RestoreClearsDeletedAt", func(t *testing.T) {
		f := newDriveFixture(t)
		rec := ownedFile()
		rec.DeletedAt = &testNow
		f.files.EXPECT().GetByID(gomock.Any(), "file-1").Return(rec, nil)
		f.files.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *domain.FileRecord) error {
			assert.Nil(t, r.DeletedAt)
			return nil
		})

		require.NoError(t, f.svc.RestoreFile(ctx, "u1", "file-1"))
	})

	t.Run("PurgeRemovesBytesAndRecord", func(t *testing.T) {
		f := newDriveFixture(t)
		rec := ownedFile()
		rec.DeletedAt = &testNow
		f.files.EXPECT().GetByID(gomock.Any(), "file-1").Return(rec, nil)
		f.files.EXPECT().Delete(gomock.Any(), "file-1").Return(nil)

		require.NoError(t, f.svc.PurgeFile(ctx, "u1", "file-1"))
		_, err := f.blobs.Open(ctx, "blob-1")
		assert.ErrorIs(t, err, port.ErrBlobNotFound)
	})

	t.Run("PurgeForeign", func(t *testing.T) {
		f := newDriveFixture(t)
		rec := ownedFile()
		rec.UserID = "u2"
		f.files.EXPECT().GetByID(gomock.Any(), "file-1").Return(rec, nil)

		err := f.svc.PurgeFile(ctx, "u1", "file-1")
		assertKind(t, err, port.ErrForbidden, "Not authorized to permanently delete this file")
	})
}

func TestRecentService_UsesConfiguredLimit(t *testing.T) {
	f := newDriveFixture(t)
	f.svc.cfg.App.RecentLimit = 0
	f.files.EXPECT().ListRecent(gomock.Any(), "u1", 20).Return([]domain.FileRecord{*ownedFile()}, nil)

	files, err := f.svc.ListRecent(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, files, 1)
}
