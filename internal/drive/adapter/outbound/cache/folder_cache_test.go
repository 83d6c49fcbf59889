package cache

import (
	"context"
	"testing"
	"time"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/port"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/service/mocks"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestFolderStore_CachesLookups(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockFolderStore(ctrl)
	store := NewFolderStore(next, 16, time.Minute)
	ctx := context.Background()

	next.EXPECT().GetByID(gomock.Any(), "f1").Return(&domain.Folder{ID: "f1", UserID: "u1", Name: "A"}, nil).Times(1)

	hits := testutil.ToFloat64(folderCacheHits)
	for i := 0; i < 3; i++ {
		folder, err := store.GetByID(ctx, "f1")
		require.NoError(t, err)
		assert.Equal(t, "A", folder.Name)
	}
	assert.Equal(t, hits+2, testutil.ToFloat64(folderCacheHits))
}

func TestFolderStore_ReturnedCopyIsIsolated(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockFolderStore(ctrl)
	store := NewFolderStore(next, 16, time.Minute)
	ctx := context.Background()

	next.EXPECT().GetByID(gomock.Any(), "f1").Return(&domain.Folder{ID: "f1", Name: "A"}, nil)

	first, err := store.GetByID(ctx, "f1")
	require.NoError(t, err)
	first.Name = "mutated"

	second, err := store.GetByID(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "A", second.Name)
}

func TestFolderStore_WritesInvalidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockFolderStore(ctrl)
	store := NewFolderStore(next, 16, time.Minute)
	ctx := context.Background()

	gomock.InOrder(
		next.EXPECT().GetByID(gomock.Any(), "f1").Return(&domain.Folder{ID: "f1", Name: "A"}, nil),
		next.EXPECT().Rename(gomock.Any(), "f1", "B").Return(nil),
		next.EXPECT().GetByID(gomock.Any(), "f1").Return(&domain.Folder{ID: "f1", Name: "B"}, nil),
		next.EXPECT().Delete(gomock.Any(), "f1").Return(nil),
		next.EXPECT().GetByID(gomock.Any(), "f1").Return(nil, port.ErrNotFound),
	)

	_, err := store.GetByID(ctx, "f1")
	require.NoError(t, err)
	require.NoError(t, store.Rename(ctx, "f1", "B"))

	folder, err := store.GetByID(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "B", folder.Name)

	require.NoError(t, store.Delete(ctx, "f1"))
	_, err = store.GetByID(ctx, "f1")
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestFolderStore_LookupOverlappingRenameIsNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockFolderStore(ctrl)
	store := NewFolderStore(next, 16, time.Minute)
	ctx := context.Background()

	// The first lookup reads the old row, and the rename completes before it returns.
	next.EXPECT().GetByID(gomock.Any(), "f1").DoAndReturn(func(ctx context.Context, id string) (*domain.Folder, error) {
		require.NoError(t, store.Rename(ctx, id, "B"))
		return &domain.Folder{ID: id, Name: "A"}, nil
	}).Times(1)
	next.EXPECT().Rename(gomock.Any(), "f1", "B").Return(nil)
	next.EXPECT().GetByID(gomock.Any(), "f1").Return(&domain.Folder{ID: "f1", Name: "B"}, nil).Times(1)

	stale, err := store.GetByID(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "A", stale.Name)

	fresh, err := store.GetByID(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "B", fresh.Name)
}

func TestFolderStore_LookupDuringRenameIsEvicted(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockFolderStore(ctrl)
	store := NewFolderStore(next, 16, time.Minute)
	ctx := context.Background()

	gomock.InOrder(
		next.EXPECT().Rename(gomock.Any(), "f1", "B").DoAndReturn(func(ctx context.Context, id, _ string) error {
			folder, err := store.GetByID(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, "A", folder.Name)
			return nil
		}),
		next.EXPECT().GetByID(gomock.Any(), "f1").Return(&domain.Folder{ID: "f1", Name: "A"}, nil),
		next.EXPECT().GetByID(gomock.Any(), "f1").Return(&domain.Folder{ID: "f1", Name: "B"}, nil),
	)

	require.NoError(t, store.Rename(ctx, "f1", "B"))

	folder, err := store.GetByID(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "B", folder.Name)
}
