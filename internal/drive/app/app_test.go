package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/adapter/outbound/sqlite"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/config"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuotaStore_Retention(t *testing.T) {
	tests := []struct {
		name             string
		retentionSeconds int
		wantPruner       bool
		wantRemaining    int
	}{
		{name: "DefaultKeepsEveryEvent", retentionSeconds: 0, wantPruner: false, wantRemaining: 2},
		{name: "ConfiguredRetentionPrunes", retentionSeconds: 3600, wantPruner: true, wantRemaining: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "drive.db"))
			require.NoError(t, err)
			defer func() { _ = db.Close() }()

			cfg := config.DefaultConfig()
			cfg.Quota.RetentionSeconds = tt.retentionSeconds

			store, pruner := newQuotaStore(cfg, db, nil)
			assert.Equal(t, tt.wantPruner, pruner != nil)

			now := time.Now()
			require.NoError(t, store.Append(ctx, domain.QuotaEvent{UserID: "u1", FolderID: "f1", FileCount: 1, CreatedAt: now.Add(-2 * time.Hour)}))
			require.NoError(t, store.Append(ctx, domain.QuotaEvent{UserID: "u1", FolderID: "f1", FileCount: 1, CreatedAt: now}))

			service.NewMaintenance(nil, pruner, cfg.QuotaRetention()).RunOnce(ctx)

			n, err := store.CountSince(ctx, "u1", now.Add(-24*time.Hour))
			require.NoError(t, err)
			assert.Equal(t, tt.wantRemaining, n)
		})
	}
}
