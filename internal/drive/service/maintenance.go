package service

import (
	"context"
	"time"

	"github.com/anthanhphan/gosdk/logger"
)

//go:generate mockgen -destination=mocks/maintenance_mock.go -package=mocks -source=maintenance.go

// Compactor reclaims space held by removed blobs.
type Compactor interface {
	Compact() error
}

// QuotaPruner drops quota events older than the configured retention.
type QuotaPruner interface {
	Prune(ctx context.Context, before time.Time) (int64, error)
}

// Maintenance runs periodic housekeeping. Either dependency may be nil.
type Maintenance struct {
	compactor Compactor
	pruner    QuotaPruner
	retention time.Duration
	now       func() time.Time
}

// NewMaintenance prunes quota events older than retention. Zero retention disables pruning.
func NewMaintenance(compactor Compactor, pruner QuotaPruner, retention time.Duration) *Maintenance {
	return &Maintenance{
		compactor: compactor,
		pruner:    pruner,
		retention: retention,
		now:       time.Now,
	}
}

// Start runs a pass every interval until ctx is canceled.
func (m *Maintenance) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.RunOnce(ctx)
		}
	}
}

// RunOnce prunes expired quota events and compacts blob storage. Failures are logged.
func (m *Maintenance) RunOnce(ctx context.Context) {
	if m.pruner != nil && m.retention > 0 {
		cutoff := m.now().Add(-m.retention)
		removed, err := m.pruner.Prune(ctx, cutoff)
		if err != nil {
			logger.Warnw("Quota event pruning failed", "cutoff", cutoff, "error", err.Error())
		} else if removed > 0 {
			logger.Infow("Pruned quota events", "removed", removed, "cutoff", cutoff)
		}
	}

	if m.compactor != nil {
		if err := m.compactor.Compact(); err != nil {
			logger.Warnw("Blob compaction failed", "error", err.Error())
		}
	}
}
