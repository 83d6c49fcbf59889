package service

import (
	"context"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/port"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	archivesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "drive_archives_created_total",
		Help: "Number of zip archives started.",
	})
	archiveFileCount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "drive_archive_files",
		Help:    "Number of files per zip archive.",
		Buckets: []float64{0, 1, 2, 3, 4, 5, 10},
	})
)

// MetricsObserver exports archive counters to Prometheus.
type MetricsObserver struct{}

var _ port.ArchiveObserver = MetricsObserver{}

func (MetricsObserver) Name() string { return "metrics" }

func (MetricsObserver) OnArchiveCompleted(_ context.Context, event domain.ArchiveCompletionEvent) error {
	archivesCreatedTotal.Inc()
	archiveFileCount.Observe(float64(event.FileCount))
	return nil
}
