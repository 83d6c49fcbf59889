package service

import (
	"context"
	"fmt"
	"time"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/port"
	"github.com/anthanhphan/go-cloud-drive/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
)

// EventBus broadcasts archive completion events to observers registered at construction.
// Each observer runs as its own job and never blocks the publisher or another observer.
// Deliveries are best effort: when the queue is full they are dropped.
type EventBus struct {
	pool      *resilience.WorkerPool
	observers []port.ArchiveObserver
	timeout   time.Duration
}

// NewEventBus dispatches through pool. Observer panics are recovered inside each job.
func NewEventBus(pool *resilience.WorkerPool, observers ...port.ArchiveObserver) *EventBus {
	return &EventBus{
		pool:      pool,
		observers: observers,
		timeout:   10 * time.Second,
	}
}

// Publish queues the event for every observer and returns immediately.
func (b *EventBus) Publish(event domain.ArchiveCompletionEvent) {
	for _, obs := range b.observers {
		job := b.deliveryJob(obs, event)

		// A full queue or a closed pool drops the delivery.
		if err := b.pool.TrySubmit(job); err != nil {
			logger.Warnw("Dropping archive event",
				"observer", obs.Name(),
				"folder_id", event.FolderID,
				"error", err.Error(),
			)
		}
	}
}

// Close stops accepting events and waits for in-flight deliveries until ctx expires.
func (b *EventBus) Close(ctx context.Context) error {
	return b.pool.Shutdown(ctx)
}

func (b *EventBus) deliveryJob(obs port.ArchiveObserver, event domain.ArchiveCompletionEvent) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
		defer cancel()

		if err := deliver(ctx, obs, event); err != nil {
			logger.Warnw("Archive observer failed",
				"observer", obs.Name(),
				"user_id", event.UserID,
				"folder_id", event.FolderID,
				"error", err.Error(),
			)
		}
	}
}

func deliver(ctx context.Context, obs port.ArchiveObserver, event domain.ArchiveCompletionEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("observer panic: %v", r)
		}
	}()
	return obs.OnArchiveCompleted(ctx, event)
}
