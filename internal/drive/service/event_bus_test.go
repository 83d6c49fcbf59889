package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
	"github.com/anthanhphan/go-cloud-drive/pkg/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type funcObserver struct {
	name string
	fn   func(ctx context.Context, event domain.ArchiveCompletionEvent) error
}

func (o funcObserver) Name() string { return o.name }

func (o funcObserver) OnArchiveCompleted(ctx context.Context, event domain.ArchiveCompletionEvent) error {
	return o.fn(ctx, event)
}

func TestEventBus_FailingObserversDoNotAffectOthers(t *testing.T) {
	var (
		mu       sync.Mutex
		received []string
		wg       sync.WaitGroup
	)
	wg.Add(1)

	healthy := funcObserver{name: "healthy", fn: func(_ context.Context, e domain.ArchiveCompletionEvent) error {
		defer wg.Done()
		mu.Lock()
		defer mu.Unlock()
		received = append(received, e.FolderID)
		return nil
	}}
	failing := funcObserver{name: "failing", fn: func(context.Context, domain.ArchiveCompletionEvent) error {
		return errors.New("disk full")
	}}
	panicking := funcObserver{name: "panicking", fn: func(context.Context, domain.ArchiveCompletionEvent) error {
		panic("boom")
	}}

	bus := NewEventBus(resilience.NewWorkerPool(1, 8), panicking, failing, healthy)
	bus.Publish(domain.ArchiveCompletionEvent{FolderID: "f1", UserID: "u1", FileCount: 2})

	waitGroupWithTimeout(t, &wg, 2*time.Second)
	require.NoError(t, bus.Close(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"f1"}, received)
}

func TestEventBus_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 3)
	var delivered atomic.Int32

	slow := funcObserver{name: "slow", fn: func(context.Context, domain.ArchiveCompletionEvent) error {
		started <- struct{}{}
		<-release
		delivered.Add(1)
		return nil
	}}

	bus := NewEventBus(resilience.NewWorkerPool(1, 1), slow)

	bus.Publish(domain.ArchiveCompletionEvent{FolderID: "running"})
	<-started

	start := time.Now()
	bus.Publish(domain.ArchiveCompletionEvent{FolderID: "queued"})
	bus.Publish(domain.ArchiveCompletionEvent{FolderID: "dropped"})
	assert.Less(t, time.Since(start), time.Second)

	close(release)
	require.NoError(t, bus.Close(context.Background()))
	assert.Equal(t, int32(2), delivered.Load())
}

func TestEventBus_PublishAfterClose(t *testing.T) {
	called := false
	obs := funcObserver{name: "late", fn: func(context.Context, domain.ArchiveCompletionEvent) error {
		called = true
		return nil
	}}

	bus := NewEventBus(resilience.NewWorkerPool(1, 1), obs)
	require.NoError(t, bus.Close(context.Background()))

	bus.Publish(domain.ArchiveCompletionEvent{FolderID: "f1"})
	assert.False(t, called)
}

func waitGroupWithTimeout(t *testing.T, wg *sync.WaitGroup, timeout time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatalf("observers did not finish within %s", timeout)
	}
}
