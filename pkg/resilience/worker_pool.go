package resilience

import (
	"context"
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ErrWorkerPoolClosed = errors.New("worker pool is closed")
	ErrWorkerPoolFull   = errors.New("worker pool queue is full")
)

var (
	poolQueued = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "resilience_worker_pool_queued_jobs",
		Help: "Jobs waiting for a worker.",
	}, []string{"pool"})
	poolRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resilience_worker_pool_rejected_total",
		Help: "Jobs refused because the queue was full or the pool closed.",
	}, []string{"pool", "reason"})
)

// PanicHandler receives the value recovered from a panicking job.
type PanicHandler func(recovered any)

type WorkerPoolOption func(*WorkerPool)

// WithPanicHandler keeps workers alive when a job panics.
func WithPanicHandler(h PanicHandler) WorkerPoolOption {
	return func(p *WorkerPool) {
		p.onPanic = h
	}
}

// WithName labels the pool's metrics.
func WithName(name string) WorkerPoolOption {
	return func(p *WorkerPool) {
		p.name = name
	}
}

// WorkerPool runs submitted jobs on a fixed set of goroutines fed by a bounded queue.
type WorkerPool struct {
	name    string
	queue   chan func()
	onPanic PanicHandler

	// gate guards stopped and the send side of queue.
	gate    sync.RWMutex
	stopped bool
	workers sync.WaitGroup
}

func NewWorkerPool(workers, queueSize int, opts ...WorkerPoolOption) *WorkerPool {
	workers = max(workers, 1)
	if queueSize <= 0 {
		queueSize = workers
	}

	p := &WorkerPool{name: "default", queue: make(chan func(), queueSize)}
	for _, opt := range opts {
		opt(p)
	}

	p.workers.Add(workers)
	for range workers {
		go p.work()
	}
	return p
}

func (p *WorkerPool) work() {
	defer p.workers.Done()
	queued := poolQueued.WithLabelValues(p.name)
	for job := range p.queue {
		queued.Dec()
		p.run(job)
	}
}

func (p *WorkerPool) run(job func()) {
	defer func() {
		if p.onPanic == nil {
			return
		}
		if r := recover(); r != nil {
			p.onPanic(r)
		}
	}()
	job()
}

// Submit queues job, blocking while the queue is full.
func (p *WorkerPool) Submit(ctx context.Context, job func()) error {
	return p.enqueue(ctx, job, true)
}

// TrySubmit queues job or fails with ErrWorkerPoolFull.
func (p *WorkerPool) TrySubmit(job func()) error {
	return p.enqueue(context.Background(), job, false)
}

func (p *WorkerPool) enqueue(ctx context.Context, job func(), wait bool) error {
	if job == nil {
		return nil
	}

	p.gate.RLock()
	defer p.gate.RUnlock()
	if p.stopped {
		poolRejected.WithLabelValues(p.name, "closed").Inc()
		return ErrWorkerPoolClosed
	}

	// Counted before the send so a fast worker never drives the gauge negative.
	queued := poolQueued.WithLabelValues(p.name)
	queued.Inc()

	if wait {
		select {
		case p.queue <- job:
			return nil
		case <-ctx.Done():
			queued.Dec()
			return ctx.Err()
		}
	}

	select {
	case p.queue <- job:
		return nil
	default:
		queued.Dec()
		poolRejected.WithLabelValues(p.name, "full").Inc()
		return ErrWorkerPoolFull
	}
}

// Close stops accepting jobs. Queued jobs still run.
func (p *WorkerPool) Close() {
	p.gate.Lock()
	defer p.gate.Unlock()
	if !p.stopped {
		p.stopped = true
		close(p.queue)
	}
}

func (p *WorkerPool) Wait() {
	p.workers.Wait()
}

// Shutdown closes the pool and waits for queued jobs until ctx expires.
func (p *WorkerPool) Shutdown(ctx context.Context) error {
	p.Close()

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		p.Wait()
	}()

	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
