package service

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/port"
)

// memBlobs is an in-memory BlobStorage that tracks open readers.
type memBlobs struct {
	mu      sync.Mutex
	data    map[string][]byte
	openErr map[string]error
	opened  int
	closed  int
}

func newMemBlobs(entries map[string]string) *memBlobs {
	m := &memBlobs{data: make(map[string][]byte), openErr: make(map[string]error)}
	for k, v := range entries {
		m.data[k] = []byte(v)
	}
	return m
}

func (m *memBlobs) Save(_ context.Context, key string, r io.Reader) (int64, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = b
	return int64(len(b)), nil
}

func (m *memBlobs) Open(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.openErr[key]; ok {
		return nil, err
	}
	b, ok := m.data[key]
	if !ok {
		return nil, port.ErrBlobNotFound
	}
	m.opened++
	return &trackedReader{Reader: bytes.NewReader(b), onClose: m.markClosed}, nil
}

func (m *memBlobs) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memBlobs) markClosed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed++
}

func (m *memBlobs) counts() (opened, closed int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opened, m.closed
}

type trackedReader struct {
	*bytes.Reader
	once    sync.Once
	onClose func()
}

func (r *trackedReader) Close() error {
	r.once.Do(r.onClose)
	return nil
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.ArchiveCompletionEvent
}

func (p *recordingPublisher) Publish(event domain.ArchiveCompletionEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) published() []domain.ArchiveCompletionEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.ArchiveCompletionEvent, len(p.events))
	copy(out, p.events)
	return out
}

// memQuotaEvents is an in-memory QuotaEventStore.
type memQuotaEvents struct {
	mu     sync.Mutex
	events []domain.QuotaEvent
}

func (s *memQuotaEvents) Append(_ context.Context, event domain.QuotaEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *memQuotaEvents) CountSince(_ context.Context, userID string, since time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.events {
		if e.UserID == userID && !e.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

type fixedIDs struct {
	ids []string
}

func (f *fixedIDs) NextString() (string, error) {
	id := f.ids[0]
	f.ids = f.ids[1:]
	return id, nil
}
