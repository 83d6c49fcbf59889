package cache

import (
	"context"
	"sync"
	"time"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/port"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	folderCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "drive_folder_cache_hits_total",
		Help: "Folder lookups served from the in-process cache.",
	})
	folderCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "drive_folder_cache_misses_total",
		Help: "Folder lookups that went to the backing store.",
	})
)

// FolderStore caches GetByID results of another FolderStore. Writes go through
// and invalidate the cached entry. A lookup that overlapped any write is returned
// but not cached.
type FolderStore struct {
	next  port.FolderStore
	cache *expirable.LRU[string, domain.Folder]

	// mu orders cache fills against invalidations; writes counts invalidations.
	mu     sync.Mutex
	writes uint64
}

var _ port.FolderStore = (*FolderStore)(nil)

func NewFolderStore(next port.FolderStore, size int, ttl time.Duration) *FolderStore {
	if size <= 0 {
		size = 1024
	}
	return &FolderStore{
		next:  next,
		cache: expirable.NewLRU[string, domain.Folder](size, nil, ttl),
	}
}

func (s *FolderStore) Create(ctx context.Context, folder *domain.Folder) error {
	return s.next.Create(ctx, folder)
}

func (s *FolderStore) GetByID(ctx context.Context, id string) (*domain.Folder, error) {
	if cached, ok := s.cache.Get(id); ok {
		folderCacheHits.Inc()
		return &cached, nil
	}
	folderCacheMisses.Inc()

	s.mu.Lock()
	before := s.writes
	s.mu.Unlock()

	folder, err := s.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.writes == before {
		s.cache.Add(id, *folder)
	}
	s.mu.Unlock()
	return folder, nil
}

func (s *FolderStore) ListByUser(ctx context.Context, userID string) ([]domain.Folder, error) {
	return s.next.ListByUser(ctx, userID)
}

func (s *FolderStore) Rename(ctx context.Context, id, name string) error {
	s.invalidate(id)
	defer s.invalidate(id)
	return s.next.Rename(ctx, id, name)
}

func (s *FolderStore) Delete(ctx context.Context, id string) error {
	s.invalidate(id)
	defer s.invalidate(id)
	return s.next.Delete(ctx, id)
}

func (s *FolderStore) invalidate(id string) {
	s.mu.Lock()
	s.writes++
	s.cache.Remove(id)
	s.mu.Unlock()
}
