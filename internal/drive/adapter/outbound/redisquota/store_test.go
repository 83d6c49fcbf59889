package redisquota

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
	"github.com/anthanhphan/go-cloud-drive/pkg/resilience"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Name:             "redis-quota",
		FailureThreshold: 2,
		SuccessThreshold: 1,
		OpenTimeout:      time.Minute,
	})
	return NewStore(client, breaker, 10*time.Minute), mr
}

func TestStore_AppendAndCount(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)
	now := time.Now()

	for _, age := range []time.Duration{0, 10 * time.Second, 10 * time.Second, 90 * time.Second} {
		require.NoError(t, store.Append(ctx, domain.QuotaEvent{UserID: "u1", FolderID: "f1", FileCount: 1, CreatedAt: now.Add(-age)}))
	}

	n, err := store.CountSince(ctx, "u1", now.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 3, n, "identical timestamps must count separately")

	n, err = store.CountSince(ctx, "u2", now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	assert.True(t, mr.Exists(userKey("u1")))
	assert.Greater(t, mr.TTL(userKey("u1")), time.Duration(0))
}

func TestStore_TrimsBeyondRetention(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	now := time.Now()

	require.NoError(t, store.Append(ctx, domain.QuotaEvent{UserID: "u1", CreatedAt: now.Add(-time.Hour)}))
	require.NoError(t, store.Append(ctx, domain.QuotaEvent{UserID: "u1", CreatedAt: now}))

	n, err := store.CountSince(ctx, "u1", now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStore_ZeroRetentionKeepsEverything(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := NewStore(client, resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{Name: "redis-quota"}), 0)
	now := time.Now()

	require.NoError(t, store.Append(ctx, domain.QuotaEvent{UserID: "u1", CreatedAt: now.Add(-48 * time.Hour)}))
	require.NoError(t, store.Append(ctx, domain.QuotaEvent{UserID: "u1", CreatedAt: now}))

	n, err := store.CountSince(ctx, "u1", now.Add(-72*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, time.Duration(0), mr.TTL(userKey("u1")))
}

func TestStore_BreakerOpensWhenRedisIsDown(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)
	mr.Close()

	for i := 0; i < 2; i++ {
		_, err := store.CountSince(ctx, "u1", time.Now())
		require.Error(t, err)
	}

	_, err := store.CountSince(ctx, "u1", time.Now())
	assert.True(t, errors.Is(err, resilience.ErrCircuitOpen))
}
