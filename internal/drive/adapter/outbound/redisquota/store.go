package redisquota

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/port"
	"github.com/anthanhphan/go-cloud-drive/pkg/resilience"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "drive:quota:zip:"

// Store keeps quota events in one sorted set per user, scored by unix millis.
// Calls go through a circuit breaker so a dead Redis fails fast.
type Store struct {
	client    redis.UniversalClient
	breaker   *resilience.CircuitBreaker
	retention time.Duration
}

var _ port.QuotaEventStore = (*Store)(nil)

// NewStore trims each user's set to retention and expires it retention after the
// last write. A zero retention keeps every event.
func NewStore(client redis.UniversalClient, breaker *resilience.CircuitBreaker, retention time.Duration) *Store {
	return &Store{
		client:    client,
		breaker:   breaker,
		retention: retention,
	}
}

func userKey(userID string) string {
	return keyPrefix + userID
}

func (s *Store) Append(ctx context.Context, event domain.QuotaEvent) error {
	key := userKey(event.UserID)
	score := float64(event.CreatedAt.UnixMilli())

	err := s.breaker.Execute(ctx, func(ctx context.Context) error {
		pipe := s.client.TxPipeline()
		pipe.ZAdd(ctx, key, redis.Z{
			Score:  score,
			Member: event.FolderID + ":" + uuid.NewString(),
		})
		if s.retention > 0 {
			cutoff := event.CreatedAt.Add(-s.retention).UnixMilli()
			pipe.ZRemRangeByScore(ctx, key, "-inf", "("+strconv.FormatInt(cutoff, 10))
			pipe.Expire(ctx, key, s.retention)
		}
		_, err := pipe.Exec(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to append quota event: %w", err)
	}
	return nil
}

func (s *Store) CountSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var n int64
	err := s.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		n, err = s.client.ZCount(ctx, userKey(userID), strconv.FormatInt(since.UnixMilli(), 10), "+inf").Result()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count quota events: %w", err)
	}
	return int(n), nil
}
