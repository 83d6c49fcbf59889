package idgen

import (
	"context"
	"sync"
	"time"

	"github.com/anthanhphan/gosdk/logger"
	"github.com/redis/go-redis/v9"
)

const defaultRedisClockTimeout = 200 * time.Millisecond

// Clock returns the current time in milliseconds since the Unix epoch.
type Clock interface {
	Now() int64
}

type SystemClock struct{}

func (SystemClock) Now() int64 {
	return time.Now().UnixMilli()
}

// RedisClock reads TIME from Redis so every drive process stamps ids from one source.
// While Redis is unreachable it applies the last observed offset to local time.
type RedisClock struct {
	client  redis.UniversalClient
	timeout time.Duration

	mu       sync.Mutex
	offset   int64
	degraded bool
}

func NewRedisClock(client redis.UniversalClient, timeout time.Duration) *RedisClock {
	if timeout <= 0 {
		timeout = defaultRedisClockTimeout
	}
	return &RedisClock{client: client, timeout: timeout}
}

func (r *RedisClock) Now() int64 {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	remote, err := r.client.Time(ctx).Result()
	local := time.Now().UnixMilli()

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		if !r.degraded {
			logger.Warnw("Redis clock unavailable, using local time", "offset_ms", r.offset, "error", err.Error())
			r.degraded = true
		}
		return local + r.offset
	}

	if r.degraded {
		logger.Infow("Redis clock recovered")
		r.degraded = false
	}
	r.offset = remote.UnixMilli() - local
	return remote.UnixMilli()
}
