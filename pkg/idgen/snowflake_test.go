package idgen

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type stepClock struct {
	ms int64
}

func (c *stepClock) Now() int64 {
	return c.ms
}

func TestSnowflake_Next(t *testing.T) {
	clock := &stepClock{ms: Epoch + 1000}
	sf, err := New(7, clock)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	id1, err := sf.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	id2, err := sf.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}

	if id1 >= id2 {
		t.Fatalf("ids must increase: %d then %d", id1, id2)
	}
	if node := (id1 >> nodeShift) & maxNodeID; node != 7 {
		t.Fatalf("expected node 7 in id, got %d", node)
	}
	if ms := id1>>timestampShift + Epoch; ms != Epoch+1000 {
		t.Fatalf("expected timestamp %d in id, got %d", Epoch+1000, ms)
	}
}

func TestSnowflake_NextString(t *testing.T) {
	sf, _ := New(1, &stepClock{ms: Epoch + 5})
	s, err := sf.NextString()
	if err != nil {
		t.Fatalf("NextString failed: %v", err)
	}
	if _, err := strconv.ParseInt(s, 10, 64); err != nil {
		t.Fatalf("expected base-10 id, got %q", s)
	}
}

func TestSnowflake_InvalidNodeID(t *testing.T) {
	for _, node := range []int64{-1, 1024} {
		if _, err := New(node, nil); !errors.Is(err, ErrInvalidNodeID) {
			t.Fatalf("New(%d): expected ErrInvalidNodeID, got %v", node, err)
		}
	}
}

func TestSnowflake_ClockSkew(t *testing.T) {
	tests := []struct {
		name    string
		back    int64
		wantErr bool
	}{
		{name: "WithinTolerance", back: MaxBackwardSkewMillis},
		{name: "BeyondTolerance", back: 1000, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &stepClock{ms: Epoch + 2000}
			sf, _ := New(1, clock)
			first, err := sf.Next()
			if err != nil {
				t.Fatalf("Next failed: %v", err)
			}

			clock.ms -= tt.back
			second, err := sf.Next()
			if tt.wantErr {
				if !errors.Is(err, ErrClockMovedBack) {
					t.Fatalf("expected ErrClockMovedBack, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Next failed: %v", err)
			}
			if second <= first {
				t.Fatalf("ids must keep increasing under small skew: %d then %d", first, second)
			}
		})
	}
}

func TestRedisClock_Now(t *testing.T) {
	mr := miniredis.RunT(t)
	fixed := time.UnixMilli(Epoch + 123456)
	mr.SetTime(fixed)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	clock := NewRedisClock(client, time.Second)
	if got := clock.Now(); got != fixed.UnixMilli() {
		t.Fatalf("expected redis time %d, got %d", fixed.UnixMilli(), got)
	}
}

func TestRedisClock_FallsBackToLocalTime(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()
	mr.Close()

	before := time.Now().UnixMilli()
	got := NewRedisClock(client, 50*time.Millisecond).Now()
	if got < before {
		t.Fatalf("expected local time fallback >= %d, got %d", before, got)
	}
}

func TestRedisClock_KeepsOffsetWhenRedisDrops(t *testing.T) {
	mr := miniredis.RunT(t)
	fixed := time.UnixMilli(Epoch + 987654)
	mr.SetTime(fixed)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	clock := NewRedisClock(client, 50*time.Millisecond)
	if got := clock.Now(); got != fixed.UnixMilli() {
		t.Fatalf("expected redis time %d, got %d", fixed.UnixMilli(), got)
	}

	mr.Close()
	got := clock.Now()
	if got < fixed.UnixMilli() || got > fixed.UnixMilli()+int64(5*time.Second/time.Millisecond) {
		t.Fatalf("expected offset time near %d, got %d", fixed.UnixMilli(), got)
	}
}
