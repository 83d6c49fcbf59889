package idgen

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
)

// Layout: 41 bits of milliseconds since Epoch | 10 bits node | 12 bits sequence.
const (
	nodeBits     = 10
	sequenceBits = 12

	maxNodeID   = 1<<nodeBits - 1
	maxSequence = 1<<sequenceBits - 1

	nodeShift      = sequenceBits
	timestampShift = sequenceBits + nodeBits

	// Epoch is 2025-01-01 00:00:00 UTC.
	Epoch = 1735689600000

	// MaxBackwardSkewMillis is how far the clock may step back before Next fails.
	MaxBackwardSkewMillis = 5
)

var (
	ErrInvalidNodeID  = errors.New("node id out of range")
	ErrClockMovedBack = errors.New("clock moved backwards")
)

// Snowflake hands out time-ordered 64-bit ids. Ids from one generator never repeat,
// even when a shared clock falls back to local time and drifts by a few milliseconds.
type Snowflake struct {
	mu       sync.Mutex
	clock    Clock
	nodeID   int64
	lastTime int64
	sequence int64
}

// New creates a generator for nodeID. A nil clock means the system clock.
func New(nodeID int64, clock Clock) (*Snowflake, error) {
	if nodeID < 0 || nodeID > maxNodeID {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidNodeID, nodeID, maxNodeID)
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Snowflake{clock: clock, nodeID: nodeID, lastTime: -1}, nil
}

func (s *Snowflake) Next() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now, err := s.tick()
	if err != nil {
		return 0, err
	}

	if now == s.lastTime {
		s.sequence = (s.sequence + 1) & maxSequence
		if s.sequence == 0 {
			for now <= s.lastTime {
				now = s.clock.Now()
			}
		}
	} else {
		s.sequence = 0
	}
	s.lastTime = now

	return (now-Epoch)<<timestampShift | s.nodeID<<nodeShift | s.sequence, nil
}

// tick reads the clock. A small step back reuses the last timestamp so the
// sequence keeps ids ordered; a larger one is an error.
func (s *Snowflake) tick() (int64, error) {
	now := s.clock.Now()
	if now >= s.lastTime {
		return now, nil
	}
	if skew := s.lastTime - now; skew > MaxBackwardSkewMillis {
		return 0, fmt.Errorf("%w by %dms", ErrClockMovedBack, skew)
	}
	return s.lastTime, nil
}

// NextString returns the next id in base 10, the form stored for folders and files.
func (s *Snowflake) NextString() (string, error) {
	id, err := s.Next()
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(id, 10), nil
}
