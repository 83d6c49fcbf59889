package segment

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/port"
	"github.com/anthanhphan/gosdk/logger"
)

const (
	// DefaultMaxSegmentBytes is 64MB
	DefaultMaxSegmentBytes = 64 * 1024 * 1024

	segmentPrefix = "segment_"
	segmentSuffix = ".log"
	compactDir    = "compact"
)

var ErrClosed = errors.New("segment store closed")

type Config struct {
	Dir             string
	MaxSegmentBytes int64
	FSync           bool
}

// location points at the payload of the latest put record of a key.
type location struct {
	segmentID  uint64
	dataOffset int64
	size       int64
	checksum   uint32
}

// Store keeps blobs in append-only segment files with an in-memory index that is
// rebuilt from the log on open. Removes append tombstones; Compact reclaims space.
type Store struct {
	indexMu      sync.RWMutex
	fileMu       sync.Mutex
	compactionMu sync.Mutex

	dir             string
	maxSegmentBytes int64
	fsync           bool

	active   *os.File
	activeID uint64
	index    map[string]location
}

var _ port.BlobStorage = (*Store)(nil)

// Open replays every segment in cfg.Dir. A torn tail left by a crash is truncated.
func Open(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create segment directory: %w", err)
	}
	if cfg.MaxSegmentBytes <= 0 {
		cfg.MaxSegmentBytes = DefaultMaxSegmentBytes
	}

	s := &Store{
		dir:             filepath.Clean(cfg.Dir),
		maxSegmentBytes: cfg.MaxSegmentBytes,
		fsync:           cfg.FSync,
		index:           make(map[string]location),
	}
	_ = os.RemoveAll(filepath.Join(s.dir, compactDir))

	if err := s.replay(); err != nil {
		return nil, fmt.Errorf("failed to replay segments: %w", err)
	}
	return s, nil
}

func (s *Store) segmentPath(id uint64) string {
	return filepath.Join(s.dir, segmentName(id))
}

func segmentName(id uint64) string {
	return fmt.Sprintf("%s%05d%s", segmentPrefix, id, segmentSuffix)
}

func listSegments(dir string) ([]uint64, error) {
	matches, err := filepath.Glob(filepath.Join(dir, segmentPrefix+"*"+segmentSuffix))
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(matches))
	for _, m := range matches {
		var id uint64
		if _, err := fmt.Sscanf(filepath.Base(m), segmentPrefix+"%d"+segmentSuffix, &id); err == nil {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *Store) replay() error {
	ids, err := listSegments(s.dir)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := s.replaySegment(id); err != nil {
			return err
		}
		s.activeID = id
	}
	if s.activeID == 0 {
		s.activeID = 1
	}

	logger.Infow("Segment store replayed", "dir", s.dir, "segments", len(ids), "live_blobs", len(s.index))
	return s.openActiveLocked()
}

func (s *Store) replaySegment(id uint64) error {
	f, err := os.OpenFile(s.segmentPath(id), os.O_RDWR, 0o600) // #nosec G304 -- path built from data dir and id
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	r := bufio.NewReader(f)
	offset := int64(0)
	torn := false

	for {
		h, err := readHeader(r)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			torn = true
			break
		}
		if offset+h.recordSize() > info.Size() {
			torn = true
			break
		}

		sum := crc32.NewIEEE()
		if _, err := io.CopyN(sum, r, h.dataLen); err != nil {
			torn = true
			break
		}
		var trailer [trailerSize]byte
		if _, err := io.ReadFull(r, trailer[:]); err != nil {
			torn = true
			break
		}
		checksum := binary.BigEndian.Uint32(trailer[:])
		if checksum != sum.Sum32() {
			torn = true
			break
		}

		switch h.kind {
		case kindPut:
			s.index[h.key] = location{
				segmentID:  id,
				dataOffset: offset + h.size(),
				size:       h.dataLen,
				checksum:   checksum,
			}
		case kindTombstone:
			delete(s.index, h.key)
		}
		offset += h.recordSize()
	}

	if torn {
		if err := f.Truncate(offset); err != nil {
			return fmt.Errorf("failed to truncate torn segment %d: %w", id, err)
		}
		logger.Warnw("Truncated torn segment tail during replay", "segment_id", id, "valid_bytes", offset)
	}
	return nil
}

func (s *Store) openActiveLocked() error {
	f, err := os.OpenFile(s.segmentPath(s.activeID), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o600) // #nosec G304
	if err != nil {
		return err
	}
	s.active = f
	return nil
}

func (s *Store) rotateLocked() error {
	if s.active != nil {
		_ = s.active.Sync()
		_ = s.active.Close()
		s.active = nil
	}
	s.activeID++
	return s.openActiveLocked()
}

func (s *Store) rotateIfFullLocked() {
	info, err := s.active.Stat()
	if err != nil || info.Size() <= s.maxSegmentBytes {
		return
	}
	if err := s.rotateLocked(); err != nil {
		logger.Errorw("Segment rotation failed", "segment_id", s.activeID, "error", err.Error())
	}
}

// Save spools r to a temp file first so the segment lock is held only for the copy.
func (s *Store) Save(ctx context.Context, key string, r io.Reader) (int64, error) {
	if key == "" || len(key) > maxKeyLen {
		return 0, fmt.Errorf("invalid blob key length %d", len(key))
	}

	s.indexMu.RLock()
	_, exists := s.index[key]
	s.indexMu.RUnlock()
	if exists {
		return 0, fmt.Errorf("blob %s already exists", key)
	}

	spool, err := os.CreateTemp(s.dir, "upload-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("failed to create spool file: %w", err)
	}
	defer func() {
		_ = spool.Close()
		_ = os.Remove(spool.Name())
	}()

	sum := crc32.NewIEEE()
	size, err := io.Copy(io.MultiWriter(spool, sum), r)
	if err != nil {
		return 0, fmt.Errorf("failed to spool blob: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if _, err := spool.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}

	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	loc, err := s.appendLocked(key, kindPut, spool, size, sum.Sum32())
	if err != nil {
		return 0, err
	}

	s.indexMu.Lock()
	s.index[key] = loc
	s.indexMu.Unlock()

	s.rotateIfFullLocked()
	return size, nil
}

// appendLocked writes one record to the active segment. A failed write is cut off again.
func (s *Store) appendLocked(key string, kind byte, data io.Reader, size int64, checksum uint32) (location, error) {
	if s.active == nil {
		return location{}, ErrClosed
	}

	offset, err := s.active.Seek(0, io.SeekEnd)
	if err != nil {
		return location{}, err
	}

	header := encodeHeader(key, kind, size)
	err = func() error {
		if _, err := s.active.Write(header); err != nil {
			return err
		}
		if size > 0 {
			if _, err := io.CopyN(s.active, data, size); err != nil {
				return err
			}
		}
		_, err := s.active.Write(encodeTrailer(checksum))
		return err
	}()
	if err != nil {
		if tErr := s.active.Truncate(offset); tErr != nil {
			logger.Errorw("Failed to cut off partial record", "segment_id", s.activeID, "error", tErr.Error())
		}
		return location{}, fmt.Errorf("failed to append record: %w", err)
	}

	if s.fsync {
		if err := s.active.Sync(); err != nil {
			return location{}, fmt.Errorf("failed to sync segment: %w", err)
		}
	}

	return location{
		segmentID:  s.activeID,
		dataOffset: offset + int64(len(header)),
		size:       size,
		checksum:   checksum,
	}, nil
}

// Open returns a reader whose final Read fails with ErrCorrupt on checksum mismatch.
// A segment dropped by a concurrent compaction is retried against the new index.
func (s *Store) Open(_ context.Context, key string) (io.ReadCloser, error) {
	for attempt := 0; ; attempt++ {
		s.indexMu.RLock()
		loc, ok := s.index[key]
		s.indexMu.RUnlock()
		if !ok {
			return nil, port.ErrBlobNotFound
		}

		f, err := os.Open(s.segmentPath(loc.segmentID)) // #nosec G304
		if err != nil {
			if errors.Is(err, os.ErrNotExist) && attempt == 0 {
				continue
			}
			return nil, fmt.Errorf("failed to open segment %d: %w", loc.segmentID, err)
		}
		return newVerifyingReader(io.NewSectionReader(f, loc.dataOffset, loc.size), f, loc.checksum), nil
	}
}

func (s *Store) Remove(_ context.Context, key string) error {
	s.indexMu.RLock()
	_, ok := s.index[key]
	s.indexMu.RUnlock()
	if !ok {
		return nil
	}

	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	if _, err := s.appendLocked(key, kindTombstone, nil, 0, crc32.ChecksumIEEE(nil)); err != nil {
		return err
	}

	s.indexMu.Lock()
	delete(s.index, key)
	s.indexMu.Unlock()
	return nil
}

// Len returns the number of live blobs.
func (s *Store) Len() int {
	s.indexMu.RLock()
	defer s.indexMu.RUnlock()
	return len(s.index)
}

func (s *Store) Close() error {
	s.fileMu.Lock()
	defer s.fileMu.Unlock()
	if s.active == nil {
		return nil
	}
	err := s.active.Close()
	s.active = nil
	return err
}
