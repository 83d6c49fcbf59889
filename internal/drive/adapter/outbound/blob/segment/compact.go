package segment

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/anthanhphan/gosdk/logger"
)

// compactWriter fills temporary segments with live records.
type compactWriter struct {
	dir    string
	max    int64
	id     uint64
	f      *os.File
	offset int64
}

func (w *compactWriter) open() error {
	w.id++
	f, err := os.OpenFile(filepath.Join(w.dir, segmentName(w.id)), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600) // #nosec G304
	if err != nil {
		return err
	}
	w.f = f
	w.offset = 0
	return nil
}

func (w *compactWriter) write(key string, data io.Reader, loc location) (location, error) {
	if w.f == nil || w.offset > w.max {
		if err := w.close(); err != nil {
			return location{}, err
		}
		if err := w.open(); err != nil {
			return location{}, err
		}
	}

	header := encodeHeader(key, kindPut, loc.size)
	if _, err := w.f.Write(header); err != nil {
		return location{}, err
	}
	if _, err := io.CopyN(w.f, data, loc.size); err != nil {
		return location{}, err
	}
	if _, err := w.f.Write(encodeTrailer(loc.checksum)); err != nil {
		return location{}, err
	}

	out := location{
		segmentID:  w.id,
		dataOffset: w.offset + int64(len(header)),
		size:       loc.size,
		checksum:   loc.checksum,
	}
	w.offset += int64(len(header)) + loc.size + trailerSize
	return out, nil
}

func (w *compactWriter) close() error {
	if w.f == nil {
		return nil
	}
	if err := w.f.Sync(); err != nil {
		_ = w.f.Close()
		return err
	}
	err := w.f.Close()
	w.f = nil
	return err
}

// Compact rewrites live blobs of all sealed segments into fresh segments and
// deletes segments no longer referenced by the index.
func (s *Store) Compact() error {
	s.compactionMu.Lock()
	defer s.compactionMu.Unlock()

	s.fileMu.Lock()
	sealedUpTo := s.activeID
	if err := s.rotateLocked(); err != nil {
		s.fileMu.Unlock()
		return fmt.Errorf("failed to rotate before compaction: %w", err)
	}
	s.fileMu.Unlock()

	logger.Infow("Segment compaction started", "sealed_up_to", sealedUpTo)

	tmpDir := filepath.Join(s.dir, compactDir)
	if err := os.MkdirAll(tmpDir, 0o750); err != nil {
		return err
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	s.indexMu.RLock()
	snapshot := make(map[string]location)
	for key, loc := range s.index {
		if loc.segmentID <= sealedUpTo {
			snapshot[key] = loc
		}
	}
	s.indexMu.RUnlock()

	keys := make([]string, 0, len(snapshot))
	for key := range snapshot {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	compacted, err := s.copyLive(tmpDir, keys, snapshot)
	if err != nil {
		return err
	}

	s.fileMu.Lock()
	defer s.fileMu.Unlock()
	s.indexMu.Lock()

	tmpIDs, err := listSegments(tmpDir)
	if err != nil {
		s.indexMu.Unlock()
		return err
	}

	// compacted segments get ids above the current active segment
	remap := make(map[uint64]uint64, len(tmpIDs))
	next := s.activeID + 1
	for _, tmpID := range tmpIDs {
		if err := os.Rename(filepath.Join(tmpDir, segmentName(tmpID)), s.segmentPath(next)); err != nil {
			s.indexMu.Unlock()
			return fmt.Errorf("failed to publish compacted segment: %w", err)
		}
		remap[tmpID] = next
		next++
	}

	newIndex := make(map[string]location, len(s.index))
	var removed []string
	for key, loc := range compacted {
		if _, live := s.index[key]; !live {
			removed = append(removed, key)
			continue
		}
		loc.segmentID = remap[loc.segmentID]
		newIndex[key] = loc
	}
	for key, live := range s.index {
		if _, ok := newIndex[key]; !ok || live.segmentID > sealedUpTo {
			newIndex[key] = live
		}
	}
	s.index = newIndex
	s.indexMu.Unlock()

	// New writes must land above the compacted segments so replay order holds.
	if len(tmpIDs) > 0 {
		if s.active != nil {
			_ = s.active.Sync()
			_ = s.active.Close()
		}
		s.activeID = next
		if err := s.openActiveLocked(); err != nil {
			s.active = nil
			return fmt.Errorf("failed to open active segment after compaction: %w", err)
		}
	}
	// Keys removed while compacting still have a put in the compacted output.
	for _, key := range removed {
		if _, err := s.appendLocked(key, kindTombstone, nil, 0, 0); err != nil {
			return fmt.Errorf("failed to re-append tombstone: %w", err)
		}
	}

	s.indexMu.RLock()
	referenced := make(map[uint64]struct{}, len(s.index)+1)
	for _, loc := range s.index {
		referenced[loc.segmentID] = struct{}{}
	}
	s.indexMu.RUnlock()
	referenced[s.activeID] = struct{}{}

	dropped := s.dropUnreferenced(referenced)
	logger.Infow("Segment compaction finished",
		"sealed_up_to", sealedUpTo,
		"live_blobs", len(newIndex),
		"dropped_segments", dropped,
	)
	return nil
}

func (s *Store) copyLive(tmpDir string, keys []string, snapshot map[string]location) (map[string]location, error) {
	w := &compactWriter{dir: tmpDir, max: s.maxSegmentBytes}
	sources := make(map[uint64]*os.File)
	defer func() {
		for _, f := range sources {
			_ = f.Close()
		}
	}()

	out := make(map[string]location, len(keys))
	for _, key := range keys {
		loc := snapshot[key]
		src, ok := sources[loc.segmentID]
		if !ok {
			f, err := os.Open(s.segmentPath(loc.segmentID)) // #nosec G304
			if err != nil {
				logger.Warnw("Skipping blob during compaction", "segment_id", loc.segmentID, "error", err.Error())
				continue
			}
			sources[loc.segmentID] = f
			src = f
		}

		written, err := w.write(key, io.NewSectionReader(src, loc.dataOffset, loc.size), loc)
		if err != nil {
			_ = w.close()
			return nil, fmt.Errorf("failed to copy blob during compaction: %w", err)
		}
		out[key] = written
	}

	if err := w.close(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) dropUnreferenced(referenced map[uint64]struct{}) int {
	ids, err := listSegments(s.dir)
	if err != nil {
		logger.Warnw("Failed to list segments for cleanup", "error", err.Error())
		return 0
	}

	dropped := 0
	for _, id := range ids {
		if _, keep := referenced[id]; keep {
			continue
		}
		if err := os.Remove(s.segmentPath(id)); err != nil {
			logger.Warnw("Failed to remove segment", "segment_id", id, "error", err.Error())
			continue
		}
		dropped++
	}
	return dropped
}
