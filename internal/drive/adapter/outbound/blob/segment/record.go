package segment

import (
	"bufio"
	"encoding/binary"
	"errors"
	"hash"
	"hash/crc32"
	"io"
	"math"
)

// Record layout:
//
//	keyLen u32 | key | kind u8 | dataLen u64 | data | crc32(data) u32
//
// All integers are big endian. Tombstones carry no data.
const (
	kindPut       byte = 1
	kindTombstone byte = 2

	maxKeyLen   = 4096
	trailerSize = 4
)

var (
	ErrCorrupt = errors.New("segment record corrupt")

	errTornRecord = errors.New("torn record")
)

type recordHeader struct {
	key     string
	kind    byte
	dataLen int64
}

func (h recordHeader) size() int64 {
	return int64(4 + len(h.key) + 1 + 8)
}

func (h recordHeader) recordSize() int64 {
	return h.size() + h.dataLen + trailerSize
}

func encodeHeader(key string, kind byte, dataLen int64) []byte {
	buf := make([]byte, 4+len(key)+1+8)
	binary.BigEndian.PutUint32(buf[0:4], uint32(len(key))) // #nosec G115 -- bounded by maxKeyLen
	copy(buf[4:], key)
	buf[4+len(key)] = kind
	binary.BigEndian.PutUint64(buf[5+len(key):], uint64(dataLen)) // #nosec G115 -- non-negative
	return buf
}

func encodeTrailer(sum uint32) []byte {
	buf := make([]byte, trailerSize)
	binary.BigEndian.PutUint32(buf, sum)
	return buf
}

// readHeader returns io.EOF at a clean record boundary and errTornRecord for
// anything that cannot be the start of a valid record.
func readHeader(r *bufio.Reader) (recordHeader, error) {
	var lenBuf [4]byte
	n, err := io.ReadFull(r, lenBuf[:])
	if err != nil {
		if n == 0 && errors.Is(err, io.EOF) {
			return recordHeader{}, io.EOF
		}
		return recordHeader{}, errTornRecord
	}

	keyLen := binary.BigEndian.Uint32(lenBuf[:])
	if keyLen == 0 || keyLen > maxKeyLen {
		return recordHeader{}, errTornRecord
	}
	key := make([]byte, keyLen)
	if _, err := io.ReadFull(r, key); err != nil {
		return recordHeader{}, errTornRecord
	}

	var rest [9]byte
	if _, err := io.ReadFull(r, rest[:]); err != nil {
		return recordHeader{}, errTornRecord
	}
	kind := rest[0]
	dataLen := binary.BigEndian.Uint64(rest[1:])

	switch {
	case kind != kindPut && kind != kindTombstone:
		return recordHeader{}, errTornRecord
	case kind == kindTombstone && dataLen != 0:
		return recordHeader{}, errTornRecord
	case dataLen > math.MaxInt64:
		return recordHeader{}, errTornRecord
	}

	return recordHeader{key: string(key), kind: kind, dataLen: int64(dataLen)}, nil
}

// verifyingReader checks the stored checksum once the payload is fully read.
type verifyingReader struct {
	r    io.Reader
	c    io.Closer
	hash hash.Hash32
	want uint32
}

func newVerifyingReader(r io.Reader, c io.Closer, want uint32) *verifyingReader {
	return &verifyingReader{r: r, c: c, hash: crc32.NewIEEE(), want: want}
}

func (v *verifyingReader) Read(p []byte) (int, error) {
	n, err := v.r.Read(p)
	if n > 0 {
		_, _ = v.hash.Write(p[:n])
	}
	if errors.Is(err, io.EOF) && v.hash.Sum32() != v.want {
		return n, ErrCorrupt
	}
	return n, err
}

func (v *verifyingReader) Close() error {
	return v.c.Close()
}
