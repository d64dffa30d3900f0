// internal/talon/segment.go
package talon

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Segment is a readable view of the talon status region. Reads are
// bounds checked by the implementation; nothing here guards against
// the external writer mutating the region mid-read.
type Segment interface {
	io.ReaderAt
	// Size returns the mapped size of the region in bytes.
	Size() int64
}

// MemorySegment is an in-process Segment backed by a byte slice. It
// stands in for the real region in tests and drives virtual mode.
type MemorySegment struct {
	buf []byte
}

// NewMemorySegment returns a zeroed segment of the given size.
func NewMemorySegment(size int64) *MemorySegment {
	return &MemorySegment{buf: make([]byte, size)}
}

// Size returns the segment size in bytes.
func (m *MemorySegment) Size() int64 { return int64(len(m.buf)) }

// ReadAt implements io.ReaderAt with bytes.Reader semantics: a read
// past the end returns io.EOF, a partial read returns the bytes that
// exist plus io.EOF.
func (m *MemorySegment) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("talon: negative segment offset %d", off)
	}
	if off >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (m *MemorySegment) check(off int64, width int) {
	if off < 0 || off+int64(width) > int64(len(m.buf)) {
		panic(fmt.Sprintf("talon: write of %d bytes at offset %d outside segment of %d", width, off, len(m.buf)))
	}
}

// PutDouble writes an 8-byte little-endian IEEE-754 value. Panics if
// the write falls outside the segment.
func (m *MemorySegment) PutDouble(off int64, v float64) {
	m.check(off, 8)
	binary.LittleEndian.PutUint64(m.buf[off:], math.Float64bits(v))
}

// PutInt32 writes a 4-byte little-endian two's complement value.
// Panics if the write falls outside the segment.
func (m *MemorySegment) PutInt32(off int64, v int32) {
	m.check(off, 4)
	binary.LittleEndian.PutUint32(m.buf[off:], uint32(v))
}

// PutUint16 writes a 2-byte little-endian unsigned value. Panics if
// the write falls outside the segment.
func (m *MemorySegment) PutUint16(off int64, v uint16) {
	m.check(off, 2)
	binary.LittleEndian.PutUint16(m.buf[off:], v)
}

// PutField writes v at the field's offset per the layout. Int32 and
// Uint16 fields truncate v; Double fields store it as is. Missing
// fields are ignored so the same seeding code serves both variants.
func (m *MemorySegment) PutField(l *Layout, f Field, v float64) {
	off, kind, ok := l.Lookup(f)
	if !ok {
		return
	}
	switch kind {
	case Double:
		m.PutDouble(off, v)
	case Int32:
		m.PutInt32(off, int32(v))
	case Uint16:
		m.PutUint16(off, uint16(v))
	}
}
