// internal/talon/shm.go
package talon

import (
	"fmt"
	"io"

	"golang.org/x/sys/unix"
)

// SharedSegment is the talon status region attached read-only via
// SysV shared memory. Not safe for use concurrently with Detach; the
// poller owns the attach/detach lifecycle.
type SharedSegment struct {
	id   int
	data []byte
}

// AttachShared attaches the segment with the given key. The segment
// must already exist: this reader never creates it, only the talon
// writer does.
func AttachShared(key int) (*SharedSegment, error) {
	id, err := unix.SysvShmGet(key, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("talon: shmget key 0x%x: %w", key, err)
	}
	data, err := unix.SysvShmAttach(id, 0, unix.SHM_RDONLY)
	if err != nil {
		return nil, fmt.Errorf("talon: shmat id %d: %w", id, err)
	}
	return &SharedSegment{id: id, data: data}, nil
}

// Size returns the mapped size of the region in bytes.
func (s *SharedSegment) Size() int64 { return int64(len(s.data)) }

// ReadAt copies out of the mapped region. The copy is not atomic with
// respect to the external writer; callers detect torn snapshots at a
// higher level.
func (s *SharedSegment) ReadAt(p []byte, off int64) (int, error) {
	if s.data == nil {
		return 0, fmt.Errorf("talon: segment detached")
	}
	if off < 0 {
		return 0, fmt.Errorf("talon: negative segment offset %d", off)
	}
	if off >= int64(len(s.data)) {
		return 0, io.EOF
	}
	n := copy(p, s.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Detach unmaps the region. Further reads fail.
func (s *SharedSegment) Detach() error {
	if s.data == nil {
		return nil
	}
	data := s.data
	s.data = nil
	if err := unix.SysvShmDetach(data); err != nil {
		return fmt.Errorf("talon: shmdt id %d: %w", s.id, err)
	}
	return nil
}
