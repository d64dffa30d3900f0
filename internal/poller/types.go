// internal/poller/types.go
package poller

import (
	"errors"
	"time"

	"github.com/rockit-astro/mountd-talon/internal/talon"
)

var (
	// ErrTornSnapshot marks a poll discarded because the segment's
	// MJD ran backwards, which means the writer was mid-update while
	// we copied.
	ErrTornSnapshot = errors.New("poller: torn snapshot discarded")

	// ErrStale marks a segment whose MJD has not advanced within the
	// ping timeout: talon is attached but no longer updating.
	ErrStale = errors.New("poller: talon stopped updating shared memory")

	// ErrNotRunning marks a segment whose recorded writer PID is not
	// a live process id: talon exited without tearing the segment
	// down.
	ErrNotRunning = errors.New("poller: talon process is not running")
)

// PollResult is the outcome of one poll cycle.
type PollResult struct {
	At      time.Time
	Elapsed time.Duration

	// Snapshot is nil when the cycle failed before producing one.
	Snapshot *talon.Snapshot

	// Reachable reports whether talon looks alive: segment attached,
	// decoded, and its clock advancing.
	Reachable bool

	Err error
}
