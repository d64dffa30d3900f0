// internal/poller/poller.go

// Package poller drives the timed read loop against the talon shared
// memory segment. It owns the attach lifecycle, discards torn
// snapshots, and flags a writer whose clock has stopped.
package poller

import (
	"errors"
	"fmt"
	"time"

	"github.com/rockit-astro/mountd-talon/internal/talon"
	"github.com/rockit-astro/mountd-talon/internal/telemetry/logger"
	"github.com/rockit-astro/mountd-talon/internal/telemetry/metric"
)

// SegmentOpener attaches the status segment. ONE attempt per call; the
// poller re-invokes it on a future tick after a failure.
type SegmentOpener func() (talon.Segment, error)

// Config is the minimal runtime config the poller needs.
type Config struct {
	Layout   *talon.Layout
	Interval time.Duration

	// PingTimeout bounds how long the segment MJD may stay frozen
	// before talon is declared dead. Zero disables the check.
	PingTimeout time.Duration
}

// Poller is a clock-driven reader. Not safe for concurrent use; Run
// is the single driver.
type Poller struct {
	cfg     Config
	open    SegmentOpener
	log     logger.Logger
	metrics *metric.Metrics

	seg talon.Segment

	lastMJD     float64
	lastAdvance time.Time
	tornStreak  int
}

// New creates a poller with immutable config.
func New(cfg Config, open SegmentOpener, log logger.Logger, metrics *metric.Metrics) (*Poller, error) {
	if cfg.Layout == nil {
		return nil, errors.New("poller: layout required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if open == nil {
		return nil, errors.New("poller: segment opener required")
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Poller{cfg: cfg, open: open, log: log, metrics: metrics}, nil
}

// PollOnce performs exactly one poll cycle. All-or-nothing: a failed
// attach or decode yields no snapshot, and the segment is dropped so
// the next cycle re-attaches.
func (p *Poller) PollOnce() PollResult {
	res := PollResult{At: time.Now()}

	if p.seg == nil {
		seg, err := p.open()
		if err != nil {
			res.Err = err
			return res
		}
		p.seg = seg
		// Early diagnostic: a region smaller than the table's extent
		// means the wrong variant was configured, not a torn writer.
		if seg.Size() < p.cfg.Layout.MinSize() {
			p.drop()
			res.Err = fmt.Errorf("poller: segment is %d bytes, %s layout needs %d",
				seg.Size(), p.cfg.Layout.Variant(), p.cfg.Layout.MinSize())
			return res
		}
	}

	start := time.Now()
	snap, err := talon.Decode(p.seg, p.cfg.Layout)
	res.Elapsed = time.Since(start)
	if err != nil {
		p.drop()
		res.Err = err
		return res
	}

	// A writer that exited leaves its last PID (or zero) behind in
	// the segment. Only the W1m build exports it.
	if p.cfg.Layout.Has(talon.FieldPID) && snap.PID <= 0 {
		res.Snapshot = snap
		res.Err = ErrNotRunning
		return res
	}

	switch {
	case p.lastAdvance.IsZero() || snap.MJD > p.lastMJD:
		p.advance(snap.MJD, res.At)

	case snap.MJD < p.lastMJD:
		// A single regression is a torn read. A second in a row means
		// the writer restarted with an earlier clock: accept it as the
		// new baseline rather than discarding forever.
		p.tornStreak++
		if p.tornStreak < 2 {
			res.Err = ErrTornSnapshot
			return res
		}
		p.advance(snap.MJD, res.At)

	default:
		if p.cfg.PingTimeout > 0 && res.At.Sub(p.lastAdvance) > p.cfg.PingTimeout {
			res.Snapshot = snap
			res.Err = ErrStale
			return res
		}
	}

	res.Snapshot = snap
	res.Reachable = true
	return res
}

func (p *Poller) advance(mjd float64, at time.Time) {
	p.lastMJD = mjd
	p.lastAdvance = at
	p.tornStreak = 0
}

func (p *Poller) drop() {
	if d, ok := p.seg.(interface{ Detach() error }); ok {
		if err := d.Detach(); err != nil {
			p.log.Warn("segment detach failed", "error", err)
		}
	}
	p.seg = nil
}

// Close detaches the current segment, if any.
func (p *Poller) Close() {
	if p.seg != nil {
		p.drop()
	}
}
