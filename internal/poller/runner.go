// internal/poller/runner.go
package poller

import (
	"context"
	"errors"
	"time"
)

// Run polls immediately, then on every tick, and emits each result on
// out. One goroutine drives one poller. No overlap, no retries inside
// a cycle. Returns when ctx is cancelled.
func (p *Poller) Run(ctx context.Context, out chan<- PollResult) {
	defer p.Close()

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	reachable := true
	for {
		res := p.PollOnce()
		p.observe(res)
		if res.Reachable != reachable {
			if res.Reachable {
				p.log.Info("talon reachable", "variant", p.cfg.Layout.Variant().String())
			} else {
				p.log.Warn("talon unreachable", "error", res.Err)
			}
			reachable = res.Reachable
		}

		select {
		case out <- res:
		case <-ctx.Done():
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (p *Poller) observe(res PollResult) {
	if p.metrics == nil {
		return
	}
	m := p.metrics
	m.PollsTotal.Inc()
	if res.Elapsed > 0 {
		m.DecodeDuration.Observe(res.Elapsed.Seconds())
	}
	switch {
	case errors.Is(res.Err, ErrTornSnapshot):
		m.TornSnapshotsTotal.Inc()
	case res.Err != nil && res.Snapshot == nil:
		m.PollFailuresTotal.Inc()
	}
	if res.Reachable {
		m.TalonReachable.Set(1)
	} else {
		m.TalonReachable.Set(0)
	}
	if res.Snapshot != nil {
		m.TelescopeState.Set(float64(res.Snapshot.TelState))
		m.HeartbeatRemaining.Set(float64(res.Snapshot.HeartbeatRemaining))
	}
}
