// internal/poller/builder.go
package poller

import (
	"time"

	"github.com/rockit-astro/mountd-talon/internal/config"
	"github.com/rockit-astro/mountd-talon/internal/talon"
	"github.com/rockit-astro/mountd-talon/internal/telemetry/logger"
	"github.com/rockit-astro/mountd-talon/internal/telemetry/metric"
)

// Build constructs a poller from the daemon configuration. In virtual
// mode the opener hands out one in-process emulated segment; otherwise
// each attach goes to the real SysV segment, so a restarted talon is
// picked up on the next tick.
func Build(cfg *config.Config, log logger.Logger, metrics *metric.Metrics) (*Poller, error) {
	layout, err := talon.LayoutFor(cfg.Variant)
	if err != nil {
		return nil, err
	}

	var open SegmentOpener
	if cfg.Virtual {
		seg := talon.NewVirtualSegment(layout)
		open = func() (talon.Segment, error) { return seg, nil }
	} else {
		open = func() (talon.Segment, error) { return talon.AttachShared(talon.Key) }
	}

	return New(Config{
		Layout:      layout,
		Interval:    secondsToDuration(cfg.QueryDelay),
		PingTimeout: secondsToDuration(cfg.PingTimeout),
	}, open, log, metrics)
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
