// internal/server/report.go

// Package server publishes the daemon's view of the telescope over
// HTTP: a JSON status report, a Prometheus scrape target and a
// websocket feed that pushes each new report to dashboard clients.
package server

import (
	"math"
	"time"

	"github.com/rockit-astro/mountd-talon/internal/config"
	"github.com/rockit-astro/mountd-talon/internal/poller"
	"github.com/rockit-astro/mountd-talon/internal/state"
	"github.com/rockit-astro/mountd-talon/internal/talon"
)

// Report is the wire form of one poll. The decoder keeps the writer's
// native units; conversions to degrees, hours and meters happen here,
// per variant. Sections a telescope does not have are omitted.
type Report struct {
	Date      string `json:"date"`
	Telescope string `json:"telescope"`
	Virtual   bool   `json:"virtual"`
	Reachable bool   `json:"reachable"`

	State      int    `json:"state"`
	StateLabel string `json:"state_label"`
	Error      string `json:"error,omitempty"`

	MJD      float64  `json:"mjd,omitempty"`
	LSTHours *float64 `json:"lst_hours,omitempty"`

	Site     *SiteReport      `json:"site,omitempty"`
	Pointing *PointingReport  `json:"pointing,omitempty"`
	Axes     *AxesReport      `json:"axes,omitempty"`
	Focus    *FocusReport     `json:"focus,omitempty"`
	Covers   *EnclosureReport `json:"covers,omitempty"`
	Roof     *EnclosureReport `json:"roof,omitempty"`

	Heartbeat *HeartbeatReport `json:"heartbeat,omitempty"`
}

type SiteReport struct {
	LatitudeDeg  float64  `json:"latitude_deg"`
	LongitudeDeg float64  `json:"longitude_deg"`
	ElevationM   float64  `json:"elevation_m"`
	TemperatureC *float64 `json:"temperature_c,omitempty"`
	PressureMbar *float64 `json:"pressure_mbar,omitempty"`
}

type PointingReport struct {
	RADeg          float64  `json:"ra_deg"`
	DecDeg         float64  `json:"dec_deg"`
	HAHours        *float64 `json:"ha_hours,omitempty"`
	DecApparentDeg *float64 `json:"dec_apparent_deg,omitempty"`
	AltDeg         *float64 `json:"alt_deg,omitempty"`
	AzDeg          *float64 `json:"az_deg,omitempty"`
}

type AxisReport struct {
	Homed       *bool   `json:"homed,omitempty"`
	PosLimitDeg float64 `json:"pos_limit_deg"`
	NegLimitDeg float64 `json:"neg_limit_deg"`
}

type AxesReport struct {
	Homed bool       `json:"homed"`
	RA    AxisReport `json:"ra"`
	Dec   AxisReport `json:"dec"`
}

// FocusReport keeps the writer's native focuser units.
type FocusReport struct {
	State      int      `json:"state"`
	StateLabel string   `json:"state_label"`
	Position   float64  `json:"position"`
	Delta      float64  `json:"delta"`
	Steps      int32    `json:"steps"`
	PosLimit   *float64 `json:"pos_limit,omitempty"`
	NegLimit   *float64 `json:"neg_limit,omitempty"`
}

type EnclosureReport struct {
	State      int    `json:"state"`
	StateLabel string `json:"state_label"`
}

type HeartbeatReport struct {
	RemainingSeconds int32 `json:"remaining_seconds"`
}

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
func hours(rad float64) float64   { return rad * 12 / math.Pi }

func degreesPtr(rad float64) *float64 {
	v := degrees(rad)
	return &v
}

func hoursPtr(rad float64) *float64 {
	v := hours(rad)
	return &v
}

func ptr[T any](v T) *T { return &v }

// Build assembles the report for one poll result. A result with no
// snapshot produces a minimal report marking the telescope disabled.
func Build(cfg *config.Config, layout *talon.Layout, res poller.PollResult) *Report {
	report := &Report{
		Date:      res.At.UTC().Format(time.RFC3339),
		Telescope: cfg.Telescope,
		Virtual:   cfg.Virtual,
		Reachable: res.Reachable,
	}
	if res.Err != nil {
		report.Error = res.Err.Error()
	}

	snap := res.Snapshot
	if snap == nil {
		report.State = int(state.TelAbsent)
		report.StateLabel = state.TelAbsent.Label()
		return report
	}

	report.State = int(snap.TelState)
	report.StateLabel = snap.TelState.Label()
	report.MJD = snap.MJD
	if layout.Has(talon.FieldLST) {
		report.LSTHours = hoursPtr(snap.LST)
	}

	report.Site = &SiteReport{
		LatitudeDeg:  degrees(snap.Latitude),
		LongitudeDeg: degrees(snap.Longitude),
		ElevationM:   snap.Elevation * talon.EarthRadiusMeters,
	}
	if layout.Has(talon.FieldTemperature) {
		report.Site.TemperatureC = ptr(snap.Temperature)
	}
	if layout.Has(talon.FieldPressure) {
		report.Site.PressureMbar = ptr(snap.Pressure)
	}

	report.Pointing = &PointingReport{
		RADeg:  degrees(snap.RAJ2000),
		DecDeg: degrees(snap.DecJ2000),
	}
	if layout.Has(talon.FieldHAApparent) {
		report.Pointing.HAHours = hoursPtr(snap.HAApparent)
	}
	if layout.Has(talon.FieldDecApparent) {
		report.Pointing.DecApparentDeg = degreesPtr(snap.DecApparent)
	}
	if layout.Has(talon.FieldAlt) {
		report.Pointing.AltDeg = degreesPtr(snap.Alt)
	}
	if layout.Has(talon.FieldAz) {
		report.Pointing.AzDeg = degreesPtr(snap.Az)
	}

	report.Axes = &AxesReport{
		Homed: snap.AxesHomed,
		RA: AxisReport{
			PosLimitDeg: degrees(snap.RALimits.Positive),
			NegLimitDeg: degrees(snap.RALimits.Negative),
		},
		Dec: AxisReport{
			PosLimitDeg: degrees(snap.DecLimits.Positive),
			NegLimitDeg: degrees(snap.DecLimits.Negative),
		},
	}
	if layout.Has(talon.FieldRAFlags) {
		report.Axes.RA.Homed = ptr(snap.RAFlags.Homed())
	}
	if layout.Has(talon.FieldDecFlags) {
		report.Axes.Dec.Homed = ptr(snap.DecFlags.Homed())
	}

	if cfg.HasFocus {
		report.Focus = &FocusReport{
			State:      int(snap.FocusState),
			StateLabel: snap.FocusState.Label(),
			Position:   snap.FocusCPos,
			Delta:      snap.FocusDF,
			Steps:      snap.FocusStep,
		}
		if layout.Has(talon.FieldFocusPosLim) {
			report.Focus.PosLimit = ptr(snap.FocusLimits.Positive)
		}
		if layout.Has(talon.FieldFocusNegLim) {
			report.Focus.NegLimit = ptr(snap.FocusLimits.Negative)
		}
	}

	if cfg.HasCovers {
		report.Covers = &EnclosureReport{
			State:      int(snap.CoverState),
			StateLabel: snap.CoverState.Label(),
		}
	}
	if cfg.HasRoof {
		report.Roof = &EnclosureReport{
			State:      int(snap.RoofState),
			StateLabel: snap.RoofState.Label(),
		}
	}

	if layout.Has(talon.FieldHeartbeat) {
		report.Heartbeat = &HeartbeatReport{RemainingSeconds: snap.HeartbeatRemaining}
	}
	return report
}
