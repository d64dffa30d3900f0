// internal/server/report_test.go
package server

import (
	"math"
	"testing"
	"time"

	"github.com/rockit-astro/mountd-talon/internal/config"
	"github.com/rockit-astro/mountd-talon/internal/poller"
	"github.com/rockit-astro/mountd-talon/internal/state"
	"github.com/rockit-astro/mountd-talon/internal/talon"
)

func onemetreConfig() *config.Config {
	return &config.Config{
		Telescope: "W1m",
		Variant:   talon.OneMetre,
		HasRoof:   true,
		HasCovers: true,
		HasFocus:  true,
	}
}

func onemetreSnapshot(t *testing.T) (*talon.Layout, *talon.Snapshot) {
	t.Helper()
	layout, err := talon.LayoutFor(talon.OneMetre)
	if err != nil {
		t.Fatal(err)
	}
	seg := talon.NewMemorySegment(layout.MinSize())
	seg.PutField(layout, talon.FieldMJD, 59000.5)
	seg.PutField(layout, talon.FieldLatitude, 0.5)
	seg.PutField(layout, talon.FieldRAJ2000, math.Pi/2)
	seg.PutField(layout, talon.FieldTelState, float64(state.TelTracking))
	seg.PutField(layout, talon.FieldRoofState, float64(state.RoofOpen))
	seg.PutField(layout, talon.FieldCoverState, float64(state.CoverOpen))
	seg.PutField(layout, talon.FieldHeartbeat, 42)
	seg.PutField(layout, talon.FieldRAFlags, float64(talon.FlagHave|talon.FlagHomed))
	seg.PutField(layout, talon.FieldDecFlags, float64(talon.FlagHave|talon.FlagHomed))
	seg.PutField(layout, talon.FieldFocusFlags, float64(talon.FlagHave|talon.FlagHomed))
	snap, err := talon.Decode(seg, layout)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return layout, snap
}

func TestBuildConvertsUnits(t *testing.T) {
	layout, snap := onemetreSnapshot(t)
	res := poller.PollResult{At: time.Now(), Snapshot: snap, Reachable: true}

	report := Build(onemetreConfig(), layout, res)

	if report.StateLabel != "TRACKING" {
		t.Errorf("StateLabel = %q, want TRACKING", report.StateLabel)
	}
	if !report.Reachable {
		t.Error("report not marked reachable")
	}
	if report.Pointing == nil || math.Abs(report.Pointing.RADeg-90) > 1e-9 {
		t.Errorf("Pointing = %+v, want RA 90 deg", report.Pointing)
	}
	if report.Site == nil || math.Abs(report.Site.LatitudeDeg-0.5*180/math.Pi) > 1e-9 {
		t.Errorf("Site = %+v, want latitude in degrees", report.Site)
	}
	if report.Heartbeat == nil || report.Heartbeat.RemainingSeconds != 42 {
		t.Errorf("Heartbeat = %+v, want 42s", report.Heartbeat)
	}
	if !report.Axes.Homed {
		t.Error("Axes.Homed = false, want true from homed flag words")
	}
	if report.Roof == nil || report.Roof.StateLabel != "OPEN" {
		t.Errorf("Roof = %+v, want OPEN", report.Roof)
	}
}

func TestBuildGatesSectionsOnFeatureFlags(t *testing.T) {
	layout, snap := onemetreSnapshot(t)
	cfg := onemetreConfig()
	cfg.HasRoof = false
	cfg.HasCovers = false
	cfg.HasFocus = false

	report := Build(cfg, layout, poller.PollResult{At: time.Now(), Snapshot: snap, Reachable: true})

	if report.Roof != nil || report.Covers != nil || report.Focus != nil {
		t.Errorf("feature sections present despite flags off: roof=%v covers=%v focus=%v",
			report.Roof, report.Covers, report.Focus)
	}
}

func TestBuildWithoutSnapshotReportsDisabled(t *testing.T) {
	layout, _ := onemetreSnapshot(t)
	res := poller.PollResult{At: time.Now(), Err: poller.ErrStale}

	report := Build(onemetreConfig(), layout, res)

	if report.State != int(state.TelAbsent) || report.StateLabel != "DISABLED" {
		t.Errorf("state = %d %q, want disabled", report.State, report.StateLabel)
	}
	if report.Error == "" {
		t.Error("poll error not carried into the report")
	}
	if report.Site != nil || report.Pointing != nil {
		t.Error("sections populated without a snapshot")
	}
}

func TestBuildSuperWASPOmitsMissingFields(t *testing.T) {
	layout, err := talon.LayoutFor(talon.SuperWASP)
	if err != nil {
		t.Fatal(err)
	}
	seg := talon.NewMemorySegment(layout.MinSize())
	seg.PutField(layout, talon.FieldMJD, 59000.5)
	seg.PutField(layout, talon.FieldTelState, float64(state.TelStopped))
	snap, err := talon.Decode(seg, layout)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	cfg := &config.Config{Telescope: "SuperWASP", Variant: talon.SuperWASP, HasCovers: true, HasFocus: true}
	report := Build(cfg, layout, poller.PollResult{At: time.Now(), Snapshot: snap, Reachable: true})

	if report.LSTHours != nil {
		t.Error("LST reported for a variant that does not export it")
	}
	if report.Heartbeat != nil {
		t.Error("heartbeat reported for a variant that does not export it")
	}
	if report.Pointing.AltDeg != nil || report.Pointing.HAHours != nil {
		t.Errorf("apparent place reported for a variant that does not export it: %+v", report.Pointing)
	}
	if report.Axes.RA.Homed != nil {
		t.Error("RA homed flag reported for a variant without flag words")
	}
	if report.Focus == nil || report.Focus.PosLimit == nil {
		t.Errorf("Focus = %+v, want focus limits from the SuperWASP table", report.Focus)
	}
}
