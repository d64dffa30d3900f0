// internal/state/states_test.go
package state

import "testing"

func TestTelStateLabels(t *testing.T) {
	cases := []struct {
		code  TelState
		label string
	}{
		{TelAbsent, "DISABLED"},
		{TelStopped, "STOPPED"},
		{TelHunting, "HUNTING"},
		{TelTracking, "TRACKING"},
		{TelSlewing, "SLEWING"},
		{TelHoming, "HOMING"},
		{TelLimiting, "LIMITING"},
		{TelState(7), "UNKNOWN"},
		{TelState(-1), "UNKNOWN"},
	}
	for _, c := range cases {
		if got := c.code.Label(); got != c.label {
			t.Errorf("TelState(%d).Label() = %q, want %q", c.code, got, c.label)
		}
	}
}

func TestTelStateFormatted(t *testing.T) {
	cases := []struct {
		code TelState
		want string
	}{
		{TelTracking, "\x1b[32;1mTRACKING\x1b[0m"},
		{TelStopped, "\x1b[31;1mSTOPPED\x1b[0m"},
		{TelHunting, "\x1b[33;1mHUNTING\x1b[0m"},
		{TelState(99), "\x1b[31;1mUNKNOWN\x1b[0m"},
	}
	for _, c := range cases {
		if got := c.code.Formatted(); got != c.want {
			t.Errorf("TelState(%d).Formatted() = %q, want %q", c.code, got, c.want)
		}
	}
}

func TestFocusStateLabels(t *testing.T) {
	cases := []struct {
		code  FocusState
		label string
	}{
		{FocusAbsent, "ABSENT"},
		{FocusNotHomed, "NOT_HOMED"},
		{FocusHoming, "HOMING"},
		{FocusLimiting, "LIMITING"},
		{FocusReady, "READY"},
		{FocusState(12), "UNKNOWN"},
	}
	for _, c := range cases {
		if got := c.code.Label(); got != c.label {
			t.Errorf("FocusState(%d).Label() = %q, want %q", c.code, got, c.label)
		}
	}
}

func TestFocusStateFormattedIsBoldOnly(t *testing.T) {
	if got, want := FocusReady.Formatted(), "\x1b[1mREADY\x1b[0m"; got != want {
		t.Fatalf("FocusReady.Formatted() = %q, want %q", got, want)
	}
	// Unknown focus codes stay bold, not red.
	if got, want := FocusState(9).Formatted(), "\x1b[1mUNKNOWN\x1b[0m"; got != want {
		t.Fatalf("FocusState(9).Formatted() = %q, want %q", got, want)
	}
}

func TestCoverStateLabels(t *testing.T) {
	cases := []struct {
		code  CoverState
		label string
	}{
		{CoverAbsent, "ABSENT"},
		{CoverIdle, "IDLE"},
		{CoverOpening, "OPENING"},
		{CoverClosing, "CLOSING"},
		{CoverOpen, "OPEN"},
		{CoverClosed, "CLOSED"},
		{CoverState(6), "UNKNOWN"},
	}
	for _, c := range cases {
		if got := c.code.Label(); got != c.label {
			t.Errorf("CoverState(%d).Label() = %q, want %q", c.code, got, c.label)
		}
	}
}

func TestRoofIdleReportsUnknown(t *testing.T) {
	// The shutter drive does not track position while idle, so idle is
	// surfaced as UNKNOWN rather than IDLE.
	if got := RoofIdle.Label(); got != "UNKNOWN" {
		t.Fatalf("RoofIdle.Label() = %q, want UNKNOWN", got)
	}
	if got := RoofOpen.Label(); got != "OPEN" {
		t.Fatalf("RoofOpen.Label() = %q, want OPEN", got)
	}
}

func TestStringMatchesLabel(t *testing.T) {
	if TelTracking.String() != TelTracking.Label() {
		t.Fatal("TelState.String should match Label")
	}
	if CoverOpen.String() != CoverOpen.Label() {
		t.Fatal("CoverState.String should match Label")
	}
}
