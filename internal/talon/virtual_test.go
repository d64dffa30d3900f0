// internal/talon/virtual_test.go
package talon

import (
	"math"
	"os"
	"testing"

	"github.com/rockit-astro/mountd-talon/internal/state"
)

func TestVirtualSegmentDecodes(t *testing.T) {
	layout, _ := LayoutFor(OneMetre)
	seg := NewVirtualSegment(layout)

	snap, err := Decode(seg, layout)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if snap.TelState != state.TelStopped {
		t.Errorf("TelState = %v, want stopped", snap.TelState)
	}
	if snap.CoverState != state.CoverClosed || snap.RoofState != state.RoofClosed {
		t.Errorf("enclosure = %v, %v", snap.CoverState, snap.RoofState)
	}
	if !snap.AxesHomed {
		t.Error("virtual telescope should report homed axes")
	}
	if snap.FocusState != state.FocusReady {
		t.Errorf("FocusState = %v, want ready", snap.FocusState)
	}
	if snap.PID != int32(os.Getpid()) {
		t.Errorf("PID = %d, want %d", snap.PID, os.Getpid())
	}
	if math.Abs(snap.MJD-mjdNow()) > 5.0/86400 {
		t.Errorf("MJD = %v not near now (%v)", snap.MJD, mjdNow())
	}
}

func TestVirtualSegmentAdvancesClock(t *testing.T) {
	layout, _ := LayoutFor(SuperWASP)
	seg := NewVirtualSegment(layout)

	a, err := Decode(seg, layout)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Decode(seg, layout)
	if err != nil {
		t.Fatal(err)
	}
	if b.MJD < a.MJD {
		t.Fatalf("MJD went backwards: %v then %v", a.MJD, b.MJD)
	}
}
