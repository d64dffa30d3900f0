// internal/talon/virtual.go
package talon

import (
	"math"
	"os"
	"sync"
	"time"

	"github.com/rockit-astro/mountd-talon/internal/state"
)

// EarthRadiusMeters is talon's ERAD constant. The writer stores the
// site elevation in units of it.
const EarthRadiusMeters = 6.37816e6

// VirtualSegment emulates the talon writer for development machines
// without the real control system. It presents a stopped, homed
// telescope parked at zenith on the La Palma site, and refreshes the
// MJD on every read so staleness checks keep passing.
type VirtualSegment struct {
	mu     sync.Mutex
	mem    *MemorySegment
	layout *Layout
}

// NewVirtualSegment returns a seeded virtual segment for the variant.
func NewVirtualSegment(layout *Layout) *VirtualSegment {
	const (
		lat  = 28.7624 * math.Pi / 180
		lng  = -17.8792 * math.Pi / 180
		elev = 2396.0 / EarthRadiusMeters
	)
	homed := float64(FlagHave | FlagHaveEnc | FlagHaveLim | FlagHomed)

	mem := NewMemorySegment(layout.MinSize())
	put := func(f Field, v float64) { mem.PutField(layout, f, v) }

	put(FieldPID, float64(os.Getpid()))
	put(FieldMJD, mjdNow())
	put(FieldLatitude, lat)
	put(FieldLongitude, lng)
	put(FieldElevation, elev)
	put(FieldTemperature, 10)
	put(FieldPressure, 770)
	put(FieldDecJ2000, lat)
	put(FieldDecApparent, lat)
	put(FieldAlt, math.Pi/2)

	put(FieldTelState, float64(state.TelStopped))
	put(FieldRoofState, float64(state.RoofClosed))
	put(FieldCoverState, float64(state.CoverClosed))

	put(FieldRAFlags, homed)
	put(FieldDecFlags, homed)
	put(FieldFocusFlags, homed)
	put(FieldRAPosLim, 1.52)
	put(FieldRANegLim, -1.52)
	put(FieldDecPosLim, 1.54)
	put(FieldDecNegLim, -0.70)
	put(FieldFocusStep, 1200)
	put(FieldFocusPosLim, 10500)
	put(FieldFocusNegLim, -10500)

	return &VirtualSegment{mem: mem, layout: layout}
}

// Size returns the segment size in bytes.
func (v *VirtualSegment) Size() int64 { return v.mem.Size() }

// ReadAt refreshes the MJD and reads through to the backing segment.
func (v *VirtualSegment) ReadAt(p []byte, off int64) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.mem.PutField(v.layout, FieldMJD, mjdNow())
	return v.mem.ReadAt(p, off)
}

func mjdNow() float64 {
	// Unix epoch is MJD 40587.
	return float64(time.Now().UnixNano())/1e9/86400 + 40587
}
