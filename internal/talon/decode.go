// internal/talon/decode.go
package talon

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/rockit-astro/mountd-talon/internal/state"
)

// DecodeError reports the first field that could not be read out of
// the segment.
type DecodeError struct {
	Field  Field
	Offset int64
	Width  int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("talon: decode %s: read %d bytes at offset %d: %v", e.Field, e.Width, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// decoder reads fields out of a segment, holding on to the first
// failure. Reads after a failure are no-ops returning zero.
type decoder struct {
	seg    Segment
	layout *Layout
	err    *DecodeError
	buf    [8]byte
}

func (d *decoder) read(f Field) ([]byte, bool) {
	if d.err != nil {
		return nil, false
	}
	e, ok := d.layout.fields[f]
	if !ok {
		// Variant does not export this field; caller keeps the zero.
		return nil, false
	}
	w := e.kind.Width()
	n, err := d.seg.ReadAt(d.buf[:w], e.offset)
	if n < w {
		if err == nil || err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		d.err = &DecodeError{Field: f, Offset: e.offset, Width: w, Err: err}
		return nil, false
	}
	if err != nil && err != io.EOF {
		d.err = &DecodeError{Field: f, Offset: e.offset, Width: w, Err: err}
		return nil, false
	}
	return d.buf[:w], true
}

func (d *decoder) double(f Field) float64 {
	raw, ok := d.read(f)
	if !ok {
		return 0
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(raw))
}

func (d *decoder) int32(f Field) int32 {
	raw, ok := d.read(f)
	if !ok {
		return 0
	}
	return int32(binary.LittleEndian.Uint32(raw))
}

func (d *decoder) uint16(f Field) uint16 {
	raw, ok := d.read(f)
	if !ok {
		return 0
	}
	return binary.LittleEndian.Uint16(raw)
}

// Decode reads every field the layout exports and assembles a
// snapshot. The result is either complete or an error naming the
// first unreadable field; bounds are enforced per read, so a segment
// shorter than the table's extent fails on the lowest affected field
// rather than reading past the mapping.
//
// Decoding is pure: the same segment bytes produce the same snapshot.
func Decode(seg Segment, layout *Layout) (*Snapshot, error) {
	d := &decoder{seg: seg, layout: layout}
	snap := &Snapshot{Variant: layout.variant}

	for _, f := range layout.ordered {
		switch f {
		case FieldPID:
			snap.PID = d.int32(f)
		case FieldMJD:
			snap.MJD = d.double(f)
		case FieldLST:
			snap.LST = d.double(f)
		case FieldLatitude:
			snap.Latitude = d.double(f)
		case FieldLongitude:
			snap.Longitude = d.double(f)
		case FieldElevation:
			snap.Elevation = d.double(f)
		case FieldTemperature:
			snap.Temperature = d.double(f)
		case FieldPressure:
			snap.Pressure = d.double(f)
		case FieldRAJ2000:
			snap.RAJ2000 = d.double(f)
		case FieldDecJ2000:
			snap.DecJ2000 = d.double(f)
		case FieldHAApparent:
			snap.HAApparent = d.double(f)
		case FieldDecApparent:
			snap.DecApparent = d.double(f)
		case FieldAlt:
			snap.Alt = d.double(f)
		case FieldAz:
			snap.Az = d.double(f)
		case FieldTelState:
			snap.TelState = state.TelState(d.int32(f))
		case FieldTelStateIdx:
			snap.TelStateIdx = d.int32(f)
		case FieldRoofState:
			snap.RoofState = state.RoofState(d.int32(f))
		case FieldCoverState:
			snap.CoverState = state.CoverState(d.int32(f))
		case FieldHeartbeat:
			snap.HeartbeatRemaining = d.int32(f)
		case FieldRAFlags:
			snap.RAFlags = AxisFlags(d.uint16(f))
		case FieldRAPosLim:
			snap.RALimits.Positive = d.double(f)
		case FieldRANegLim:
			snap.RALimits.Negative = d.double(f)
		case FieldDecFlags:
			snap.DecFlags = AxisFlags(d.uint16(f))
		case FieldDecPosLim:
			snap.DecLimits.Positive = d.double(f)
		case FieldDecNegLim:
			snap.DecLimits.Negative = d.double(f)
		case FieldFocusFlags:
			snap.FocusFlags = AxisFlags(d.uint16(f))
		case FieldFocusStep:
			snap.FocusStep = d.int32(f)
		case FieldFocusDF:
			snap.FocusDF = d.double(f)
		case FieldFocusCPos:
			snap.FocusCPos = d.double(f)
		case FieldFocusPosLim:
			snap.FocusLimits.Positive = d.double(f)
		case FieldFocusNegLim:
			snap.FocusLimits.Negative = d.double(f)
		}
		if d.err != nil {
			return nil, d.err
		}
	}

	if layout.Has(FieldFocusFlags) {
		snap.FocusState = snap.FocusFlags.FocusState()
	}
	if layout.Has(FieldRAFlags) && layout.Has(FieldDecFlags) {
		snap.AxesHomed = snap.RAFlags.Homed() && snap.DecFlags.Homed()
	}
	return snap, nil
}
