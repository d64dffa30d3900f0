// internal/talon/flags.go
package talon

import "github.com/rockit-astro/mountd-talon/internal/state"

// AxisFlags is the packed MotorInfo bitfield for one axis, read as a
// little-endian ushort one byte into the struct. Bit order follows the
// writer's bitfield declaration, LSB first.
type AxisFlags uint16

const (
	FlagHave     AxisFlags = 0x0001 // axis is present on this telescope
	FlagHaveEnc  AxisFlags = 0x0002
	FlagEncHome  AxisFlags = 0x0004
	FlagHaveLim  AxisFlags = 0x0008
	FlagPosSide  AxisFlags = 0x0010
	FlagHomeLow  AxisFlags = 0x0020
	FlagHoming   AxisFlags = 0x0040
	FlagLimiting AxisFlags = 0x0080
	FlagHomed    AxisFlags = 0x0100
)

// Have reports whether the axis exists on this telescope.
func (f AxisFlags) Have() bool { return f&FlagHave != 0 }

// Homing reports whether the axis is seeking its home switch.
func (f AxisFlags) Homing() bool { return f&FlagHoming != 0 }

// Limiting reports whether the axis is running a limit search.
func (f AxisFlags) Limiting() bool { return f&FlagLimiting != 0 }

// Homed reports whether the axis has found its home position.
func (f AxisFlags) Homed() bool { return f&FlagHomed != 0 }

// FocusState reduces the flags to the focuser status enum.
func (f AxisFlags) FocusState() state.FocusState {
	switch {
	case !f.Have():
		return state.FocusAbsent
	case f.Homing():
		return state.FocusHoming
	case f.Limiting():
		return state.FocusLimiting
	case !f.Homed():
		return state.FocusNotHomed
	}
	return state.FocusReady
}
