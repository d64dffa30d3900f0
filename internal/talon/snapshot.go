// internal/talon/snapshot.go
package talon

import "github.com/rockit-astro/mountd-talon/internal/state"

// AxisLimits holds the position limits for one axis, in the writer's
// native units.
type AxisLimits struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
}

// Snapshot is the decoded state of the segment from one read pass.
// Values keep the writer's native units: angles are radians, the
// elevation is earth radii, focus positions are motor microns. Fields
// the variant does not export stay at their zero values; consult
// Layout.Has before trusting one.
//
// Snapshots are constructed fresh on every poll and never mutated.
type Snapshot struct {
	Variant Variant `json:"-"`

	PID int32   `json:"pid"`
	MJD float64 `json:"mjd"`
	LST float64 `json:"lst"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation"`

	Temperature float64 `json:"temperature"`
	Pressure    float64 `json:"pressure"`

	RAJ2000     float64 `json:"ra_j2000"`
	DecJ2000    float64 `json:"dec_j2000"`
	HAApparent  float64 `json:"ha_apparent"`
	DecApparent float64 `json:"dec_apparent"`
	Alt         float64 `json:"alt"`
	Az          float64 `json:"az"`

	TelState    state.TelState   `json:"tel_state"`
	TelStateIdx int32            `json:"tel_state_idx"`
	RoofState   state.RoofState  `json:"roof_state"`
	CoverState  state.CoverState `json:"cover_state"`

	HeartbeatRemaining int32 `json:"heartbeat_remaining"`

	RAFlags    AxisFlags `json:"-"`
	DecFlags   AxisFlags `json:"-"`
	FocusFlags AxisFlags `json:"-"`

	RALimits    AxisLimits `json:"ra_limits"`
	DecLimits   AxisLimits `json:"dec_limits"`
	FocusLimits AxisLimits `json:"focus_limits"`

	FocusStep int32   `json:"focus_step"`
	FocusDF   float64 `json:"focus_df"`
	FocusCPos float64 `json:"focus_cpos"`

	// Derived from the axis flags; Absent and false on variants that
	// do not export them.
	FocusState state.FocusState `json:"focus_state"`
	AxesHomed  bool             `json:"axes_homed"`
}
