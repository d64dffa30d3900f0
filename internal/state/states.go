// internal/state/states.go
package state

import "github.com/fatih/color"

// Terminal styles for formatted labels. Colors are forced on so the
// formatted form is byte-identical whether or not output is a terminal:
// labels travel over the wire to tel and the web dashboard.
var (
	bold       = newStyle(color.Bold)
	redBold    = newStyle(color.FgRed, color.Bold)
	yellowBold = newStyle(color.FgYellow, color.Bold)
	greenBold  = newStyle(color.FgGreen, color.Bold)
)

func newStyle(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

// unknownLabel is returned for any code outside an enum's defined set.
// Unknown codes are never an error: the talon writer's code space may
// grow independently of this reader.
const unknownLabel = "UNKNOWN"

type styled struct {
	label string
	style *color.Color
}

func lookupLabel[K ~int](table map[K]styled, code K) string {
	if s, ok := table[code]; ok {
		return s.label
	}
	return unknownLabel
}

func lookupFormatted[K ~int](table map[K]styled, code K) string {
	if s, ok := table[code]; ok {
		return s.style.Sprint(s.label)
	}
	return redBold.Sprint(unknownLabel)
}

// ---- TELESCOPE ----

// TelState is the talon TelState enum.
type TelState int

const (
	TelAbsent TelState = iota
	TelStopped
	TelHunting
	TelTracking
	TelSlewing
	TelHoming
	TelLimiting
)

var telStates = map[TelState]styled{
	TelAbsent:   {"DISABLED", redBold},
	TelStopped:  {"STOPPED", redBold},
	TelHunting:  {"HUNTING", yellowBold},
	TelTracking: {"TRACKING", greenBold},
	TelSlewing:  {"SLEWING", yellowBold},
	TelHoming:   {"HOMING", yellowBold},
	TelLimiting: {"LIMITING", yellowBold},
}

// Label returns the canonical label for s.
func (s TelState) Label() string { return lookupLabel(telStates, s) }

// Formatted returns the label with terminal highlighting.
func (s TelState) Formatted() string { return lookupFormatted(telStates, s) }

func (s TelState) String() string { return s.Label() }

// ---- FOCUS ----

// FocusState is derived from the talon focus motor flags; it is not
// stored directly in shared memory.
type FocusState int

const (
	FocusAbsent FocusState = iota
	FocusNotHomed
	FocusHoming
	FocusLimiting
	FocusReady
)

var focusStates = map[FocusState]styled{
	FocusAbsent:   {"ABSENT", bold},
	FocusNotHomed: {"NOT_HOMED", bold},
	FocusHoming:   {"HOMING", bold},
	FocusLimiting: {"LIMITING", bold},
	FocusReady:    {"READY", bold},
}

// Label returns the canonical label for s.
func (s FocusState) Label() string { return lookupLabel(focusStates, s) }

// Formatted returns the label in bold. Focus labels carry no color,
// unknown codes included.
func (s FocusState) Formatted() string { return bold.Sprint(s.Label()) }

func (s FocusState) String() string { return s.Label() }

// ---- COVERS ----

// CoverState is the talon CoverState enum.
type CoverState int

const (
	CoverAbsent CoverState = iota
	CoverIdle
	CoverOpening
	CoverClosing
	CoverOpen
	CoverClosed
)

var coverStates = map[CoverState]styled{
	CoverAbsent:  {"ABSENT", redBold},
	CoverIdle:    {"IDLE", bold},
	CoverOpening: {"OPENING", yellowBold},
	CoverClosing: {"CLOSING", yellowBold},
	CoverOpen:    {"OPEN", greenBold},
	CoverClosed:  {"CLOSED", redBold},
}

// Label returns the canonical label for s.
func (s CoverState) Label() string { return lookupLabel(coverStates, s) }

// Formatted returns the label with terminal highlighting.
func (s CoverState) Formatted() string { return lookupFormatted(coverStates, s) }

func (s CoverState) String() string { return s.Label() }

// ---- ROOF ----

// RoofState is the talon DShState (dome shutter) enum.
type RoofState int

const (
	RoofAbsent RoofState = iota
	RoofIdle
	RoofOpening
	RoofClosing
	RoofOpen
	RoofClosed
)

var roofStates = map[RoofState]styled{
	RoofAbsent:  {"ABSENT", redBold},
	RoofIdle:    {"UNKNOWN", redBold}, // shutter position is not tracked while the drive is idle
	RoofOpening: {"OPENING", yellowBold},
	RoofClosing: {"CLOSING", yellowBold},
	RoofOpen:    {"OPEN", greenBold},
	RoofClosed:  {"CLOSED", redBold},
}

// Label returns the canonical label for s.
func (s RoofState) Label() string { return lookupLabel(roofStates, s) }

// Formatted returns the label with terminal highlighting.
func (s RoofState) Formatted() string { return lookupFormatted(roofStates, s) }

func (s RoofState) String() string { return s.Label() }
