// internal/config/config.go

// Package config validates and parses the talond JSON configuration
// file. Validation is declarative where possible; names are resolved
// against the observatory address book afterwards, and every problem
// is reported as a path-qualified violation rather than the first one
// found.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rockit-astro/mountd-talon/internal/address"
	"github.com/rockit-astro/mountd-talon/internal/talon"
)

// ParkPosition is a named park target in degrees.
type ParkPosition struct {
	Description string
	Alt         float64
	Az          float64
}

// Config is the validated, immutable daemon configuration. Angles are
// degrees and times are seconds, as written in the file.
type Config struct {
	Daemon   address.Daemon
	LogName  string
	LogLevel string

	ControlMachines []string
	ControlIPs      []string

	Telescope string
	Variant   talon.Variant
	Virtual   bool

	QueryDelay            float64
	InitializationTimeout float64
	SlewTimeout           float64
	HomingTimeout         float64
	LimitTimeout          float64
	PingTimeout           float64

	HASoftLimits  [2]float64
	DecSoftLimits [2]float64
	ParkPositions map[string]ParkPosition

	HasRoof   bool
	HasCovers bool
	HasFocus  bool

	CoverTimeout     float64
	RoofOpenTimeout  float64
	RoofCloseTimeout float64
	FocusTolerance   float64
	FocusTimeout     float64

	SecuritySystemDaemon *address.Daemon
	SecuritySystemKey    string
}

type rawPark struct {
	Desc string  `json:"desc"`
	Alt  float64 `json:"alt"`
	Az   float64 `json:"az"`
}

type rawConfig struct {
	Daemon          string   `json:"daemon"`
	LogName         string   `json:"log_name"`
	LogLevel        string   `json:"log_level"`
	ControlMachines []string `json:"control_machines"`
	Telescope       string   `json:"telescope"`
	Virtual         bool     `json:"virtual"`

	QueryDelay            float64 `json:"query_delay"`
	InitializationTimeout float64 `json:"initialization_timeout"`
	SlewTimeout           float64 `json:"slew_timeout"`
	HomingTimeout         float64 `json:"homing_timeout"`
	LimitTimeout          float64 `json:"limit_timeout"`
	PingTimeout           float64 `json:"ping_timeout"`

	HASoftLimits  []float64          `json:"ha_soft_limits"`
	DecSoftLimits []float64          `json:"dec_soft_limits"`
	ParkPositions map[string]rawPark `json:"park_positions"`

	HasRoof   bool `json:"has_roof"`
	HasCovers bool `json:"has_covers"`
	HasFocus  bool `json:"has_focus"`

	CoverTimeout     float64 `json:"cover_timeout"`
	RoofOpenTimeout  float64 `json:"roof_open_timeout"`
	RoofCloseTimeout float64 `json:"roof_close_timeout"`
	FocusTolerance   float64 `json:"focus_tolerance"`
	FocusTimeout     float64 `json:"focus_timeout"`

	SecuritySystemDaemon string `json:"security_system_daemon"`
	SecuritySystemKey    string `json:"security_system_key"`
}

// Load reads, validates and resolves the configuration at path.
// Violations come back as a *SchemaError; anything else is an IO or
// syntax problem.
func Load(path string, book *address.Book) (*Config, error) {
	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	violations, err := validateSchema(doc)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		return nil, &SchemaError{Violations: violations}
	}

	var raw rawConfig
	if err := json.Unmarshal(doc, &raw); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return resolve(&raw, book)
}
