// internal/config/validate.go
package config

import (
	"fmt"
	"sort"

	"github.com/rockit-astro/mountd-talon/internal/address"
	"github.com/rockit-astro/mountd-talon/internal/talon"
)

// resolve turns a schema-clean raw document into a Config. Name
// resolution and variant coherence cannot be expressed in the schema,
// so they are checked here; problems are collected into the same
// path-qualified violation list the schema pass uses.
func resolve(raw *rawConfig, book *address.Book) (*Config, error) {
	var violations []string

	daemon, ok := book.Daemon(raw.Daemon)
	if !ok {
		violations = append(violations, fmt.Sprintf("daemon: unknown daemon name %q", raw.Daemon))
	}

	ips := make([]string, 0, len(raw.ControlMachines))
	for i, name := range raw.ControlMachines {
		ip, ok := book.MachineIP(name)
		if !ok {
			violations = append(violations, fmt.Sprintf("control_machines.%d: unknown machine name %q", i, name))
			continue
		}
		ips = append(ips, ip)
	}

	variant, err := talon.ParseVariant(raw.Telescope)
	if err != nil {
		// The schema enum already rejects unknown names; this only
		// fires if the enum and ParseVariant drift apart.
		violations = append(violations, fmt.Sprintf("telescope: %v", err))
	}

	var security *address.Daemon
	if raw.SecuritySystemDaemon != "" {
		d, ok := book.Daemon(raw.SecuritySystemDaemon)
		if !ok {
			violations = append(violations, fmt.Sprintf("security_system_daemon: unknown daemon name %q", raw.SecuritySystemDaemon))
		} else {
			security = &d
		}
	}

	if len(violations) == 0 {
		layout, err := talon.LayoutFor(variant)
		if err != nil {
			return nil, err
		}
		if raw.HasRoof && !layout.Has(talon.FieldRoofState) {
			violations = append(violations, fmt.Sprintf("has_roof: %s does not report a roof state", raw.Telescope))
		}
		if raw.HasCovers && !layout.Has(talon.FieldCoverState) {
			violations = append(violations, fmt.Sprintf("has_covers: %s does not report a cover state", raw.Telescope))
		}
		if raw.HasFocus && !layout.Has(talon.FieldFocusCPos) {
			violations = append(violations, fmt.Sprintf("has_focus: %s does not report a focus position", raw.Telescope))
		}
	}

	if len(violations) > 0 {
		sort.Strings(violations)
		return nil, &SchemaError{Violations: violations}
	}

	parks := make(map[string]ParkPosition, len(raw.ParkPositions))
	for name, p := range raw.ParkPositions {
		parks[name] = ParkPosition{Description: p.Desc, Alt: p.Alt, Az: p.Az}
	}

	cfg := &Config{
		Daemon:   daemon,
		LogName:  raw.LogName,
		LogLevel: raw.LogLevel,

		ControlMachines: raw.ControlMachines,
		ControlIPs:      ips,

		Telescope: raw.Telescope,
		Variant:   variant,
		Virtual:   raw.Virtual,

		QueryDelay:            raw.QueryDelay,
		InitializationTimeout: raw.InitializationTimeout,
		SlewTimeout:           raw.SlewTimeout,
		HomingTimeout:         raw.HomingTimeout,
		LimitTimeout:          raw.LimitTimeout,
		PingTimeout:           raw.PingTimeout,

		HASoftLimits:  [2]float64{raw.HASoftLimits[0], raw.HASoftLimits[1]},
		DecSoftLimits: [2]float64{raw.DecSoftLimits[0], raw.DecSoftLimits[1]},
		ParkPositions: parks,

		HasRoof:   raw.HasRoof,
		HasCovers: raw.HasCovers,
		HasFocus:  raw.HasFocus,

		CoverTimeout:     raw.CoverTimeout,
		RoofOpenTimeout:  raw.RoofOpenTimeout,
		RoofCloseTimeout: raw.RoofCloseTimeout,
		FocusTolerance:   raw.FocusTolerance,
		FocusTimeout:     raw.FocusTimeout,

		SecuritySystemDaemon: security,
		SecuritySystemKey:    raw.SecuritySystemKey,
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}
