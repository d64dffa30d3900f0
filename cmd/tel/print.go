// cmd/tel/print.go
package main

import (
	"fmt"
	"io"

	"github.com/rockit-astro/mountd-talon/internal/server"
	"github.com/rockit-astro/mountd-talon/internal/state"
)

// printReport renders the report as the right-aligned field table the
// operators read off the control room terminals. State labels carry
// the shared highlighting so STOPPED reads red everywhere.
func printReport(w io.Writer, r *server.Report) {
	row := func(name, format string, args ...any) {
		fmt.Fprintf(w, "%16s: ", name)
		fmt.Fprintf(w, format, args...)
		fmt.Fprintln(w)
	}

	telescope := r.Telescope
	if r.Virtual {
		telescope += " (virtual)"
	}
	row("Telescope", "%s", telescope)
	row("State", "%s", state.TelState(r.State).Formatted())
	if r.Error != "" {
		row("Error", "%s", r.Error)
	}
	if r.MJD != 0 {
		row("MJD", "%.6f", r.MJD)
	}
	if r.LSTHours != nil {
		row("LST", "%.4f h", *r.LSTHours)
	}

	if p := r.Pointing; p != nil {
		row("RA (J2000)", "%.4f°", p.RADeg)
		row("Dec (J2000)", "%.4f°", p.DecDeg)
		if p.HAHours != nil {
			row("HA", "%.4f h", *p.HAHours)
		}
		if p.AltDeg != nil && p.AzDeg != nil {
			row("Alt / Az", "%.4f° / %.4f°", *p.AltDeg, *p.AzDeg)
		}
	}

	if a := r.Axes; a != nil {
		homed := "NOT HOMED"
		if a.Homed {
			homed = "HOMED"
		}
		row("Axes", "%s", homed)
	}

	if f := r.Focus; f != nil {
		row("Focus", "%s (%.1f um)", state.FocusState(f.State).Formatted(), f.Position)
	}
	if c := r.Covers; c != nil {
		row("Covers", "%s", state.CoverState(c.State).Formatted())
	}
	if ro := r.Roof; ro != nil {
		row("Roof", "%s", state.RoofState(ro.State).Formatted())
	}
	if h := r.Heartbeat; h != nil {
		row("Heartbeat", "%ds remaining", h.RemainingSeconds)
	}
}
