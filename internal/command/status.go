// internal/command/status.go

// Package command defines the numeric status vocabulary shared between
// talond and its clients. Every daemon operation returns one of these
// codes; clients map them back to operator-facing messages.
package command

import "fmt"

// Status is a numeric command return code. Zero means success, positive
// codes are daemon-side failures, negative codes are client-side and
// never cross the wire.
type Status int

const (
	Succeeded Status = 0
	Failed    Status = 1
	Blocked   Status = 2

	InvalidControlIP                    Status = 5
	CannotCommunicateWithSecuritySystem Status = 6
	SecuritySystemTripped               Status = 7

	TelescopeNotInitialized   Status = 10
	TelescopeNotHomed         Status = 11
	TelescopeNotStopped       Status = 12
	TelescopeNotUninitialized Status = 14

	OutsideHALimits  Status = 20
	OutsideDecLimits Status = 21

	// Client-side codes.
	TerminatedByUser    Status = -100
	DaemonUnreachable   Status = -101
	CommandNotAvailable Status = -102
	PipelineUnreachable Status = -103
)

// Succeeded carries no message: callers only look codes up on failure.
var messages = map[Status]string{
	Failed:  "error: command failed",
	Blocked: "error: another command is already running",

	InvalidControlIP:                    "error: command not accepted from this IP",
	CannotCommunicateWithSecuritySystem: "error: telescope failed to communicate with security system daemon",
	SecuritySystemTripped:               "error: hard limits (security system) have been tripped",

	TelescopeNotInitialized:   "error: telescope has not been initialized",
	TelescopeNotHomed:         "error: telescope has not been homed",
	TelescopeNotStopped:       "error: telescope is not stopped",
	TelescopeNotUninitialized: "error: telescope has already been initialized",

	OutsideHALimits:  "error: requested coordinates outside HA limits",
	OutsideDecLimits: "error: requested coordinates outside Dec limits",

	TerminatedByUser:    "error: terminated by user",
	DaemonUnreachable:   "error: unable to communicate with telescope daemon",
	CommandNotAvailable: "error: command not available for this telescope",
	PipelineUnreachable: "error: unable to communicate with data pipeline daemon",
}

// Message returns the operator-facing description of s. Codes outside
// the vocabulary (including Succeeded) report the raw number so that
// a version-skewed daemon still produces something actionable.
func (s Status) Message() string {
	if m, ok := messages[s]; ok {
		return m
	}
	return fmt.Sprintf("error: Unknown error code %d", s)
}
