// internal/command/status_test.go
package command

import "testing"

func TestMessages(t *testing.T) {
	cases := []struct {
		status Status
		want   string
	}{
		{Failed, "error: command failed"},
		{Blocked, "error: another command is already running"},
		{TelescopeNotInitialized, "error: telescope has not been initialized"},
		{TelescopeNotHomed, "error: telescope has not been homed"},
		{TelescopeNotStopped, "error: telescope is not stopped"},
		{OutsideHALimits, "error: requested coordinates outside HA limits"},
		{OutsideDecLimits, "error: requested coordinates outside Dec limits"},
		{DaemonUnreachable, "error: unable to communicate with telescope daemon"},
		{TerminatedByUser, "error: terminated by user"},
	}
	for _, c := range cases {
		if got := c.status.Message(); got != c.want {
			t.Errorf("Status(%d).Message() = %q, want %q", c.status, got, c.want)
		}
	}
}

func TestUnknownCodeMessage(t *testing.T) {
	if got, want := Status(999).Message(), "error: Unknown error code 999"; got != want {
		t.Fatalf("Message() = %q, want %q", got, want)
	}
	if got, want := Status(-7).Message(), "error: Unknown error code -7"; got != want {
		t.Fatalf("Message() = %q, want %q", got, want)
	}
}

func TestSucceededHasNoMessage(t *testing.T) {
	// Success is never surfaced through Message; asking for it reports
	// the code number like any other unmapped value.
	if got, want := Succeeded.Message(), "error: Unknown error code 0"; got != want {
		t.Fatalf("Succeeded.Message() = %q, want %q", got, want)
	}
}
