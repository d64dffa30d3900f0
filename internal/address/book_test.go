// internal/address/book_test.go
package address

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsResolve(t *testing.T) {
	b := Defaults()

	d, ok := b.Daemon("onemetre_telescope")
	if !ok {
		t.Fatal("onemetre_telescope missing from default book")
	}
	if d.Port != 9003 {
		t.Fatalf("onemetre_telescope port = %d, want 9003", d.Port)
	}
	if d.Addr() != "onemetre-tcs.lapalma.local:9003" {
		t.Fatalf("Addr() = %q", d.Addr())
	}

	if _, ok := b.Daemon("no_such_daemon"); ok {
		t.Fatal("unexpected daemon resolution")
	}

	ip, ok := b.MachineIP("OneMetreTCS")
	if !ok || ip != "10.2.6.202" {
		t.Fatalf("MachineIP(OneMetreTCS) = %q, %v", ip, ok)
	}
}

func TestMergeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	data := `daemons:
  onemetre_telescope:
    host: 127.0.0.1
    port: 19003
  test_telescope:
    host: localhost
    port: 9900
machines:
  TestRig: 192.168.1.50
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	b := Defaults()
	if err := b.MergeFile(path); err != nil {
		t.Fatalf("MergeFile: %v", err)
	}

	d, _ := b.Daemon("onemetre_telescope")
	if d.Addr() != "127.0.0.1:19003" {
		t.Fatalf("override not applied: %q", d.Addr())
	}
	if _, ok := b.Daemon("test_telescope"); !ok {
		t.Fatal("new daemon entry not added")
	}
	if ip, ok := b.MachineIP("TestRig"); !ok || ip != "192.168.1.50" {
		t.Fatalf("MachineIP(TestRig) = %q, %v", ip, ok)
	}

	// Untouched entries survive the merge.
	if _, ok := b.Daemon("superwasp_telescope"); !ok {
		t.Fatal("default entry lost during merge")
	}
}

func TestMergeFileRejectsBadEntries(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"missing port", "daemons:\n  broken:\n    host: somewhere\n"},
		{"bad ip", "machines:\n  Broken: not-an-ip\n"},
	}
	for _, c := range cases {
		path := filepath.Join(t.TempDir(), "overrides.yaml")
		if err := os.WriteFile(path, []byte(c.data), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := Defaults().MergeFile(path); err == nil {
			t.Errorf("%s: MergeFile accepted invalid overrides", c.name)
		}
	}
}

func TestNamesSorted(t *testing.T) {
	b := Defaults()
	names := b.DaemonNames()
	if len(names) == 0 {
		t.Fatal("no daemon names")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("daemon names not sorted: %q before %q", names[i-1], names[i])
		}
	}
}
