// internal/address/book.go

// Package address maps the short daemon and machine names used in
// configuration files onto network endpoints. The built-in book lists
// the observatory's production hosts; deployments override entries
// with a YAML file when testing against local daemons.
package address

import (
	"fmt"
	"net"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Daemon is one resolvable daemon endpoint.
type Daemon struct {
	Name string
	Host string
	Port int
}

// Addr returns the dialable host:port for d.
func (d Daemon) Addr() string {
	return net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
}

// Book resolves daemon names to endpoints and machine names to the IPs
// allowed to issue control commands.
type Book struct {
	daemons  map[string]Daemon
	machines map[string]string
}

// Defaults returns the built-in observatory address book.
func Defaults() *Book {
	b := &Book{
		daemons:  make(map[string]Daemon),
		machines: make(map[string]string),
	}
	for name, d := range defaultDaemons {
		b.daemons[name] = Daemon{Name: name, Host: d.Host, Port: d.Port}
	}
	for name, ip := range defaultMachines {
		b.machines[name] = ip
	}
	return b
}

// Daemon looks up a daemon endpoint by its configuration name.
func (b *Book) Daemon(name string) (Daemon, bool) {
	d, ok := b.daemons[name]
	return d, ok
}

// MachineIP looks up the IP registered for a control machine name.
func (b *Book) MachineIP(name string) (string, bool) {
	ip, ok := b.machines[name]
	return ip, ok
}

// DaemonNames returns the known daemon names, sorted.
func (b *Book) DaemonNames() []string {
	names := make([]string, 0, len(b.daemons))
	for name := range b.daemons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MachineNames returns the known machine names, sorted.
func (b *Book) MachineNames() []string {
	names := make([]string, 0, len(b.machines))
	for name := range b.machines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type overrideFile struct {
	Daemons map[string]struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"daemons"`
	Machines map[string]string `yaml:"machines"`
}

// MergeFile applies overrides from a YAML file on top of the book.
// Entries replace existing names or add new ones; nothing is removed.
func (b *Book) MergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("address: read overrides: %w", err)
	}
	var o overrideFile
	if err := yaml.Unmarshal(raw, &o); err != nil {
		return fmt.Errorf("address: parse overrides %s: %w", path, err)
	}
	for name, d := range o.Daemons {
		if d.Host == "" || d.Port <= 0 || d.Port > 65535 {
			return fmt.Errorf("address: override daemon %s: need host and port in 1-65535", name)
		}
		b.daemons[name] = Daemon{Name: name, Host: d.Host, Port: d.Port}
	}
	for name, ip := range o.Machines {
		if net.ParseIP(ip) == nil {
			return fmt.Errorf("address: override machine %s: invalid IP %q", name, ip)
		}
		b.machines[name] = ip
	}
	return nil
}

// Production endpoints. Ports follow the observatory convention of one
// port per daemon, fixed across hosts.
var defaultDaemons = map[string]struct {
	Host string
	Port int
}{
	"onemetre_telescope":       {"onemetre-tcs.lapalma.local", 9003},
	"onemetre_power":           {"onemetre-dome.lapalma.local", 9009},
	"onemetre_dome":            {"onemetre-dome.lapalma.local", 9004},
	"onemetre_security_system": {"onemetre-dome.lapalma.local", 9027},
	"superwasp_telescope":      {"superwasp-tcs.lapalma.local", 9003},
	"superwasp_dome":           {"superwasp-dome.lapalma.local", 9004},
	"observatory_log":          {"gotoserver.lapalma.local", 9016},
}

var defaultMachines = map[string]string{
	"OneMetreDome":   "10.2.6.201",
	"OneMetreTCS":    "10.2.6.202",
	"SuperWASPTCS":   "10.2.6.203",
	"SuperWASPDome":  "10.2.6.204",
	"GOTOServer":     "10.2.6.100",
	"ObservatoryNUC": "10.2.6.110",
}
