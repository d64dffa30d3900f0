// cmd/tel/main.go

// tel is the operator's read-only view of a telescope daemon. It
// resolves the daemon through the observatory address book and renders
// the /status report; command verbs live with the control clients.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/rockit-astro/mountd-talon/internal/address"
	"github.com/rockit-astro/mountd-talon/internal/command"
	"github.com/rockit-astro/mountd-talon/internal/server"
)

// Build information, set via ldflags.
var Version = "dev"

func main() {
	if err := app().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func app() *cli.App {
	return &cli.App{
		Name:    "tel",
		Usage:   "query the telescope control daemon",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "daemon",
				Aliases: []string{"d"},
				Usage:   "daemon name from the address book",
				EnvVars: []string{"TEL_DAEMON"},
				Value:   "onemetre_telescope",
			},
			&cli.StringFlag{
				Name:    "addresses",
				Usage:   "YAML address book override file",
				EnvVars: []string{"TEL_ADDRESSES"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "print the current telescope status",
				Action: runStatus,
			},
			{
				Name:   "json",
				Usage:  "print the raw status report",
				Action: runJSON,
			},
			{
				Name:   "watch",
				Usage:  "stream status updates as they are published",
				Action: runWatch,
			},
		},
	}
}

// resolve maps the --daemon flag to a dialable endpoint. Unknown names
// list what the book does know.
func resolve(c *cli.Context) (address.Daemon, error) {
	book := address.Defaults()
	if path := c.String("addresses"); path != "" {
		if err := book.MergeFile(path); err != nil {
			return address.Daemon{}, err
		}
	}
	name := c.String("daemon")
	daemon, ok := book.Daemon(name)
	if !ok {
		return address.Daemon{}, fmt.Errorf("tel: unknown daemon %q (known: %v)", name, book.DaemonNames())
	}
	return daemon, nil
}

// unreachable is the exit for any connection failure, worded with the
// shared command status vocabulary.
func unreachable() error {
	return cli.Exit(command.DaemonUnreachable.Message(), 1)
}

func fetchReport(daemon address.Daemon) (*server.Report, []byte, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get("http://" + daemon.Addr() + "/status")
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	var r server.Report
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, nil, err
	}
	if resp.StatusCode != http.StatusOK {
		if r.Error != "" {
			return nil, nil, fmt.Errorf("%s", r.Error)
		}
		return nil, nil, fmt.Errorf("tel: daemon returned %s", resp.Status)
	}
	return &r, body, nil
}

func runStatus(c *cli.Context) error {
	daemon, err := resolve(c)
	if err != nil {
		return err
	}
	r, _, err := fetchReport(daemon)
	if err != nil {
		return unreachable()
	}
	printReport(os.Stdout, r)
	return nil
}

func runJSON(c *cli.Context) error {
	daemon, err := resolve(c)
	if err != nil {
		return err
	}
	_, body, err := fetchReport(daemon)
	if err != nil {
		return unreachable()
	}
	os.Stdout.Write(body)
	if len(body) == 0 || body[len(body)-1] != '\n' {
		fmt.Println()
	}
	return nil
}
