// cmd/talond/main.go

// talond bridges the legacy talon control system into the observatory
// network: it polls talon's shared memory segment and republishes the
// decoded state over HTTP and websocket.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rockit-astro/mountd-talon/internal/address"
	"github.com/rockit-astro/mountd-talon/internal/config"
	"github.com/rockit-astro/mountd-talon/internal/poller"
	"github.com/rockit-astro/mountd-talon/internal/server"
	"github.com/rockit-astro/mountd-talon/internal/talon"
	"github.com/rockit-astro/mountd-talon/internal/telemetry/logger"
	"github.com/rockit-astro/mountd-talon/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "talond: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	addresses := flag.String("addresses", "", "YAML address book override file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: talond [flags] <config.json>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	// --------------------
	// Load + validate config
	// --------------------

	book := address.Defaults()
	if *addresses != "" {
		if err := book.MergeFile(*addresses); err != nil {
			return err
		}
	}

	cfg, err := config.Load(flag.Arg(0), book)
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel}).With("daemon", cfg.Daemon.Name)
	metrics := metric.New()

	layout, err := talon.LayoutFor(cfg.Variant)
	if err != nil {
		return err
	}

	// --------------------
	// Build poller + server
	// --------------------

	p, err := poller.Build(cfg, log, metrics)
	if err != nil {
		return err
	}

	srv := server.New(log, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := make(chan poller.PollResult)
	go p.Run(ctx, out)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case res := <-out:
				srv.Publish(server.Build(cfg, layout, res))
			}
		}
	}()

	log.Info("talond starting",
		"telescope", cfg.Telescope,
		"virtual", cfg.Virtual,
		"query_delay", cfg.QueryDelay)

	err = srv.Run(ctx, cfg.Daemon.Addr())
	log.Info("talond stopped")
	return err
}
