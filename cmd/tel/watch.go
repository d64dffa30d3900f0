// cmd/tel/watch.go
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/urfave/cli/v2"

	"github.com/rockit-astro/mountd-talon/internal/server"
)

// runWatch subscribes to the daemon's websocket feed and re-renders
// the status table for every pushed report until interrupted.
func runWatch(c *cli.Context) error {
	daemon, err := resolve(c)
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+daemon.Addr()+"/ws", nil)
	if err != nil {
		return unreachable()
	}
	defer conn.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	stopped := make(chan struct{})
	go func() {
		<-interrupt
		close(stopped)
		conn.Close()
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-stopped:
				return nil
			default:
			}
			return unreachable()
		}
		var r server.Report
		if err := json.Unmarshal(payload, &r); err != nil {
			return fmt.Errorf("tel: bad report frame: %w", err)
		}
		printReport(os.Stdout, &r)
		fmt.Println()
	}
}
