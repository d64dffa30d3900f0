// internal/server/server_test.go
package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rockit-astro/mountd-talon/internal/command"
)

func TestStatusBeforeFirstPublish(t *testing.T) {
	srv := New(nil, nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/status")
	if err != nil {
		t.Fatalf("GET /status: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}
	var body struct {
		Code  int    `json:"code"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Code != int(command.DaemonUnreachable) {
		t.Errorf("code = %d, want %d", body.Code, command.DaemonUnreachable)
	}
	if body.Error != command.DaemonUnreachable.Message() {
		t.Errorf("error = %q, want %q", body.Error, command.DaemonUnreachable.Message())
	}
}

func TestStatusServesLatestReport(t *testing.T) {
	srv := New(nil, nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	srv.Publish(&Report{Telescope: "W1m", StateLabel: "TRACKING", Reachable: true})
	srv.Publish(&Report{Telescope: "W1m", StateLabel: "STOPPED", Reachable: true})

	resp, err := http.Get(ts.URL + "/status")
	if err != nil {
		t.Fatalf("GET /status: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var report Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.StateLabel != "STOPPED" {
		t.Errorf("StateLabel = %q, want the most recent publish", report.StateLabel)
	}
}

// Connecting clients race the publish path: the handshake frame and a
// broadcast must never write the same connection at the same time, or
// gorilla panics the publishing goroutine.
func TestWebsocketConnectDuringPublishes(t *testing.T) {
	srv := New(nil, nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	srv.Publish(&Report{Telescope: "W1m", StateLabel: "STOPPED"})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			srv.Publish(&Report{Telescope: "W1m", StateLabel: "TRACKING"})
		}
	}()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	for i := 0; i < 8; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		if err != nil {
			t.Fatalf("dial %d: %v", i, err)
		}
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		if _, _, err := conn.ReadMessage(); err != nil {
			t.Fatalf("read handshake frame %d: %v", i, err)
		}
		conn.Close()
	}
	<-done
}

func TestWebsocketReceivesPublishes(t *testing.T) {
	srv := New(nil, nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	srv.Publish(&Report{Telescope: "W1m", StateLabel: "STOPPED"})

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	defer conn.Close()

	// The current report arrives on connect.
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read initial frame: %v", err)
	}
	var report Report
	if err := json.Unmarshal(payload, &report); err != nil {
		t.Fatalf("decode initial frame: %v", err)
	}
	if report.StateLabel != "STOPPED" {
		t.Errorf("initial frame StateLabel = %q, want STOPPED", report.StateLabel)
	}

	// Each publish becomes one frame. Publishing races with the server
	// registering the client, so the connect frame above must land
	// before this publish is visible.
	srv.Publish(&Report{Telescope: "W1m", StateLabel: "TRACKING"})
	_, payload, err = conn.ReadMessage()
	if err != nil {
		t.Fatalf("read pushed frame: %v", err)
	}
	if err := json.Unmarshal(payload, &report); err != nil {
		t.Fatalf("decode pushed frame: %v", err)
	}
	if report.StateLabel != "TRACKING" {
		t.Errorf("pushed frame StateLabel = %q, want TRACKING", report.StateLabel)
	}
}
