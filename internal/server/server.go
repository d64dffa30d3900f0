// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rockit-astro/mountd-talon/internal/command"
	"github.com/rockit-astro/mountd-talon/internal/telemetry/logger"
	"github.com/rockit-astro/mountd-talon/internal/telemetry/metric"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// writeWait bounds a single websocket push so one stalled dashboard
// cannot back up the publish path.
const writeWait = 5 * time.Second

// Server publishes the latest report over HTTP. GET /status returns
// the most recent report as JSON, GET /metrics serves the Prometheus
// registry and GET /ws pushes every new report to connected clients.
type Server struct {
	log     logger.Logger
	metrics *metric.Metrics

	mu     sync.RWMutex
	latest *Report

	cmu     sync.Mutex
	clients map[*websocket.Conn]bool

	http *http.Server
}

// New creates a server with no report yet: /status answers 503 until
// the first Publish.
func New(log logger.Logger, metrics *metric.Metrics) *Server {
	if log == nil {
		log = logger.Discard()
	}
	return &Server{
		log:     log,
		metrics: metrics,
		clients: make(map[*websocket.Conn]bool),
	}
}

// Publish installs report as the latest and pushes it to every
// websocket client. Safe to call concurrently with request handling.
func (s *Server) Publish(report *Report) {
	s.mu.Lock()
	s.latest = report
	s.mu.Unlock()

	payload, err := json.Marshal(report)
	if err != nil {
		s.log.Error("report marshal failed", "error", err)
		return
	}
	s.broadcast(payload)
}

func (s *Server) broadcast(payload []byte) {
	s.cmu.Lock()
	defer s.cmu.Unlock()
	for conn := range s.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			delete(s.clients, conn)
			conn.Close()
		}
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	latest := s.latest
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if latest == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]any{
			"code":  int(command.DaemonUnreachable),
			"error": command.DaemonUnreachable.Message(),
		})
		return
	}
	json.NewEncoder(w).Encode(latest)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	s.mu.RLock()
	latest := s.latest
	s.mu.RUnlock()

	// Send the current report immediately so a fresh client does not
	// wait out a poll interval for its first frame. The write happens
	// under the client-set lock: the connection must never be visible
	// to broadcast while another goroutine is mid-write on it.
	s.cmu.Lock()
	if latest != nil {
		if payload, err := json.Marshal(latest); err == nil {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.TextMessage, payload)
		}
	}
	s.clients[conn] = true
	s.cmu.Unlock()

	// Drain the read side until the client goes away.
	go func() {
		defer func() {
			s.cmu.Lock()
			delete(s.clients, conn)
			s.cmu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Handler returns the server's route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/ws", s.handleWS)
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}
	return mux
}

// Run serves on addr until ctx is cancelled, then shuts down
// gracefully and disconnects the websocket clients.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.http = &http.Server{Addr: addr, Handler: s.Handler()}

	errc := make(chan error, 1)
	go func() {
		errc <- s.http.ListenAndServe()
	}()
	s.log.Info("status server listening", "addr", addr)

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()
	err := s.http.Shutdown(shutdownCtx)

	s.cmu.Lock()
	for conn := range s.clients {
		conn.Close()
		delete(s.clients, conn)
	}
	s.cmu.Unlock()
	return err
}
