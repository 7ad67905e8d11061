// Package webserver serves a read-only browser mirror of the console: an
// embedded page, a JSON snapshot endpoint, and a websocket pushing every
// dashboard state change.
package webserver

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sentinelflow/sentinelflow/internal/debug"
)

//go:embed static
var staticFS embed.FS

// Options configures the mirror server.
type Options struct {
	Host string
	Port int
}

// Server hosts the mirror HTTP surface.
type Server struct {
	hub        *Hub
	httpServer *http.Server
	listener   net.Listener
	host       string
	port       int
}

// New constructs a mirror server over hub.
func New(hub *Hub, opts Options) *Server {
	host := opts.Host
	if host == "" {
		host = "127.0.0.1"
	}
	srv := &Server{hub: hub, host: host, port: opts.Port}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/state", srv.handleState)
	mux.HandleFunc("GET /ws", srv.handleWebSocket)
	mux.HandleFunc("GET /", srv.handleIndex)

	srv.httpServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv
}

// Start binds the listener and serves in a background goroutine. It returns
// once the port is bound, so URL is valid afterwards.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.host, s.port))
	if err != nil {
		return fmt.Errorf("binding mirror server: %w", err)
	}
	s.listener = ln
	s.port = ln.Addr().(*net.TCPAddr).Port
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			debug.LogKV("webserver", "serve ended", "err", err.Error())
		}
	}()
	return nil
}

// Port returns the bound port.
func (s *Server) Port() int {
	return s.port
}

// URL returns the browser-facing address.
func (s *Server) URL() string {
	return fmt.Sprintf("http://%s:%d", s.host, s.port)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.hub.Last())
}
