// Package server implements a scripted stand-in for the SentinelFlow engine:
// the same HTTP surface (streaming /ask, /mark_notified) answered from a
// canned order catalog, so the console runs end to end without the real
// reasoning backend.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sentinelflow/sentinelflow/internal/debug"
	"github.com/sentinelflow/sentinelflow/internal/sse"
)

var orderIDPattern = regexp.MustCompile(`(?i)(ORD-\d+)`)

// Options configures the demo engine.
type Options struct {
	Catalog Catalog
	// StepDelay is the pause between streamed steps, giving the console a
	// realistic thinking cadence. Zero streams all frames at once.
	StepDelay time.Duration
}

// Server is the demo engine.
type Server struct {
	catalog   Catalog
	stepDelay time.Duration

	mu       sync.Mutex
	notified map[string]bool
}

// New constructs a Server. A zero-value Options selects the default catalog.
func New(opts Options) *Server {
	c := opts.Catalog
	if len(c.Orders) == 0 {
		c = DefaultCatalog()
	}
	return &Server{
		catalog:   c,
		stepDelay: opts.StepDelay,
		notified:  make(map[string]bool),
	}
}

// Notified reports whether orderID was marked notified.
func (s *Server) Notified(orderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notified[strings.ToUpper(orderID)]
}

// Handler returns the engine's HTTP surface.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleRoot)
	mux.HandleFunc("POST /ask", s.handleAsk)
	mux.HandleFunc("POST /mark_notified/{orderID}", s.handleMarkNotified)
	return requestLogMiddleware(corsMiddleware(mux))
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "SentinelFlow demo engine is live"})
}

func (s *Server) handleMarkNotified(w http.ResponseWriter, r *http.Request) {
	orderID := strings.ToUpper(r.PathValue("orderID"))
	s.mu.Lock()
	s.notified[orderID] = true
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": fmt.Sprintf("Order %s marked as notified", orderID),
	})
}

type askRequest struct {
	Prompt string `json:"prompt"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "streaming unsupported"})
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	emit := func(ev sse.Event) {
		payload, err := json.Marshal(ev)
		if err != nil {
			return
		}
		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
		if s.stepDelay > 0 {
			select {
			case <-r.Context().Done():
			case <-time.After(s.stepDelay):
			}
		}
	}
	s.runScript(extractOrderID(req.Prompt), emit)
}

func extractOrderID(prompt string) string {
	m := orderIDPattern.FindString(prompt)
	if m == "" {
		return "unknown order"
	}
	return strings.ToUpper(m)
}

// runScript emits the step/result sequence for one order, in the cadence and
// wording of the real engine.
func (s *Server) runScript(orderID string, emit func(sse.Event)) {
	step := func(text string) { emit(sse.Event{Type: sse.TypeStep, Data: text}) }
	result := func(text string) { emit(sse.Event{Type: sse.TypeResult, Data: text}) }

	step("Accessing internal logistics database...")
	step(fmt.Sprintf("Looking up shipment records for %s...", orderID))
	step(fmt.Sprintf("Executing shipment status check for %s...", orderID))

	status, found := s.catalog.Status(orderID)
	if !found {
		step("✗ Order ID not found.")
		step("Compiling final report...")
		result(fmt.Sprintf("Order %s was not found in the database.", orderID))
		return
	}

	lower := strings.ToLower(status)
	switch {
	case strings.Contains(lower, "delayed"):
		step(fmt.Sprintf("⚠ Delay detected — %s", status))
	case strings.Contains(lower, "delivered"):
		step(fmt.Sprintf("✓ Shipment confirmed — %s", status))
	default:
		step(fmt.Sprintf("✓ Shipment on track — %s", status))
	}

	if !strings.Contains(lower, "delayed") {
		step("Compiling final report...")
		result(fmt.Sprintf("Order %s status: %s. No action required.", orderID, status))
		return
	}

	reason := strings.TrimSpace(strings.TrimPrefix(status, "Delayed -"))
	draft := apologyDraft(orderID, reason)
	step(fmt.Sprintf("Executing apology email draft for %s...", orderID))
	step("✉ Email drafted:\n" + draft)
	step("Compiling final report...")
	result(fmt.Sprintf(
		"Order %s is delayed (%s). An apology email has been drafted for the customer.\n\n📧 Drafted Email:\n%s",
		orderID, reason, draft,
	))
}

func apologyDraft(orderID, reason string) string {
	return fmt.Sprintf(
		"Subject: Important Update Regarding Your Order %s\n\n"+
			"Dear Valued Customer,\n\n"+
			"We are writing to inform you that your order %s is currently experiencing a delay due to: %s.\n"+
			"We sincerely apologize for this inconvenience and are actively monitoring your shipment.\n\n"+
			"Best regards,\nSentinelFlow Logistics Team",
		orderID, orderID, reason,
	)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestLogMiddleware tags each request with an ID and logs it when debug
// logging is on.
func requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		w.Header().Set("X-Request-ID", reqID)
		debug.LogKV("server", "request",
			"id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
		)
		next.ServeHTTP(w, r)
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
