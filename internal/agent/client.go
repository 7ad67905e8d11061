// Package agent drives reconciliation runs against the SentinelFlow engine
// over its HTTP streaming boundary.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sentinelflow/sentinelflow/internal/debug"
	"github.com/sentinelflow/sentinelflow/internal/sse"
)

// DefaultBaseURL is the engine address the original deployment uses.
const DefaultBaseURL = "http://localhost:8000"

// fallbackText is returned when a stream ends without a result event. The
// absence of a result is not an error.
const fallbackText = "No response received."

// Client talks to one engine instance. A run holds the connection open for
// the whole stream, so the HTTP client carries no overall timeout.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New returns a client for the engine at baseURL. An empty baseURL selects
// DefaultBaseURL.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{},
	}
}

type askRequest struct {
	Prompt string `json:"prompt"`
}

// Run performs one reconciliation run for orderID. Every step event is passed
// to onStep synchronously, in arrival order, before Run returns. The returned
// string is the run's final text, or fallbackText when the stream ended
// without a result. A non-2xx initial response fails the run with a
// *TransportError; there is no retry.
func (c *Client) Run(ctx context.Context, orderID string, onStep func(string)) (string, error) {
	body, err := json.Marshal(askRequest{Prompt: "Check logistics for order " + orderID})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/ask", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("contacting engine: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", &TransportError{Status: resp.StatusCode}
	}

	final, ok, err := sse.Stream(resp.Body, onStep)
	if err != nil {
		return "", fmt.Errorf("reading engine stream: %w", err)
	}
	debug.LogKV("agent", "run finished",
		"order", orderID,
		"saw_result", ok,
		"duration", time.Since(started).Round(time.Millisecond).String(),
	)
	if !ok {
		return fallbackText, nil
	}
	return final, nil
}

// MarkNotified records on the engine that the customer was notified for
// orderID. Fire and forget: a failure is logged and swallowed, it never
// blocks or surfaces in the approval flow.
func (c *Client) MarkNotified(ctx context.Context, orderID string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/mark_notified/"+orderID, nil)
	if err != nil {
		debug.LogKV("agent", "mark_notified request build failed", "order", orderID, "err", err.Error())
		return
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		debug.LogKV("agent", "mark_notified failed", "order", orderID, "err", err.Error())
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		debug.LogKV("agent", "mark_notified rejected", "order", orderID, "status", resp.StatusCode)
	}
}
