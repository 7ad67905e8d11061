package server

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sentinelflow/sentinelflow/internal/agent"
	"github.com/sentinelflow/sentinelflow/internal/classify"
)

func newTestEngine(t *testing.T) (*Server, *agent.Client) {
	t.Helper()
	s := New(Options{})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, agent.New(ts.URL)
}

func TestAskDelayedOrderDraftsEmail(t *testing.T) {
	_, c := newTestEngine(t)

	var steps []string
	final, err := c.Run(context.Background(), "ORD-002", func(s string) { steps = append(steps, s) })
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(steps) == 0 || steps[0] != "Accessing internal logistics database..." {
		t.Fatalf("steps = %v", steps)
	}
	var sawDelay, sawEmail bool
	for _, s := range steps {
		if strings.HasPrefix(s, "⚠") {
			sawDelay = true
		}
		if strings.HasPrefix(s, "✉") {
			sawEmail = true
		}
	}
	if !sawDelay || !sawEmail {
		t.Errorf("expected delay and email steps, got %v", steps)
	}

	cls := classify.Classify(final)
	if cls.Kind != classify.KindEmailDraft {
		t.Fatalf("final text not classified as draft: %q", final)
	}
	if !strings.HasPrefix(cls.Draft.Body, "Subject: Important Update Regarding Your Order ORD-002") {
		t.Errorf("draft body = %q", cls.Draft.Body)
	}
}

func TestAskOnTimeOrder(t *testing.T) {
	_, c := newTestEngine(t)

	final, err := c.Run(context.Background(), "ORD-001", nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if final != "Order ORD-001 status: On Time - In Transit. No action required." {
		t.Errorf("final = %q", final)
	}
	if classify.Classify(final).Kind != classify.KindOnTime {
		t.Errorf("final not classified on time: %q", final)
	}
}

func TestAskUnknownOrder(t *testing.T) {
	_, c := newTestEngine(t)

	final, err := c.Run(context.Background(), "ORD-999", nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if final != "Order ORD-999 was not found in the database." {
		t.Errorf("final = %q", final)
	}
}

func TestAskLowercaseOrderID(t *testing.T) {
	_, c := newTestEngine(t)

	final, err := c.Run(context.Background(), "ord-003", nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if final != "Order ORD-003 status: Delivered. No action required." {
		t.Errorf("final = %q", final)
	}
}

func TestMarkNotified(t *testing.T) {
	s, c := newTestEngine(t)

	c.MarkNotified(context.Background(), "ord-002")
	if !s.Notified("ORD-002") {
		t.Error("order not marked notified")
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.yaml")
	data := "orders:\n  ORD-100: \"Delayed - Customs inspection\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	status, ok := cat.Status("ORD-100")
	if !ok || status != "Delayed - Customs inspection" {
		t.Errorf("Status = %q, %v", status, ok)
	}

	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing catalog file")
	}
}
