package batch

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// scriptedRunner returns canned step/final sequences per order and fails for
// orders mapped to an error.
type scriptedRunner struct {
	steps  map[string][]string
	finals map[string]string
	errs   map[string]error
	calls  []string
}

func (r *scriptedRunner) Run(_ context.Context, orderID string, onStep func(string)) (string, error) {
	r.calls = append(r.calls, orderID)
	if err := r.errs[orderID]; err != nil {
		return "", err
	}
	for _, s := range r.steps[orderID] {
		onStep(s)
	}
	return r.finals[orderID], nil
}

func runBatch(t *testing.T, r Runner, orderIDs []string) *State {
	t.Helper()
	st := NewState()
	Run(context.Background(), r, orderIDs, func(ev Event) { st.Apply(ev) })
	return st
}

func TestBatchMultiOrder(t *testing.T) {
	r := &scriptedRunner{
		steps: map[string][]string{
			"ORD-001": {"checking", "✓ Shipment on track"},
			"ORD-002": {"checking", "⚠ Delay detected"},
		},
		finals: map[string]string{
			"ORD-001": "Order ORD-001 status: On Time - In Transit. No action required.",
			"ORD-002": "Order ORD-002 is delayed.\n\n📧 Drafted Email:\nSubject: Apology\nDear Customer...",
		},
	}
	st := runBatch(t, r, []string{"ORD-001", "ORD-002"})

	if st.Stats.OrdersChecked != 2 {
		t.Errorf("OrdersChecked = %d, want 2", st.Stats.OrdersChecked)
	}
	if st.Stats.EmailsDrafted != 1 {
		t.Errorf("EmailsDrafted = %d, want 1", st.Stats.EmailsDrafted)
	}

	entries := st.History.Entries()
	if len(entries) != 2 {
		t.Fatalf("history len = %d, want 2", len(entries))
	}
	if entries[0].OrderID != "ORD-002" {
		t.Errorf("newest history entry = %s, want ORD-002", entries[0].OrderID)
	}
	if !entries[0].HasEmail || entries[1].HasEmail {
		t.Errorf("hasEmail flags wrong: %+v", entries)
	}

	if !strings.HasPrefix(st.Output, "Batch complete: 2 orders processed.") {
		t.Errorf("output = %q, want batch banner first", st.Output)
	}
	if !strings.Contains(st.Output, "📧 Drafted Email:") {
		t.Errorf("output should end with the last order's final text: %q", st.Output)
	}
	if st.Running {
		t.Error("state still running after batch end")
	}
}

func TestBatchSingleOrderVerbatimOutput(t *testing.T) {
	r := &scriptedRunner{
		finals: map[string]string{"ORD-001": "Order ORD-001 status: Delivered. No action required."},
	}
	st := runBatch(t, r, []string{"ORD-001"})
	if st.Output != "Order ORD-001 status: Delivered. No action required." {
		t.Errorf("output = %q, want final text verbatim", st.Output)
	}
}

func TestBatchProgressMarkers(t *testing.T) {
	r := &scriptedRunner{
		steps: map[string][]string{
			"A": {"a1"}, "B": {"b1"}, "C": {"c1"},
		},
		finals: map[string]string{"A": "done a", "B": "done b", "C": "done c"},
	}
	st := runBatch(t, r, []string{"A", "B", "C"})

	want := []string{"a1", "── [2/3] B ──", "b1", "── [3/3] C ──", "c1"}
	if len(st.Steps) != len(want) {
		t.Fatalf("steps = %v, want %v", st.Steps, want)
	}
	for i := range want {
		if st.Steps[i] != want[i] {
			t.Errorf("step[%d] = %q, want %q", i, st.Steps[i], want[i])
		}
	}
}

func TestBatchNoMarkerForSingleOrder(t *testing.T) {
	r := &scriptedRunner{
		steps:  map[string][]string{"A": {"a1"}},
		finals: map[string]string{"A": "done"},
	}
	st := runBatch(t, r, []string{"A"})
	for _, s := range st.Steps {
		if strings.Contains(s, "[1/1]") {
			t.Errorf("unexpected marker in single-order batch: %q", s)
		}
	}
}

func TestBatchAbortsOnFailure(t *testing.T) {
	r := &scriptedRunner{
		finals: map[string]string{"A": "done a", "C": "done c"},
		errs:   map[string]error{"B": errors.New("Server error: 502")},
	}
	st := runBatch(t, r, []string{"A", "B", "C"})

	if st.Stats.OrdersChecked != 1 {
		t.Errorf("OrdersChecked = %d, want 1 (only A committed)", st.Stats.OrdersChecked)
	}
	if len(r.calls) != 2 {
		t.Errorf("calls = %v, C must never be attempted", r.calls)
	}
	if st.Output != "Server error: 502" {
		t.Errorf("output = %q, want the failure message", st.Output)
	}
	if st.History.Len() != 1 {
		t.Errorf("history len = %d, partial progress must be retained", st.History.Len())
	}
	if st.Running {
		t.Error("state still running after abort")
	}
}
