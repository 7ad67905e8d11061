// Package batch sequences reconciliation runs and folds their side effects
// into dashboard state.
//
// The orchestration is event-sourced: Run drives the agent client one order
// at a time and emits typed events, and State.Apply folds each event into the
// visible aggregates (step log, counters, history, output) as a single
// synchronous mutation. The emitter and the reducer may live on different
// goroutines as long as every event is applied from one loop, which is how
// the TUI wires them.
package batch

import (
	"context"
	"fmt"

	"github.com/sentinelflow/sentinelflow/internal/classify"
	"github.com/sentinelflow/sentinelflow/internal/history"
	"github.com/sentinelflow/sentinelflow/internal/stats"
)

// Runner performs one reconciliation run. *agent.Client satisfies this.
type Runner interface {
	Run(ctx context.Context, orderID string, onStep func(string)) (string, error)
}

// Event is a marker for batch lifecycle events.
type Event interface{ batchEvent() }

// StartedEvent opens a batch and resets the visible run state.
type StartedEvent struct {
	OrderIDs []string
}

// RunStartedEvent marks the beginning of one order's run. Index is 0-based.
type RunStartedEvent struct {
	Index   int
	Total   int
	OrderID string
}

// StepEvent carries one intermediate progress message.
type StepEvent struct {
	OrderID string
	Text    string
}

// RunFinishedEvent carries one order's final text.
type RunFinishedEvent struct {
	Index     int
	Total     int
	OrderID   string
	FinalText string
}

// FailedEvent aborts the batch. Orders after the failing one are never
// attempted; progress already committed stays.
type FailedEvent struct {
	OrderID string
	Err     error
}

// FinishedEvent closes a fully successful batch.
type FinishedEvent struct {
	Total int
}

func (StartedEvent) batchEvent()     {}
func (RunStartedEvent) batchEvent()  {}
func (StepEvent) batchEvent()        {}
func (RunFinishedEvent) batchEvent() {}
func (FailedEvent) batchEvent()      {}
func (FinishedEvent) batchEvent()    {}

// Run executes orderIDs strictly in sequence, one run completing (callbacks
// included) before the next begins, and emits every lifecycle event through
// emit. emit is called from Run's goroutine.
func Run(ctx context.Context, r Runner, orderIDs []string, emit func(Event)) {
	emit(StartedEvent{OrderIDs: orderIDs})
	total := len(orderIDs)
	for i, id := range orderIDs {
		emit(RunStartedEvent{Index: i, Total: total, OrderID: id})
		final, err := r.Run(ctx, id, func(step string) {
			emit(StepEvent{OrderID: id, Text: step})
		})
		if err != nil {
			emit(FailedEvent{OrderID: id, Err: err})
			return
		}
		emit(RunFinishedEvent{Index: i, Total: total, OrderID: id, FinalText: final})
	}
	emit(FinishedEvent{Total: total})
}

// State is the dashboard-visible result of applying batch events in order.
type State struct {
	Stats   stats.Aggregate
	History *history.Log

	Steps          []string // visible step log for the batch in flight
	Output         string   // externally visible aggregate output
	Running        bool
	CurrentOrderID string // order in flight, empty between batches
	LastOrderID    string // order whose final text Output ends with
	LastFinal      string // that order's final text, for draft classification
}

// NewState returns an empty state with a fresh history log.
func NewState() *State {
	return &State{History: history.New()}
}

// Apply folds one event into the state. Each call is one atomic state
// update; callers must not interleave other mutations inside it.
func (s *State) Apply(ev Event) {
	switch e := ev.(type) {
	case StartedEvent:
		s.Steps = nil
		s.Output = ""
		s.Running = true
		s.LastOrderID = ""
		s.LastFinal = ""

	case RunStartedEvent:
		s.CurrentOrderID = e.OrderID
		if e.Total > 1 && e.Index > 0 {
			s.Steps = append(s.Steps, fmt.Sprintf("── [%d/%d] %s ──", e.Index+1, e.Total, e.OrderID))
		}

	case StepEvent:
		s.Steps = append(s.Steps, e.Text)

	case RunFinishedEvent:
		hasEmail := classify.HasEmail(e.FinalText)
		s.Stats.RecordRun(hasEmail)
		s.History.Add(e.OrderID, hasEmail, classify.Summarize(e.FinalText))
		if e.Index == e.Total-1 {
			if e.Total > 1 {
				s.Output = fmt.Sprintf("Batch complete: %d orders processed.\n\n%s", e.Total, e.FinalText)
			} else {
				s.Output = e.FinalText
			}
			s.LastOrderID = e.OrderID
			s.LastFinal = e.FinalText
		}

	case FailedEvent:
		s.Output = e.Err.Error()
		s.Running = false
		s.CurrentOrderID = ""

	case FinishedEvent:
		s.Running = false
		s.CurrentOrderID = ""
	}
}
