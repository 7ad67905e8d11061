package tui

import "github.com/sentinelflow/sentinelflow/internal/batch"

// BatchEventMsg wraps one batch lifecycle event for the update loop.
type BatchEventMsg struct {
	Event batch.Event
}

// BatchLoopDoneMsg signals that the batch goroutine has exited and the event
// channel is drained.
type BatchLoopDoneMsg struct{}

// tickMsg drives the one-second toast countdown.
type tickMsg struct{}
