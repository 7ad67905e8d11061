// Package approval manages the edit/approve lifecycle of a drafted apology
// email and its bounded-time undo.
package approval

import (
	"github.com/sentinelflow/sentinelflow/internal/classify"
	"github.com/sentinelflow/sentinelflow/internal/history"
	"github.com/sentinelflow/sentinelflow/internal/stats"
)

// Phase is the controller's state for the current run.
type Phase int

const (
	// PhaseNone: the current run produced no draft; nothing to approve.
	PhaseNone Phase = iota
	// PhaseNotApproved: a draft exists and is pending review.
	PhaseNotApproved
	// PhaseEditing: the draft body has edit focus.
	PhaseEditing
	// PhaseApproved: terminal for this run; the body is read-only. An undo
	// reverses the bookkeeping only, it does not reopen editing.
	PhaseApproved
)

// Controller operates on the single most recently produced final text.
type Controller struct {
	phase   Phase
	orderID string
	summary string
	body    string
}

// New returns a controller with no active run.
func New() *Controller {
	return &Controller{}
}

// SetRun classifies a run's final text and resets the controller for it.
func (c *Controller) SetRun(orderID, finalText string) {
	cls := classify.Classify(finalText)
	if cls.Kind != classify.KindEmailDraft {
		*c = Controller{phase: PhaseNone}
		return
	}
	*c = Controller{
		phase:   PhaseNotApproved,
		orderID: orderID,
		summary: cls.Draft.Summary,
		body:    cls.Draft.Body,
	}
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// OrderID returns the order the active draft belongs to.
func (c *Controller) OrderID() string { return c.orderID }

// Summary returns the report text preceding the draft.
func (c *Controller) Summary() string { return c.summary }

// Body returns the current draft body, including any edits.
func (c *Controller) Body() string { return c.body }

// BeginEdit moves NotApproved to Editing. Reports whether the transition
// happened.
func (c *Controller) BeginEdit() bool {
	if c.phase != PhaseNotApproved {
		return false
	}
	c.phase = PhaseEditing
	return true
}

// SetBody replaces the draft body while editing.
func (c *Controller) SetBody(body string) {
	if c.phase == PhaseEditing {
		c.body = body
	}
}

// EndEdit moves Editing back to NotApproved, keeping edits.
func (c *Controller) EndEdit() {
	if c.phase == PhaseEditing {
		c.phase = PhaseNotApproved
	}
}

// Approve commits the approval: flips the newest matching history entry,
// bumps the approved counter, and returns the compensating undo effect to
// hang on the toast. The returned closure reverses exactly that bookkeeping;
// the caller is responsible for invoking it at most once. Approving is
// allowed from NotApproved or Editing and is terminal.
func (c *Controller) Approve(agg *stats.Aggregate, log *history.Log) (undo func(), ok bool) {
	if c.phase != PhaseNotApproved && c.phase != PhaseEditing {
		return nil, false
	}
	c.phase = PhaseApproved
	orderID := c.orderID
	log.SetApproved(orderID, true)
	agg.RecordApproval()
	return func() {
		log.SetApproved(orderID, false)
		agg.UndoApproval()
	}, true
}
