// Package stats tracks process-wide reconciliation counters.
package stats

// Aggregate holds the counters shown on the dashboard. OrdersChecked and
// EmailsDrafted only grow; EmailsApproved can be decremented by an undo,
// floored at zero.
type Aggregate struct {
	OrdersChecked  int `json:"orders_checked"`
	EmailsDrafted  int `json:"emails_drafted"`
	EmailsApproved int `json:"emails_approved"`
}

// RecordRun merges one completed run into the aggregate.
func (a *Aggregate) RecordRun(hasEmail bool) {
	a.OrdersChecked++
	if hasEmail {
		a.EmailsDrafted++
	}
}

// RecordApproval counts one approved email.
func (a *Aggregate) RecordApproval() {
	a.EmailsApproved++
}

// UndoApproval reverses one approval.
func (a *Aggregate) UndoApproval() {
	if a.EmailsApproved > 0 {
		a.EmailsApproved--
	}
}
