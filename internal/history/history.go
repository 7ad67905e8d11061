// Package history keeps the in-memory activity log of completed runs.
package history

import "time"

// Entry is one completed run. Entries are never deleted; the only in-place
// mutation is flipping Approved, and only for entries that carry an email.
type Entry struct {
	ID        int    `json:"id"`
	OrderID   string `json:"order_id"`
	Timestamp string `json:"timestamp"`
	HasEmail  bool   `json:"has_email"`
	Approved  bool   `json:"approved"`
	Summary   string `json:"summary"`
}

// Log is a newest-first list of entries with monotonically increasing IDs.
// Not safe for concurrent use; all mutation happens on the UI event loop.
type Log struct {
	nextID  int
	entries []Entry
	now     func() time.Time
}

// New returns an empty log.
func New() *Log {
	return &Log{now: time.Now}
}

// Add prepends a new entry and returns it. IDs start at 1 and are never
// reused.
func (l *Log) Add(orderID string, hasEmail bool, summary string) Entry {
	l.nextID++
	e := Entry{
		ID:        l.nextID,
		OrderID:   orderID,
		Timestamp: l.now().Format("15:04:05"),
		HasEmail:  hasEmail,
		Summary:   summary,
	}
	l.entries = append([]Entry{e}, l.entries...)
	return e
}

// Entries returns the log newest-first. The returned slice is the log's
// backing store; callers must not mutate it.
func (l *Log) Entries() []Entry {
	return l.entries
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// SetApproved flips the approval flag on the most recently created entry for
// orderID that carries an email. It reports whether such an entry was found.
func (l *Log) SetApproved(orderID string, approved bool) bool {
	for i := range l.entries {
		if l.entries[i].OrderID == orderID && l.entries[i].HasEmail {
			l.entries[i].Approved = approved
			return true
		}
	}
	return false
}
