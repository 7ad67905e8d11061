// Package toast manages time-bounded dismissable notifications. An undoable
// toast carries a reversal effect that may run at most once, only while the
// toast is still visible.
//
// Countdowns are not individual timers: the owner drives the whole collection
// with a single periodic Tick, which keeps cancellation and teardown trivial.
package toast

// Kind selects the toast flavor.
type Kind int

const (
	Success Kind = iota
	Info
	Warning
)

const (
	undoableSeconds = 5
	plainSeconds    = 3
)

// Toast is one visible notification.
type Toast struct {
	ID        int
	Message   string
	Kind      Kind
	Undoable  bool
	Remaining int // whole seconds until auto-dismiss

	undone bool
	onUndo func()
}

// Options configures Show.
type Options struct {
	Undoable bool
	OnUndo   func()
}

// Manager owns the live toast collection. Not safe for concurrent use; the
// UI event loop is the only caller.
type Manager struct {
	nextID int
	toasts []Toast
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// Show adds a toast and returns its ID. IDs increase monotonically for the
// life of the process and are never reused.
func (m *Manager) Show(message string, kind Kind, opts Options) int {
	m.nextID++
	remaining := plainSeconds
	if opts.Undoable {
		remaining = undoableSeconds
	}
	m.toasts = append(m.toasts, Toast{
		ID:        m.nextID,
		Message:   message,
		Kind:      kind,
		Undoable:  opts.Undoable,
		Remaining: remaining,
		onUndo:    opts.OnUndo,
	})
	return m.nextID
}

// Tick advances every countdown by one second and removes toasts that reach
// zero. It returns the IDs of the toasts dismissed by this tick.
func (m *Manager) Tick() []int {
	var expired []int
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if t.Remaining > 0 {
			t.Remaining--
		}
		if t.Remaining == 0 {
			expired = append(expired, t.ID)
			continue
		}
		kept = append(kept, t)
	}
	m.toasts = kept
	return expired
}

// Undo runs the reversal effect of an undoable toast and removes it,
// pre-empting the countdown. It reports whether the undo ran. A toast that
// has already expired, been dismissed, or been undone is a no-op.
func (m *Manager) Undo(id int) bool {
	for i := range m.toasts {
		t := &m.toasts[i]
		if t.ID != id {
			continue
		}
		if !t.Undoable || t.undone {
			return false
		}
		t.undone = true
		if t.onUndo != nil {
			t.onUndo()
		}
		m.remove(id)
		return true
	}
	return false
}

// Dismiss removes a toast without running its reversal.
func (m *Manager) Dismiss(id int) {
	m.remove(id)
}

// Toasts returns the live toasts in creation order.
func (m *Manager) Toasts() []Toast {
	return m.toasts
}

// Newest returns the most recently shown toast, if any.
func (m *Manager) Newest() (Toast, bool) {
	if len(m.toasts) == 0 {
		return Toast{}, false
	}
	return m.toasts[len(m.toasts)-1], true
}

func (m *Manager) remove(id int) {
	for i := range m.toasts {
		if m.toasts[i].ID == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}
