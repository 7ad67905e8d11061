package toast

import "testing"

func TestShowCountdownDurations(t *testing.T) {
	m := NewManager()
	m.Show("plain", Info, Options{})
	m.Show("undoable", Success, Options{Undoable: true})

	toasts := m.Toasts()
	if toasts[0].Remaining != 3 {
		t.Errorf("plain Remaining = %d, want 3", toasts[0].Remaining)
	}
	if toasts[1].Remaining != 5 {
		t.Errorf("undoable Remaining = %d, want 5", toasts[1].Remaining)
	}
}

func TestTickExpiresIndependently(t *testing.T) {
	m := NewManager()
	plain := m.Show("plain", Info, Options{})
	undoable := m.Show("undoable", Success, Options{Undoable: true})

	for i := 0; i < 2; i++ {
		if expired := m.Tick(); len(expired) != 0 {
			t.Fatalf("tick %d expired %v early", i, expired)
		}
	}
	expired := m.Tick()
	if len(expired) != 1 || expired[0] != plain {
		t.Fatalf("third tick expired %v, want [%d]", expired, plain)
	}
	if len(m.Toasts()) != 1 || m.Toasts()[0].ID != undoable {
		t.Fatalf("undoable toast should survive, have %v", m.Toasts())
	}

	m.Tick()
	expired = m.Tick()
	if len(expired) != 1 || expired[0] != undoable {
		t.Fatalf("fifth tick expired %v, want [%d]", expired, undoable)
	}
	if len(m.Toasts()) != 0 {
		t.Fatal("toasts remain after expiry")
	}
}

func TestUndoRunsExactlyOnce(t *testing.T) {
	m := NewManager()
	calls := 0
	id := m.Show("approved", Success, Options{Undoable: true, OnUndo: func() { calls++ }})

	if !m.Undo(id) {
		t.Fatal("first undo refused")
	}
	if calls != 1 {
		t.Fatalf("reversal ran %d times, want 1", calls)
	}
	if len(m.Toasts()) != 0 {
		t.Fatal("toast not removed after undo")
	}
	// Toast is gone, second undo is a no-op.
	if m.Undo(id) {
		t.Fatal("second undo ran")
	}
	if calls != 1 {
		t.Fatalf("reversal ran %d times after double undo", calls)
	}
}

func TestUndoAfterExpiryIsNoOp(t *testing.T) {
	m := NewManager()
	calls := 0
	id := m.Show("approved", Success, Options{Undoable: true, OnUndo: func() { calls++ }})
	for i := 0; i < 5; i++ {
		m.Tick()
	}
	if m.Undo(id) {
		t.Fatal("undo ran after the window elapsed")
	}
	if calls != 0 {
		t.Fatalf("reversal ran %d times after expiry", calls)
	}
}

func TestUndoOnPlainToastRefused(t *testing.T) {
	m := NewManager()
	id := m.Show("info", Info, Options{})
	if m.Undo(id) {
		t.Fatal("undo ran on a non-undoable toast")
	}
}

func TestIDsMonotonic(t *testing.T) {
	m := NewManager()
	a := m.Show("a", Info, Options{})
	m.Dismiss(a)
	b := m.Show("b", Info, Options{})
	if b <= a {
		t.Errorf("ids not monotonic: %d then %d", a, b)
	}
}
