package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sentinelflow/sentinelflow/internal/approval"
	"github.com/sentinelflow/sentinelflow/internal/batch"
	"github.com/sentinelflow/sentinelflow/internal/config"
	"github.com/sentinelflow/sentinelflow/internal/debug"
	"github.com/sentinelflow/sentinelflow/internal/history"
	"github.com/sentinelflow/sentinelflow/internal/toast"
	"github.com/sentinelflow/sentinelflow/internal/webserver"
)

// Model is the bubbletea model for the SentinelFlow console.
type Model struct {
	cfg    config.Config
	client batch.Runner
	notify func(orderID string) // mark_notified side call, nil in tests
	hub    *webserver.Hub       // browser mirror, nil unless --web

	keys   KeyMap
	width  int
	height int

	input  textinput.Model
	editor textarea.Model
	spin   spinner.Model

	state     *batch.State
	approvals *approval.Controller
	toasts    *toast.Manager

	// eventCh carries batch events from the runner goroutine into Update.
	// Non-nil only while a batch is in flight.
	eventCh chan tea.Msg
}

// New creates the console model.
func New(cfg config.Config, client batch.Runner, notify func(string), hub *webserver.Hub) Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "ORD-001, ORD-002"
	input.PromptStyle = lipgloss.NewStyle().Foreground(ColorMauve)
	input.TextStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorText)
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(ColorOverlay0)
	input.Cursor.Style = lipgloss.NewStyle().Foreground(ColorMauve)
	input.SetValue(cfg.DefaultOrder)
	input.CursorEnd()
	input.Focus()

	editor := textarea.New()
	editor.Prompt = ""
	editor.ShowLineNumbers = false
	editor.SetHeight(8)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(ColorMauve)

	return Model{
		cfg:       cfg,
		client:    client,
		notify:    notify,
		hub:       hub,
		keys:      DefaultKeyMap(),
		input:     input,
		editor:    editor,
		spin:      sp,
		state:     batch.NewState(),
		approvals: approval.New(),
		toasts:    toast.NewManager(),
	}
}

// Init starts cursor blink and the one-second driver tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickEvery())
}

// waitForEvent returns a Cmd that waits for the next event on the channel.
func waitForEvent(ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// tickEvery returns a Cmd that sends a tickMsg after 1 second.
func tickEvery() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(20, msg.Width-12)
		m.editor.SetWidth(max(20, msg.Width-10))
		return m, nil

	case tickMsg:
		if expired := m.toasts.Tick(); len(expired) > 0 {
			m.publish()
		}
		return m, tickEvery()

	case spinner.TickMsg:
		if !m.state.Running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case BatchEventMsg:
		m.handleBatchEvent(msg.Event)
		m.publish()
		return m, waitForEvent(m.eventCh)

	case BatchLoopDoneMsg:
		m.eventCh = nil
		m.publish()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleBatchEvent(ev batch.Event) {
	m.state.Apply(ev)
	switch e := ev.(type) {
	case batch.StartedEvent:
		m.approvals.SetRun("", "")
		m.editor.Blur()
	case batch.RunFinishedEvent:
		if e.Index == e.Total-1 {
			m.approvals.SetRun(e.OrderID, e.FinalText)
		}
	case batch.FinishedEvent:
		if e.Total > 1 {
			m.toasts.Show(fmt.Sprintf("Batch finished: %d orders checked", e.Total), toast.Info, toast.Options{})
		}
	case batch.FailedEvent:
		debug.LogKV("tui", "batch aborted", "order", e.OrderID, "err", e.Err.Error())
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.editor.Focused() {
		if key.Matches(msg, m.keys.Escape) {
			m.editor.Blur()
			m.approvals.SetBody(m.editor.Value())
			m.approvals.EndEdit()
			return m, nil
		}
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		m.approvals.SetBody(m.editor.Value())
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Run):
		return m.startBatch()

	case key.Matches(msg, m.keys.Edit):
		if m.approvals.BeginEdit() {
			m.editor.SetValue(m.approvals.Body())
			return m, m.editor.Focus()
		}
		return m, nil

	case key.Matches(msg, m.keys.Approve):
		m.approve()
		return m, nil

	case key.Matches(msg, m.keys.Undo):
		if t, ok := newestUndoable(m.toasts); ok {
			m.toasts.Undo(t.ID)
			m.publish()
		}
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		if t, ok := m.toasts.Newest(); ok {
			m.toasts.Dismiss(t.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// startBatch parses the order input and launches the runner goroutine. Events
// flow back through eventCh one at a time, so every state mutation happens on
// the update loop.
func (m Model) startBatch() (tea.Model, tea.Cmd) {
	if m.state.Running || m.eventCh != nil {
		return m, nil
	}
	orderIDs := parseOrderIDs(m.input.Value())
	if len(orderIDs) == 0 {
		m.toasts.Show("Enter at least one order ID", toast.Warning, toast.Options{})
		return m, nil
	}

	ch := make(chan tea.Msg, 256)
	m.eventCh = ch
	client := m.client
	go func() {
		batch.Run(context.Background(), client, orderIDs, func(ev batch.Event) {
			ch <- BatchEventMsg{Event: ev}
		})
		ch <- BatchLoopDoneMsg{}
	}()
	return m, tea.Batch(waitForEvent(ch), m.spin.Tick)
}

func (m *Model) approve() {
	undo, ok := m.approvals.Approve(&m.state.Stats, m.state.History)
	if !ok {
		return
	}
	orderID := m.approvals.OrderID()
	if m.notify != nil {
		go m.notify(orderID)
	}
	m.toasts.Show(
		fmt.Sprintf("Apology email for %s approved", orderID),
		toast.Success,
		toast.Options{Undoable: true, OnUndo: undo},
	)
	m.publish()
}

// publish mirrors the dashboard state to the browser hub, if one is attached.
func (m *Model) publish() {
	if m.hub == nil {
		return
	}
	m.hub.Publish(webserver.Snapshot{
		Running: m.state.Running,
		Order:   m.state.LastOrderID,
		Steps:   append([]string(nil), m.state.Steps...),
		Output:  m.state.Output,
		Stats:   m.state.Stats,
		History: append([]history.Entry(nil), m.state.History.Entries()...),
	})
}

func newestUndoable(toasts *toast.Manager) (toast.Toast, bool) {
	list := toasts.Toasts()
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].Undoable {
			return list[i], true
		}
	}
	return toast.Toast{}, false
}

func parseOrderIDs(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	ids := make([]string, 0, len(fields))
	for _, f := range fields {
		ids = append(ids, strings.ToUpper(strings.TrimSpace(f)))
	}
	return ids
}
