package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/sentinelflow/sentinelflow/internal/approval"
	"github.com/sentinelflow/sentinelflow/internal/toast"
)

const maxTraceLines = 14

// View renders the full console.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	sections := []string{
		m.viewHeader(),
		m.viewInput(),
		m.viewStats(),
		m.viewTrace(),
	}
	if s := m.viewDraft(); s != "" {
		sections = append(sections, s)
	} else if s := m.viewOutput(); s != "" {
		sections = append(sections, s)
	}
	if s := m.viewHistory(); s != "" {
		sections = append(sections, s)
	}
	if s := m.viewToasts(); s != "" {
		sections = append(sections, s)
	}
	sections = append(sections, m.viewStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewHeader() string {
	title := HeaderStyle.Render("SentinelFlow")
	sub := HeaderSubtitleStyle.Render("logistics reconciliation console · " + m.cfg.EngineURL)
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", sub)
}

func (m Model) viewInput() string {
	var b strings.Builder
	b.WriteString(CardTitleStyle.Render("Order Check"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	if m.state.Running {
		b.WriteString("\n")
		b.WriteString(m.spin.View())
		b.WriteString(DetailLabelStyle.Render(" checking " + m.state.CurrentOrderID))
	}
	style := CardStyle
	if !m.editor.Focused() {
		style = FocusedCardStyle
	}
	return style.Width(m.cardWidth()).Render(b.String())
}

func (m Model) viewStats() string {
	card := func(value int, caption string) string {
		return CardStyle.Render(
			StatValueStyle.Render(fmt.Sprintf("%d", value)) + "\n" +
				StatCaptionStyle.Render(caption),
		)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card(m.state.Stats.OrdersChecked, "orders checked"),
		card(m.state.Stats.EmailsDrafted, "emails drafted"),
		card(m.state.Stats.EmailsApproved, "emails approved"),
	)
}

func (m Model) viewTrace() string {
	var b strings.Builder
	b.WriteString(CardTitleStyle.Render("Execution Trace"))
	b.WriteString("\n")
	steps := m.state.Steps
	if len(steps) == 0 {
		b.WriteString(EmptyStateStyle.Render("no run yet"))
	} else {
		if len(steps) > maxTraceLines {
			steps = steps[len(steps)-maxTraceLines:]
		}
		lines := make([]string, 0, len(steps))
		for _, s := range steps {
			line := ansi.Strip(s)
			line = ansi.Truncate(line, max(20, m.cardWidth()-6), "…")
			lines = append(lines, stepStyle(line).Render(line))
		}
		b.WriteString(strings.Join(lines, "\n"))
	}
	return CardStyle.Width(m.cardWidth()).Render(b.String())
}

// stepStyle picks the trace style from the engine's leading glyph.
func stepStyle(line string) lipgloss.Style {
	switch {
	case strings.HasPrefix(line, "⚠"):
		return StepWarningStyle
	case strings.HasPrefix(line, "✓"):
		return StepSuccessStyle
	case strings.HasPrefix(line, "✉"):
		return StepEmailStyle
	case strings.HasPrefix(line, "✗"):
		return StepErrorStyle
	case strings.HasPrefix(line, "──"):
		return StepMarkerStyle
	default:
		return StepPlainStyle
	}
}

func (m Model) viewDraft() string {
	if m.approvals.Phase() == approval.PhaseNone {
		return ""
	}
	var b strings.Builder
	b.WriteString(CardTitleStyle.Render("Drafted Email · " + m.approvals.OrderID()))
	b.WriteString("  ")
	switch m.approvals.Phase() {
	case approval.PhaseApproved:
		b.WriteString(ApprovedBadge.String())
	default:
		b.WriteString(PendingBadge.String())
	}
	b.WriteString("\n")
	if sum := m.approvals.Summary(); sum != "" {
		b.WriteString(DetailLabelStyle.Render(sum))
		b.WriteString("\n")
	}
	if m.editor.Focused() {
		b.WriteString(m.editor.View())
		b.WriteString("\n")
		b.WriteString(EmptyStateStyle.Render("esc to stop editing"))
	} else {
		b.WriteString(DraftBodyStyle.Width(max(20, m.cardWidth()-6)).Render(m.approvals.Body()))
	}
	style := CardStyle
	if m.editor.Focused() {
		style = FocusedCardStyle
	}
	return style.Width(m.cardWidth()).Render(b.String())
}

func (m Model) viewOutput() string {
	if m.state.Output == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(CardTitleStyle.Render("Result"))
	b.WriteString("\n")
	b.WriteString(StepPlainStyle.Render(ansi.Strip(m.state.Output)))
	return CardStyle.Width(m.cardWidth()).Render(b.String())
}

func (m Model) viewHistory() string {
	entries := m.state.History.Entries()
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(CardTitleStyle.Render("Check History"))
	b.WriteString("\n")
	for _, e := range entries {
		badge := "   "
		if e.HasEmail {
			if e.Approved {
				badge = HistorySentBadge.String()
			} else {
				badge = HistoryPendingBadge.String()
			}
		}
		line := fmt.Sprintf("%s  %-8s  %s  %s",
			DetailLabelStyle.Render(e.Timestamp), e.OrderID, badge, e.Summary)
		b.WriteString(ansi.Truncate(line, max(20, m.cardWidth()-6), "…"))
		b.WriteString("\n")
	}
	return CardStyle.Width(m.cardWidth()).Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) viewToasts() string {
	toasts := m.toasts.Toasts()
	if len(toasts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(toasts))
	for _, t := range toasts {
		msg := t.Message
		if t.Undoable {
			msg = fmt.Sprintf("%s · undo %ds (ctrl+u)", msg, t.Remaining)
		}
		lines = append(lines, toastStyle(t.Kind).Render(msg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func toastStyle(k toast.Kind) lipgloss.Style {
	switch k {
	case toast.Success:
		return ToastSuccessStyle
	case toast.Warning:
		return ToastWarningStyle
	default:
		return ToastInfoStyle
	}
}

func (m Model) viewStatusBar() string {
	bindings := []struct {
		key  string
		desc string
	}{
		{m.keys.Run.Help().Key, m.keys.Run.Help().Desc},
		{m.keys.Edit.Help().Key, m.keys.Edit.Help().Desc},
		{m.keys.Approve.Help().Key, m.keys.Approve.Help().Desc},
		{m.keys.Undo.Help().Key, m.keys.Undo.Help().Desc},
		{m.keys.Dismiss.Help().Key, m.keys.Dismiss.Help().Desc},
		{m.keys.Quit.Help().Key, m.keys.Quit.Help().Desc},
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, StatusKeyStyle.Render(b.key)+" "+b.desc)
	}
	return StatusBarStyle.Width(max(20, m.width)).Render(strings.Join(parts, "  ·  "))
}

func (m Model) cardWidth() int {
	if m.width <= 0 {
		return 80
	}
	return max(40, m.width-2)
}
