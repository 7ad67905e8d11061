package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - dark theme inspired by Catppuccin Mocha
var (
	ColorBase     = lipgloss.Color("#1e1e2e")
	ColorSurface0 = lipgloss.Color("#313244")
	ColorSurface2 = lipgloss.Color("#585b70")
	ColorOverlay0 = lipgloss.Color("#6c7086")
	ColorText     = lipgloss.Color("#cdd6f4")
	ColorSubtext0 = lipgloss.Color("#a6adc8")

	ColorRed      = lipgloss.Color("#f38ba8")
	ColorGreen    = lipgloss.Color("#a6e3a1")
	ColorYellow   = lipgloss.Color("#f9e2af")
	ColorBlue     = lipgloss.Color("#89b4fa")
	ColorMauve    = lipgloss.Color("#cba6f7")
	ColorPeach    = lipgloss.Color("#fab387")
	ColorLavender = lipgloss.Color("#b4befe")
)

// Header and status bar
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBase).
			Background(ColorBlue).
			Padding(0, 2)

	HeaderSubtitleStyle = lipgloss.NewStyle().
				Foreground(ColorSubtext0).
				Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorSubtext0).
			Background(ColorSurface0).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorLavender).
			Background(ColorSurface0)
)

// Card/panel styles
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSurface2).
			Padding(0, 2)

	FocusedCardStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorMauve).
				Padding(0, 2)

	CardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorLavender)

	EmptyStateStyle = lipgloss.NewStyle().
			Foreground(ColorOverlay0).
			Italic(true)

	DetailLabelStyle = lipgloss.NewStyle().
				Foreground(ColorSubtext0)
)

// Stat cards
var (
	StatValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	StatCaptionStyle = lipgloss.NewStyle().
				Foreground(ColorOverlay0)
)

// Execution trace step styles, keyed by the engine's leading glyph.
var (
	StepWarningStyle = lipgloss.NewStyle().Foreground(ColorYellow)
	StepSuccessStyle = lipgloss.NewStyle().Foreground(ColorGreen)
	StepEmailStyle   = lipgloss.NewStyle().Foreground(ColorBlue)
	StepErrorStyle   = lipgloss.NewStyle().Foreground(ColorRed)
	StepMarkerStyle  = lipgloss.NewStyle().Foreground(ColorOverlay0).Bold(true)
	StepPlainStyle   = lipgloss.NewStyle().Foreground(ColorSubtext0)
)

// Draft and approval styles
var (
	DraftBodyStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorSurface0).
			Padding(0, 1)

	ApprovedBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBase).
			Background(ColorGreen).
			Padding(0, 1).
			SetString("APPROVED")

	PendingBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBase).
			Background(ColorYellow).
			Padding(0, 1).
			SetString("PENDING REVIEW")
)

// Toast styles by kind.
var (
	ToastSuccessStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorBase).
				Background(ColorGreen).
				Padding(0, 1)

	ToastInfoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBase).
			Background(ColorMauve).
			Padding(0, 1)

	ToastWarningStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorBase).
				Background(ColorPeach).
				Padding(0, 1)
)

// History badges
var (
	HistorySentBadge = lipgloss.NewStyle().
				Foreground(ColorGreen).
				SetString("sent")

	HistoryPendingBadge = lipgloss.NewStyle().
				Foreground(ColorYellow).
				SetString("pending")
)
