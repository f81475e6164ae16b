package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/creamcroissant/shopfront/internal/order"
)

var (
	// Colors
	colorPrimary = lipgloss.Color("#7C3AED")
	colorSuccess = lipgloss.Color("#22C55E")
	colorWarning = lipgloss.Color("#F59E0B")
	colorDanger  = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
	colorBorder  = lipgloss.Color("#374151")

	// Base styles
	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary).
			Padding(0, 1)

	styleHelp = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	styleNotice = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	styleError = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Table styles
	styleTableHeader = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(colorPrimary).
				Padding(0, 1)

	styleRowSelected = lipgloss.NewStyle().
				Background(lipgloss.Color("#1F2937")).
				Foreground(lipgloss.Color("#FFFFFF")).
				Padding(0, 1)

	styleRow = lipgloss.NewStyle().
			Padding(0, 1)

	// Box styles
	styleDetailBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2)

	styleLabel = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(14)

	// Progress bar styles
	styleStepDone = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	styleStepTodo = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleCancelled = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)
)

// StatusBadge renders an order status with its lifecycle color.
func StatusBadge(s order.Status) string {
	switch s {
	case order.StatusDelivered:
		return styleStepDone.Render("● " + s.Label())
	case order.StatusCancelled:
		return styleCancelled.Render("✕ " + s.Label())
	case order.StatusPendingPayment:
		return lipgloss.NewStyle().Foreground(colorWarning).Bold(true).Render("◐ " + s.Label())
	default:
		return lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render("◍ " + s.Label())
	}
}

// ProgressBar renders the linear fulfillment sequence with the reached steps
// highlighted. A cancelled order gets its own branch line instead of a
// position on the bar.
func ProgressBar(s order.Status) string {
	if s == order.StatusCancelled {
		return styleCancelled.Render("✕ Cancelled")
	}

	current, ok := order.ProgressIndex(s)
	if !ok {
		return styleMuted.Render("unknown status")
	}

	var parts []string
	for i, step := range order.ProgressSteps() {
		label := step.Label()
		if i <= current {
			parts = append(parts, styleStepDone.Render("● "+label))
		} else {
			parts = append(parts, styleStepTodo.Render("○ "+label))
		}
	}
	return strings.Join(parts, styleStepTodo.Render(" ── "))
}
