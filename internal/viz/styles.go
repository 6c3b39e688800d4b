package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(1, 2).
			Width(42)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899")).Width(12)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true)
	onStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	offStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	keyHint    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688")).Italic(true)
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)

	sparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	sparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	sparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// ProgressBar renders a bar filled to fraction of width.
func ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	switch {
	case fraction > 0.8:
		return sparkHigh.Render(bar)
	case fraction > 0.4:
		return sparkMid.Render(bar)
	}
	return sparkLow.Render(bar)
}

// SpeedGauge draws a centred bar for a speed in [-limit, limit]: reverse fills
// left of the centre mark, forward fills right of it.
func SpeedGauge(speed, limit float64, width int) string {
	half := width / 2
	n := 0
	if limit > 0 {
		n = int(speed / limit * float64(half))
	}
	if n > half {
		n = half
	}
	if n < -half {
		n = -half
	}

	left := strings.Repeat("─", half)
	right := strings.Repeat("─", half)
	switch {
	case n > 0:
		right = strings.Repeat("█", n) + strings.Repeat("─", half-n)
	case n < 0:
		left = strings.Repeat("─", half+n) + strings.Repeat("█", -n)
	}
	return left + "┼" + right
}

// Toggle renders an on/off flag.
func Toggle(on bool) string {
	if on {
		return onStyle.Render("on")
	}
	return offStyle.Render("off")
}

func Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return keyHint.Render(left + " ◆ " + right)
}
