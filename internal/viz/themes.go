package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name    string
	Walls   lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Forward lipgloss.Color
	Reverse lipgloss.Color
	Stopped lipgloss.Color
	Error   lipgloss.Color
}

// Available themes
var (
	ThemeNeon = Theme{
		Name:    "neon",
		Walls:   lipgloss.Color("#ff00ff"),
		Accent:  lipgloss.Color("#00ffff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666688"),
		Forward: lipgloss.Color("#00ff88"),
		Reverse: lipgloss.Color("#ff8800"),
		Stopped: lipgloss.Color("#888888"),
		Error:   lipgloss.Color("#ff4444"),
	}

	ThemePhosphor = Theme{
		Name:    "phosphor",
		Walls:   lipgloss.Color("#00ff00"), // Green phosphor
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Forward: lipgloss.Color("#88ff88"),
		Reverse: lipgloss.Color("#ffff00"),
		Stopped: lipgloss.Color("#007700"),
		Error:   lipgloss.Color("#ff0000"),
	}

	ThemeDusk = Theme{
		Name:    "dusk",
		Walls:   lipgloss.Color("#ff6b6b"), // Coral
		Accent:  lipgloss.Color("#feca57"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Forward: lipgloss.Color("#5fd068"),
		Reverse: lipgloss.Color("#ff9ff3"),
		Stopped: lipgloss.Color("#8b6b8c"),
		Error:   lipgloss.Color("#ff4757"),
	}

	Themes = []Theme{ThemeNeon, ThemePhosphor, ThemeDusk}
)

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
