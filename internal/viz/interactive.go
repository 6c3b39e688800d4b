package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/san-kum/lissatunnel/internal/config"
	"github.com/san-kum/lissatunnel/internal/session"
)

var presetInfo = map[string]string{
	"classic": "the A=2 B=7 demo tunnel",
	"knot":    "thin tube, tight knot",
	"sparse":  "few rings, gapped walls",
	"dense":   "a thousand fine rings",
}

const (
	stateMenu = iota
	stateLive
)

type menu struct {
	state, cursor int
	presets       []string
	base          *config.Config
	err           error
	live          Model
	log           zerolog.Logger
}

// NewInteractiveApp lists the presets and starts a live session for the one
// picked. Canvas, fps and view settings come from base.
func NewInteractiveApp(base *config.Config, log zerolog.Logger) tea.Model {
	if base == nil {
		base = config.DefaultConfig()
	}
	return menu{state: stateMenu, presets: config.ListPresets(), base: base, log: log}
}

func (m menu) Init() tea.Cmd { return nil }

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateLive {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.start()
	}
	return m, nil
}

func (m menu) start() (tea.Model, tea.Cmd) {
	cfg := config.GetPreset(m.presets[m.cursor])
	cfg.Canvas, cfg.FPS, cfg.View = m.base.Canvas, m.base.FPS, m.base.View

	s, err := session.New(cfg.Surface(), cfg.ToSession(), session.WithLogger(m.log))
	if err != nil {
		m.err = err
		return m, nil
	}
	m.live = NewModel(s, cfg.FPS, m.log)
	m.state = stateLive
	return m, m.live.Init()
}

func (m menu) View() string {
	if m.state == stateLive {
		return m.live.View()
	}
	var b strings.Builder
	h, sub := lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true), lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	b.WriteString("\n\n    " + h.Render("LISSATUNNEL") + "\n    " + sub.Render("lissajous tunnel flythrough") + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n",
				lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true).Render("▸"),
				lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true).Render(fmt.Sprintf("%-10s", name)),
				lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff")).Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n",
				sub.Render(fmt.Sprintf("  %-10s", name)),
				lipgloss.NewStyle().Foreground(lipgloss.Color("#444455")).Render(desc)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + keyHint.Render("j/k navigate  enter start  q quit") + "\n")
	return b.String()
}

// RunInteractive shows the preset menu and then the live view.
func RunInteractive(base *config.Config, log zerolog.Logger) error {
	_, err := tea.NewProgram(NewInteractiveApp(base, log), tea.WithAltScreen()).Run()
	return err
}
