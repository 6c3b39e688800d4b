package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"

	"github.com/san-kum/lissatunnel/internal/camera"
	"github.com/san-kum/lissatunnel/internal/session"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 300
	panelWidth      = 48
	maxFrameDt      = 0.1
	polygonStep     = 10
	alphaStep       = 0.1
)

type TickMsg time.Time

// Model drives a session from the frame tick and renders it.
type Model struct {
	sess          *session.Session
	canvas        *Canvas
	theme         Theme
	fps           int
	width, height int
	lastTick      time.Time
	tHistory      []float64
	edges         int
	status        string
	statusErr     bool
	showHelp      bool
	log           zerolog.Logger
}

// NewModel wraps s. fps <= 0 selects 60.
func NewModel(s *session.Session, fps int, log zerolog.Logger) Model {
	if fps <= 0 {
		fps = 60
	}
	return Model{
		sess:     s,
		canvas:   NewCanvas(width, height),
		theme:    Themes[0],
		fps:      fps,
		width:    width,
		height:   height,
		tHistory: make([]float64, 0, historyCapacity),
		log:      log,
	}
}

// WithTheme returns m using the named theme.
func (m Model) WithTheme(name string) Model {
	m.theme = GetTheme(name)
	return m
}

func (m Model) Session() *session.Session { return m.sess }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

// Update maps keys onto session setters and advances the camera on ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(msg.Width-panelWidth-6, 10)
		m.height = max(msg.Height-3, 5)
		m.canvas.Resize(m.width, m.height)
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.handleKey(msg.String())
	case TickMsg:
		m.step(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) handleKey(key string) {
	s := m.sess
	opts := s.TunnelOptions()
	var err error
	switch key {
	case "up", "k":
		m.note("speed %+.3f", s.NudgeSpeed(camera.SpeedStep))
	case "down", "j":
		m.note("speed %+.3f", s.NudgeSpeed(-camera.SpeedStep))
	case " ":
		s.Stop()
		m.note("stopped")
	case "o", "p":
		if s.FlipPerspective() {
			m.note("outside view")
		} else {
			m.note("inside view")
		}
	case "w":
		s.ToggleView("wireframe")
	case "c":
		s.ToggleView("culling")
	case "l":
		s.ToggleView("longitude")
	case "a":
		s.ToggleView("latitude")
	case "t":
		s.ToggleView("tunnel")
	case "i":
		err = s.SetIntermittentWalls(!opts.Intermittent)
	case "+", "=":
		err = s.SetNumPolygons(opts.NumPolygons + polygonStep)
	case "-", "_":
		err = s.SetNumPolygons(opts.NumPolygons - polygonStep)
	case "]":
		err = s.SetWallAlpha(roundTenth(opts.WallAlpha + alphaStep))
	case "[":
		err = s.SetWallAlpha(roundTenth(opts.WallAlpha - alphaStep))
	case "r":
		err = s.Restart()
		if err == nil {
			m.note("restarted")
		}
	case "y":
		m.theme = NextTheme(m.theme)
		m.note("theme %s", m.theme.Name)
	case "?":
		m.showHelp = !m.showHelp
	}
	if err != nil {
		m.status, m.statusErr = err.Error(), true
	}
}

func (m *Model) note(format string, args ...any) {
	m.status, m.statusErr = fmt.Sprintf(format, args...), false
}

func roundTenth(v float64) float64 { return math.Round(v*10) / 10 }

// step advances the session by the wall time since the previous tick. The
// first tick, and any tick after a stall, uses the nominal frame time.
func (m *Model) step(now time.Time) {
	dt := 1 / float64(m.fps)
	if !m.lastTick.IsZero() {
		if elapsed := now.Sub(m.lastTick).Seconds(); elapsed > 0 && elapsed <= maxFrameDt {
			dt = elapsed
		}
	}
	m.lastTick = now
	m.sess.Tick(dt)

	m.tHistory = append(m.tHistory, m.sess.CurrentCameraT())
	if len(m.tHistory) > historyCapacity {
		m.tHistory = m.tHistory[1:]
	}
	m.draw()
}

// draw renders the current snapshot to the canvas.
func (m *Model) draw() {
	snap := m.sess.Snapshot()
	pr := NewProjector(snap.Pose)
	m.canvas.Clear()

	v := snap.View
	if !v.ShowLatitude && !v.ShowLongitude && !v.DrawsWalls() {
		DrawCurve(m.canvas, snap.Tunnel, pr)
		m.edges = 0
		return
	}
	wf := TunnelWireframe(snap.Tunnel, v, snap.Pose.Position)
	m.edges = len(Render3D(m.canvas, wf, pr))
	m.log.Trace().Uint64("frame", snap.Frame).Int("edges", m.edges).Msg("frame drawn")
}

// View renders the TUI interface.
func (m Model) View() string {
	snap := m.sess.Snapshot()
	th := m.theme
	tun := snap.Tunnel

	canvasView := canvasStyle.Foreground(th.Walls).Render(m.canvas.String())

	var s strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(th.Accent)
	s.WriteString(title.Render("LISSAJOUS TUNNEL") + "\n")
	s.WriteString(keyHint.Render(fmt.Sprintf("A=%g B=%g R=%g", tun.Params.A, tun.Params.B, tun.Params.R)) + "\n\n")

	period := tun.Period()
	s.WriteString(labelStyle.Render("Camera t") + valueStyle.Render(fmt.Sprintf("%.3f / %.3f", snap.Camera.T, period)) + "\n")
	s.WriteString(labelStyle.Render("") + ProgressBar(snap.Camera.T/period, 20) + "\n")

	speedColor := th.Stopped
	switch {
	case snap.Camera.Speed > 0:
		speedColor = th.Forward
	case snap.Camera.Speed < 0:
		speedColor = th.Reverse
	}
	s.WriteString(labelStyle.Render("Speed") + lipgloss.NewStyle().Foreground(speedColor).Render(fmt.Sprintf("%+.3f", snap.Camera.Speed)) + "\n")
	s.WriteString(labelStyle.Render("") + SpeedGauge(snap.Camera.Speed, camera.MaxSpeed, 20) + "\n")

	view := "inside"
	if snap.Camera.OutsideView {
		view = "outside"
	}
	s.WriteString(labelStyle.Render("View") + valueStyle.Render(view) + "\n\n")

	s.WriteString(labelStyle.Render("Rings") + valueStyle.Render(fmt.Sprintf("%d × %d sides", len(tun.Rings), tun.Sides)) + "\n")
	s.WriteString(labelStyle.Render("Wall alpha") + valueStyle.Render(fmt.Sprintf("%.1f", tun.WallAlpha)) + "\n")
	s.WriteString(labelStyle.Render("Gaps") + Toggle(tun.Intermittent) + "\n")
	s.WriteString(labelStyle.Render("Edges") + valueStyle.Render(fmt.Sprintf("%d", m.edges)) + "\n\n")

	v := snap.View
	s.WriteString(labelStyle.Render("Tunnel") + Toggle(v.ShowTunnel) + "  " + labelStyle.Render("Wireframe") + Toggle(v.ShowWireframe) + "\n")
	s.WriteString(labelStyle.Render("Longitude") + Toggle(v.ShowLongitude) + "  " + labelStyle.Render("Latitude") + Toggle(v.ShowLatitude) + "\n")
	s.WriteString(labelStyle.Render("Culling") + Toggle(v.EnableCulling) + "\n")

	if len(m.tHistory) > 1 {
		chart := asciigraph.Plot(m.tHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("camera t"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if m.status != "" {
		st := lipgloss.NewStyle().Foreground(th.Text)
		if m.statusErr {
			st = st.Foreground(th.Error)
		}
		s.WriteString("\n" + st.Render(m.status) + "\n")
	}
	s.WriteString("\n" + Separator(36) + "\n")
	s.WriteString(keyHint.Render("↑↓:Speed SP:Stop O:View Q:Quit\nW C L A T I:Toggles ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Up/K     - Faster (+0.005)          ║
║  Down/J   - Slower (-0.005)          ║
║  Space    - Stop                     ║
║  O/P      - Inside/outside view      ║
║  W        - Wireframe                ║
║  C        - Back-face culling        ║
║  L        - Longitude lines          ║
║  A        - Latitude rings           ║
║  T        - Tunnel walls             ║
║  I        - Intermittent walls       ║
║  +/-      - More/fewer rings         ║
║  [ ]      - Wall alpha               ║
║  R        - Restart                  ║
║  Y        - Cycle themes             ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// RunLive runs the live view until the user quits.
func RunLive(s *session.Session, fps int, theme string, log zerolog.Logger) error {
	_, err := tea.NewProgram(NewModel(s, fps, log).WithTheme(theme), tea.WithAltScreen()).Run()
	return err
}
