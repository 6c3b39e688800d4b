package session

import (
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/san-kum/lissatunnel/internal/camera"
	"github.com/san-kum/lissatunnel/internal/curve"
	"github.com/san-kum/lissatunnel/internal/tunnel"
	"github.com/san-kum/lissatunnel/internal/view"
)

const (
	DefaultSpeed       = 0.1
	DefaultNumPolygons = 200
	DefaultWallAlpha   = 0.5
)

// Config is everything needed to start a session.
type Config struct {
	A, B, R       float64
	PolygonRadius float64
	PolygonSides  int
	NumPolygons   int
	WallAlpha     float64
	Intermittent  bool
	Speed         float64
	OutsideView   bool
	View          view.State
}

// DefaultConfig is the classic A=2, B=7 tunnel.
func DefaultConfig() Config {
	return Config{
		A: 2, B: 7, R: 5,
		PolygonRadius: 1,
		PolygonSides:  7,
		NumPolygons:   DefaultNumPolygons,
		WallAlpha:     DefaultWallAlpha,
		Speed:         DefaultSpeed,
		View:          view.Default(),
	}
}

// Session is one running flythrough.
type Session struct {
	surface Surface
	params  curve.Params
	opts    tunnel.Options
	tunnel  atomic.Pointer[tunnel.Tunnel]
	camera  *camera.Controller
	view    view.State
	frames  uint64
	log     zerolog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// New starts a session on surface. Curve parameters are fixed for the
// lifetime of the session.
func New(surface Surface, cfg Config, opts ...Option) (*Session, error) {
	if surface == nil {
		return nil, fmt.Errorf("%w: nil surface", ErrSurfaceNotFound)
	}
	params, err := curve.NewParams(cfg.A, cfg.B, cfg.R)
	if err != nil {
		return nil, err
	}

	s := &Session{
		surface: surface,
		params:  params,
		camera:  camera.New(params, cfg.Speed),
		view:    cfg.View,
		log:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With().Str("surface", surface.ID()).Logger()
	s.camera.SetOutsideView(cfg.OutsideView)

	err = s.rebuild(tunnel.Options{
		Params:       params,
		NumPolygons:  cfg.NumPolygons,
		Sides:        cfg.PolygonSides,
		Radius:       cfg.PolygonRadius,
		Intermittent: cfg.Intermittent,
		WallAlpha:    cfg.WallAlpha,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Float64("a", cfg.A).Float64("b", cfg.B).Float64("r", cfg.R).
		Float64("period", params.Period()).
		Msg("session started")
	return s, nil
}

// StartSimpleTunnel resolves canvasID and starts a session with the given
// ring count and the default speed.
func StartSimpleTunnel(reg *Registry, canvasID string, a, b, r, polygonRadius float64, polygonSides, numPolygons int, opts ...Option) (*Session, error) {
	surface, err := reg.Resolve(canvasID)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.A, cfg.B, cfg.R = a, b, r
	cfg.PolygonRadius, cfg.PolygonSides, cfg.NumPolygons = polygonRadius, polygonSides, numPolygons
	return New(surface, cfg, opts...)
}

// StartLissajousTunnel resolves canvasID and starts a session with the
// default ring count and the given initial speed.
func StartLissajousTunnel(reg *Registry, canvasID string, a, b, r, polygonRadius float64, polygonSides int, initialSpeed float64, opts ...Option) (*Session, error) {
	surface, err := reg.Resolve(canvasID)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.A, cfg.B, cfg.R = a, b, r
	cfg.PolygonRadius, cfg.PolygonSides, cfg.Speed = polygonRadius, polygonSides, initialSpeed
	return New(surface, cfg, opts...)
}

// rebuild builds a tunnel from next and publishes it. On failure the
// current tunnel and options stay in place.
func (s *Session) rebuild(next tunnel.Options) error {
	t, err := tunnel.Build(next)
	if err != nil {
		s.log.Warn().Err(err).Msg("configuration rejected")
		return err
	}
	s.opts = next
	s.tunnel.Store(t)
	s.log.Debug().
		Int("num_polygons", next.NumPolygons).
		Int("sides", next.Sides).
		Bool("intermittent", next.Intermittent).
		Float64("wall_alpha", next.WallAlpha).
		Int("faces", len(t.Faces)).
		Msg("tunnel rebuilt")
	return nil
}

// Restart rebuilds the tunnel from the current configuration. Camera
// position and speed are preserved.
func (s *Session) Restart() error { return s.rebuild(s.opts) }

// RestartVisualization is Restart addressed by surface id.
func (s *Session) RestartVisualization(canvasID string) error {
	if canvasID != s.surface.ID() {
		return fmt.Errorf("%w: %q (session is bound to %q)", ErrSurfaceNotFound, canvasID, s.surface.ID())
	}
	return s.Restart()
}

// Tick advances the camera by dt seconds. It is the only per-frame mutation.
func (s *Session) Tick(dt float64) {
	s.camera.Tick(dt)
	s.frames++
}

// SetSpeed clamps v into [-0.5, 0.5] and returns the applied speed.
func (s *Session) SetSpeed(v float64) float64 { return s.camera.SetSpeed(v) }

// NudgeSpeed changes the speed by delta, clamped.
func (s *Session) NudgeSpeed(delta float64) float64 { return s.camera.Nudge(delta) }

// Stop sets the speed to zero.
func (s *Session) Stop() { s.camera.Stop() }

// SetCameraT moves the camera to t, wrapped into the period. Non-finite
// values are ignored.
func (s *Session) SetCameraT(t float64) { s.camera.SetT(t) }

// SetNumPolygons rebuilds with n rings. n outside [10, 1000] is rejected.
func (s *Session) SetNumPolygons(n int) error {
	next := s.opts
	next.NumPolygons = n
	return s.rebuild(next)
}

// SetWallAlpha rebuilds with wall opacity a. a outside [0, 1] is rejected.
func (s *Session) SetWallAlpha(a float64) error {
	next := s.opts
	next.WallAlpha = a
	return s.rebuild(next)
}

// SetIntermittentWalls rebuilds with or without wall gaps.
func (s *Session) SetIntermittentWalls(on bool) error {
	next := s.opts
	next.Intermittent = on
	return s.rebuild(next)
}

func (s *Session) SetShowWireframe(v bool) { s.view.SetShowWireframe(v) }
func (s *Session) SetEnableCulling(v bool) { s.view.SetEnableCulling(v) }
func (s *Session) SetShowLongitude(v bool) { s.view.SetShowLongitude(v) }
func (s *Session) SetShowLatitude(v bool)  { s.view.SetShowLatitude(v) }
func (s *Session) SetShowTunnel(v bool)    { s.view.SetShowTunnel(v) }

// ToggleView flips a named render toggle; see view.State.Toggle.
func (s *Session) ToggleView(name string) bool { return s.view.Toggle(name) }

// SetOutsideView switches between riding inside the tunnel and viewing it
// from outside. No geometry is rebuilt.
func (s *Session) SetOutsideView(outside bool) { s.camera.SetOutsideView(outside) }

// TogglePerspective is SetOutsideView under the name the UI uses.
func (s *Session) TogglePerspective(outside bool) { s.SetOutsideView(outside) }

// FlipPerspective switches to the other view and returns the new setting.
func (s *Session) FlipPerspective() bool { return s.camera.ToggleOutsideView() }

// CurrentCameraT is the camera's curve parameter in [0, Period).
func (s *Session) CurrentCameraT() float64 { return s.camera.T() }

func (s *Session) Surface() Surface              { return s.surface }
func (s *Session) Params() curve.Params          { return s.params }
func (s *Session) Tunnel() *tunnel.Tunnel        { return s.tunnel.Load() }
func (s *Session) TunnelOptions() tunnel.Options { return s.opts }
func (s *Session) Camera() camera.State          { return s.camera.State() }
func (s *Session) View() view.State              { return s.view }
func (s *Session) Frames() uint64                { return s.frames }

// Pose is the camera pose in the current tunnel.
func (s *Session) Pose() camera.Pose { return s.camera.Pose(s.Tunnel()) }

// Config reports the session's current configuration.
func (s *Session) Config() Config {
	cam := s.camera.State()
	return Config{
		A: s.params.A, B: s.params.B, R: s.params.R,
		PolygonRadius: s.opts.Radius,
		PolygonSides:  s.opts.Sides,
		NumPolygons:   s.opts.NumPolygons,
		WallAlpha:     s.opts.WallAlpha,
		Intermittent:  s.opts.Intermittent,
		Speed:         cam.Speed,
		OutsideView:   cam.OutsideView,
		View:          s.view,
	}
}

// Snapshot is everything a renderer needs for one frame. The tunnel is
// shared and must not be modified.
type Snapshot struct {
	Frame  uint64
	Tunnel *tunnel.Tunnel
	Camera camera.State
	Pose   camera.Pose
	View   view.State
}

func (s *Session) Snapshot() Snapshot {
	t := s.Tunnel()
	cam := s.camera.State()
	return Snapshot{
		Frame:  s.frames,
		Tunnel: t,
		Camera: cam,
		Pose:   camera.PoseAt(cam, t),
		View:   s.view,
	}
}
