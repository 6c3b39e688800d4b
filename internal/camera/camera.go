// Package camera integrates the camera's position along the curve and
// derives the pose a renderer looks through.
package camera

import (
	"math"

	"github.com/san-kum/lissatunnel/internal/curve"
	"github.com/san-kum/lissatunnel/internal/geom"
	"github.com/san-kum/lissatunnel/internal/tunnel"
)

const (
	// MaxSpeed bounds |speed| in curve parameter units per second.
	MaxSpeed = 0.5
	// SpeedStep is the increment used by keyboard speed control.
	SpeedStep = 0.005
	// OutsideDistance is how many tube radii the outside view sits from the
	// curve.
	OutsideDistance = 6.0
)

// State is the camera's place on the curve.
type State struct {
	T           float64
	Speed       float64
	OutsideView bool
}

// Advance moves the state by speed·dt and wraps T into [0, period). A
// non-positive or non-finite dt, or a non-finite result, returns s unchanged.
func (s State) Advance(p curve.Params, dt float64) State {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return s
	}
	next := s.T + s.Speed*dt
	if math.IsNaN(next) || math.IsInf(next, 0) {
		return s
	}
	s.T = p.Wrap(next)
	return s
}

// ClampSpeed limits v to [-MaxSpeed, MaxSpeed]. NaN becomes 0.
func ClampSpeed(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-MaxSpeed, math.Min(MaxSpeed, v))
}

// Controller owns a camera State for one curve.
type Controller struct {
	params curve.Params
	state  State
}

// New returns a controller at t=0 with the given (clamped) speed.
func New(p curve.Params, speed float64) *Controller {
	return &Controller{params: p, state: State{Speed: ClampSpeed(speed)}}
}

// Tick advances the camera by dt seconds.
func (c *Controller) Tick(dt float64) { c.state = c.state.Advance(c.params, dt) }

func (c *Controller) T() float64     { return c.state.T }
func (c *Controller) Speed() float64 { return c.state.Speed }
func (c *Controller) State() State   { return c.state }
func (c *Controller) Outside() bool  { return c.state.OutsideView }

// SetSpeed clamps v into range and returns the applied value.
func (c *Controller) SetSpeed(v float64) float64 {
	c.state.Speed = ClampSpeed(v)
	return c.state.Speed
}

// Nudge adds delta to the current speed, clamped.
func (c *Controller) Nudge(delta float64) float64 { return c.SetSpeed(c.state.Speed + delta) }

// Stop halts the camera without moving it.
func (c *Controller) Stop() { c.state.Speed = 0 }

// SetT places the camera at t, wrapped into the period. Non-finite values
// are ignored.
func (c *Controller) SetT(t float64) {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return
	}
	c.state.T = c.params.Wrap(t)
}

func (c *Controller) SetOutsideView(outside bool) { c.state.OutsideView = outside }

// ToggleOutsideView flips between inside and outside view and returns the
// new setting.
func (c *Controller) ToggleOutsideView() bool {
	c.state.OutsideView = !c.state.OutsideView
	return c.state.OutsideView
}

// Pose is where the camera sits and what it looks at.
type Pose struct {
	Position geom.Vec3
	LookAt   geom.Vec3
	Up       geom.Vec3
}

// Forward is the unit view direction.
func (p Pose) Forward() geom.Vec3 { return p.LookAt.Sub(p.Position).Normalize() }

// Pose derives the camera pose at the current t inside tun.
func (c *Controller) Pose(tun *tunnel.Tunnel) Pose {
	return PoseAt(c.state, tun)
}

// PoseAt derives the pose for state s. Inside, the camera rides the curve
// looking along the tangent. Outside, it backs off along the frame normal
// and looks at the curve point.
func PoseAt(s State, tun *tunnel.Tunnel) Pose {
	center := curve.Position(tun.Params, s.T)
	f := tun.FrameAt(s.T)

	if !s.OutsideView {
		return Pose{Position: center, LookAt: center.Add(f.Tangent), Up: f.Normal}
	}
	eye := center.Add(f.Normal.Scale(OutsideDistance * tun.Radius))
	return Pose{Position: eye, LookAt: center, Up: f.Binormal}
}
