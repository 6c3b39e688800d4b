// Package session owns one running tunnel flythrough: the curve, the
// current tunnel, the camera and the render toggles, bound to a drawing
// surface.
//
// All setters are meant to be called from the thread that drives Tick, in
// between ticks. Structural setters (polygon count, wall alpha, intermittent
// walls) rebuild the tunnel before returning and publish it with an atomic
// swap, so a renderer still holding the previous tunnel keeps a valid one.
//
// # Example
//
//	reg := session.NewRegistry()
//	reg.Register(session.NewSurface("canvas", 1120, 630))
//	s, err := session.StartSimpleTunnel(reg, "canvas", 2, 7, 5, 1, 7, 200)
//	...
//	s.Tick(1.0 / 60)
//	frame := s.Snapshot()
//
// # Thread Safety
//
// Session instances are NOT safe for concurrent mutation. Only the tunnel
// pointer returned by Tunnel may be read from another goroutine.
package session
