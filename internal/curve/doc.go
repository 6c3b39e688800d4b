// Package curve evaluates the closed Lissajous space curve that forms the
// spine of the tunnel, and builds the local orientation frames that rings
// are laid out in.
//
// The curve is the spherical Lissajous figure
//
//	x = R·sin(A·t)·cos(B·t)
//	y = R·sin(A·t)·sin(B·t)
//	z = R·cos(A·t)
//
// which lies on a sphere of radius R and closes after the least common
// multiple of the angular periods 2π/A and 2π/B.
//
//   - [Params]: validated curve parameters with a precomputed period
//   - [Evaluate]: position and tangent at a parameter value
//   - [BuildFrame]: rotation-minimising frame from a sample and the previous frame
//   - [ClosedFrames]: frames for one full period with the seam twist removed
//
// # Example
//
//	p, _ := curve.NewParams(2, 7, 5)
//	s := curve.Evaluate(p, 0.3)
//	f := curve.BuildFrame(s, nil)
package curve
