package curve

import (
	"math"

	"github.com/san-kum/lissatunnel/internal/geom"
)

// WorldUp is the reference direction for the first frame of a sequence.
var WorldUp = geom.UnitZ

const (
	// parallelTolerance is how close |tangent·up| may get to 1 before the
	// seed frame switches to the X axis as reference.
	parallelTolerance = 1e-6
	collapseTolerance = 1e-9
)

// Frame is a right-handed orthonormal basis: Tangent × Normal = Binormal.
type Frame struct {
	Tangent, Normal, Binormal geom.Vec3
}

// Rotate rolls the frame by angle radians around its tangent.
func (f Frame) Rotate(angle float64) Frame {
	n := f.Normal.RotateAround(f.Tangent, angle)
	return Frame{Tangent: f.Tangent, Normal: n, Binormal: f.Tangent.Cross(n)}
}

// BuildFrame returns the frame for sample s. Without a previous frame the
// normal comes from Gram-Schmidt against WorldUp; with one, the previous
// frame is parallel transported onto the new tangent so consecutive rings do
// not roll. Degenerate samples reuse the previous frame.
func BuildFrame(s Sample, prev *Frame) Frame {
	if s.Degenerate {
		if prev != nil {
			return *prev
		}
		return Frame{Tangent: geom.UnitX, Normal: geom.UnitY, Binormal: geom.UnitZ}
	}
	if prev == nil {
		return seedFrame(s.Tangent)
	}
	return transport(*prev, s.Tangent)
}

func seedFrame(t geom.Vec3) Frame {
	ref := WorldUp
	if math.Abs(t.Dot(ref)) > 1-parallelTolerance {
		ref = geom.UnitX
	}
	n := ref.RejectFrom(t).Normalize()
	return Frame{Tangent: t, Normal: n, Binormal: t.Cross(n)}
}

// transport carries prev onto tangent t with the smallest rotation that
// takes prev.Tangent to t.
func transport(prev Frame, t geom.Vec3) Frame {
	axis := prev.Tangent.Cross(t)
	s, c := axis.Length(), prev.Tangent.Dot(t)

	var n geom.Vec3
	switch {
	case s < collapseTolerance:
		// Same or reversed tangent; a reversal is a half turn around the
		// previous normal, which leaves it unchanged.
		n = prev.Normal
	default:
		n = prev.Normal.RotateAround(axis.Scale(1/s), math.Atan2(s, c))
	}

	n = n.RejectFrom(t)
	if n.Length() < collapseTolerance {
		return seedFrame(t)
	}
	n = n.Normalize()
	return Frame{Tangent: t, Normal: n, Binormal: t.Cross(n)}
}

// ClosedFrames builds frames for samples spanning exactly one period, in
// order. Parallel transport around a closed loop generally returns rotated
// by some holonomy angle; that angle is spread evenly over the samples so
// the frame after the last sample coincides with the first.
func ClosedFrames(samples []Sample) []Frame {
	if len(samples) == 0 {
		return nil
	}
	frames := make([]Frame, len(samples))
	var prev *Frame
	for i, s := range samples {
		frames[i] = BuildFrame(s, prev)
		prev = &frames[i]
	}

	closing := BuildFrame(samples[0], prev)
	twist := SignedRoll(closing, frames[0])
	if twist == 0 {
		return frames
	}
	n := float64(len(samples))
	for i := range frames {
		frames[i] = frames[i].Rotate(twist * float64(i) / n)
	}
	return frames
}

// SignedRoll is the angle that rotates from.Normal onto to.Normal around
// from.Tangent, in (-π, π].
func SignedRoll(from, to Frame) float64 {
	c := from.Normal.Dot(to.Normal)
	s := from.Normal.Cross(to.Normal).Dot(from.Tangent)
	return math.Atan2(s, c)
}
