package tunnel

import (
	"math"

	"github.com/san-kum/lissatunnel/internal/curve"
	"github.com/san-kum/lissatunnel/internal/geom"
)

// MinSides is the fewest sides a ring polygon may have.
const MinSides = 3

// Ring is a regular polygon cross-section centred on the curve, lying in the
// plane spanned by its frame's normal and binormal.
type Ring struct {
	T        float64
	Center   geom.Vec3
	Frame    curve.Frame
	Sides    int
	Radius   float64
	Vertices []geom.Vec3
}

// MakeRing lays out sides vertices at the given radius around the sample
// position. Vertex 0 sits on the frame normal.
func MakeRing(s curve.Sample, f curve.Frame, sides int, radius float64) (Ring, error) {
	if sides < MinSides {
		return Ring{}, curve.Invalid("sides", float64(sides), "must be at least 3")
	}
	if !(radius > 0) || math.IsInf(radius, 0) {
		return Ring{}, curve.Invalid("radius", radius, "must be a positive finite length")
	}

	r := Ring{
		T:        s.T,
		Center:   s.Position,
		Frame:    f,
		Sides:    sides,
		Radius:   radius,
		Vertices: make([]geom.Vec3, sides),
	}
	step := 2 * math.Pi / float64(sides)
	for k := range r.Vertices {
		sin, cos := math.Sincos(float64(k) * step)
		offset := f.Normal.Scale(cos).Add(f.Binormal.Scale(sin))
		r.Vertices[k] = s.Position.Add(offset.Scale(radius))
	}
	return r, nil
}
