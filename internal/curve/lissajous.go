package curve

import (
	"math"

	"github.com/san-kum/lissatunnel/internal/geom"
)

const (
	// DegenerateEpsilon is the derivative magnitude below which a sample has
	// no usable tangent.
	DegenerateEpsilon = 1e-9

	// maxRatioDenominator bounds the rational approximation of A/B. Ratios
	// needing a larger denominator never close within a practical period.
	maxRatioDenominator = 1000
	ratioTolerance      = 1e-9
)

// Params are the frequencies and radius of a Lissajous curve. Use NewParams;
// the zero value has no period.
type Params struct {
	A, B, R float64
	period  float64
}

// NewParams validates a, b, r and computes the curve period.
func NewParams(a, b, r float64) (Params, error) {
	switch {
	case !(a > 0) || math.IsInf(a, 0):
		return Params{}, Invalid("a", a, "must be a positive finite frequency")
	case !(b > 0) || math.IsInf(b, 0):
		return Params{}, Invalid("b", b, "must be a positive finite frequency")
	case !(r > 0) || math.IsInf(r, 0):
		return Params{}, Invalid("r", r, "must be a positive finite radius")
	}

	p, _, ok := rationalize(a/b, maxRatioDenominator)
	if !ok {
		return Params{}, Invalid("a/b", a/b, "is not a rational ratio; the curve does not close")
	}

	return Params{A: a, B: b, R: r, period: float64(p) * 2 * math.Pi / a}, nil
}

// Period is the smallest T > 0 with Evaluate(t) == Evaluate(t+T).
func (p Params) Period() float64 { return p.period }

// Wrap maps t into [0, Period).
func (p Params) Wrap(t float64) float64 {
	if p.period <= 0 {
		return t
	}
	t = math.Mod(t, p.period)
	if t < 0 {
		t += p.period
	}
	// Mod of a tiny negative value can round up to exactly the period.
	if t >= p.period {
		t = 0
	}
	return t
}

// Sample is the curve evaluated at T.
type Sample struct {
	T        float64
	Position geom.Vec3
	// Tangent is unit length, or the raw derivative when Degenerate.
	Tangent    geom.Vec3
	Speed      float64
	Degenerate bool
}

// Evaluate returns the position and tangent of the curve at t. It is total
// over all real t.
func Evaluate(p Params, t float64) Sample {
	sa, ca := math.Sincos(p.A * t)
	sb, cb := math.Sincos(p.B * t)

	pos := geom.Vec3{X: sa * cb, Y: sa * sb, Z: ca}.Scale(p.R)
	d := geom.Vec3{
		X: p.A*ca*cb - p.B*sa*sb,
		Y: p.A*ca*sb + p.B*sa*cb,
		Z: -p.A * sa,
	}.Scale(p.R)

	s := Sample{T: t, Position: pos, Speed: d.Length()}
	if s.Speed < DegenerateEpsilon || math.IsNaN(s.Speed) {
		s.Tangent = d
		s.Degenerate = true
		return s
	}
	s.Tangent = d.Scale(1 / s.Speed)
	return s
}

// Position is a shorthand for Evaluate(p, t).Position.
func Position(p Params, t float64) geom.Vec3 {
	return Evaluate(p, t).Position
}

// rationalize finds p/q ≈ x with q <= maxDen using continued fractions.
func rationalize(x float64, maxDen int) (p, q int, ok bool) {
	h0, h1 := 0, 1
	k0, k1 := 1, 0
	f := x
	for i := 0; i < 64; i++ {
		a := math.Floor(f)
		h2 := int(a)*h1 + h0
		k2 := int(a)*k1 + k0
		if k2 > maxDen {
			break
		}
		h0, h1 = h1, h2
		k0, k1 = k1, k2
		if math.Abs(x-float64(h1)/float64(k1)) <= ratioTolerance*x {
			return h1, k1, h1 > 0
		}
		frac := f - a
		if frac < 1e-15 {
			break
		}
		f = 1 / frac
	}
	return 0, 0, false
}
