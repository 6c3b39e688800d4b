package tunnel

import (
	"math"

	"github.com/san-kum/lissatunnel/internal/curve"
)

// Supported ring counts.
const (
	MinPolygons = 10
	MaxPolygons = 1000
)

// Options are the structural parameters of a tunnel.
type Options struct {
	Params       curve.Params
	NumPolygons  int
	Sides        int
	Radius       float64
	Intermittent bool
	WallAlpha    float64
}

// Validate rejects options outside the supported ranges.
func (o Options) Validate() error {
	if o.Params.Period() <= 0 {
		return curve.Invalid("period", o.Params.Period(), "curve params were not built with curve.NewParams")
	}
	if o.NumPolygons < MinPolygons || o.NumPolygons > MaxPolygons {
		return curve.Invalid("num_polygons", float64(o.NumPolygons), "must be within [10, 1000]")
	}
	if o.Sides < MinSides {
		return curve.Invalid("sides", float64(o.Sides), "must be at least 3")
	}
	if !(o.Radius > 0) || math.IsInf(o.Radius, 0) {
		return curve.Invalid("radius", o.Radius, "must be a positive finite length")
	}
	if !(o.WallAlpha >= 0 && o.WallAlpha <= 1) {
		return curve.Invalid("wall_alpha", o.WallAlpha, "must be within [0, 1]")
	}
	return nil
}

// Face is the wall band between two consecutive rings. It is made of one
// quad per polygon side.
type Face struct {
	From, To int
}

// Tunnel is the closed ring sequence around one period of the curve.
type Tunnel struct {
	Options
	Rings   []Ring
	Faces   []Face
	Spacing float64
}

// Build samples the curve at t_k = k·Period/NumPolygons and joins each ring
// to the next, wrapping the last ring back to the first. With Intermittent
// set, only faces leaving an even-indexed ring are emitted.
func Build(o Options) (*Tunnel, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	n := o.NumPolygons
	spacing := o.Params.Period() / float64(n)

	samples := make([]curve.Sample, n)
	for k := range samples {
		samples[k] = curve.Evaluate(o.Params, float64(k)*spacing)
	}
	frames := curve.ClosedFrames(samples)

	t := &Tunnel{
		Options: o,
		Rings:   make([]Ring, n),
		Faces:   make([]Face, 0, n),
		Spacing: spacing,
	}
	for k := range samples {
		ring, err := MakeRing(samples[k], frames[k], o.Sides, o.Radius)
		if err != nil {
			return nil, err
		}
		t.Rings[k] = ring
	}
	for k := 0; k < n; k++ {
		if o.Intermittent && k%2 != 0 {
			continue
		}
		t.Faces = append(t.Faces, Face{From: k, To: (k + 1) % n})
	}
	return t, nil
}

// Period is the curve period the tunnel spans.
func (t *Tunnel) Period() float64 { return t.Params.Period() }

// Locate returns the ring at or before parameter u and the fraction of the
// way to the following ring. u is wrapped into the period first.
func (t *Tunnel) Locate(u float64) (k int, frac float64) {
	u = t.Params.Wrap(u)
	pos := u / t.Spacing
	k = int(math.Floor(pos))
	frac = pos - float64(k)
	if k >= len(t.Rings) {
		k, frac = 0, 0
	}
	return k, frac
}

// FrameAt interpolates the ring frames bracketing u.
func (t *Tunnel) FrameAt(u float64) curve.Frame {
	k, frac := t.Locate(u)
	a := t.Rings[k].Frame
	b := t.Rings[(k+1)%len(t.Rings)].Frame

	tan := a.Tangent.Lerp(b.Tangent, frac).Normalize()
	if tan.Length() == 0 {
		return a
	}
	n := a.Normal.Lerp(b.Normal, frac).RejectFrom(tan).Normalize()
	if n.Length() == 0 {
		return a
	}
	return curve.Frame{Tangent: tan, Normal: n, Binormal: tan.Cross(n)}
}
