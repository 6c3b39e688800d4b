package viz

import (
	"math"
	"sort"

	"github.com/san-kum/lissatunnel/internal/camera"
	"github.com/san-kum/lissatunnel/internal/geom"
	"github.com/san-kum/lissatunnel/internal/tunnel"
	"github.com/san-kum/lissatunnel/internal/view"
)

const (
	DefaultFOV  = math.Pi / 3
	DefaultNear = 0.05
)

// Projector maps world points onto a screen through a pinhole camera placed
// at a pose.
type Projector struct {
	Eye                geom.Vec3
	Forward, Right, Up geom.Vec3
	FOV, Near          float64
}

func NewProjector(p camera.Pose) *Projector {
	fwd := p.Forward()
	if fwd.Length() == 0 {
		fwd = geom.UnitY
	}
	right := fwd.Cross(p.Up).Normalize()
	if right.Length() == 0 {
		right = fwd.Cross(geom.UnitZ).Normalize()
		if right.Length() == 0 {
			right = fwd.Cross(geom.UnitX).Normalize()
		}
	}
	return &Projector{
		Eye:     p.Position,
		Forward: fwd,
		Right:   right,
		Up:      right.Cross(fwd),
		FOV:     DefaultFOV,
		Near:    DefaultNear,
	}
}

// ToView returns p in camera space: x right, y up, z along the view
// direction.
func (pr *Projector) ToView(p geom.Vec3) geom.Vec3 {
	d := p.Sub(pr.Eye)
	return geom.Vec3{X: d.Dot(pr.Right), Y: d.Dot(pr.Up), Z: d.Dot(pr.Forward)}
}

// screen projects a camera-space point with z >= Near onto a sw x sh
// screen. Screen y grows downwards.
func (pr *Projector) screen(v geom.Vec3, sw, sh int) (float64, float64) {
	focal := 0.5 * math.Min(float64(sw), float64(sh)) / math.Tan(pr.FOV/2)
	return float64(sw)/2 + v.X*focal/v.Z, float64(sh)/2 - v.Y*focal/v.Z
}

// Project converts a world point to screen coordinates.
// Returns x, y, depth, and visibility.
func (pr *Projector) Project(p geom.Vec3, sw, sh int) (int, int, float64, bool) {
	v := pr.ToView(p)
	if v.Z < pr.Near {
		return 0, 0, v.Z, false
	}
	fx, fy := pr.screen(v, sw, sh)
	x, y := int(math.Floor(fx)), int(math.Floor(fy))
	return x, y, v.Z, x >= 0 && x < sw && y >= 0 && y < sh
}

// ProjectSegment clips the segment a-b against the near plane and the
// screen rectangle. ok is false when nothing of it is visible.
func (pr *Projector) ProjectSegment(a, b geom.Vec3, sw, sh int) (x0, y0, x1, y1 float64, depth float64, ok bool) {
	va, vb := pr.ToView(a), pr.ToView(b)
	if va.Z < pr.Near && vb.Z < pr.Near {
		return 0, 0, 0, 0, 0, false
	}
	if va.Z < pr.Near {
		va = va.Lerp(vb, (pr.Near-va.Z)/(vb.Z-va.Z))
	} else if vb.Z < pr.Near {
		vb = vb.Lerp(va, (pr.Near-vb.Z)/(va.Z-vb.Z))
	}
	x0, y0 = pr.screen(va, sw, sh)
	x1, y1 = pr.screen(vb, sw, sh)
	x0, y0, x1, y1, ok = clipRect(x0, y0, x1, y1, float64(sw-1), float64(sh-1))
	return x0, y0, x1, y1, (va.Z + vb.Z) / 2, ok
}

// ProjectPolygon clips a planar polygon against the near plane and projects
// what is left. The result is not clipped to the screen. ok is false when
// fewer than three vertices survive.
func (pr *Projector) ProjectPolygon(pts []geom.Vec3, sw, sh int) (out [][2]float64, depth float64, ok bool) {
	cam := make([]geom.Vec3, len(pts))
	for i, p := range pts {
		cam[i] = pr.ToView(p)
	}

	clipped := make([]geom.Vec3, 0, len(cam)+2)
	for i, cur := range cam {
		next := cam[(i+1)%len(cam)]
		curIn, nextIn := cur.Z >= pr.Near, next.Z >= pr.Near
		if curIn {
			clipped = append(clipped, cur)
		}
		if curIn != nextIn {
			clipped = append(clipped, cur.Lerp(next, (pr.Near-cur.Z)/(next.Z-cur.Z)))
		}
	}
	if len(clipped) < 3 {
		return nil, 0, false
	}

	out = make([][2]float64, len(clipped))
	for i, v := range clipped {
		x, y := pr.screen(v, sw, sh)
		out[i] = [2]float64{x, y}
		depth += v.Z
	}
	return out, depth / float64(len(clipped)), true
}

const (
	outLeft = 1 << iota
	outRight
	outTop
	outBottom
)

func outcode(x, y, maxX, maxY float64) int {
	code := 0
	switch {
	case x < 0:
		code |= outLeft
	case x > maxX:
		code |= outRight
	}
	switch {
	case y < 0:
		code |= outTop
	case y > maxY:
		code |= outBottom
	}
	return code
}

// clipRect is Cohen-Sutherland clipping against [0,maxX] x [0,maxY].
func clipRect(x0, y0, x1, y1, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	c0, c1 := outcode(x0, y0, maxX, maxY), outcode(x1, y1, maxX, maxY)
	for {
		switch {
		case c0|c1 == 0:
			return x0, y0, x1, y1, true
		case c0&c1 != 0:
			return 0, 0, 0, 0, false
		}
		c := c0
		if c == 0 {
			c = c1
		}
		var x, y float64
		switch {
		case c&outBottom != 0:
			x, y = x0+(x1-x0)*(maxY-y0)/(y1-y0), maxY
		case c&outTop != 0:
			x, y = x0+(x1-x0)*(0-y0)/(y1-y0), 0
		case c&outRight != 0:
			x, y = maxX, y0+(y1-y0)*(maxX-x0)/(x1-x0)
		default:
			x, y = 0, y0+(y1-y0)*(0-x0)/(x1-x0)
		}
		if c == c0 {
			x0, y0 = x, y
			c0 = outcode(x0, y0, maxX, maxY)
		} else {
			x1, y1 = x, y
			c1 = outcode(x1, y1, maxX, maxY)
		}
	}
}

// EdgeKind says which part of the tunnel an edge belongs to.
type EdgeKind int

const (
	EdgeLatitude EdgeKind = iota
	EdgeLongitude
	EdgeWall
)

// Edge is a segment of the tunnel. Ring is the index of the ring it
// starts on.
type Edge struct {
	Start, End geom.Vec3
	Kind       EdgeKind
	Ring       int
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) Clear()    { w.Edges = w.Edges[:0] }

func (w *Wireframe) AddEdge(s, e geom.Vec3, k EdgeKind, ring int) {
	w.Edges = append(w.Edges, Edge{Start: s, End: e, Kind: k, Ring: ring})
}

// Count returns the number of edges of kind k.
func (w *Wireframe) Count(k EdgeKind) int {
	n := 0
	for _, e := range w.Edges {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// TunnelWireframe collects the edges of t that v asks for. Latitude edges
// outline every ring and longitude edges join matching vertices of
// consecutive rings. Walls exist only where t has a face; in wireframe mode
// each wall quad contributes its four sides, otherwise it is hatched with one
// diagonal. With culling on, quads whose inner side faces away from eye are
// skipped.
func TunnelWireframe(t *tunnel.Tunnel, v view.State, eye geom.Vec3) *Wireframe {
	w := NewWireframe()
	if t == nil || len(t.Rings) == 0 {
		return w
	}
	n, s := len(t.Rings), t.Sides

	if v.ShowLatitude {
		for k, r := range t.Rings {
			for j := 0; j < s; j++ {
				w.AddEdge(r.Vertices[j], r.Vertices[(j+1)%s], EdgeLatitude, k)
			}
		}
	}
	if v.ShowLongitude {
		for k := 0; k < n; k++ {
			a, b := t.Rings[k], t.Rings[(k+1)%n]
			for j := 0; j < s; j++ {
				w.AddEdge(a.Vertices[j], b.Vertices[j], EdgeLongitude, k)
			}
		}
	}
	for _, q := range WallQuads(t, v, eye) {
		a, b, d, c := q.Corners[0], q.Corners[1], q.Corners[2], q.Corners[3]
		if v.ShowWireframe {
			w.AddEdge(a, b, EdgeWall, q.Ring)
			w.AddEdge(b, d, EdgeWall, q.Ring)
			w.AddEdge(d, c, EdgeWall, q.Ring)
			w.AddEdge(c, a, EdgeWall, q.Ring)
		} else {
			w.AddEdge(a, d, EdgeWall, q.Ring)
		}
	}
	return w
}

// Quad is one wall quad. Corners run around its boundary: vertex j of the
// face's first ring, vertex j of the second, then vertex j+1 of the second
// and of the first.
type Quad struct {
	Corners [4]geom.Vec3
	Ring    int
}

// Mid is the centroid of the corners.
func (q Quad) Mid() geom.Vec3 {
	return q.Corners[0].Add(q.Corners[1]).Add(q.Corners[2]).Add(q.Corners[3]).Scale(0.25)
}

// WallQuads lists the wall quads v asks for. With culling on, a quad is
// dropped when eye lies on the outer side of it.
func WallQuads(t *tunnel.Tunnel, v view.State, eye geom.Vec3) []Quad {
	if t == nil || !v.DrawsWalls() {
		return nil
	}
	s := t.Sides
	quads := make([]Quad, 0, len(t.Faces)*s)
	for _, f := range t.Faces {
		ra, rb := t.Rings[f.From], t.Rings[f.To]
		axis := ra.Center.Lerp(rb.Center, 0.5)
		for j := 0; j < s; j++ {
			q := Quad{
				Corners: [4]geom.Vec3{ra.Vertices[j], rb.Vertices[j], rb.Vertices[(j+1)%s], ra.Vertices[(j+1)%s]},
				Ring:    f.From,
			}
			if v.EnableCulling {
				mid := q.Mid()
				if eye.Sub(mid).Dot(mid.Sub(axis)) > 0 {
					continue
				}
			}
			quads = append(quads, q)
		}
	}
	return quads
}

type ProjectedEdge struct {
	X1, Y1, X2, Y2 int
	Depth          float64
	Kind           EdgeKind
	Ring           int
}

// Render3D draws the wireframe to the canvas, far edges first.
func Render3D(c *Canvas, w *Wireframe, pr *Projector) []ProjectedEdge {
	if c == nil || w == nil || pr == nil {
		return nil
	}
	sw, sh := c.DotWidth(), c.DotHeight()
	proj := make([]ProjectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x0, y0, x1, y1, depth, ok := pr.ProjectSegment(e.Start, e.End, sw, sh)
		if !ok {
			continue
		}
		proj = append(proj, ProjectedEdge{
			X1: int(x0), Y1: int(y0), X2: int(x1), Y2: int(y1),
			Depth: depth, Kind: e.Kind, Ring: e.Ring,
		})
	}
	sort.SliceStable(proj, func(i, j int) bool { return proj[i].Depth > proj[j].Depth })
	for _, e := range proj {
		c.DrawLine(e.X1, e.Y1, e.X2, e.Y2)
	}
	return proj
}

// DrawCurve traces one period of the tunnel's spine, which the renderer
// shows in place of walls when everything else is hidden.
func DrawCurve(c *Canvas, t *tunnel.Tunnel, pr *Projector) {
	if c == nil || t == nil || pr == nil {
		return
	}
	w := NewWireframe()
	n := len(t.Rings)
	for k := 0; k < n; k++ {
		w.AddEdge(t.Rings[k].Center, t.Rings[(k+1)%n].Center, EdgeLongitude, k)
	}
	Render3D(c, w, pr)
}
