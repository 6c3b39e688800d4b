package export

import (
	"fmt"
	"math"
	"sort"
	"strings"

	polyclip "github.com/akavel/polyclip-go"

	"github.com/san-kum/lissatunnel/internal/curve"
	"github.com/san-kum/lissatunnel/internal/session"
	"github.com/san-kum/lissatunnel/internal/tunnel"
	"github.com/san-kum/lissatunnel/internal/viz"
)

const background = "#0a0a0a"

func header(sb *strings.Builder, width, height float64) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))
}

// CanvasToSVG draws every lit dot of the canvas as a circle, scale pixels
// per dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64, fill string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.DotWidth()) * scale
	height := float64(canvas.DotHeight()) * scale

	var sb strings.Builder
	header(&sb, width, height)
	sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", fill))

	dotRadius := scale * 0.4
	for y := 0; y < canvas.DotHeight(); y++ {
		for x := 0; x < canvas.DotWidth(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func rgb(r, g, b float32) string {
	return fmt.Sprintf("#%02x%02x%02x", int(r*255+0.5), int(g*255+0.5), int(b*255+0.5))
}

// FrameToSVG draws one frame of a session as seen from the snapshot's camera
// pose. Guide lines take the colour of the ring they start on. Filled walls
// become polygons clipped to the image and painted far to near with the
// tunnel's wall alpha as fill opacity; in wireframe mode the wall outlines
// use it as stroke opacity.
func FrameToSVG(snap session.Snapshot, width, height int) string {
	if snap.Tunnel == nil || width <= 0 || height <= 0 {
		return ""
	}
	pr := viz.NewProjector(snap.Pose)
	n := len(snap.Tunnel.Rings)
	alpha := snap.Tunnel.WallAlpha

	var sb strings.Builder
	header(&sb, float64(width), float64(height))

	filled := snap.View.DrawsFilled()
	if filled {
		walls := wallPolygons(snap, pr, width, height)
		sb.WriteString(`<g stroke="none">` + "\n")
		for _, w := range walls {
			color := rgb(tunnel.RingColor(w.ring, n))
			for _, c := range w.poly {
				sb.WriteString(fmt.Sprintf("<polygon points=\"%s\" fill=\"%s\" fill-opacity=\"%.2f\"/>\n", svgPoints(c), color, alpha))
			}
		}
		sb.WriteString("</g>\n")
	}

	w := viz.TunnelWireframe(snap.Tunnel, snap.View, snap.Pose.Position)
	sb.WriteString(`<g fill="none" stroke-width="1" stroke-linecap="round">` + "\n")
	for _, e := range w.Edges {
		if filled && e.Kind == viz.EdgeWall {
			continue
		}
		x0, y0, x1, y1, _, ok := pr.ProjectSegment(e.Start, e.End, width, height)
		if !ok {
			continue
		}
		color := rgb(tunnel.RingColor(e.Ring, n))
		opacity := 1.0
		if e.Kind == viz.EdgeWall {
			opacity = alpha
		}
		sb.WriteString(fmt.Sprintf("<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"%s\" stroke-opacity=\"%.2f\"/>\n",
			x0, y0, x1, y1, color, opacity))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

type wallPolygon struct {
	poly  polyclip.Polygon
	depth float64
	ring  int
}

// wallPolygons projects the visible wall quads and clips them to the image,
// farthest first.
func wallPolygons(snap session.Snapshot, pr *viz.Projector, width, height int) []wallPolygon {
	quads := viz.WallQuads(snap.Tunnel, snap.View, snap.Pose.Position)
	walls := make([]wallPolygon, 0, len(quads))
	for _, q := range quads {
		pts, depth, ok := pr.ProjectPolygon(q.Corners[:], width, height)
		if !ok {
			continue
		}
		poly := clipToViewport(pts, float64(width), float64(height))
		if len(poly) == 0 {
			continue
		}
		walls = append(walls, wallPolygon{poly: poly, depth: depth, ring: q.Ring})
	}
	sort.SliceStable(walls, func(i, j int) bool { return walls[i].depth > walls[j].depth })
	return walls
}

// clipToViewport intersects a screen polygon with the [0,w]x[0,h] rectangle.
func clipToViewport(pts [][2]float64, w, h float64) polyclip.Polygon {
	c := make(polyclip.Contour, len(pts))
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i, p := range pts {
		c[i] = polyclip.Point{X: p[0], Y: p[1]}
		minX, maxX = min(minX, p[0]), max(maxX, p[0])
		minY, maxY = min(minY, p[1]), max(maxY, p[1])
	}
	switch {
	case maxX <= 0 || maxY <= 0 || minX >= w || minY >= h:
		return nil
	case minX >= 0 && minY >= 0 && maxX <= w && maxY <= h:
		return polyclip.Polygon{c}
	}
	viewport := polyclip.Polygon{{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}}}
	return polyclip.Polygon{c}.Construct(polyclip.INTERSECTION, viewport)
}

func svgPoints(c polyclip.Contour) string {
	parts := make([]string, len(c))
	for i, p := range c {
		parts[i] = fmt.Sprintf("%.1f,%.1f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

// Point is a 2D point in data coordinates.
type Point struct{ X, Y float64 }

// CurvePoints samples one period of the curve projected onto the plane
// selected by plane ("xy", "xz" or "yz").
func CurvePoints(p curve.Params, samples int, plane string) []Point {
	if samples < 2 {
		samples = 2
	}
	pts := make([]Point, samples+1)
	step := p.Period() / float64(samples)
	for i := range pts {
		v := curve.Position(p, float64(i)*step)
		switch plane {
		case "xz":
			pts[i] = Point{v.X, v.Z}
		case "yz":
			pts[i] = Point{v.Y, v.Z}
		default:
			pts[i] = Point{v.X, v.Y}
		}
	}
	return pts
}

// TrajectoryToSVG draws points as one polyline scaled to fill the image with
// a 10% margin. Data y grows upwards.
func TrajectoryToSVG(points []Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}
	lo, hi := bounds(points)
	w, h := float64(width), float64(height)
	toImage := func(p Point) (float64, float64) {
		return (p.X - lo.X) / (hi.X - lo.X) * w, h - (p.Y-lo.Y)/(hi.Y-lo.Y)*h
	}

	var sb strings.Builder
	header(&sb, w, h)
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="`, strokeColor))
	for i, p := range points {
		cmd := " L"
		if i == 0 {
			cmd = "M"
		}
		x, y := toImage(p)
		sb.WriteString(fmt.Sprintf("%s%.1f,%.1f", cmd, x, y))
	}
	sb.WriteString("\"/>\n</svg>")
	return sb.String()
}

// bounds is the padded bounding box of points. A flat extent is widened to
// one unit so the box never has zero size.
func bounds(points []Point) (lo, hi Point) {
	lo, hi = points[0], points[0]
	for _, p := range points[1:] {
		lo = Point{min(lo.X, p.X), min(lo.Y, p.Y)}
		hi = Point{max(hi.X, p.X), max(hi.Y, p.Y)}
	}
	pad := func(a, b float64) (float64, float64) {
		r := b - a
		if r == 0 {
			r = 1
		}
		return a - 0.1*r, b + 0.1*r
	}
	lo.X, hi.X = pad(lo.X, hi.X)
	lo.Y, hi.Y = pad(lo.Y, hi.Y)
	return lo, hi
}
