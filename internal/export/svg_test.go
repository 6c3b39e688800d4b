package export

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/lissatunnel/internal/curve"
	"github.com/san-kum/lissatunnel/internal/session"
	"github.com/san-kum/lissatunnel/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 2, "#fff") != "" {
		t.Error("nil canvas should give empty output")
	}

	c := viz.NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(5, 6)
	svg := CanvasToSVG(c, 2, "#00ff00")
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	if !strings.Contains(svg, `width="16" height="16"`) {
		t.Error("unexpected svg size")
	}
	if !strings.Contains(svg, `cx="11.0" cy="13.0"`) {
		t.Error("dot (5,6) at wrong position")
	}
}

func TestFrameToSVG(t *testing.T) {
	cfg := session.DefaultConfig()
	cfg.NumPolygons = 40
	s, err := session.New(session.NewSurface("canvas", 640, 360), cfg)
	if err != nil {
		t.Fatal(err)
	}

	svg := FrameToSVG(s.Snapshot(), 640, 360)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an svg document")
	}
	if strings.Count(svg, "<line") == 0 {
		t.Error("expected guide lines")
	}
	if strings.Count(svg, "<polygon") == 0 {
		t.Error("filled walls should be drawn as polygons")
	}
	if !strings.Contains(svg, `fill-opacity="0.50"`) {
		t.Error("walls should carry the wall alpha")
	}

	if err := s.SetWallAlpha(0.8); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(FrameToSVG(s.Snapshot(), 640, 360), `fill-opacity="0.80"`) {
		t.Error("new wall alpha not reflected")
	}

	s.SetShowWireframe(true)
	wire := FrameToSVG(s.Snapshot(), 640, 360)
	if strings.Contains(wire, "<polygon") {
		t.Error("wireframe mode should not fill walls")
	}
	if !strings.Contains(wire, `stroke-opacity="0.80"`) {
		t.Error("wall outlines should carry the wall alpha")
	}

	if FrameToSVG(session.Snapshot{}, 640, 360) != "" {
		t.Error("empty snapshot should give empty output")
	}
}

func TestClipToViewport(t *testing.T) {
	const w, h = 100.0, 50.0

	tests := []struct {
		name  string
		pts   [][2]float64
		empty bool
	}{
		{"inside", [][2]float64{{10, 10}, {20, 10}, {20, 20}, {10, 20}}, false},
		{"outside", [][2]float64{{110, 10}, {120, 10}, {120, 20}, {110, 20}}, true},
		{"straddling", [][2]float64{{-20, -20}, {50, -20}, {50, 25}, {-20, 25}}, false},
		{"covering", [][2]float64{{-100, -100}, {300, -100}, {300, 300}, {-100, 300}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poly := clipToViewport(tt.pts, w, h)
			if tt.empty {
				if len(poly) != 0 {
					t.Errorf("expected nothing, got %v", poly)
				}
				return
			}
			if len(poly) == 0 {
				t.Fatal("expected a clipped polygon")
			}
			for _, c := range poly {
				for _, p := range c {
					if p.X < -1e-9 || p.X > w+1e-9 || p.Y < -1e-9 || p.Y > h+1e-9 {
						t.Errorf("point %v outside the viewport", p)
					}
				}
			}
		})
	}
}

func TestCurvePoints(t *testing.T) {
	p, err := curve.NewParams(2, 7, 5)
	if err != nil {
		t.Fatal(err)
	}
	pts := CurvePoints(p, 100, "xy")
	if len(pts) != 101 {
		t.Fatalf("expected 101 points, got %d", len(pts))
	}
	first, last := pts[0], pts[len(pts)-1]
	if math.Abs(first.X-last.X) > 1e-9 || math.Abs(first.Y-last.Y) > 1e-9 {
		t.Errorf("curve should close: %v vs %v", first, last)
	}
	for _, q := range CurvePoints(p, 50, "xz") {
		if math.Hypot(q.X, q.Y) > 5+1e-9 {
			t.Fatalf("projection %v leaves the sphere", q)
		}
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	if TrajectoryToSVG([]Point{{0, 0}}, 100, 100, "#fff") != "" {
		t.Error("single point should give empty output")
	}

	svg := TrajectoryToSVG([]Point{{0, 0}, {1, 1}, {2, 0}}, 200, 100, "#ff00ff")
	if !strings.Contains(svg, `stroke="#ff00ff"`) {
		t.Error("stroke colour missing")
	}
	if n := strings.Count(svg, " L"); n != 2 {
		t.Errorf("expected 2 line segments, got %d", n)
	}
}
