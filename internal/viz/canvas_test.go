package viz

import (
	"strings"
	"testing"
)

func TestCanvas_SetUnset(t *testing.T) {
	c := NewCanvas(4, 2)
	if c.DotWidth() != 8 || c.DotHeight() != 8 {
		t.Fatalf("expected 8x8 dots, got %dx%d", c.DotWidth(), c.DotHeight())
	}

	c.Set(0, 0)
	c.Set(1, 3)
	c.Set(7, 7)
	if c.Count() != 3 {
		t.Errorf("expected 3 dots, got %d", c.Count())
	}
	if c.Grid[0][0] != 0x2800|0x1|0x80 {
		t.Errorf("unexpected cell %U", c.Grid[0][0])
	}
	if !c.IsSet(7, 7) || c.IsSet(6, 7) {
		t.Error("IsSet disagrees with Set")
	}

	c.Unset(0, 0)
	c.Unset(0, 0)
	if c.Grid[0][0] != 0x2800|0x80 {
		t.Errorf("unexpected cell after unset %U", c.Grid[0][0])
	}
}

func TestCanvas_OutOfRange(t *testing.T) {
	c := NewCanvas(2, 2)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 8}} {
		c.Set(p[0], p[1])
		if c.IsSet(p[0], p[1]) {
			t.Errorf("dot %v should be ignored", p)
		}
	}
	if c.Count() != 0 {
		t.Errorf("expected empty canvas, got %d dots", c.Count())
	}
}

func TestCanvas_DrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		dots           int
	}{
		{"horizontal", 0, 0, 9, 0, 10},
		{"vertical", 3, 0, 3, 7, 8},
		{"diagonal", 0, 0, 7, 7, 8},
		{"point", 2, 2, 2, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(10, 4)
			c.DrawLine(tt.x0, tt.y0, tt.x1, tt.y1)
			if c.Count() != tt.dots {
				t.Errorf("expected %d dots, got %d", tt.dots, c.Count())
			}
			if !c.IsSet(tt.x0, tt.y0) || !c.IsSet(tt.x1, tt.y1) {
				t.Error("line endpoints not set")
			}
		})
	}
}

func TestCanvas_StringAndResize(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Set(0, 0)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if got := []rune(lines[0]); len(got) != 3 || got[0] != 0x2801 {
		t.Errorf("unexpected first line %q", lines[0])
	}

	c.Resize(0, 0)
	if c.Width != 1 || c.Height != 1 || c.Count() != 0 {
		t.Errorf("resize should clamp to 1x1 and clear, got %dx%d with %d dots", c.Width, c.Height, c.Count())
	}
}
