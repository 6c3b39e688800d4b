package tunnel

import "math"

// Vertex is a mesh vertex in the layout a GPU buffer expects.
type Vertex struct {
	Pos   [3]float32 `json:"pos"`
	Color [4]float32 `json:"color"`
}

// Mesh is a tunnel flattened into index buffers. Vertex k*Sides+j is vertex
// j of ring k.
type Mesh struct {
	Vertices []Vertex `json:"vertices"`
	// Triangles holds two triangles per quad of every emitted face.
	Triangles []uint32 `json:"triangles"`
	// LongitudeLines joins vertex j of each ring to vertex j of the next,
	// including the wrap from the last ring to the first.
	LongitudeLines []uint32 `json:"longitude_lines"`
	// LatitudeLines traces the outline of every ring.
	LatitudeLines []uint32 `json:"latitude_lines"`
}

// RingColor is the RGB colour of ring k out of n. It is periodic in k so the
// last ring blends into the first.
func RingColor(k, n int) (r, g, b float32) {
	d := float64(k) / float64(n) * 2 * math.Pi
	return float32(0.5 + 0.5*math.Sin(d)),
		float32(0.35 + 0.35*math.Cos(3*d)),
		float32(0.75 + 0.25*math.Sin(4*d))
}

// Mesh flattens the tunnel. Vertex alpha is the tunnel's WallAlpha.
func (t *Tunnel) Mesh() *Mesh {
	n, s := len(t.Rings), t.Sides
	m := &Mesh{
		Vertices:       make([]Vertex, 0, n*s),
		Triangles:      make([]uint32, 0, len(t.Faces)*s*6),
		LongitudeLines: make([]uint32, 0, n*s*2),
		LatitudeLines:  make([]uint32, 0, n*s*2),
	}

	alpha := float32(t.WallAlpha)
	for k, ring := range t.Rings {
		r, g, b := RingColor(k, n)
		for _, v := range ring.Vertices {
			m.Vertices = append(m.Vertices, Vertex{
				Pos:   [3]float32{float32(v.X), float32(v.Y), float32(v.Z)},
				Color: [4]float32{r, g, b, alpha},
			})
		}
	}

	idx := func(ring, side int) uint32 { return uint32(ring*s + side%s) }

	for _, f := range t.Faces {
		for j := 0; j < s; j++ {
			a, b := idx(f.From, j), idx(f.To, j)
			c, d := idx(f.From, j+1), idx(f.To, j+1)
			m.Triangles = append(m.Triangles, a, b, c, b, d, c)
		}
	}

	for j := 0; j < s; j++ {
		for k := 0; k < n; k++ {
			m.LongitudeLines = append(m.LongitudeLines, idx(k, j), idx((k+1)%n, j))
		}
	}

	for k := 0; k < n; k++ {
		for j := 0; j < s; j++ {
			m.LatitudeLines = append(m.LatitudeLines, idx(k, j), idx(k, j+1))
		}
	}

	return m
}
