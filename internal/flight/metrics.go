package flight

import (
	"math"

	"github.com/san-kum/lissatunnel/internal/geom"
)

// PathLength is the distance the camera covered in world units.
type PathLength struct {
	total float64
	last  geom.Vec3
	seen  bool
}

func NewPathLength() *PathLength { return &PathLength{} }

func (p *PathLength) Name() string { return "path_length" }

func (p *PathLength) Observe(s Sample) {
	if p.seen {
		p.total += s.Position.Sub(p.last).Length()
	}
	p.last, p.seen = s.Position, true
}

func (p *PathLength) Value() float64 { return p.total }
func (p *PathLength) Reset()         { *p = PathLength{} }

// Laps counts completed trips around the loop, negative when flying in
// reverse. It works from the unwrapped camera parameter, so the period must
// be known.
type Laps struct {
	period    float64
	unwrapped float64
	lastT     float64
	seen      bool
}

func NewLaps(period float64) *Laps { return &Laps{period: period} }

func (l *Laps) Name() string { return "laps" }

func (l *Laps) Observe(s Sample) {
	if !l.seen {
		l.lastT, l.seen = s.T, true
		return
	}
	d := s.T - l.lastT
	// A step longer than half a period is a wrap.
	if d > l.period/2 {
		d -= l.period
	} else if d < -l.period/2 {
		d += l.period
	}
	l.unwrapped += d
	l.lastT = s.T
}

func (l *Laps) Value() float64 {
	if l.period <= 0 {
		return 0
	}
	return math.Trunc(l.unwrapped / l.period)
}

func (l *Laps) Reset() { *l = Laps{period: l.period} }

// MaxTurn is the largest change in view direction between two ticks, in
// radians.
type MaxTurn struct {
	max  float64
	last geom.Vec3
	seen bool
}

func NewMaxTurn() *MaxTurn { return &MaxTurn{} }

func (m *MaxTurn) Name() string { return "max_turn" }

func (m *MaxTurn) Observe(s Sample) {
	if m.seen {
		c := math.Max(-1, math.Min(1, m.last.Dot(s.Forward)))
		m.max = math.Max(m.max, math.Acos(c))
	}
	m.last, m.seen = s.Forward, true
}

func (m *MaxTurn) Value() float64 { return m.max }
func (m *MaxTurn) Reset()         { *m = MaxTurn{} }

// Standard attaches the metrics every recorded flight reports.
func Standard(r *Recorder) {
	r.AddMetric(NewPathLength())
	r.AddMetric(NewLaps(r.sess.Params().Period()))
	r.AddMetric(NewMaxTurn())
}
