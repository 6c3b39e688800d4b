package curve

import (
	"errors"
	"math"
	"testing"

	. "github.com/onsi/gomega"
)

func TestNewParams_Period(t *testing.T) {
	tests := []struct {
		name    string
		a, b, r float64
		period  float64
	}{
		{"classic", 2, 7, 5, 2 * math.Pi},
		{"unit", 1, 1, 1, 2 * math.Pi},
		{"swapped", 7, 2, 5, 2 * math.Pi},
		{"fractional", 1.5, 3, 2, 4 * math.Pi / 3},
		{"half", 0.5, 1, 2, 4 * math.Pi},
		{"coprime", 3, 5, 1, 2 * math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)
			p, err := NewParams(tt.a, tt.b, tt.r)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(p.Period()).To(BeNumerically("~", tt.period, 1e-12))
		})
	}
}

func TestNewParams_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		a, b, r float64
	}{
		{"zero a", 0, 7, 5},
		{"negative b", 2, -7, 5},
		{"zero radius", 2, 7, 0},
		{"NaN a", math.NaN(), 7, 5},
		{"Inf r", 2, 7, math.Inf(1)},
		{"irrational ratio", math.Sqrt2, 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParams(tt.a, tt.b, tt.r)
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("expected ErrInvalidConfiguration, got %v", err)
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("expected *ConfigError, got %T", err)
			}
		})
	}
}

func TestEvaluate_Periodic(t *testing.T) {
	for _, ab := range [][2]float64{{2, 7}, {3, 5}, {1.5, 3}, {1, 4}} {
		p, err := NewParams(ab[0], ab[1], 5)
		if err != nil {
			t.Fatalf("NewParams(%v): %v", ab, err)
		}
		for _, ts := range []float64{0, 0.1, 1, 2.5, -3.7, 42} {
			s0 := Evaluate(p, ts)
			s1 := Evaluate(p, ts+p.Period())
			if !s0.Position.Near(s1.Position, 1e-9) {
				t.Errorf("a=%v b=%v t=%v: position %v != %v", ab[0], ab[1], ts, s0.Position, s1.Position)
			}
			if !s0.Tangent.Near(s1.Tangent, 1e-9) {
				t.Errorf("a=%v b=%v t=%v: tangent %v != %v", ab[0], ab[1], ts, s0.Tangent, s1.Tangent)
			}
		}
	}
}

func TestEvaluate_OnSphere(t *testing.T) {
	g := NewWithT(t)
	p, _ := NewParams(2, 7, 5)
	for ts := 0.0; ts < p.Period(); ts += 0.05 {
		g.Expect(Evaluate(p, ts).Position.Length()).To(BeNumerically("~", 5, 1e-9))
	}
}

func TestEvaluate_TangentMatchesDifference(t *testing.T) {
	p, _ := NewParams(2, 7, 5)
	const h = 1e-6
	for _, ts := range []float64{0.2, 1.1, 3.0, 5.9} {
		s := Evaluate(p, ts)
		diff := Position(p, ts+h).Sub(Position(p, ts-h)).Scale(1 / (2 * h)).Normalize()
		if !s.Tangent.Near(diff, 1e-5) {
			t.Errorf("t=%v: analytic tangent %v, numeric %v", ts, s.Tangent, diff)
		}
		if math.Abs(s.Tangent.Length()-1) > 1e-12 {
			t.Errorf("t=%v: tangent not unit: %v", ts, s.Tangent.Length())
		}
		if s.Degenerate {
			t.Errorf("t=%v: unexpected degenerate sample", ts)
		}
	}
}

func TestParams_Wrap(t *testing.T) {
	p, _ := NewParams(2, 7, 5)
	period := p.Period()

	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{1, 1},
		{period, 0},
		{period + 0.5, 0.5},
		{-0.5, period - 0.5},
		{-3 * period, 0},
		{-1e-18, 0},
	}

	for _, tt := range tests {
		got := p.Wrap(tt.in)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Wrap(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got < 0 || got >= period {
			t.Errorf("Wrap(%v) = %v outside [0, %v)", tt.in, got, period)
		}
	}
}
