package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/lissatunnel/internal/curve"
)

func TestSpectrumPeaks(t *testing.T) {
	p, err := curve.NewParams(2, 7, 5)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		axis      Axis
		harmonics []int
		amplitude float64
	}{
		// Period 2π, so harmonic h is angular frequency h.
		{AxisX, []int{5, 9}, 2.5},
		{AxisY, []int{5, 9}, 2.5},
		{AxisZ, []int{2}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.axis.String(), func(t *testing.T) {
			ps, err := Spectrum(p, tt.axis, 1024)
			if err != nil {
				t.Fatal(err)
			}
			peaks := Peaks(ps, len(tt.harmonics))
			if len(peaks) != len(tt.harmonics) {
				t.Fatalf("expected %d peaks, got %v", len(tt.harmonics), peaks)
			}
			found := map[int]bool{}
			for _, pk := range peaks {
				found[pk.Harmonic] = true
				if math.Abs(pk.Amplitude-tt.amplitude) > 1e-6 {
					t.Errorf("harmonic %d amplitude %f, want %f", pk.Harmonic, pk.Amplitude, tt.amplitude)
				}
			}
			for _, h := range tt.harmonics {
				if !found[h] {
					t.Errorf("missing harmonic %d in %v", h, peaks)
				}
			}
		})
	}
}

func TestAngularFrequency(t *testing.T) {
	p, err := curve.NewParams(3, 5, 1)
	if err != nil {
		t.Fatal(err)
	}
	// A/B = 3/5 so the period is 2π and harmonic h is frequency h.
	if got := AngularFrequency(p, 8); math.Abs(got-8) > 1e-12 {
		t.Errorf("expected 8, got %f", got)
	}
}

func TestSpectrumErrors(t *testing.T) {
	p, _ := curve.NewParams(2, 7, 5)
	if _, err := Spectrum(p, AxisX, 2); err == nil {
		t.Error("expected error for too few samples")
	}
	if _, err := Spectrum(curve.Params{}, AxisX, 64); err == nil {
		t.Error("expected error for zero params")
	}
}

func TestParseAxis(t *testing.T) {
	for _, s := range []string{"x", "y", "z"} {
		a, err := ParseAxis(s)
		if err != nil || a.String() != s {
			t.Errorf("ParseAxis(%q) = %v, %v", s, a, err)
		}
	}
	if _, err := ParseAxis("w"); err == nil {
		t.Error("expected error for unknown axis")
	}
}

func TestPeaksLimit(t *testing.T) {
	ps := []float64{0, 3, 0, 1, 0, 2, 0}
	peaks := Peaks(ps, -1)
	if len(peaks) != 3 || peaks[0].Harmonic != 1 || peaks[2].Harmonic != 3 {
		t.Errorf("unexpected peaks %v", peaks)
	}
	if len(Peaks(ps, 1)) != 1 {
		t.Error("k should cap the result")
	}
}
