package analysis

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/lissatunnel/internal/curve"
)

type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// ParseAxis accepts "x", "y" or "z".
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

// Sample returns n uniformly spaced values of one coordinate over a period,
// excluding the endpoint.
func Sample(p curve.Params, axis Axis, n int) []float64 {
	out := make([]float64, n)
	step := p.Period() / float64(n)
	for i := range out {
		v := curve.Position(p, float64(i)*step)
		switch axis {
		case AxisY:
			out[i] = v.Y
		case AxisZ:
			out[i] = v.Z
		default:
			out[i] = v.X
		}
	}
	return out
}

// Spectrum is the amplitude spectrum of one coordinate over one period,
// harmonics 0 to n/2-1, normalised so a pure sinusoid of amplitude a shows
// as a.
func Spectrum(p curve.Params, axis Axis, n int) ([]float64, error) {
	if n < 4 {
		return nil, fmt.Errorf("need at least 4 samples, got %d", n)
	}
	if p.Period() <= 0 {
		return nil, fmt.Errorf("curve params have no period")
	}
	coeffs := fft.FFTReal(Sample(p, axis, n))
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i]) * 2 / float64(n)
	}
	ps[0] /= 2
	return ps, nil
}

// Peak is one harmonic of a spectrum.
type Peak struct {
	Harmonic  int
	Amplitude float64
}

// AngularFrequency converts a harmonic of p's period to rad per unit t.
func AngularFrequency(p curve.Params, harmonic int) float64 {
	return float64(harmonic) * 2 * math.Pi / p.Period()
}

// Peaks returns the k largest local maxima of ps, strongest first.
func Peaks(ps []float64, k int) []Peak {
	peaks := make([]Peak, 0)
	for i, v := range ps {
		if v < 1e-9 {
			continue
		}
		if i > 0 && ps[i-1] >= v {
			continue
		}
		if i+1 < len(ps) && ps[i+1] > v {
			continue
		}
		peaks = append(peaks, Peak{Harmonic: i, Amplitude: v})
	}
	sort.SliceStable(peaks, func(i, j int) bool { return peaks[i].Amplitude > peaks[j].Amplitude })
	if k >= 0 && len(peaks) > k {
		peaks = peaks[:k]
	}
	return peaks
}
