// Package analysis inspects the frequency content of a curve.
//
// One period of a coordinate is sampled uniformly and transformed with a
// real FFT. Harmonic h of the result has angular frequency h·2π/Period, so
// for x = R·sin(At)·cos(Bt) the power sits at the harmonics matching A+B
// and |A-B|:
//
//	ps, _ := analysis.Spectrum(p, analysis.AxisX, 1024)
//	peaks := analysis.Peaks(ps, 2)
package analysis
