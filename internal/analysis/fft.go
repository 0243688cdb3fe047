package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var (
	ErrShortSeries   = errors.New("analysis: series too short for a spectrum")
	ErrNoOscillation = errors.New("analysis: series has no oscillation")
)

// PowerSpectrum returns the magnitudes of the non-negative frequency bins of
// a real series. Any length is accepted.
func PowerSpectrum(data []float64) ([]float64, error) {
	if len(data) < 2 {
		return nil, ErrShortSeries
	}
	spectrum := fft.FFTReal(data)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps, nil
}

// DominantPeriod estimates the period of the strongest oscillation in samples
// taken every dt. The mean is removed and a Hann window applied; the peak bin
// is refined by parabolic interpolation.
func DominantPeriod(samples []float64, dt float64) (float64, error) {
	n := len(samples)
	if n < 8 {
		return 0, ErrShortSeries
	}

	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(n)

	scale := math.Abs(mean)
	windowed := make([]float64, n)
	for i, v := range samples {
		scale = math.Max(scale, math.Abs(v))
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = (v - mean) * w
	}

	ps, err := PowerSpectrum(windowed)
	if err != nil {
		return 0, err
	}
	peak := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}
	// a flat series leaves only round-off relative to its magnitude
	if ps[peak] <= 1e-12*float64(n)*scale {
		return 0, ErrNoOscillation
	}

	bin := float64(peak)
	if peak+1 < len(ps) {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if d := a - 2*b + c; d != 0 {
			bin += 0.5 * (a - c) / d
		}
	}
	return float64(n) * dt / bin, nil
}
