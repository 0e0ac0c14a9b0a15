package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum zero-pads data to a power of two and returns the magnitudes of
// the non-negative frequency bins. The mean is removed first so the DC bin
// does not swamp the plot.
func Spectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	n := 1
	for n < len(data) {
		n *= 2
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	padded := make([]float64, n)
	for i, v := range data {
		padded[i] = v - mean
	}

	coeffs := fft.FFTReal(padded)
	ps := make([]float64, n/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// DominantFrequency returns the frequency in Hz of the largest non-DC bin
// of data sampled every dt seconds, or 0 if there is none.
func DominantFrequency(data []float64, dt float64) float64 {
	ps := Spectrum(data)
	if len(ps) < 2 || dt <= 0 {
		return 0
	}

	maxIdx := 0
	maxPower := 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return 0
	}

	n := 2 * (len(ps) - 1)
	return float64(maxIdx) / (float64(n) * dt)
}
