package analysis

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

// PowerSpectrum returns the magnitude of the non-negative frequency
// coefficients of series after removing its mean.
func PowerSpectrum(series []float64) []float64 {
	if len(series) < 2 {
		return nil
	}
	mean := stat.Mean(series, nil)
	centred := make([]float64, len(series))
	for i, v := range series {
		centred[i] = v - mean
	}
	fft := fourier.NewFFT(len(centred))
	coeff := fft.Coefficients(nil, centred)
	ps := make([]float64, len(coeff))
	for i, c := range coeff {
		ps[i] = cmplx.Abs(c)
	}
	return ps
}

// DominantPeriod returns the period of the strongest non-constant frequency,
// in the units of spacing (the distance between samples). ok is false for
// a flat or too short series.
func DominantPeriod(series []float64, spacing float64) (period float64, ok bool) {
	ps := PowerSpectrum(series)
	best, idx := 0.0, 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > best {
			best, idx = ps[k], k
		}
	}
	if idx == 0 {
		return 0, false
	}
	return float64(len(series)) * spacing / float64(idx), true
}
