package simulate

import (
	"math"

	"github.com/gc-tools/chromsim/pkg/constants"
)

// NewTimeAxis returns samples uniformly spaced over [0, end] minutes,
// endpoints included.
func NewTimeAxis(end float64, samples int) []float64 {
	if samples < 2 || end <= 0 {
		return nil
	}
	axis := make([]float64, samples)
	step := end / float64(samples-1)
	for i := range axis {
		axis[i] = float64(i) * step
	}
	return axis
}

// NewDefaultTimeAxis returns the reference axis: [0,20] minutes at 1200
// samples.
func NewDefaultTimeAxis() []float64 {
	return NewTimeAxis(constants.DefaultTimeAxisEndMinutes, constants.DefaultTimeAxisSamples)
}

// NewTrace allocates zeroed ionic and neutral channels of length n.
func NewTrace(n int) Trace {
	return Trace{
		Ionic:   make([]float64, n),
		Neutral: make([]float64, n),
	}
}

// Accumulate sums the peak's Gaussian contribution into both channels.
// Overlapping peaks superimpose additively, matching physical detector
// summation; there is no peak-to-peak interaction beyond the sum.
func (tr Trace) Accumulate(p Peak, axis []float64) {
	denom := 2 * p.Width * p.Width
	for k, t := range axis {
		d := t - p.RetentionTime
		g := math.Exp(-(d * d) / denom)
		tr.Ionic[k] += p.IonicIntensity * g
		tr.Neutral[k] += p.NeutralIntensity * g
	}
}
