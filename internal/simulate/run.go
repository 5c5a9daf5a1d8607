package simulate

import (
	"fmt"

	"go.uber.org/zap"
)

// Simulate computes the full run for the given compounds and instrument over
// the provided time axis: one pass modeling peaks and accumulating the
// signal trace, then a second pass annotating pairwise resolutions once all
// retention times and widths are known.
//
// The run fails as a whole: an invalid parameter on any compound aborts
// before any output is returned, so callers never see a partial
// chromatogram.
func Simulate(logger *zap.Logger, compounds []Compound, inst Instrument, axis []float64) (*Run, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(compounds) == 0 {
		return nil, fmt.Errorf("%w: compound list is empty", ErrInvalidInput)
	}
	if len(axis) == 0 {
		return nil, fmt.Errorf("%w: time axis is empty", ErrInvalidInput)
	}

	run := &Run{
		Mode:       inst.Mode(),
		Instrument: inst,
		TimeAxis:   axis,
		Trace:      NewTrace(len(axis)),
		Peaks:      make([]Peak, 0, len(compounds)),
	}

	for i, compound := range compounds {
		peak, err := ModelPeak(i, compound, inst)
		if err != nil {
			return nil, err
		}
		run.Trace.Accumulate(peak, axis)
		run.Peaks = append(run.Peaks, peak)

		logger.Debug(fmt.Sprintf("modeled peak for %s", compound.Name),
			zap.String("op", "simulate.Simulate"),
			zap.Float64("retentionTime", peak.RetentionTime),
			zap.Float64("width", peak.Width),
		)
	}

	AnnotateResolutions(run.Peaks)

	logger.Debug("simulation complete",
		zap.String("op", "simulate.Simulate"),
		zap.String("mode", string(run.Mode)),
		zap.Int("compounds", len(compounds)),
		zap.Int("samples", len(axis)),
	)

	return run, nil
}

// MinResolution returns the smallest defined pairwise resolution in the run.
// It reports false when the run has fewer than two peaks.
func (r *Run) MinResolution() (float64, bool) {
	found := false
	min := 0.0
	for _, peak := range r.Peaks {
		if peak.Resolution == nil {
			continue
		}
		if !found || *peak.Resolution < min {
			min = *peak.Resolution
			found = true
		}
	}
	return min, found
}
