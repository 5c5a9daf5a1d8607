// Package optimizer searches instrument settings for a target separation
// quality. The only supported directive is the column heating rate: faster
// heating narrows every peak, so the minimum pairwise resolution of a run is
// strictly increasing in the rate and a bisection search converges.
package optimizer

import (
	"fmt"

	"github.com/gc-tools/chromsim/internal/config"
	"github.com/gc-tools/chromsim/internal/simulate"
	"github.com/gc-tools/chromsim/pkg/constants"
	"github.com/gc-tools/chromsim/pkg/mathutil"
	"go.uber.org/zap"
)

// Runner executes heating-rate optimizations against one configuration.
type Runner struct {
	logger    *zap.Logger
	conf      *config.Configuration
	compounds []simulate.Compound
}

// Result summarizes one optimization.
type Result struct {
	TargetResolution   float64
	OriginalRate       float64
	Rate               float64
	AchievedResolution float64
	Iterations         int
	Converged          bool
	Notes              []string
}

// NewRunner constructs a Runner for the provided configuration.
func NewRunner(logger *zap.Logger, conf *config.Configuration) (*Runner, error) {
	if conf == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	compounds, err := conf.CompoundList()
	if err != nil {
		return nil, err
	}
	if len(compounds) < 2 {
		return nil, fmt.Errorf("resolution is undefined for fewer than two compounds")
	}

	return &Runner{logger: logger, conf: conf, compounds: compounds}, nil
}

// Run searches for the lowest column heating rate whose run meets the target
// minimum pairwise resolution. On convergence the optimized rate is written
// back into the configuration, matching how the caller re-runs the
// simulation afterwards.
func (r *Runner) Run(target float64) (*Result, error) {
	if target <= 0 {
		return nil, fmt.Errorf("target resolution must be positive, got %g", target)
	}

	original := r.conf.Instrument.ColumnHeatingRate
	result := &Result{
		TargetResolution: target,
		OriginalRate:     original,
		Rate:             original,
	}

	baseline, err := r.evaluate(original)
	if err != nil {
		return nil, err
	}
	result.AchievedResolution = baseline

	if baseline >= target {
		result.Converged = true
		result.Notes = append(result.Notes, "configured heating rate already meets the target resolution")
		return result, nil
	}

	upper := constants.MaxHeatingRate
	atUpper, err := r.evaluate(upper)
	if err != nil {
		return nil, err
	}
	if atUpper < target {
		result.Notes = append(result.Notes,
			fmt.Sprintf("target resolution %.2f unreachable below %.0f °C/min (best %.2f)",
				target, upper, atUpper))
		return result, nil
	}

	lower := mathutil.Clamp(original, constants.MinHeatingRate, upper)
	iterations := 0
	for !mathutil.WithinTolerance(lower, upper, constants.HeatingRateTolerance) && iterations < constants.MaxOptimizerIterations {
		mid := (lower + upper) / 2
		achieved, err := r.evaluate(mid)
		if err != nil {
			return nil, err
		}
		if achieved >= target {
			upper = mid
		} else {
			lower = mid
		}
		iterations++
	}

	achieved, err := r.evaluate(upper)
	if err != nil {
		return nil, err
	}

	result.Rate = upper
	result.AchievedResolution = achieved
	result.Iterations = iterations
	result.Converged = true
	r.conf.Instrument.ColumnHeatingRate = upper

	r.logger.Info("heating rate optimized",
		zap.String("op", "optimizer.Run"),
		zap.Float64("originalRate", original),
		zap.Float64("rate", upper),
		zap.Float64("targetResolution", target),
		zap.Float64("achievedResolution", achieved),
		zap.Int("iterations", iterations),
	)

	return result, nil
}

// evaluate computes the minimum pairwise resolution at the given heating
// rate without synthesizing a signal trace.
func (r *Runner) evaluate(rate float64) (float64, error) {
	trial := *r.conf
	trial.Instrument.ColumnHeatingRate = rate

	inst, err := trial.BuildInstrument()
	if err != nil {
		return 0, err
	}

	peaks := make([]simulate.Peak, 0, len(r.compounds))
	for i, compound := range r.compounds {
		peak, err := simulate.ModelPeak(i, compound, inst)
		if err != nil {
			return 0, err
		}
		peaks = append(peaks, peak)
	}
	simulate.AnnotateResolutions(peaks)

	min := 0.0
	found := false
	for _, peak := range peaks {
		if peak.Resolution == nil {
			continue
		}
		if !found || *peak.Resolution < min {
			min = *peak.Resolution
			found = true
		}
	}
	if !found {
		return 0, fmt.Errorf("no pairwise resolutions computed")
	}
	return min, nil
}
