// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/gc-tools/chromsim/pkg/constants"
)

// Round2 rounds a value to two decimals, the reporting precision for
// retention times and resolution values.
func Round2(val float64) float64 {
	return math.Round(val*constants.TimePrecision) / constants.TimePrecision
}

// Round3 rounds a value to three decimals, the reporting precision for
// peak widths and intensities.
func Round3(val float64) float64 {
	return math.Round(val*constants.IntensityPrecision) / constants.IntensityPrecision
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Clamp restricts value to the range [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
