// Package validation provides settings and compound validation utilities.
// Hard errors cover values the peak model cannot accept at all; warnings
// cover legal-but-suspect values the caller should surface to the user.
package validation

import (
	"fmt"

	"github.com/gc-tools/chromsim/internal/simulate"
)

// hotFactorWarnThreshold flags integrated settings whose focusing factor is
// so small the simulated peaks become implausibly tall and narrow.
const hotFactorWarnThreshold = 0.25

// ValidateColumnSettings rejects settings that would drive the peak model
// into an undefined region. All four column parameters must be positive.
func ValidateColumnSettings(col simulate.ColumnSettings) error {
	checks := []struct {
		name  string
		value float64
	}{
		{"columnHeatingRate", col.HeatingRate},
		{"columnLengthFactor", col.LengthFactor},
		{"stationaryPhaseFactor", col.StationaryPhaseFactor},
		{"detectorSensitivity", col.DetectorSensitivity},
	}
	for _, check := range checks {
		if check.value <= 0 {
			return &simulate.InvalidParameterError{Param: check.name, Value: check.value}
		}
	}
	return nil
}

// ValidateInstrument applies the column checks plus mode-specific ones.
func ValidateInstrument(inst simulate.Instrument) error {
	if err := ValidateColumnSettings(inst.Column()); err != nil {
		return err
	}
	if ig, ok := inst.(simulate.Integrated); ok {
		if hot := ig.HotFactor(); hot <= 0 {
			return &simulate.InvalidParameterError{Param: "hotFactor", Value: hot}
		}
	}
	return nil
}

// ValidateCompound rejects compound inputs the model's domain excludes.
func ValidateCompound(c simulate.Compound) error {
	if c.Name == "" {
		return fmt.Errorf("%w: compound name is empty", simulate.ErrInvalidInput)
	}
	if c.BoilingPointC <= 0 {
		return &simulate.InvalidParameterError{Compound: c.Name, Param: "boilingPointC", Value: c.BoilingPointC}
	}
	if c.IonizationEfficiency < 0 || c.IonizationEfficiency > 1 {
		return &simulate.InvalidParameterError{Compound: c.Name, Param: "ionizationEfficiency", Value: c.IonizationEfficiency}
	}
	return nil
}

// CompoundWarnings returns human-readable warnings for legal-but-suspect
// compound values. Polarity outside [0,1] is permitted but shifts retention
// beyond the usual envelope.
func CompoundWarnings(c simulate.Compound) []string {
	var warnings []string
	if c.PolarityFactor < 0 || c.PolarityFactor > 1 {
		warnings = append(warnings, fmt.Sprintf("Compound '%s' has polarity factor %.2f outside the expected [0,1] range",
			c.Name, c.PolarityFactor))
	}
	return warnings
}

// InstrumentWarnings returns warnings for instrument settings that are valid
// but likely misconfigured.
func InstrumentWarnings(inst simulate.Instrument) []string {
	var warnings []string
	if ig, ok := inst.(simulate.Integrated); ok {
		if hot := ig.HotFactor(); hot > 0 && hot < hotFactorWarnThreshold {
			warnings = append(warnings, fmt.Sprintf("Hot channel temperature %.0f°C yields focusing factor %.3f; peaks will be extremely narrow",
				ig.HotChannelTemp, hot))
		}
	}
	return warnings
}

// ValidateOutputFormat checks that the requested output format is supported.
func ValidateOutputFormat(format string) error {
	switch format {
	case "pretty", "csv":
		return nil
	}
	return fmt.Errorf("invalid output format: %s", format)
}
