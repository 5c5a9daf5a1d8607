package simulate

// Peak model constants. The index term enforces a deterministic minimum
// spacing between nominal compound positions; the remaining scales map
// boiling point, column geometry, and polarity onto retention and width.
const (
	retentionBaseMinutes    = 2.0
	retentionSpacingMinutes = 2.0
	retentionBoilingScale   = 100.0
	polarityShiftMinutes    = 1.0

	baseWidthMinutes  = 0.15
	widthBoilingScale = 500.0

	hotFactorRefTempC   = 150.0
	hotFactorTempScale  = 400.0
	hotFactorRateScale  = 50.0
	hotFactorRateWeight = 0.1
)

// ModelPeak computes retention time, final width, and the two intensity
// channels for the compound at input index i under the given instrument.
// The returned peak carries no resolution value; that is annotated in a
// second pass once all peaks are known.
func ModelPeak(i int, c Compound, inst Instrument) (Peak, error) {
	col := inst.Column()
	if col.HeatingRate <= 0 {
		return Peak{}, &InvalidParameterError{Compound: c.Name, Param: "columnHeatingRate", Value: col.HeatingRate}
	}

	retention := retentionBaseMinutes +
		retentionSpacingMinutes*float64(i) +
		(c.BoilingPointC/retentionBoilingScale)*col.StationaryPhaseFactor*col.LengthFactor +
		c.PolarityFactor*polarityShiftMinutes

	width := baseWidthMinutes + (c.BoilingPointC/widthBoilingScale)*(1/col.HeatingRate)*col.LengthFactor

	peak := Peak{
		Compound:      c.Name,
		RetentionTime: retention,
	}

	switch inst := inst.(type) {
	case Integrated:
		hot := inst.HotFactor()
		if hot <= 0 {
			return Peak{}, &InvalidParameterError{Compound: c.Name, Param: "hotFactor", Value: hot}
		}
		// Focusing narrows the peak and boosts both channels.
		peak.Width = width / hot
		peak.IonicIntensity = c.IonizationEfficiency * hot * col.DetectorSensitivity
		peak.NeutralIntensity = (1 - c.IonizationEfficiency) * hot * col.DetectorSensitivity
	case Traditional:
		// Traditional ionization detects no neutral fraction.
		peak.Width = width
		peak.IonicIntensity = c.IonizationEfficiency * col.DetectorSensitivity
		peak.NeutralIntensity = 0
	default:
		return Peak{}, &InvalidParameterError{Compound: c.Name, Param: "instrument", Value: 0}
	}

	if peak.Width <= 0 {
		return Peak{}, &InvalidParameterError{Compound: c.Name, Param: "width", Value: peak.Width}
	}

	return peak, nil
}
