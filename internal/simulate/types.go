// Package simulate defines the data structures for a chromatographic
// simulation and includes functions for computing peak tables and detector
// signal traces.
package simulate

// Mode identifies which instrument configuration a run models.
type Mode string

const (
	// ModeIntegrated models the integrated sample-prep/focusing system.
	ModeIntegrated Mode = "integrated"

	// ModeTraditional models a traditional GC/MS system.
	ModeTraditional Mode = "traditional"
)

// Compound holds the physicochemical inputs for one compound. Values are
// immutable once constructed; input order is significant because it seeds the
// retention-time baseline.
type Compound struct {
	Name                 string
	BoilingPointC        float64
	IonizationEfficiency float64 // fraction in [0,1]
	PolarityFactor       float64 // expected [0,1], not enforced
}

// ColumnSettings holds the instrument settings shared by both modes.
// All fields must be positive.
type ColumnSettings struct {
	HeatingRate           float64 // °C/min
	LengthFactor          float64
	StationaryPhaseFactor float64
	DetectorSensitivity   float64
}

// Instrument is the mode-dependent settings bundle. Exactly two
// implementations exist, Traditional and Integrated; the hot-channel fields
// live only on Integrated so a traditional run cannot carry them.
type Instrument interface {
	Mode() Mode
	Column() ColumnSettings
}

// Traditional is the settings bundle for a traditional GC/MS run.
type Traditional struct {
	ColumnSettings ColumnSettings
}

// Mode reports ModeTraditional.
func (Traditional) Mode() Mode { return ModeTraditional }

// Column returns the shared column settings.
func (t Traditional) Column() ColumnSettings { return t.ColumnSettings }

// Integrated is the settings bundle for an integrated sample-prep/focusing
// run. PrepOvenTemp and PrepOvenPressure are recorded for display context
// only and do not feed the peak-shape formulas.
type Integrated struct {
	ColumnSettings   ColumnSettings
	PrepOvenTemp     float64
	PrepOvenPressure float64
	HotChannelTemp   float64
}

// Mode reports ModeIntegrated.
func (Integrated) Mode() Mode { return ModeIntegrated }

// Column returns the shared column settings.
func (ig Integrated) Column() ColumnSettings { return ig.ColumnSettings }

// HotFactor derives the focusing/transfer scalar from the hot channel
// temperature and the heating rate. It narrows peaks and boosts both
// intensity channels. The value is only meaningful when positive; ModelPeak
// rejects non-positive values.
func (ig Integrated) HotFactor() float64 {
	return 1 +
		(ig.HotChannelTemp-hotFactorRefTempC)/hotFactorTempScale +
		(ig.ColumnSettings.HeatingRate/hotFactorRateScale)*hotFactorRateWeight
}

// Peak is the derived record for one compound. Resolution is nil for the
// first peak of a run (no predecessor).
type Peak struct {
	Compound         string
	RetentionTime    float64 // minutes
	Width            float64 // minutes, > 0
	IonicIntensity   float64
	NeutralIntensity float64 // always 0 in traditional mode
	Resolution       *float64
}

// Trace holds the two accumulated detector channels, parallel to the run's
// time axis. Neutral is identically zero in traditional mode.
type Trace struct {
	Ionic   []float64
	Neutral []float64
}

// Run is the full output bundle of one simulation: a pure function of
// (compounds, instrument, time axis) with no hidden state.
type Run struct {
	Mode       Mode
	Instrument Instrument
	TimeAxis   []float64
	Trace      Trace
	Peaks      []Peak
}
