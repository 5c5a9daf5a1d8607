// Package constants provides shared constants for the chromsim application.
package constants

// Time axis defaults. The sample count is a quality knob, not a correctness
// constraint; the signal synthesizer works over any uniform axis.
const (
	// DefaultTimeAxisEndMinutes is the end of the simulated chromatogram window.
	DefaultTimeAxisEndMinutes = 20.0

	// DefaultTimeAxisSamples is the number of uniform samples over the window.
	DefaultTimeAxisSamples = 1200
)

// Rounding precision for reported values.
const (
	// TimePrecision is the precision for retention time and resolution
	// rounding (2 decimal places).
	TimePrecision = 100

	// IntensityPrecision is the precision for width and intensity rounding
	// (3 decimal places).
	IntensityPrecision = 1000
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request size for
	// simulation payloads (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)

// Optimizer bounds for the column heating rate search (°C/min).
const (
	// MinHeatingRate is the lowest heating rate the optimizer will consider.
	MinHeatingRate = 0.5

	// MaxHeatingRate is the highest heating rate the optimizer will consider.
	MaxHeatingRate = 100.0

	// HeatingRateTolerance is the bisection convergence tolerance.
	HeatingRateTolerance = 0.001

	// MaxOptimizerIterations bounds the bisection loop.
	MaxOptimizerIterations = 60
)
