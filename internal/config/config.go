// Package config defines the data structures related to configuration and
// includes functions for loading and converting the config into simulation
// inputs.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/gc-tools/chromsim/internal/simulate"
	"github.com/gc-tools/chromsim/pkg/constants"
	"github.com/gc-tools/chromsim/pkg/parse"
	"github.com/gc-tools/chromsim/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for chromsim.
type Configuration struct {
	Mode       string
	Compounds  []Compound
	Instrument InstrumentConfig
	Axis       AxisConfig    `yaml:"axis,omitempty"`
	Logging    LoggingConfig `yaml:"logging,omitempty"`
	Output     OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Compound is one row of the compound table.
type Compound struct {
	Name                 string
	BoilingPointC        float64
	IonizationEfficiency float64
	PolarityFactor       float64
}

// InstrumentConfig flattens both modes' settings; Instrument() picks the
// fields the configured mode actually uses.
type InstrumentConfig struct {
	ColumnHeatingRate     float64
	ColumnLengthFactor    float64
	StationaryPhaseFactor float64
	DetectorSensitivity   float64

	// Integrated mode only.
	PrepOvenTemp     float64 `yaml:"prepOvenTemp,omitempty"`
	PrepOvenPressure float64 `yaml:"prepOvenPressure,omitempty"`
	HotChannelTemp   float64 `yaml:"hotChannelTemp,omitempty"`
}

// AxisConfig controls the simulated time window.
type AxisConfig struct {
	EndMinutes float64 `yaml:"endMinutes,omitempty"`
	Samples    int     `yaml:"samples,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return unmarshalConfiguration(v)
}

// LoadConfigurationFromReader loads the YAML configuration from an in-memory
// source, used by the HTTP API.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return unmarshalConfiguration(v)
}

func unmarshalConfiguration(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// SimulationMode parses the configured mode string.
func (c *Configuration) SimulationMode() (simulate.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(c.Mode)) {
	case "integrated":
		return simulate.ModeIntegrated, nil
	case "traditional", "":
		// Traditional is the default when unspecified.
		return simulate.ModeTraditional, nil
	}
	return "", fmt.Errorf("invalid mode: %s", c.Mode)
}

// BuildInstrument converts the flat instrument block into the typed variant
// for the configured mode and validates it.
func (c *Configuration) BuildInstrument() (simulate.Instrument, error) {
	mode, err := c.SimulationMode()
	if err != nil {
		return nil, err
	}

	column := simulate.ColumnSettings{
		HeatingRate:           c.Instrument.ColumnHeatingRate,
		LengthFactor:          c.Instrument.ColumnLengthFactor,
		StationaryPhaseFactor: c.Instrument.StationaryPhaseFactor,
		DetectorSensitivity:   c.Instrument.DetectorSensitivity,
	}

	var inst simulate.Instrument
	if mode == simulate.ModeIntegrated {
		inst = simulate.Integrated{
			ColumnSettings:   column,
			PrepOvenTemp:     c.Instrument.PrepOvenTemp,
			PrepOvenPressure: c.Instrument.PrepOvenPressure,
			HotChannelTemp:   c.Instrument.HotChannelTemp,
		}
	} else {
		inst = simulate.Traditional{ColumnSettings: column}
	}

	if err := validation.ValidateInstrument(inst); err != nil {
		return nil, err
	}
	return inst, nil
}

// CompoundList converts and validates the configured compound rows.
func (c *Configuration) CompoundList() ([]simulate.Compound, error) {
	if len(c.Compounds) == 0 {
		return nil, fmt.Errorf("%w: compound list is empty", simulate.ErrInvalidInput)
	}

	compounds := make([]simulate.Compound, len(c.Compounds))
	for i, row := range c.Compounds {
		compound := simulate.Compound{
			Name:                 row.Name,
			BoilingPointC:        row.BoilingPointC,
			IonizationEfficiency: row.IonizationEfficiency,
			PolarityFactor:       row.PolarityFactor,
		}
		if err := validation.ValidateCompound(compound); err != nil {
			return nil, err
		}
		compounds[i] = compound
	}
	return compounds, nil
}

// OverrideCompounds replaces the configured compound table with rows parsed
// from four parallel comma-separated lists, the same free-text entry the
// instrument front panel accepts. The configured table is left untouched when
// parsing fails.
func (c *Configuration) OverrideCompounds(names, boilingPoints, ionizations, polarities string) error {
	compounds, err := parse.Compounds(names, boilingPoints, ionizations, polarities)
	if err != nil {
		return err
	}

	rows := make([]Compound, len(compounds))
	for i, compound := range compounds {
		rows[i] = Compound{
			Name:                 compound.Name,
			BoilingPointC:        compound.BoilingPointC,
			IonizationEfficiency: compound.IonizationEfficiency,
			PolarityFactor:       compound.PolarityFactor,
		}
	}
	c.Compounds = rows
	return nil
}

// TimeAxis builds the sampling axis, falling back to the reference sizing
// when the axis block is absent.
func (c *Configuration) TimeAxis() []float64 {
	end := c.Axis.EndMinutes
	if end <= 0 {
		end = constants.DefaultTimeAxisEndMinutes
	}
	samples := c.Axis.Samples
	if samples < 2 {
		samples = constants.DefaultTimeAxisSamples
	}
	return simulate.NewTimeAxis(end, samples)
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings for legal-but-suspect values.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	for _, row := range c.Compounds {
		warnings = append(warnings, validation.CompoundWarnings(simulate.Compound{
			Name:           row.Name,
			BoilingPointC:  row.BoilingPointC,
			PolarityFactor: row.PolarityFactor,
		})...)
	}

	if inst, err := c.BuildInstrument(); err == nil {
		warnings = append(warnings, validation.InstrumentWarnings(inst)...)
	}

	if c.Axis.Samples != 0 && c.Axis.Samples < 100 {
		warnings = append(warnings, fmt.Sprintf("Time axis has only %d samples; narrow peaks may alias", c.Axis.Samples))
	}

	return warnings
}
