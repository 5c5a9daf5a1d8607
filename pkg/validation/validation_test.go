package validation

import (
	"errors"
	"testing"

	"github.com/gc-tools/chromsim/internal/simulate"
)

func validColumn() simulate.ColumnSettings {
	return simulate.ColumnSettings{
		HeatingRate:           5,
		LengthFactor:          1,
		StationaryPhaseFactor: 1,
		DetectorSensitivity:   1,
	}
}

func TestValidateColumnSettings(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*simulate.ColumnSettings)
		wantParam string
	}{
		{"Valid settings", func(c *simulate.ColumnSettings) {}, ""},
		{"Zero heating rate", func(c *simulate.ColumnSettings) { c.HeatingRate = 0 }, "columnHeatingRate"},
		{"Negative length factor", func(c *simulate.ColumnSettings) { c.LengthFactor = -1 }, "columnLengthFactor"},
		{"Zero stationary phase", func(c *simulate.ColumnSettings) { c.StationaryPhaseFactor = 0 }, "stationaryPhaseFactor"},
		{"Zero sensitivity", func(c *simulate.ColumnSettings) { c.DetectorSensitivity = 0 }, "detectorSensitivity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := validColumn()
			tt.mutate(&col)
			err := ValidateColumnSettings(col)
			if tt.wantParam == "" {
				if err != nil {
					t.Errorf("ValidateColumnSettings() error = %v, expected nil", err)
				}
				return
			}
			var paramErr *simulate.InvalidParameterError
			if !errors.As(err, &paramErr) {
				t.Fatalf("expected InvalidParameterError, got %v", err)
			}
			if paramErr.Param != tt.wantParam {
				t.Errorf("error param = %q, expected %q", paramErr.Param, tt.wantParam)
			}
		})
	}
}

func TestValidateInstrumentHotFactor(t *testing.T) {
	bad := simulate.Integrated{ColumnSettings: validColumn(), HotChannelTemp: -500}
	err := ValidateInstrument(bad)
	var paramErr *simulate.InvalidParameterError
	if !errors.As(err, &paramErr) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
	if paramErr.Param != "hotFactor" {
		t.Errorf("error param = %q, expected hotFactor", paramErr.Param)
	}

	good := simulate.Integrated{ColumnSettings: validColumn(), HotChannelTemp: 250}
	if err := ValidateInstrument(good); err != nil {
		t.Errorf("ValidateInstrument() error = %v, expected nil", err)
	}
}

func TestValidateCompound(t *testing.T) {
	tests := []struct {
		name     string
		compound simulate.Compound
		wantErr  bool
	}{
		{"Valid compound", simulate.Compound{Name: "Acetone", BoilingPointC: 56, IonizationEfficiency: 0.7}, false},
		{"Empty name", simulate.Compound{BoilingPointC: 56, IonizationEfficiency: 0.7}, true},
		{"Non-positive boiling point", simulate.Compound{Name: "X", BoilingPointC: 0, IonizationEfficiency: 0.7}, true},
		{"Ionization above one", simulate.Compound{Name: "X", BoilingPointC: 56, IonizationEfficiency: 1.2}, true},
		{"Negative ionization", simulate.Compound{Name: "X", BoilingPointC: 56, IonizationEfficiency: -0.1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCompound(tt.compound)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCompound() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCompoundWarnings(t *testing.T) {
	ok := simulate.Compound{Name: "Acetone", BoilingPointC: 56, IonizationEfficiency: 0.7, PolarityFactor: 0.2}
	if warnings := CompoundWarnings(ok); len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}

	odd := simulate.Compound{Name: "Weird", BoilingPointC: 56, IonizationEfficiency: 0.7, PolarityFactor: 1.8}
	if warnings := CompoundWarnings(odd); len(warnings) != 1 {
		t.Errorf("expected one polarity warning, got %v", warnings)
	}
}

func TestInstrumentWarnings(t *testing.T) {
	// hotFactor = 1 + (80-150)/400 + 0.01 = 0.835: legal, no warning.
	mild := simulate.Integrated{ColumnSettings: validColumn(), HotChannelTemp: 80}
	if warnings := InstrumentWarnings(mild); len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}

	// hotFactor = 1 + (-160-150)/400 + 0.01 = 0.235: legal but suspect.
	cold := simulate.Integrated{ColumnSettings: validColumn(), HotChannelTemp: -160}
	if warnings := InstrumentWarnings(cold); len(warnings) != 1 {
		t.Errorf("expected one hot factor warning, got %v", warnings)
	}

	trad := simulate.Traditional{ColumnSettings: validColumn()}
	if warnings := InstrumentWarnings(trad); len(warnings) != 0 {
		t.Errorf("expected no warnings for traditional mode, got %v", warnings)
	}
}

func TestValidateOutputFormat(t *testing.T) {
	for _, format := range []string{"pretty", "csv"} {
		if err := ValidateOutputFormat(format); err != nil {
			t.Errorf("ValidateOutputFormat(%q) error = %v", format, err)
		}
	}
	if err := ValidateOutputFormat("xml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
