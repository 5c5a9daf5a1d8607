package simulate

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"go.uber.org/zap"
)

func referenceCompounds() []Compound {
	return []Compound{
		{Name: "Acetone", BoilingPointC: 56, IonizationEfficiency: 0.70, PolarityFactor: 0.2},
		{Name: "Methanol", BoilingPointC: 65, IonizationEfficiency: 0.60, PolarityFactor: 0.3},
		{Name: "Ethanol", BoilingPointC: 78, IonizationEfficiency: 0.65, PolarityFactor: 0.5},
	}
}

func TestSimulateTraditionalReferenceScenario(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	inst := Traditional{ColumnSettings: referenceColumn()}

	run, err := Simulate(logger, referenceCompounds(), inst, NewDefaultTimeAxis())
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}

	if run.Mode != ModeTraditional {
		t.Errorf("mode = %v, expected %v", run.Mode, ModeTraditional)
	}
	if len(run.Peaks) != 3 {
		t.Fatalf("peak count = %d, expected 3", len(run.Peaks))
	}

	// Records preserve input order.
	for i, name := range []string{"Acetone", "Methanol", "Ethanol"} {
		if run.Peaks[i].Compound != name {
			t.Errorf("peak %d compound = %q, expected %q", i, run.Peaks[i].Compound, name)
		}
	}

	// First record has no predecessor; all later resolutions are defined
	// and non-negative.
	if run.Peaks[0].Resolution != nil {
		t.Errorf("first peak resolution = %v, expected nil", *run.Peaks[0].Resolution)
	}
	for i := 1; i < len(run.Peaks); i++ {
		if run.Peaks[i].Resolution == nil {
			t.Fatalf("peak %d resolution undefined", i)
		}
		if *run.Peaks[i].Resolution < 0 {
			t.Errorf("peak %d resolution = %v, expected >= 0", i, *run.Peaks[i].Resolution)
		}
	}

	// Methanol vs Acetone: 2*|4.95-2.76|/(0.1724+0.176) ≈ 12.57
	if math.Abs(*run.Peaks[1].Resolution-12.5717) > 0.001 {
		t.Errorf("methanol resolution = %v, expected ≈12.5717", *run.Peaks[1].Resolution)
	}

	// Traditional mode: neutral channel identically zero.
	for i, peak := range run.Peaks {
		if peak.NeutralIntensity != 0 {
			t.Errorf("peak %d neutral intensity = %v, expected 0", i, peak.NeutralIntensity)
		}
	}
	for k, v := range run.Trace.Neutral {
		if v != 0 {
			t.Fatalf("neutral signal at sample %d = %v, expected 0", k, v)
		}
	}
}

func TestSimulateIsDeterministic(t *testing.T) {
	inst := Integrated{ColumnSettings: referenceColumn(), HotChannelTemp: 250, PrepOvenTemp: 220, PrepOvenPressure: 8}
	axis := NewDefaultTimeAxis()

	first, err := Simulate(nil, referenceCompounds(), inst, axis)
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	second, err := Simulate(nil, referenceCompounds(), inst, axis)
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different runs")
	}
}

func TestSimulateRunsAreIndependent(t *testing.T) {
	inst := Traditional{ColumnSettings: referenceColumn()}
	axis := NewDefaultTimeAxis()

	first, err := Simulate(nil, referenceCompounds(), inst, axis)
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	snapshot := make([]float64, len(first.Trace.Ionic))
	copy(snapshot, first.Trace.Ionic)

	// A second run must not touch the first run's trace.
	if _, err := Simulate(nil, referenceCompounds(), inst, axis); err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	if !reflect.DeepEqual(snapshot, first.Trace.Ionic) {
		t.Error("second run mutated the first run's trace")
	}
}

func TestSimulateEmptyCompoundList(t *testing.T) {
	inst := Traditional{ColumnSettings: referenceColumn()}
	_, err := Simulate(nil, nil, inst, NewDefaultTimeAxis())
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSimulateEmptyTimeAxis(t *testing.T) {
	inst := Traditional{ColumnSettings: referenceColumn()}
	_, err := Simulate(nil, referenceCompounds(), inst, nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSimulateFailsWholeRunOnInvalidParameter(t *testing.T) {
	column := referenceColumn()
	column.HeatingRate = 0
	inst := Traditional{ColumnSettings: column}

	run, err := Simulate(nil, referenceCompounds(), inst, NewDefaultTimeAxis())
	if err == nil {
		t.Fatal("expected error for zero heating rate")
	}
	var paramErr *InvalidParameterError
	if !errors.As(err, &paramErr) {
		t.Fatalf("expected InvalidParameterError, got %T", err)
	}
	if run != nil {
		t.Error("expected no partial run on failure")
	}
}

func TestMinResolution(t *testing.T) {
	inst := Traditional{ColumnSettings: referenceColumn()}

	run, err := Simulate(nil, referenceCompounds(), inst, NewDefaultTimeAxis())
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	min, ok := run.MinResolution()
	if !ok {
		t.Fatal("expected a defined minimum resolution")
	}
	if math.Abs(min-12.5717) > 0.001 {
		t.Errorf("minimum resolution = %v, expected ≈12.5717", min)
	}

	single, err := Simulate(nil, referenceCompounds()[:1], inst, NewDefaultTimeAxis())
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	if _, ok := single.MinResolution(); ok {
		t.Error("single-compound run should have no defined resolution")
	}
}
