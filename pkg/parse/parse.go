// Package parse turns raw comma-separated instrument-form text into typed
// compound inputs. It owns the length-equality and non-emptiness checks that
// guard the simulation: once a []simulate.Compound exists, the parallel
// sequences can no longer disagree.
package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gc-tools/chromsim/internal/simulate"
)

// Compounds parses the four parallel comma-separated lists (names, boiling
// points in °C, ionization efficiencies as fractions, polarity factors) into
// compound inputs, preserving input order. All four lists must have the same
// non-zero length.
func Compounds(names, boilingPoints, ionizations, polarities string) ([]simulate.Compound, error) {
	nameList := splitList(names)
	if len(nameList) == 0 {
		return nil, fmt.Errorf("%w: compound list is empty", simulate.ErrInvalidInput)
	}
	for i, name := range nameList {
		if name == "" {
			return nil, fmt.Errorf("%w: compound name at position %d is empty", simulate.ErrInvalidInput, i+1)
		}
	}

	bpList, err := floatList("boiling points", boilingPoints)
	if err != nil {
		return nil, err
	}
	ionList, err := floatList("ionization efficiencies", ionizations)
	if err != nil {
		return nil, err
	}
	polList, err := floatList("polarity factors", polarities)
	if err != nil {
		return nil, err
	}

	if len(bpList) != len(nameList) || len(ionList) != len(nameList) || len(polList) != len(nameList) {
		return nil, fmt.Errorf("%w: %d names but %d boiling points, %d ionization efficiencies, %d polarity factors",
			simulate.ErrInvalidInput, len(nameList), len(bpList), len(ionList), len(polList))
	}

	compounds := make([]simulate.Compound, len(nameList))
	for i := range nameList {
		compounds[i] = simulate.Compound{
			Name:                 nameList[i],
			BoilingPointC:        bpList[i],
			IonizationEfficiency: ionList[i],
			PolarityFactor:       polList[i],
		}
	}
	return compounds, nil
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func floatList(field, raw string) ([]float64, error) {
	parts := splitList(raw)
	values := make([]float64, len(parts))
	for i, part := range parts {
		value, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s entry %d (%q) is not numeric", simulate.ErrInvalidInput, field, i+1, part)
		}
		values[i] = value
	}
	return values, nil
}
