package simulate

import (
	"errors"
	"fmt"
)

// ErrInvalidInput indicates the run was rejected before any peak computation:
// an empty compound list, an empty time axis, or mismatched parallel input
// sequences at the parsing layer.
var ErrInvalidInput = errors.New("invalid input")

// InvalidParameterError indicates a settings or compound value that would
// drive the model into an undefined region (zero heating rate, non-positive
// hot factor or width). The run fails as a whole rather than emitting NaN.
type InvalidParameterError struct {
	Compound string
	Param    string
	Value    float64
}

func (e *InvalidParameterError) Error() string {
	if e.Compound == "" {
		return fmt.Sprintf("invalid parameter %s=%g", e.Param, e.Value)
	}
	return fmt.Sprintf("invalid parameter %s=%g for compound %s", e.Param, e.Value, e.Compound)
}
