package units

import (
	"errors"
	"fmt"
)

// ErrUnsupportedUnit is the sentinel matched by every UnsupportedUnitError.
var ErrUnsupportedUnit = errors.New("unsupported unit")

// UnsupportedUnitError reports a unit value outside the known set for a dimension.
type UnsupportedUnitError struct {
	Dimension string
	Unit      string
}

func (e *UnsupportedUnitError) Error() string {
	return fmt.Sprintf("unsupported %s unit: %q", e.Dimension, e.Unit)
}

// Is lets errors.Is(err, ErrUnsupportedUnit) match.
func (e *UnsupportedUnitError) Is(target error) bool {
	return target == ErrUnsupportedUnit
}
