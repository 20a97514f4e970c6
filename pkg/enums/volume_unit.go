package enums

import "fmt"

// VolumeUnit identifies the unit an item's volume was recorded in.
type VolumeUnit string

const (
	VolumeUnitLiter      VolumeUnit = "LITER"
	VolumeUnitMilliliter VolumeUnit = "ML"
	VolumeUnitCubicCm    VolumeUnit = "CU_CM"
	VolumeUnitCubicInch  VolumeUnit = "CU_IN"
)

var validVolumeUnits = []VolumeUnit{
	VolumeUnitLiter,
	VolumeUnitMilliliter,
	VolumeUnitCubicCm,
	VolumeUnitCubicInch,
}

// String implements fmt.Stringer.
func (u VolumeUnit) String() string {
	return string(u)
}

// IsValid reports whether the value is a known VolumeUnit.
func (u VolumeUnit) IsValid() bool {
	for _, candidate := range validVolumeUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// VolumeUnits returns the supported volume units in declaration order.
func VolumeUnits() []VolumeUnit {
	return append([]VolumeUnit(nil), validVolumeUnits...)
}

// ParseVolumeUnit converts raw input into a VolumeUnit.
func ParseVolumeUnit(value string) (VolumeUnit, error) {
	for _, candidate := range validVolumeUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid volume unit %q", value)
}
