package enums

import "fmt"

// WeightUnit identifies the unit an item's weight was recorded in.
type WeightUnit string

const (
	WeightUnitKilogram WeightUnit = "KILOGRAM"
	WeightUnitGram     WeightUnit = "GRAM"
	WeightUnitPound    WeightUnit = "POUND"
	WeightUnitOunce    WeightUnit = "OUNCE"
)

var validWeightUnits = []WeightUnit{
	WeightUnitKilogram,
	WeightUnitGram,
	WeightUnitPound,
	WeightUnitOunce,
}

// String implements fmt.Stringer.
func (u WeightUnit) String() string {
	return string(u)
}

// IsValid reports whether the value is a known WeightUnit.
func (u WeightUnit) IsValid() bool {
	for _, candidate := range validWeightUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// WeightUnits returns the supported weight units in declaration order.
func WeightUnits() []WeightUnit {
	return append([]WeightUnit(nil), validWeightUnits...)
}

// ParseWeightUnit converts raw input into a WeightUnit.
func ParseWeightUnit(value string) (WeightUnit, error) {
	for _, candidate := range validWeightUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid weight unit %q", value)
}
