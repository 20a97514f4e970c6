// Package units normalizes item weights to kilograms and volumes to liters.
package units

import "github.com/beggy/beggy-backend/pkg/enums"

const (
	DimensionWeight = "weight"
	DimensionVolume = "volume"
)

const (
	GramsPerKilogram    = 1000.0
	KilogramsPerPound   = 0.453592
	KilogramsPerOunce   = 0.0283495
	MillilitersPerLiter = 1000.0
	CubicCmPerLiter     = 1000.0
	LitersPerCubicInch  = 0.0163871
)

// ConvertToKilogram converts weight expressed in unit into kilograms.
// The input is not validated for sign or finiteness.
func ConvertToKilogram(weight float64, unit enums.WeightUnit) (float64, error) {
	switch unit {
	case enums.WeightUnitKilogram:
		return weight, nil
	case enums.WeightUnitGram:
		return weight / GramsPerKilogram, nil
	case enums.WeightUnitPound:
		return weight * KilogramsPerPound, nil
	case enums.WeightUnitOunce:
		return weight * KilogramsPerOunce, nil
	default:
		return 0, &UnsupportedUnitError{Dimension: DimensionWeight, Unit: string(unit)}
	}
}

// ConvertToLiter converts volume expressed in unit into liters.
func ConvertToLiter(volume float64, unit enums.VolumeUnit) (float64, error) {
	switch unit {
	case enums.VolumeUnitLiter:
		return volume, nil
	case enums.VolumeUnitMilliliter:
		return volume / MillilitersPerLiter, nil
	case enums.VolumeUnitCubicCm:
		return volume / CubicCmPerLiter, nil
	case enums.VolumeUnitCubicInch:
		return volume * LitersPerCubicInch, nil
	default:
		return 0, &UnsupportedUnitError{Dimension: DimensionVolume, Unit: string(unit)}
	}
}
