package capacity

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/beggy/beggy-backend/pkg/enums"
	pkgerrors "github.com/beggy/beggy-backend/pkg/errors"
	"github.com/beggy/beggy-backend/pkg/units"
)

// ItemMeasure is a single item's weight and volume in the units it was recorded in.
type ItemMeasure struct {
	Weight     float64
	WeightUnit enums.WeightUnit
	Volume     float64
	VolumeUnit enums.VolumeUnit
}

// Totals is the normalized sum of a set of items.
type Totals struct {
	WeightKg float64
	VolumeL  float64
	Count    int
}

// Aggregate converts every item into kilograms and liters and sums them.
// The first item with an unknown unit or a non-finite measure aborts the aggregation,
// as does a total that overflows float64.
func Aggregate(items []ItemMeasure) (Totals, error) {
	weight := decimal.Zero
	volume := decimal.Zero
	for i, item := range items {
		kg, err := units.ConvertToKilogram(item.Weight, item.WeightUnit)
		if err != nil {
			return Totals{}, fmt.Errorf("item %d: %w", i, err)
		}
		liters, err := units.ConvertToLiter(item.Volume, item.VolumeUnit)
		if err != nil {
			return Totals{}, fmt.Errorf("item %d: %w", i, err)
		}
		if !isFinite(kg) || !isFinite(liters) {
			return Totals{}, pkgerrors.Newf(pkgerrors.CodeValidation, "item %d: weight and volume must be finite", i)
		}
		weight = weight.Add(decimal.NewFromFloat(kg))
		volume = volume.Add(decimal.NewFromFloat(liters))
	}

	totals := Totals{
		WeightKg: weight.InexactFloat64(),
		VolumeL:  volume.InexactFloat64(),
		Count:    len(items),
	}
	if !isFinite(totals.WeightKg) || !isFinite(totals.VolumeL) {
		return Totals{}, pkgerrors.New(pkgerrors.CodeValidation, "total weight or volume is out of range").
			WithDetails(map[string]any{"items": len(items)})
	}
	return totals, nil
}

// Measure builds Measurements for a container with the given limits holding items.
func Measure(maxWeight, maxCapacity float64, items []ItemMeasure) (Measurements, error) {
	if !isFinite(maxWeight) || !isFinite(maxCapacity) {
		return Measurements{}, pkgerrors.New(pkgerrors.CodeValidation, "limits must be finite")
	}
	totals, err := Aggregate(items)
	if err != nil {
		return Measurements{}, err
	}
	return Measurements{
		MaxWeight:       maxWeight,
		MaxCapacity:     maxCapacity,
		CurrentWeight:   totals.WeightKg,
		CurrentCapacity: totals.VolumeL,
		ItemCount:       totals.Count,
	}, nil
}
