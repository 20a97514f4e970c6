// Package capacity classifies a container's load against its weight and volume limits.
package capacity

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/beggy/beggy-backend/pkg/enums"
)

// FullThreshold is the load ratio at or above which a dimension counts as full.
const FullThreshold = 0.95

var (
	fullThreshold = decimal.NewFromFloat(FullThreshold)
	hundred       = decimal.NewFromInt(100)
)

// CheckIsOverweight reports whether currentWeight strictly exceeds a positive maxWeight.
// A non-positive maximum means the limit is not set.
func CheckIsOverweight(currentWeight, maxWeight float64) bool {
	return maxWeight > 0 && currentWeight > maxWeight
}

// CheckIsOverCapacity reports whether currentCapacity strictly exceeds a positive maxCapacity.
func CheckIsOverCapacity(currentCapacity, maxCapacity float64) bool {
	return maxCapacity > 0 && currentCapacity > maxCapacity
}

// CheckIsFull reports whether either dimension has reached FullThreshold of its limit.
// Dimensions without a positive limit are ignored.
func CheckIsFull(currentWeight, maxWeight, currentCapacity, maxCapacity float64) bool {
	return reachedThreshold(currentWeight, maxWeight) || reachedThreshold(currentCapacity, maxCapacity)
}

func reachedThreshold(current, limit float64) bool {
	if !(limit > 0) {
		return false
	}
	if !isFinite(current) || !isFinite(limit) {
		return current/limit >= FullThreshold
	}
	ratio := decimal.NewFromFloat(current).Div(decimal.NewFromFloat(limit))
	return ratio.GreaterThanOrEqual(fullThreshold)
}

// Percentage returns current as a percentage of limit rounded to two decimals, or 0 when limit is not positive.
// Results beyond the float64 range are clamped to ±math.MaxFloat64 so they stay encodable.
func Percentage(current, limit float64) float64 {
	if !(limit > 0) || math.IsInf(limit, 1) || math.IsNaN(current) {
		return 0
	}
	if math.IsInf(current, 0) {
		return clamp(current)
	}
	pct := decimal.NewFromFloat(current).Div(decimal.NewFromFloat(limit)).Mul(hundred).Round(2)
	return clamp(pct.InexactFloat64())
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

func clamp(v float64) float64 {
	switch {
	case math.IsInf(v, 1):
		return math.MaxFloat64
	case math.IsInf(v, -1):
		return -math.MaxFloat64
	}
	return v
}

// GetContainerStatus collapses the individual checks into one status.
// Priority: OVERWEIGHT, OVER_CAPACITY, FULL, EMPTY, OK.
func GetContainerStatus(isOverweight, isOverCapacity, isFull bool, itemCount int) enums.ContainerStatus {
	switch {
	case isOverweight:
		return enums.ContainerStatusOverweight
	case isOverCapacity:
		return enums.ContainerStatusOverCapacity
	case isFull:
		return enums.ContainerStatusFull
	case itemCount == 0:
		return enums.ContainerStatusEmpty
	default:
		return enums.ContainerStatusOK
	}
}

// Measurements is the normalized load of a container: weights in kilograms, volumes in liters.
type Measurements struct {
	MaxWeight       float64
	MaxCapacity     float64
	CurrentWeight   float64
	CurrentCapacity float64
	ItemCount       int
}

// Summary is the full evaluation of a container.
type Summary struct {
	IsOverweight       bool                  `json:"is_overweight"`
	IsOverCapacity     bool                  `json:"is_over_capacity"`
	IsFull             bool                  `json:"is_full"`
	WeightPercentage   float64               `json:"weight_percentage"`
	CapacityPercentage float64               `json:"capacity_percentage"`
	Status             enums.ContainerStatus `json:"status"`
}

// Evaluate runs every check against m and resolves the resulting status.
func Evaluate(m Measurements) Summary {
	overweight := CheckIsOverweight(m.CurrentWeight, m.MaxWeight)
	overCapacity := CheckIsOverCapacity(m.CurrentCapacity, m.MaxCapacity)
	full := CheckIsFull(m.CurrentWeight, m.MaxWeight, m.CurrentCapacity, m.MaxCapacity)

	return Summary{
		IsOverweight:       overweight,
		IsOverCapacity:     overCapacity,
		IsFull:             full,
		WeightPercentage:   Percentage(m.CurrentWeight, m.MaxWeight),
		CapacityPercentage: Percentage(m.CurrentCapacity, m.MaxCapacity),
		Status:             GetContainerStatus(overweight, overCapacity, full, m.ItemCount),
	}
}
