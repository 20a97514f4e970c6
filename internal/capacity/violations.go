package capacity

import "github.com/beggy/beggy-backend/pkg/enums"

// ViolationDetail describes a limit that a container exceeds.
type ViolationDetail struct {
	Dimension string  `json:"dimension"`
	Current   float64 `json:"current"`
	Limit     float64 `json:"limit"`
	Unit      string  `json:"unit"`
}

// Violations lists the exceeded limits for m. Empty when the container is within limits.
func Violations(m Measurements) []ViolationDetail {
	var out []ViolationDetail
	if CheckIsOverweight(m.CurrentWeight, m.MaxWeight) {
		out = append(out, ViolationDetail{
			Dimension: "weight",
			Current:   m.CurrentWeight,
			Limit:     m.MaxWeight,
			Unit:      string(enums.WeightUnitKilogram),
		})
	}
	if CheckIsOverCapacity(m.CurrentCapacity, m.MaxCapacity) {
		out = append(out, ViolationDetail{
			Dimension: "volume",
			Current:   m.CurrentCapacity,
			Limit:     m.MaxCapacity,
			Unit:      string(enums.VolumeUnitLiter),
		})
	}
	return out
}
