package controllers

import (
	"net/http"

	"github.com/beggy/beggy-backend/api/responses"
	"github.com/beggy/beggy-backend/api/validators"
	"github.com/beggy/beggy-backend/internal/capacity"
	"github.com/beggy/beggy-backend/pkg/enums"
	pkgerrors "github.com/beggy/beggy-backend/pkg/errors"
	"github.com/beggy/beggy-backend/pkg/logger"
)

type evaluateItem struct {
	Weight     *float64         `json:"weight" validate:"required,gte=0,lte=1000000"`
	WeightUnit enums.WeightUnit `json:"weight_unit" validate:"required,weight_unit"`
	Volume     *float64         `json:"volume" validate:"required,gte=0,lte=1000000"`
	VolumeUnit enums.VolumeUnit `json:"volume_unit" validate:"required,volume_unit"`
}

type evaluateRequest struct {
	MaxWeight   float64        `json:"max_weight" validate:"gte=0,lte=1000000"`
	MaxCapacity float64        `json:"max_capacity" validate:"gte=0,lte=1000000"`
	Items       []evaluateItem `json:"items" validate:"max=500,dive"`
}

type evaluateResponse struct {
	MaxWeight       float64 `json:"max_weight"`
	MaxCapacity     float64 `json:"max_capacity"`
	CurrentWeight   float64 `json:"current_weight"`
	CurrentCapacity float64 `json:"current_capacity"`
	ItemCount       int     `json:"item_count"`
	capacity.Summary
	Violations []capacity.ViolationDetail `json:"violations"`
}

// CapacityEvaluate runs the capacity checks over an ad-hoc load without persisting anything.
func CapacityEvaluate(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body evaluateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		measures := make([]capacity.ItemMeasure, 0, len(body.Items))
		for _, item := range body.Items {
			measures = append(measures, capacity.ItemMeasure{
				Weight:     *item.Weight,
				WeightUnit: item.WeightUnit,
				Volume:     *item.Volume,
				VolumeUnit: item.VolumeUnit,
			})
		}

		m, err := capacity.Measure(body.MaxWeight, body.MaxCapacity, measures)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Normalize(err, pkgerrors.CodeValidation, "evaluate capacity"))
			return
		}

		violations := capacity.Violations(m)
		if violations == nil {
			violations = []capacity.ViolationDetail{}
		}
		responses.WriteSuccess(w, evaluateResponse{
			MaxWeight:       m.MaxWeight,
			MaxCapacity:     m.MaxCapacity,
			CurrentWeight:   m.CurrentWeight,
			CurrentCapacity: m.CurrentCapacity,
			ItemCount:       m.ItemCount,
			Summary:         capacity.Evaluate(m),
			Violations:      violations,
		})
	}
}
