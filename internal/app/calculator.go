package app

import (
	"bmitracker/internal/domain"
	"bmitracker/internal/metrics"
)

// Result is the derived state for one measurement. Category is empty when
// Valid is false.
type Result struct {
	BMI      float64                 `json:"bmi"`
	Rounded  float64                 `json:"rounded"`
	Valid    bool                    `json:"valid"`
	Category domain.Category         `json:"category,omitempty"`
	Details  *domain.CategoryDetails `json:"details,omitempty"`
}

// Evaluate computes BMI and category for m. It is pure apart from metrics
// and is meant to be called on every input change.
func Evaluate(m domain.Measurement) Result {
	bmi, ok := m.BMI()
	metrics.ObserveBMI(ok)
	if !ok {
		return Result{}
	}
	res := Result{BMI: bmi, Rounded: domain.RoundBMI(bmi), Valid: true}
	if cat, ok := domain.Classify(bmi); ok {
		res.Category = cat
		if d, ok := cat.Details(); ok {
			res.Details = &d
		}
	}
	return res
}
