package main

import (
	"github.com/spf13/cobra"

	"bmitracker/internal/domain"
)

// measurementFlags are the height/weight flags shared by bmi and insights.
type measurementFlags struct {
	heightCm  float64
	heightFt  float64
	heightIn  float64
	weightKg  float64
	weightLbs float64
}

func (f *measurementFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.heightCm, "height-cm", 0, "height in centimetres")
	cmd.Flags().Float64Var(&f.heightFt, "height-ft", 0, "height, feet part")
	cmd.Flags().Float64Var(&f.heightIn, "height-in", 0, "height, inches part")
	cmd.Flags().Float64Var(&f.weightKg, "weight-kg", 0, "weight in kilograms")
	cmd.Flags().Float64Var(&f.weightLbs, "weight-lbs", 0, "weight in pounds")
	cmd.MarkFlagsMutuallyExclusive("height-cm", "height-ft")
	cmd.MarkFlagsMutuallyExclusive("weight-kg", "weight-lbs")
}

// measurement builds a Measurement, choosing the unit system from the flags
// given and falling back to the preferred one.
func (f *measurementFlags) measurement(cmd *cobra.Command, preferred domain.UnitSystem) domain.Measurement {
	changed := cmd.Flags().Changed
	system := preferred
	switch {
	case changed("height-ft") || changed("height-in") || changed("weight-lbs"):
		system = domain.Imperial
	case changed("height-cm") || changed("weight-kg"):
		system = domain.Metric
	}
	if system == domain.Imperial {
		return domain.Measurement{System: system, HeightFt: f.heightFt, HeightIn: f.heightIn, Weight: f.weightLbs}
	}
	return domain.Measurement{System: system, HeightCm: f.heightCm, Weight: f.weightKg}
}
