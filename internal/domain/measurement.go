package domain

import "math"

// Measurement is a height/weight pair as entered by the user. Weight is in
// kilograms for Metric and pounds for Imperial; height uses HeightCm for
// Metric and HeightFt+HeightIn for Imperial. Zero means "not entered".
type Measurement struct {
	System   UnitSystem `json:"unitSystem"`
	HeightCm float64    `json:"heightCm,omitempty"`
	HeightFt float64    `json:"heightFt,omitempty"`
	HeightIn float64    `json:"heightIn,omitempty"`
	Weight   float64    `json:"weight,omitempty"`
}

// HeightM returns the height in metres, or 0 when no usable height is entered.
func (m Measurement) HeightM() float64 {
	if m.System == Imperial {
		total := FeetToInches(orZero(m.HeightFt)) + orZero(m.HeightIn)
		if total <= 0 {
			return 0
		}
		return InToCm(total) / 100
	}
	return orZero(m.HeightCm) / 100
}

// WeightKg returns the weight in kilograms.
func (m Measurement) WeightKg() float64 {
	if m.System == Imperial {
		return LbsToKg(orZero(m.Weight))
	}
	return orZero(m.Weight)
}

// Metric returns the measurement normalised to metres and kilograms.
func (m Measurement) Metric() (heightM, weightKg float64) {
	return m.HeightM(), m.WeightKg()
}

// BMI computes the BMI of the measurement; ok is false when it is incomplete.
func (m Measurement) BMI() (float64, bool) {
	return ComputeBMI(m.HeightM(), m.WeightKg())
}

// Valid reports whether both height and weight are usable.
func (m Measurement) Valid() bool {
	_, ok := m.BMI()
	return ok
}

// SwitchUnits re-expresses the entered values in the target unit system the
// way the input form does on toggle: pounds and kilograms to one decimal,
// centimetres to whole numbers, feet/inches via CmToFeetInches. Values that
// are not positive are cleared.
func (m Measurement) SwitchUnits(to UnitSystem) Measurement {
	if m.System == to || (m.System == "" && to == Metric) {
		m.System = to
		return m
	}
	out := Measurement{System: to}
	if to == Imperial {
		if cm := orZero(m.HeightCm); cm > 0 {
			out.HeightFt, out.HeightIn = CmToFeetInches(cm)
		}
		if kg := orZero(m.Weight); kg > 0 {
			out.Weight = roundTo(KgToLbs(kg), 1)
		}
		return out
	}
	ft, in := orZero(m.HeightFt), orZero(m.HeightIn)
	if ft > 0 || in > 0 {
		out.HeightCm = roundTo(FeetInchesToCm(ft, in), 0)
	}
	if lbs := orZero(m.Weight); lbs > 0 {
		out.Weight = roundTo(LbsToKg(lbs), 1)
	}
	return out
}

func orZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
