package domain

import "math"

// Conversion factors. The reciprocals are divided out at init in float64 so
// they match a runtime 1/x bit for bit instead of an exact constant division.
var (
	kgToLbs    = 2.20462
	lbsToKg    = 1 / kgToLbs
	cmToIn     = 0.393701
	inToCm     = 1 / cmToIn
	feetToInch = 12.0
)

// KgToLbs converts kilograms to pounds.
func KgToLbs(kg float64) float64 { return kg * kgToLbs }

// LbsToKg converts pounds to kilograms.
func LbsToKg(lbs float64) float64 { return lbs * lbsToKg }

// CmToIn converts centimetres to inches.
func CmToIn(cm float64) float64 { return cm * cmToIn }

// InToCm converts inches to centimetres.
func InToCm(in float64) float64 { return in * inToCm }

// FeetToInches converts feet to inches.
func FeetToInches(ft float64) float64 { return ft * feetToInch }

// FeetInchesToCm converts a feet+inches height to centimetres.
func FeetInchesToCm(ft, in float64) float64 {
	return (FeetToInches(ft) + in) * inToCm
}

// CmToFeetInches splits a centimetre height into whole feet and rounded
// inches for display. Feet and inches are computed independently, so a
// remainder that rounds up yields 12 inches rather than carrying into feet
// (182 cm is 5 ft 12 in).
func CmToFeetInches(cm float64) (ft, in float64) {
	total := CmToIn(cm)
	ft = math.Floor(total / feetToInch)
	in = math.Round(math.Mod(total, feetToInch))
	return ft, in
}

// ConvertWeight converts a weight value between "kg" and "lb"/"lbs".
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertWeight(v float64, from, to string) float64 {
	from, to = normalizeWeightUnit(from), normalizeWeightUnit(to)
	if from == to {
		return v
	}
	if from == "kg" && to == "lb" {
		return KgToLbs(v)
	}
	if from == "lb" && to == "kg" {
		return LbsToKg(v)
	}
	return v
}

func normalizeWeightUnit(u string) string {
	if u == "lbs" {
		return "lb"
	}
	return u
}
