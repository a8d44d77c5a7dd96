package domain

import (
	"encoding/json"
	"math"
)

// Category is a BMI health category.
type Category string

const (
	Underweight Category = "Underweight"
	Normal      Category = "Normal"
	Overweight  Category = "Overweight"
	Obese       Category = "Obese"
)

// CategoryDetails describes one band of the BMI scale. Max is the displayed
// upper bound, one hundredth below the next band's Min.
type CategoryDetails struct {
	Name        Category `json:"name"`
	Min         float64  `json:"min"`
	Max         float64  `json:"max"`
	Color       string   `json:"color"`
	Description string   `json:"description"`
}

var categories = []CategoryDetails{
	{Name: Underweight, Min: 0, Max: 18.49, Color: "#3b82f6", Description: "Below 18.5"},
	{Name: Normal, Min: 18.5, Max: 24.99, Color: "#22c55e", Description: "18.5 - 24.9"},
	{Name: Overweight, Min: 25, Max: 29.99, Color: "#eab308", Description: "25 - 29.9"},
	{Name: Obese, Min: 30, Max: math.Inf(1), Color: "#ef4444", Description: "30 and above"},
}

type categoryDetailsJSON struct {
	Name        Category `json:"name"`
	Min         float64  `json:"min"`
	Max         *float64 `json:"max"`
	Color       string   `json:"color"`
	Description string   `json:"description"`
}

// MarshalJSON encodes an unbounded Max as null.
func (d CategoryDetails) MarshalJSON() ([]byte, error) {
	out := categoryDetailsJSON{Name: d.Name, Min: d.Min, Color: d.Color, Description: d.Description}
	if !math.IsInf(d.Max, 1) {
		upper := d.Max
		out.Max = &upper
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a null Max as unbounded.
func (d *CategoryDetails) UnmarshalJSON(data []byte) error {
	var in categoryDetailsJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*d = CategoryDetails{Name: in.Name, Min: in.Min, Max: math.Inf(1), Color: in.Color, Description: in.Description}
	if in.Max != nil {
		d.Max = *in.Max
	}
	return nil
}

// Categories returns a copy of the BMI category table in ascending order.
func Categories() []CategoryDetails {
	out := make([]CategoryDetails, len(categories))
	copy(out, categories)
	return out
}

// ComputeBMI returns weight / height² for positive finite inputs. ok is false
// when either input is zero, negative, NaN or infinite, or when the quotient
// is not finite; that is the normal "not enough input yet" state, not an error.
func ComputeBMI(heightM, weightKg float64) (bmi float64, ok bool) {
	if !positive(heightM) || !positive(weightKg) {
		return 0, false
	}
	bmi = weightKg / (heightM * heightM)
	if math.IsInf(bmi, 0) || math.IsNaN(bmi) {
		return 0, false
	}
	return bmi, true
}

// Classify returns the category containing bmi. Each band covers
// [Min, next band's Min), so values between a displayed Max and the next Min
// (18.495) stay in the lower band and a boundary value belongs to the higher one.
func Classify(bmi float64) (Category, bool) {
	if math.IsNaN(bmi) {
		return "", false
	}
	for i, c := range categories {
		upper := math.Inf(1)
		if i+1 < len(categories) {
			upper = categories[i+1].Min
		}
		if bmi >= c.Min && bmi < upper {
			return c.Name, true
		}
	}
	return "", false
}

// Details returns the table row for c.
func (c Category) Details() (CategoryDetails, bool) {
	for _, d := range categories {
		if d.Name == c {
			return d, true
		}
	}
	return CategoryDetails{}, false
}

// RoundBMI rounds to one decimal place for display.
func RoundBMI(bmi float64) float64 {
	return math.Round(bmi*10) / 10
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
