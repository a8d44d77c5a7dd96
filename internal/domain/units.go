// Package domain contains the core business entities and interfaces.
package domain

import (
	"errors"
	"strings"
)

// UnitSystem selects how heights and weights are entered and displayed.
// BMI and stored history are always metric regardless of this value.
type UnitSystem string

const (
	Metric   UnitSystem = "metric"
	Imperial UnitSystem = "imperial"
)

// Theme is the persisted colour-scheme preference.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

var (
	// ErrInvalidUnitSystem is returned when a unit system is neither metric nor imperial.
	ErrInvalidUnitSystem = errors.New("unit system must be \"metric\" or \"imperial\"")
	// ErrInvalidTheme is returned when a theme is neither light nor dark.
	ErrInvalidTheme = errors.New("theme must be \"light\" or \"dark\"")
	// ErrInvalidWeightUnit is returned when a weight unit is neither kg nor lbs.
	ErrInvalidWeightUnit = errors.New("weight unit must be \"kg\" or \"lbs\"")
)

// ParseUnitSystem parses a unit system name, case-insensitively.
func ParseUnitSystem(s string) (UnitSystem, error) {
	switch UnitSystem(strings.ToLower(strings.TrimSpace(s))) {
	case Metric:
		return Metric, nil
	case Imperial:
		return Imperial, nil
	}
	return "", ErrInvalidUnitSystem
}

// ParseTheme parses a theme name, case-insensitively.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	}
	return "", ErrInvalidTheme
}

// Toggle returns the other unit system.
func (u UnitSystem) Toggle() UnitSystem {
	if u == Imperial {
		return Metric
	}
	return Imperial
}

// WeightLabel is the unit label shown next to weights ("kg" or "lbs").
func (u UnitSystem) WeightLabel() string {
	if u == Imperial {
		return "lbs"
	}
	return "kg"
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Preferences holds the user-facing settings persisted between runs.
type Preferences struct {
	Theme      Theme      `json:"theme"`
	UnitSystem UnitSystem `json:"unitSystem"`
}

// DefaultPreferences returns the values used when nothing has been stored.
func DefaultPreferences() Preferences {
	return Preferences{Theme: Light, UnitSystem: Metric}
}
