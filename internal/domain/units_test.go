package domain_test

import (
	"errors"
	"testing"

	"bmitracker/internal/domain"
)

func TestParseUnitSystem(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.UnitSystem
		wantErr bool
	}{
		{"metric", domain.Metric, false},
		{" Imperial ", domain.Imperial, false},
		{"METRIC", domain.Metric, false},
		{"stones", "", true},
		{"", "", true},
	}
	for _, tc := range tests {
		got, err := domain.ParseUnitSystem(tc.in)
		if tc.wantErr {
			if !errors.Is(err, domain.ErrInvalidUnitSystem) {
				t.Errorf("ParseUnitSystem(%q) err = %v", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseUnitSystem(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestParseTheme(t *testing.T) {
	if got, err := domain.ParseTheme("Dark"); err != nil || got != domain.Dark {
		t.Fatalf("ParseTheme(Dark) = %q, %v", got, err)
	}
	if _, err := domain.ParseTheme("sepia"); !errors.Is(err, domain.ErrInvalidTheme) {
		t.Fatalf("err = %v", err)
	}
}

func TestToggles(t *testing.T) {
	if domain.Metric.Toggle() != domain.Imperial || domain.Imperial.Toggle() != domain.Metric {
		t.Fatal("unit system toggle is not an involution")
	}
	if domain.Light.Toggle() != domain.Dark || domain.Dark.Toggle() != domain.Light {
		t.Fatal("theme toggle is not an involution")
	}
	if domain.Metric.WeightLabel() != "kg" || domain.Imperial.WeightLabel() != "lbs" {
		t.Fatal("unexpected weight labels")
	}
}

func TestDefaultPreferences(t *testing.T) {
	p := domain.DefaultPreferences()
	if p.Theme != domain.Light || p.UnitSystem != domain.Metric {
		t.Fatalf("DefaultPreferences() = %+v", p)
	}
}
