package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"bmitracker/internal/domain"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// categoryLabel renders a category name in its display colour.
func categoryLabel(c domain.Category) string {
	d, ok := c.Details()
	if !ok {
		return string(c)
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(d.Color)).Render(string(c))
}

func formatWeight(kg float64, units domain.UnitSystem) string {
	if units == domain.Imperial {
		return fmt.Sprintf("%.1f lbs", domain.KgToLbs(kg))
	}
	return fmt.Sprintf("%.1f kg", kg)
}
