// Package export renders the weight history as downloadable documents.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"bmitracker/internal/domain"
)

// Format is an export file format.
type Format string

const (
	PDF  Format = "pdf"
	XLSX Format = "xlsx"
	YAML Format = "yaml"
)

// ErrUnknownFormat is returned for formats other than pdf, xlsx and yaml.
var ErrUnknownFormat = errors.New("format must be one of pdf, xlsx, yaml")

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case PDF, XLSX, YAML:
		return f, nil
	case "yml":
		return YAML, nil
	}
	return "", ErrUnknownFormat
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case PDF:
		return "application/pdf"
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/yaml"
	}
}

// Filename returns a download name for an export generated at t.
func (f Format) Filename(t time.Time) string {
	return fmt.Sprintf("weight-history-%s.%s", t.Format("20060102"), f)
}

// Render dispatches to the renderer for f.
func Render(f Format, h domain.History, units domain.UnitSystem, generated time.Time) ([]byte, error) {
	switch f {
	case PDF:
		return BuildHistoryPDF(h, units, generated)
	case XLSX:
		return BuildHistoryXLSX(h, units)
	case YAML:
		return BuildHistoryYAML(h, units, generated)
	}
	return nil, ErrUnknownFormat
}

func displayWeight(kg float64, units domain.UnitSystem) float64 {
	if units == domain.Imperial {
		kg = domain.KgToLbs(kg)
	}
	return math.Round(kg*10) / 10
}

func categoryName(bmi float64) string {
	if c, ok := domain.Classify(bmi); ok {
		return string(c)
	}
	return ""
}

// BuildHistoryPDF renders a one-table PDF of the history.
func BuildHistoryPDF(h domain.History, units domain.UnitSystem, generated time.Time) ([]byte, error) {
	label := units.WeightLabel()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Weight History")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", generated.Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Entries: %d", len(h)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 6, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, fmt.Sprintf("Weight (%s)", label), "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "BMI", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Category", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, e := range h {
		pdf.CellFormat(40, 6, e.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.1f", displayWeight(e.WeightKg, units)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.1f", e.BMI), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, categoryName(e.BMI), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildHistoryXLSX renders the history as a single-sheet workbook.
func BuildHistoryXLSX(h domain.History, units domain.UnitSystem) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "history"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(sheet, "A1", "ID")
	_ = f.SetCellValue(sheet, "B1", "Date")
	_ = f.SetCellValue(sheet, "C1", fmt.Sprintf("Weight (%s)", units.WeightLabel()))
	_ = f.SetCellValue(sheet, "D1", "BMI")
	_ = f.SetCellValue(sheet, "E1", "Category")
	for i, e := range h {
		row := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), e.ID)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), e.Date)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), displayWeight(e.WeightKg, units))
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), math.Round(e.BMI*10)/10)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), categoryName(e.BMI))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// YAMLDocument is the shape of a YAML export. Entries keep their canonical
// kilogram weights alongside the display value.
type YAMLDocument struct {
	Generated  string      `yaml:"generated"`
	UnitSystem string      `yaml:"unitSystem"`
	Entries    []YAMLEntry `yaml:"entries"`
}

// YAMLEntry is one exported history entry.
type YAMLEntry struct {
	domain.HistoryEntry `yaml:",inline"`
	Display             float64 `yaml:"display"`
	Unit                string  `yaml:"unit"`
	Category            string  `yaml:"category,omitempty"`
}

// BuildHistoryYAML renders the history as a YAML document.
func BuildHistoryYAML(h domain.History, units domain.UnitSystem, generated time.Time) ([]byte, error) {
	doc := YAMLDocument{
		Generated:  generated.UTC().Format(time.RFC3339),
		UnitSystem: string(units),
		Entries:    make([]YAMLEntry, 0, len(h)),
	}
	for _, e := range h {
		doc.Entries = append(doc.Entries, YAMLEntry{
			HistoryEntry: e,
			Display:      displayWeight(e.WeightKg, units),
			Unit:         units.WeightLabel(),
			Category:     categoryName(e.BMI),
		})
	}
	return yaml.Marshal(doc)
}
