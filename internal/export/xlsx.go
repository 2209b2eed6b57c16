// Package export writes measurement history as an Excel workbook.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rcliao/bmi-percentile/internal/model"
)

// Sheet names, one per kind.
const (
	AdultSheet = "Adults"
	MinorSheet = "Minors"
)

var (
	adultHeader = []string{"Date", "Weight (kg)", "Height (m)", "BMI"}
	minorHeader = []string{"Date", "Sex", "Age (months)", "Weight (kg)", "Height (m)", "BMI", "Percentile"}
)

// WriteXLSX writes records to w, adults and minors on separate sheets.
func WriteXLSX(w io.Writer, records []model.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	var adults, minors [][]any
	for _, r := range records {
		date := r.CreatedAt.UTC().Format(time.DateTime)
		switch r.Kind {
		case model.KindAdult:
			adults = append(adults, []any{date, r.WeightKg, r.HeightM, r.BMI})
		case model.KindMinor:
			minors = append(minors, []any{date, string(r.Sex), intOrEmpty(r.AgeMonths),
				r.WeightKg, r.HeightM, r.BMI, floatOrEmpty(r.Percentile)})
		}
	}

	if err := writeSheet(f, AdultSheet, adultHeader, adults, headerStyle); err != nil {
		return err
	}
	if err := writeSheet(f, MinorSheet, minorHeader, minors, headerStyle); err != nil {
		return err
	}
	f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex(AdultSheet); err == nil {
		f.SetActiveSheet(idx)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, header []string, rows [][]any, style int) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}
	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(name, cell, h); err != nil {
			return fmt.Errorf("set header %s: %w", cell, err)
		}
	}
	last, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetCellStyle(name, "A1", last+"1", style); err != nil {
		return fmt.Errorf("set header style: %w", err)
	}
	if err := f.SetColWidth(name, "A", last, 16); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return nil
}

func intOrEmpty(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}

func floatOrEmpty(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
