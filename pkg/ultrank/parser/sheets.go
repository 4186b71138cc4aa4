// Package parser turns worksheet cell grids into coerced survey sheets.
package parser

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"ultrank/pkg/ultrank/models"
)

// ReadSheet extracts one worksheet as a survey sheet: column 0 becomes the
// distance column, the remaining columns become response lines, and every
// cell is coerced to an optional numeric value.
func ReadSheet(f *excelize.File, sheetName string) (models.Sheet, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return models.Sheet{}, fmt.Errorf("read sheet %q: %w", sheetName, err)
	}
	return BuildSheet(sheetName, rows), nil
}

// ReadWorkbook extracts every worksheet of an open workbook in sheet order.
// Worksheets that cannot be read are skipped; their errors are returned
// alongside the workbook.
func ReadWorkbook(f *excelize.File) (*models.Workbook, []error) {
	wb := &models.Workbook{BookName: filepath.Base(f.Path)}
	var errs []error
	for _, sheetName := range f.GetSheetList() {
		sheet, err := ReadSheet(f, sheetName)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	return wb, errs
}

// BuildSheet coerces a cell grid into a survey sheet. A leading row with any
// non-numeric text is treated as the header row and supplies the line names;
// otherwise lines get synthetic names. Unparseable cells become undefined
// values rather than errors.
func BuildSheet(name string, rows [][]string) models.Sheet {
	sheet := models.Sheet{Name: name}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return sheet
	}

	start := 0
	names := syntheticNames(width)
	if isHeaderRow(rows[0]) {
		names = headerNames(rows[0], width)
		start = 1
	}

	for _, row := range rows[start:] {
		var cell string
		if len(row) > 0 {
			cell = row[0]
		}
		sheet.Distance = append(sheet.Distance, CoerceNumeric(cell))
	}

	for c := 1; c < width; c++ {
		line := models.Line{
			Name:   names[c],
			Values: make([]models.Value, len(rows)-start),
		}
		for r, row := range rows[start:] {
			if c < len(row) {
				line.Values[r] = CoerceNumeric(row[c])
			}
		}
		sheet.Lines = append(sheet.Lines, line)
	}
	return sheet
}

// CoerceNumeric parses a cell as a float. Empty cells, text, and NaN are
// undefined. Thousands separators are stripped before parsing.
func CoerceNumeric(cell string) models.Value {
	s := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if s == "" {
		return models.None()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return models.None()
	}
	return models.Some(f)
}

// isHeaderRow reports whether a row contains any non-empty cell that does
// not coerce to a number.
func isHeaderRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) == "" {
			continue
		}
		if !CoerceNumeric(cell).OK {
			return true
		}
	}
	return false
}

func headerNames(row []string, width int) []string {
	names := syntheticNames(width)
	for i := 0; i < width && i < len(row); i++ {
		if name := strings.TrimSpace(row[i]); name != "" {
			names[i] = name
		}
	}
	return names
}

func syntheticNames(width int) []string {
	names := make([]string, width)
	names[0] = "distance"
	for i := 1; i < width; i++ {
		names[i] = fmt.Sprintf("line%d", i)
	}
	return names
}
