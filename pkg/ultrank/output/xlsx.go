// Package output writes the per-file artifacts: the interpolated workbook,
// the scores CSV, the overlay plot, and the console ranking table.
package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"ultrank/pkg/ultrank/models"
)

// DistanceHeader is the first column header of every interpolated table.
const DistanceHeader = "Distance (m)"

// WriteInterpolated writes one worksheet per surviving sheet, with the
// common distance axis and the representative profile as columns. Undefined
// profile rows are left as empty cells.
func WriteInterpolated(path string, profiles []*models.SheetProfile) error {
	if len(profiles) == 0 {
		return fmt.Errorf("no profiles to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, p := range profiles {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", p.Sheet); err != nil {
				return fmt.Errorf("rename sheet %q: %w", p.Sheet, err)
			}
		} else {
			if _, err := f.NewSheet(p.Sheet); err != nil {
				return fmt.Errorf("create sheet %q: %w", p.Sheet, err)
			}
		}
		if err := writeProfileSheet(f, p); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeProfileSheet(f *excelize.File, p *models.SheetProfile) error {
	if err := f.SetCellValue(p.Sheet, "A1", DistanceHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellValue(p.Sheet, "B1", p.Sheet+"_mean"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for r, x := range p.Axis {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(p.Sheet, cell, x); err != nil {
			return fmt.Errorf("write distance row %d: %w", r, err)
		}
		if !p.Mean[r].OK {
			continue
		}
		cell, err = excelize.CoordinatesToCellName(2, r+2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(p.Sheet, cell, p.Mean[r].F); err != nil {
			return fmt.Errorf("write mean row %d: %w", r, err)
		}
	}
	return nil
}
