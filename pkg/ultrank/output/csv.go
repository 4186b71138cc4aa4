package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"ultrank/pkg/ultrank/models"
)

// WriteScores writes the per-sheet score records as CSV, one row per sheet
// in workbook order. Undefined metrics are written as empty fields.
func WriteScores(path string, profiles []*models.SheetProfile) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scores file: %w", err)
	}

	w := csv.NewWriter(file)
	records := [][]string{{"sheet", "mean_std", "amplitude", "score"}}
	for _, p := range profiles {
		records = append(records, []string{
			p.Sheet,
			formatOptional(p.Metrics.MeanStd),
			formatOptional(p.Metrics.Amplitude),
			formatFloat(p.Metrics.Score),
		})
	}
	if err := w.WriteAll(records); err != nil {
		file.Close()
		return fmt.Errorf("write scores: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close scores file: %w", err)
	}
	return nil
}

func formatOptional(v models.Value) string {
	if !v.OK {
		return ""
	}
	return formatFloat(v.F)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
