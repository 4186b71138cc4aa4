package output

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"ultrank/pkg/ultrank/models"
)

// RenderRanking renders the descending-by-score ranking as a console table.
func RenderRanking(ranked []*models.SheetProfile) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Sheet", "Score", "Mean Std", "Amplitude"})

	for i, p := range ranked {
		tw.AppendRow(table.Row{
			i + 1,
			p.Sheet,
			fmt.Sprintf("%.2f", p.Metrics.Score),
			formatMetric(p.Metrics.MeanStd),
			formatMetric(p.Metrics.Amplitude),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func formatMetric(v models.Value) string {
	if !v.OK {
		return "n/a"
	}
	return fmt.Sprintf("%.4g", v.F)
}
