package output

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"ultrank/pkg/ultrank/models"
)

// Plot canvas size; format follows from the output path extension.
const (
	plotWidth  = 10 * vg.Inch
	plotHeight = 6 * vg.Inch
)

// SavePlot renders the representative profiles as one overlay plot with a
// legend entry per sheet. Profiles with no defined value are omitted. A
// fresh plot is built per call, so nothing leaks across files.
func SavePlot(path, title, yAxisLabel string, profiles []*models.SheetProfile) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = DistanceHeader
	p.Y.Label.Text = yAxisLabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	series := 0
	for _, prof := range profiles {
		xys := profileXYs(prof)
		if len(xys) == 0 {
			continue
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("plot sheet %q: %w", prof.Sheet, err)
		}
		line.Color = plotutil.Color(series)
		series++
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("%s (score=%.2f)", prof.Sheet, prof.Metrics.Score), line)
	}

	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}

// profileXYs collects the defined points of the representative profile.
func profileXYs(p *models.SheetProfile) plotter.XYs {
	var xys plotter.XYs
	for i, x := range p.Axis {
		if !p.Mean[i].OK {
			continue
		}
		xys = append(xys, plotter.XY{X: x, Y: p.Mean[i].F})
	}
	return xys
}
