// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/pdiddy/dataset-census/internal/census"
)

// DefaultTopN is how many datasets each chart panel shows.
const DefaultTopN = 10

const (
	panelWidth  = 6 * vg.Inch
	panelHeight = 5 * vg.Inch
)

// Panel pairs a census table with its chart title.
type Panel struct {
	Title string
	Table census.Table
}

// TopN returns the n highest-count rows, largest first. The input table
// is not modified.
func TopN(t census.Table, n int) census.Table {
	sorted := append(census.Table(nil), t...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalCount > sorted[j].TotalCount
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// WriteChart renders the panels as side-by-side horizontal bar charts
// with value labels and writes a single PNG to path. An empty panel is
// an error: the chart runs only after the query phases, so there is
// nothing sensible to draw without data.
func WriteChart(path string, topN int, panels ...Panel) error {
	if topN <= 0 {
		topN = DefaultTopN
	}
	if len(panels) == 0 {
		return fmt.Errorf("no panels to chart")
	}

	row := make([]*plot.Plot, len(panels))
	for i, p := range panels {
		plt, err := barPanel(p, topN)
		if err != nil {
			return err
		}
		row[i] = plt
	}

	img := vgimg.New(vg.Length(len(panels))*panelWidth, panelHeight)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 1,
		Cols: len(panels),
		PadX: vg.Millimeter * 4,
		PadY: vg.Millimeter * 2,
	}
	canvases := plot.Align([][]*plot.Plot{row}, tiles, dc)
	for i, plt := range row {
		plt.Draw(canvases[0][i])
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("writing chart: %w", err)
	}
	return nil
}

// barPanel builds one horizontal bar panel, largest bar on top, with
// the count printed at the end of each bar.
func barPanel(p Panel, topN int) (*plot.Plot, error) {
	top := TopN(p.Table, topN)
	if len(top) == 0 {
		return nil, fmt.Errorf("%s: no rows to chart", p.Title)
	}

	plt := plot.New()
	plt.Title.Text = p.Title
	plt.X.Label.Text = "matching files"

	// Bars are drawn bottom-up, so reverse to put the largest on top.
	values := make(plotter.Values, len(top))
	names := make([]string, len(top))
	for i, row := range top {
		j := len(top) - 1 - i
		values[j] = float64(row.TotalCount)
		names[j] = row.Dataset
	}

	bars, err := plotter.NewBarChart(values, vg.Points(14))
	if err != nil {
		return nil, fmt.Errorf("%s: building bars: %w", p.Title, err)
	}
	bars.Horizontal = true
	bars.LineStyle.Width = 0
	bars.Color = plotutil.Color(0)
	plt.Add(bars)
	plt.NominalY(names...)

	labels := make([]string, len(values))
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i].X = v
		pts[i].Y = float64(i)
		labels[i] = strconv.Itoa(int(v))
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: labels})
	if err != nil {
		return nil, fmt.Errorf("%s: building value labels: %w", p.Title, err)
	}
	l.Offset = vg.Point{X: vg.Points(3)}
	plt.Add(l)

	return plt, nil
}
