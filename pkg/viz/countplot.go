package viz

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	ds "github.com/wdm0006/datavis/pkg/dataset"
)

func (d *Dispatcher) countplot(f *ds.Frame, name, format string) (*Chart, error) {
	names, idx, err := levels(f, name)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("column %s has no values", name)
	}
	counts := make(plotter.Values, len(names))
	for _, l := range idx {
		if l >= 0 {
			counts[l]++
		}
	}
	bars, err := plotter.NewBarChart(counts, barWidth(d.width, len(names)))
	if err != nil {
		return nil, err
	}
	bars.Color = fill
	bars.LineStyle.Width = 0

	p := plot.New()
	p.Title.Text = "Count of " + name
	p.X.Label.Text = name
	p.Y.Label.Text = "count"
	p.Add(bars)
	p.NominalX(names...)
	rotateX(p)
	img, err := encode(p, d.width, d.height, format)
	if err != nil {
		return nil, err
	}
	return &Chart{Title: p.Title.Text, Columns: []string{name}, Image: img}, nil
}
