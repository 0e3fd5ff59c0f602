package viz

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	ds "github.com/wdm0006/datavis/pkg/dataset"
)

func (d *Dispatcher) boxplot(f *ds.Frame, num, cat, format string) (*Chart, error) {
	vals, valid, err := numeric(f, num)
	if err != nil {
		return nil, err
	}
	names, idx, err := levels(f, cat)
	if err != nil {
		return nil, err
	}
	groups := make([]plotter.Values, len(names))
	for i, l := range idx {
		if l >= 0 && valid[i] {
			groups[l] = append(groups[l], vals[i])
		}
	}
	p := plot.New()
	p.Title.Text = num + " by " + cat
	p.X.Label.Text = cat
	p.Y.Label.Text = num
	w := barWidth(d.width, len(names))
	drawn := 0
	for i, g := range groups {
		// a level without numeric values keeps its slot but draws no box
		if len(g) == 0 {
			continue
		}
		b, err := plotter.NewBoxPlot(w, float64(i), g)
		if err != nil {
			return nil, fmt.Errorf("box %q: %w", names[i], err)
		}
		b.FillColor = fill
		p.Add(b)
		drawn++
	}
	if drawn == 0 {
		return nil, fmt.Errorf("no %s values for any %s level", num, cat)
	}
	p.NominalX(names...)
	rotateX(p)
	img, err := encode(p, d.width, d.height, format)
	if err != nil {
		return nil, err
	}
	return &Chart{Title: p.Title.Text, Columns: []string{num, cat}, Image: img}, nil
}
