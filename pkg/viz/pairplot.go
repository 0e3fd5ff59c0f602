package viz

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	ds "github.com/wdm0006/datavis/pkg/dataset"
)

func (d *Dispatcher) pairplot(f *ds.Frame, names []string, format string) (*Chart, error) {
	n := len(names)
	cols := make([][]float64, n)
	masks := make([][]bool, n)
	for i, name := range names {
		v, ok, err := numeric(f, name)
		if err != nil {
			return nil, err
		}
		cols[i], masks[i] = v, ok
	}
	plots := make([][]*plot.Plot, n)
	for i := range plots {
		plots[i] = make([]*plot.Plot, n)
		for j := range plots[i] {
			p := plot.New()
			if i == j {
				xs := compact(cols[i], masks[i])
				h, err := plotter.NewHist(plotter.Values(xs), sturges(len(xs)))
				if err != nil {
					return nil, err
				}
				h.FillColor = fill
				h.LineStyle.Width = vg.Points(0.5)
				p.Add(h)
			} else {
				var pts plotter.XYs
				for r := range cols[i] {
					if masks[i][r] && masks[j][r] {
						pts = append(pts, plotter.XY{X: cols[j][r], Y: cols[i][r]})
					}
				}
				s, err := plotter.NewScatter(pts)
				if err != nil {
					return nil, err
				}
				s.GlyphStyle.Color = fill
				s.GlyphStyle.Radius = vg.Points(1.5)
				p.Add(s)
			}
			// only the outer panels carry axis labels
			if i == n-1 {
				p.X.Label.Text = names[j]
			}
			if j == 0 {
				p.Y.Label.Text = names[i]
			}
			plots[i][j] = p
		}
	}
	side := d.facet * vg.Length(n)
	img, err := encodeGrid(plots, side, side, format)
	if err != nil {
		return nil, err
	}
	return &Chart{Title: "Pairplot", Columns: append([]string(nil), names...), Image: img}, nil
}

// sturges is the diagonal histogram bin count.
func sturges(n int) int {
	if n < 1 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}
