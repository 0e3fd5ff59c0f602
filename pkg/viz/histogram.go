package viz

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	ds "github.com/wdm0006/datavis/pkg/dataset"
)

// kdePoints is the number of points the density curve is evaluated at.
const kdePoints = 200

func (d *Dispatcher) histogram(f *ds.Frame, name, format string) (*Chart, error) {
	vals, valid, err := numeric(f, name)
	if err != nil {
		return nil, err
	}
	xs := compact(vals, valid)
	if len(xs) == 0 {
		return nil, fmt.Errorf("column %s has no values", name)
	}
	var h *plotter.Histogram
	if lo, hi := floats.Min(xs), floats.Max(xs); lo == hi {
		bins, w := constantBins(lo, len(xs), d.bins)
		h = &plotter.Histogram{Bins: bins, Width: w, LineStyle: plotter.DefaultLineStyle}
	} else {
		h, err = plotter.NewHist(plotter.Values(xs), d.bins)
		if err != nil {
			return nil, err
		}
	}
	h.FillColor = fill
	h.LineStyle.Width = vg.Points(0.5)

	p := plot.New()
	p.Title.Text = "Histogram of " + name
	p.X.Label.Text = name
	p.Y.Label.Text = "Count"
	p.Add(h)

	// the curve is scaled from density to counts per bin
	curve, ok := kdeCurve(xs, float64(len(xs))*h.Width, kdePoints)
	if ok {
		l, err := plotter.NewLine(curve)
		if err != nil {
			return nil, err
		}
		l.Color = accent
		l.Width = vg.Points(1.5)
		p.Add(l)
	}
	img, err := encode(p, d.width, d.height, format)
	if err != nil {
		return nil, err
	}
	return &Chart{Title: p.Title.Text, Columns: []string{name}, Bins: len(h.Bins), Density: ok, Image: img}, nil
}

// constantBins lays n bins over [v-0.5, v+0.5] for a column holding a single
// distinct value, matching numpy's range for that case.
func constantBins(v float64, count, n int) ([]plotter.HistogramBin, float64) {
	w := 1 / float64(n)
	bins := make([]plotter.HistogramBin, n)
	for i := range bins {
		bins[i].Min = v - 0.5 + float64(i)*w
		bins[i].Max = v - 0.5 + float64(i+1)*w
	}
	// the value sits on the middle edge; numpy counts it to the right
	bins[n/2].Weight = float64(count)
	return bins, w
}
