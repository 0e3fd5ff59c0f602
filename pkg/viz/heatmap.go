package viz

import (
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	ds "github.com/wdm0006/datavis/pkg/dataset"
)

// Correlation heatmaps are drawn at a fixed 10x6 inch figure size.
const (
	heatmapWidth  = 10 * vg.Inch
	heatmapHeight = 6 * vg.Inch
)

// corrGrid lays a square matrix out with row 0 at the top.
type corrGrid struct{ m [][]float64 }

func (g corrGrid) Dims() (c, r int)   { return len(g.m), len(g.m) }
func (g corrGrid) Z(c, r int) float64 { return g.m[len(g.m)-1-r][c] }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }

// Correlation returns the Pearson correlation matrix of the named columns,
// each pair computed over the rows where both are present. Pairs with zero
// variance are NaN.
func Correlation(f *ds.Frame, names []string) ([][]float64, error) {
	cols := make([][]float64, len(names))
	masks := make([][]bool, len(names))
	for i, n := range names {
		v, ok, err := numeric(f, n)
		if err != nil {
			return nil, err
		}
		cols[i], masks[i] = v, ok
	}
	m := make([][]float64, len(names))
	for i := range m {
		m[i] = make([]float64, len(names))
	}
	for i := range names {
		for j := i; j < len(names); j++ {
			var x, y []float64
			for r := range cols[i] {
				if masks[i][r] && masks[j][r] {
					x = append(x, cols[i][r])
					y = append(y, cols[j][r])
				}
			}
			c := math.NaN()
			if len(x) >= 2 {
				c = stat.Correlation(x, y, nil)
			}
			m[i][j], m[j][i] = c, c
		}
	}
	return m, nil
}

func (d *Dispatcher) heatmap(f *ds.Frame, names []string, format string) (*Chart, error) {
	m, err := Correlation(f, names)
	if err != nil {
		return nil, err
	}
	cmap := moreland.SmoothBlueRed()
	cmap.SetMin(-1)
	cmap.SetMax(1)
	hm := plotter.NewHeatMap(corrGrid{m: m}, cmap.Palette(255))
	hm.Min, hm.Max = -1, 1
	hm.NaN = color.Gray{Y: 200}

	n := len(names)
	var cells plotter.XYLabels
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			cells.XYs = append(cells.XYs, plotter.XY{X: float64(c), Y: float64(n - 1 - r)})
			label := ""
			if !math.IsNaN(m[r][c]) {
				label = strconv.FormatFloat(m[r][c], 'f', 2, 64)
			}
			cells.Labels = append(cells.Labels, label)
		}
	}
	labels, err := plotter.NewLabels(cells)
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
	}

	rowNames := make([]string, n)
	for i, name := range names {
		rowNames[n-1-i] = name
	}
	p := plot.New()
	p.Title.Text = "Correlation Heatmap"
	p.Add(hm, labels)
	p.NominalX(names...)
	p.NominalY(rowNames...)
	rotateX(p)
	img, err := encode(p, heatmapWidth, heatmapHeight, format)
	if err != nil {
		return nil, err
	}
	return &Chart{Title: p.Title.Text, Columns: append([]string(nil), names...), Image: img}, nil
}
