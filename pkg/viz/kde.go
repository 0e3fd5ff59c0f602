package viz

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/plotter"
)

// scottBandwidth is the Gaussian kernel width from Scott's rule:
// sample standard deviation times n^(-1/5). It fails for fewer than two
// values or zero spread.
func scottBandwidth(xs []float64) (float64, bool) {
	if len(xs) < 2 {
		return 0, false
	}
	sd := stat.StdDev(xs, nil)
	if sd == 0 || math.IsNaN(sd) {
		return 0, false
	}
	return sd * math.Pow(float64(len(xs)), -0.2), true
}

// density evaluates a Gaussian kernel density estimate at x.
func density(xs []float64, bw, x float64) float64 {
	norm := 1 / (bw * math.Sqrt(2*math.Pi) * float64(len(xs)))
	sum := 0.0
	for _, v := range xs {
		z := (x - v) / bw
		sum += math.Exp(-0.5 * z * z)
	}
	return sum * norm
}

// kdeCurve samples the density over the data range, multiplied by scale.
func kdeCurve(xs []float64, scale float64, points int) (plotter.XYs, bool) {
	bw, ok := scottBandwidth(xs)
	if !ok || points < 2 {
		return nil, false
	}
	lo, hi := floats.Min(xs), floats.Max(xs)
	grid := make([]float64, points)
	floats.Span(grid, lo, hi)
	out := make(plotter.XYs, points)
	for i, x := range grid {
		out[i].X = x
		out[i].Y = density(xs, bw, x) * scale
	}
	return out, true
}
