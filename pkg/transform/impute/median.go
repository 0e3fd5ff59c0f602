package impute

import (
	"context"
	"math"
	"sort"
	"time"

	ds "github.com/wdm0006/datavis/pkg/dataset"
)

// Median fills missing cells with the median of the non-missing values.
// Even counts average the two middle values. An int column whose median
// is fractional is promoted to float so the fill is exact.
type Median struct{ Column string }

func (t *Median) Name() string { return "impute_median" }

func (t *Median) Apply(ctx context.Context, f *ds.Frame) (*ds.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	switch c := col.(type) {
	case *ds.FloatColumn:
		vals := make([]float64, 0, c.Len())
		for i := 0; i < c.Len(); i++ {
			if v, ok := c.Get(i); ok {
				vals = append(vals, v)
			}
		}
		med, ok := MedianOf(vals)
		if !ok {
			return f, nil
		}
		fillFloat(c, med)
	case *ds.IntColumn:
		vals := make([]float64, 0, c.Len())
		for i := 0; i < c.Len(); i++ {
			if v, ok := c.Get(i); ok {
				vals = append(vals, float64(v))
			}
		}
		med, ok := MedianOf(vals)
		if !ok {
			return f, nil
		}
		if med == math.Trunc(med) {
			for i := 0; i < c.Len(); i++ {
				if c.IsNull(i) {
					c.Set(i, int64(med))
				}
			}
			return f, nil
		}
		fc := c.ToFloat()
		fillFloat(fc, med)
		if err := f.ReplaceColumn(fc); err != nil {
			return nil, err
		}
	case *ds.TimeColumn:
		vals := make([]time.Time, 0, c.Len())
		for i := 0; i < c.Len(); i++ {
			if v, ok := c.Get(i); ok {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			return f, nil
		}
		sort.Slice(vals, func(i, j int) bool { return vals[i].Before(vals[j]) })
		mid := len(vals) / 2
		med := vals[mid]
		if len(vals)%2 == 0 {
			med = vals[mid-1].Add(vals[mid].Sub(vals[mid-1]) / 2)
		}
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, med)
			}
		}
	}
	return f, nil
}

// MedianOf returns the median of vals without modifying the slice.
func MedianOf(vals []float64) (float64, bool) {
	if len(vals) == 0 {
		return 0, false
	}
	s := append([]float64(nil), vals...)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 0 {
		return (s[mid-1] + s[mid]) / 2, true
	}
	return s[mid], true
}

func fillFloat(c *ds.FloatColumn, v float64) {
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			c.Set(i, v)
		}
	}
}
