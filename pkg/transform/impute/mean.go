package impute

import (
	"context"
	"math"

	ds "github.com/wdm0006/datavis/pkg/dataset"
)

// Mean fills numeric gaps with the arithmetic mean. Int columns are
// filled with the mean rounded to the nearest integer.
type Mean struct{ Column string }

func (t *Mean) Name() string { return "impute_mean" }

func (t *Mean) Apply(ctx context.Context, f *ds.Frame) (*ds.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	switch c := col.(type) {
	case *ds.FloatColumn:
		var sum float64
		var n int
		for i := 0; i < c.Len(); i++ {
			if v, ok := c.Get(i); ok {
				sum += v
				n++
			}
		}
		if n == 0 {
			return f, nil
		}
		fillFloat(c, sum/float64(n))
	case *ds.IntColumn:
		var sum int64
		var n int
		for i := 0; i < c.Len(); i++ {
			if v, ok := c.Get(i); ok {
				sum += v
				n++
			}
		}
		if n == 0 {
			return f, nil
		}
		mean := math.Round(float64(sum) / float64(n))
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, int64(mean))
			}
		}
	}
	return f, nil
}
