package impute

import (
	"context"

	ds "github.com/wdm0006/datavis/pkg/dataset"
)

// Mode fills missing cells with the most frequent non-missing value. Among
// values sharing the top count, the one seen first in row order wins.
type Mode struct{ Column string }

func (t *Mode) Name() string { return "impute_mode" }

func (t *Mode) Apply(ctx context.Context, f *ds.Frame) (*ds.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	switch c := col.(type) {
	case *ds.StringColumn:
		vals := make([]string, 0, c.Len())
		for i := 0; i < c.Len(); i++ {
			if v, ok := c.Get(i); ok {
				vals = append(vals, v)
			}
		}
		best, ok := ModeOf(vals)
		if !ok {
			return f, nil
		}
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, best)
			}
		}
	case *ds.BoolColumn:
		vals := make([]bool, 0, c.Len())
		for i := 0; i < c.Len(); i++ {
			if v, ok := c.Get(i); ok {
				vals = append(vals, v)
			}
		}
		best, ok := ModeOf(vals)
		if !ok {
			return f, nil
		}
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, best)
			}
		}
	case *ds.IntColumn:
		vals := make([]int64, 0, c.Len())
		for i := 0; i < c.Len(); i++ {
			if v, ok := c.Get(i); ok {
				vals = append(vals, v)
			}
		}
		best, ok := ModeOf(vals)
		if !ok {
			return f, nil
		}
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, best)
			}
		}
	}
	return f, nil
}

// ModeOf returns the most frequent element of vals, breaking ties by first
// occurrence. ok is false for an empty slice.
func ModeOf[T comparable](vals []T) (best T, ok bool) {
	if len(vals) == 0 {
		return best, false
	}
	counts := make(map[T]int, len(vals))
	top := 0
	for _, v := range vals {
		counts[v]++
		if counts[v] > top {
			top = counts[v]
		}
	}
	for _, v := range vals {
		if counts[v] == top {
			return v, true
		}
	}
	return best, false
}
