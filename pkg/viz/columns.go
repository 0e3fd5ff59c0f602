package viz

import (
	"fmt"

	ds "github.com/wdm0006/datavis/pkg/dataset"
)

// numeric returns the values of an int or float column with a validity mask.
func numeric(f *ds.Frame, name string) ([]float64, []bool, error) {
	col, ok := f.ColumnByName(name)
	if !ok {
		return nil, nil, fmt.Errorf("unknown column: %s", name)
	}
	vals := make([]float64, col.Len())
	valid := make([]bool, col.Len())
	for i := range vals {
		switch v := col.Value(i).(type) {
		case float64:
			vals[i], valid[i] = v, true
		case int64:
			vals[i], valid[i] = float64(v), true
		case nil:
		default:
			return nil, nil, fmt.Errorf("column %s is not numeric (%v)", name, col.Kind())
		}
	}
	return vals, valid, nil
}

func compact(vals []float64, valid []bool) []float64 {
	out := make([]float64, 0, len(vals))
	for i, v := range vals {
		if valid[i] {
			out = append(out, v)
		}
	}
	return out
}

// levels returns the distinct values of a string column in first-appearance
// order and each row's level index (-1 when missing).
func levels(f *ds.Frame, name string) ([]string, []int, error) {
	col, ok := f.ColumnByName(name)
	if !ok {
		return nil, nil, fmt.Errorf("unknown column: %s", name)
	}
	sc, ok := col.(*ds.StringColumn)
	if !ok {
		return nil, nil, fmt.Errorf("column %s is not categorical (%v)", name, col.Kind())
	}
	var names []string
	seen := map[string]int{}
	idx := make([]int, sc.Len())
	for i := range idx {
		v, ok := sc.Get(i)
		if !ok {
			idx[i] = -1
			continue
		}
		l, found := seen[v]
		if !found {
			l = len(names)
			seen[v] = l
			names = append(names, v)
		}
		idx[i] = l
	}
	return names, idx, nil
}
