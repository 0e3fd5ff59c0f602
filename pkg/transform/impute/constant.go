package impute

import (
	"context"

	ds "github.com/wdm0006/datavis/pkg/dataset"
)

// Constant fills the gaps of a text column with a fixed label. It is meant
// for columns that have no values to take a mode from.
type Constant struct {
	Column string
	Value  string
}

func (t *Constant) Name() string { return "impute_constant" }

func (t *Constant) Apply(ctx context.Context, f *ds.Frame) (*ds.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	c, ok := col.(*ds.StringColumn)
	if !ok {
		return f, nil
	}
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			c.Set(i, t.Value)
		}
	}
	return f, nil
}
