package prune

import (
	"context"

	ds "github.com/wdm0006/datavis/pkg/dataset"
)

// DropEmpty removes every column whose cells are all missing. A frame with
// no rows loses all of its columns.
type DropEmpty struct{}

func (t *DropEmpty) Name() string { return "drop_empty" }

func (t *DropEmpty) Apply(ctx context.Context, f *ds.Frame) (*ds.Frame, error) {
	var empty []string
	for _, c := range f.Columns() {
		if ds.NullCount(c) == c.Len() {
			empty = append(empty, c.Name())
		}
	}
	for _, name := range empty {
		f.DropColumn(name)
	}
	return f, nil
}
