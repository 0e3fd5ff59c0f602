package impute

import (
	"context"
	"testing"

	ds "github.com/wdm0006/datavis/pkg/dataset"
)

func makeLargeFloatFrame(n int) *ds.Frame {
	s := ds.Schema{Columns: []ds.ColumnSchema{{Name: "x", Type: ds.KindFloat, Nullable: true}}}
	f := ds.NewFrame(s)
	for i := 0; i < n; i++ {
		f.AppendNullRow()
	}
	col, _ := f.ColumnByName("x")
	c := col.(*ds.FloatColumn)
	for i := 0; i < n; i += 2 {
		c.Set(i, float64(i%10))
	}
	return f
}

func BenchmarkImputeMedian(b *testing.B) {
	base := makeLargeFloatFrame(10000)
	for n := 0; n < b.N; n++ {
		f := base.Clone()
		tform := &Median{Column: "x"}
		if _, err := tform.Apply(context.Background(), f); err != nil {
			b.Fatal(err)
		}
	}
}
