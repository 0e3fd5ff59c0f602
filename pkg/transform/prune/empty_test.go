package prune

import (
	"context"
	"testing"

	ds "github.com/wdm0006/datavis/pkg/dataset"
)

func TestDropEmpty(t *testing.T) {
	s := ds.Schema{Columns: []ds.ColumnSchema{
		{Name: "a", Type: ds.KindFloat, Nullable: true},
		{Name: "gone", Type: ds.KindString, Nullable: true},
		{Name: "b", Type: ds.KindString, Nullable: true},
	}}
	f := ds.NewFrame(s)
	for i := 0; i < 2; i++ {
		f.AppendNullRow()
	}
	_ = f.SetCell(1, "a", 2.0)
	_ = f.SetCell(0, "b", "x")

	out, err := (&DropEmpty{}).Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	if out.Cols() != 2 {
		t.Fatalf("expected 2 columns, got %d", out.Cols())
	}
	if _, ok := out.ColumnByName("gone"); ok {
		t.Fatal("all-missing column survived")
	}
	if _, ok := out.ColumnByName("b"); !ok {
		t.Fatal("column b lost after reindex")
	}
}

func TestDropEmptyZeroRows(t *testing.T) {
	s := ds.Schema{Columns: []ds.ColumnSchema{{Name: "a", Type: ds.KindInt, Nullable: true}}}
	out, err := (&DropEmpty{}).Apply(context.Background(), ds.NewFrame(s))
	if err != nil {
		t.Fatal(err)
	}
	if out.Cols() != 0 {
		t.Fatalf("expected every column dropped, got %d", out.Cols())
	}
}
