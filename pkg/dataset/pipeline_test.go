package dataset_test

import (
	"context"
	"errors"
	"testing"

	ds "github.com/wdm0006/datavis/pkg/dataset"
	imp "github.com/wdm0006/datavis/pkg/transform/impute"
	"github.com/wdm0006/datavis/pkg/transform/prune"
)

func TestPipeline(t *testing.T) {
	s := ds.Schema{Columns: []ds.ColumnSchema{
		{Name: "x", Type: ds.KindFloat, Nullable: true},
		{Name: "s", Type: ds.KindString, Nullable: true},
		{Name: "empty", Type: ds.KindString, Nullable: true},
	}}
	f := ds.NewFrame(s)
	for i := 0; i < 3; i++ {
		f.AppendNullRow()
	}
	_ = f.SetCell(0, "x", 1.0)
	_ = f.SetCell(2, "x", 3.0)
	_ = f.SetCell(0, "s", "a")
	// row 1 left nulls

	p := ds.NewPipeline().Add(&prune.DropEmpty{}).Add(&imp.Median{Column: "x"}).Add(&imp.Mode{Column: "s"})
	if got := p.Steps(); len(got) != 3 {
		t.Fatalf("steps = %v", got)
	}
	out, err := p.Run(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := out.ColumnByName("empty"); ok {
		t.Fatal("empty column survived")
	}
	colX, _ := out.ColumnByName("x")
	if v, ok := colX.(*ds.FloatColumn).Get(1); !ok || v != 2 {
		t.Fatalf("median fill got %v %v", v, ok)
	}
	colS, _ := out.ColumnByName("s")
	if v, _ := colS.(*ds.StringColumn).Get(2); v != "a" {
		t.Fatalf("mode fill got %q", v)
	}
}

type failing struct{}

func (failing) Name() string { return "fail" }
func (failing) Apply(ctx context.Context, f *ds.Frame) (*ds.Frame, error) {
	return nil, errors.New("boom")
}

func TestPipelineStops(t *testing.T) {
	f := ds.NewFrame(ds.Schema{})
	if _, err := ds.NewPipeline().Add(failing{}).Run(context.Background(), f); err == nil || err.Error() != "boom" {
		t.Fatalf("want boom, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ds.NewPipeline().Add(&prune.DropEmpty{}).Run(ctx, f); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}
