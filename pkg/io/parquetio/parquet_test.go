package parquetio

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	parquet "github.com/segmentio/parquet-go"

	ds "github.com/wdm0006/datavis/pkg/dataset"
)

func TestSchemaJSON(t *testing.T) {
	s := ds.Schema{Columns: []ds.ColumnSchema{
		{Name: "x", Type: ds.KindFloat},
		{Name: "n", Type: ds.KindInt},
		{Name: "ok", Type: ds.KindBool},
		{Name: "s", Type: ds.KindString},
		{Name: "when", Type: ds.KindTime},
	}}
	got := parquetSchemaJSON(s)
	for _, want := range []string{
		"name=x, repetitiontype=OPTIONAL, type=DOUBLE",
		"name=n, repetitiontype=OPTIONAL, type=INT64",
		"name=ok, repetitiontype=OPTIONAL, type=BOOLEAN",
		"name=s, repetitiontype=OPTIONAL, type=UTF8",
		"name=when, repetitiontype=OPTIONAL, type=TIMESTAMP_MILLIS",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("schema %s missing %q", got, want)
		}
	}
}

func TestWriteThenRead(t *testing.T) {
	f := makeFrame(10)
	f.Columns()[0].SetNull(3)
	path := filepath.Join(t.TempDir(), "frame.parquet")
	if err := WriteAll(path, f); err != nil {
		t.Fatal(err)
	}
	back, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.Rows() != 10 || back.Cols() != 2 {
		t.Fatalf("expected 10x2, got %dx%d", back.Rows(), back.Cols())
	}
	a, ok := back.ColumnByName("a")
	if !ok || a.Kind() != ds.KindFloat {
		t.Fatal("expected float column a")
	}
	if !a.IsNull(3) {
		t.Fatal("expected null to survive the round trip")
	}
	b, _ := back.ColumnByName("b")
	if v := b.Value(7); v != int64(7) {
		t.Fatalf("expected 7, got %v", v)
	}
}

func TestRoundTripTextBoolTime(t *testing.T) {
	day := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	when := ds.NewTimeColumn("when", 3)
	when.Set(0, day)
	when.Set(2, day.AddDate(0, 1, 1))
	name := ds.NewStringColumn("name", 3)
	name.Set(0, "alice")
	name.Set(1, "bob")
	ok := ds.NewBoolColumn("ok", 3)
	ok.Set(0, true)
	ok.Set(1, false)
	ok.Set(2, true)
	f, err := ds.FromColumns(when, name, ok)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "mixed.parquet")
	if err := WriteAll(path, f); err != nil {
		t.Fatal(err)
	}
	back, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	col, _ := back.ColumnByName("when")
	tc, isTime := col.(*ds.TimeColumn)
	if !isTime {
		t.Fatalf("expected time column, got %T", col)
	}
	if v, _ := tc.Get(0); !v.Equal(day) {
		t.Fatalf("expected %v, got %v", day, v)
	}
	if !tc.IsNull(1) {
		t.Fatal("expected missing timestamp to survive")
	}
	if v := back.Columns()[1].Value(1); v != "bob" {
		t.Fatalf("expected bob, got %v", v)
	}
	ct := ds.InferTypes(back)
	if ct.IsNumeric("when") || ct.IsCategorical("when") {
		t.Fatalf("timestamp leaked into %+v", ct)
	}
	if !ct.IsCategorical("name") {
		t.Fatalf("expected name categorical, got %+v", ct)
	}
}

func TestLeafKindOf(t *testing.T) {
	cases := []struct {
		node parquet.Node
		want leafKind
	}{
		{parquet.Date(), leafKind{kind: ds.KindTime, date: true}},
		{parquet.Timestamp(parquet.Millisecond), leafKind{kind: ds.KindTime, unit: time.Millisecond}},
		{parquet.Timestamp(parquet.Microsecond), leafKind{kind: ds.KindTime, unit: time.Microsecond}},
		{parquet.Timestamp(parquet.Nanosecond), leafKind{kind: ds.KindTime, unit: time.Nanosecond}},
		{parquet.Int(64), leafKind{kind: ds.KindInt}},
		{parquet.String(), leafKind{kind: ds.KindString}},
	}
	for _, c := range cases {
		if got := leafKindOf(c.node.Type()); got != c.want {
			t.Fatalf("%v: expected %+v, got %+v", c.node.Type(), c.want, got)
		}
	}
	if got := instant(leafKind{kind: ds.KindTime, date: true}, parquet.Int32Value(19724)); !got.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", got)
	}
}
