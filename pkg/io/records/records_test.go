package records

import (
	"testing"

	ds "github.com/wdm0006/datavis/pkg/dataset"
)

func TestInferKinds(t *testing.T) {
	rows := [][]string{
		{"1", "1.5", "x", "true", "", "7"},
		{"2", "NA", "y", "False", "NaN", "oops"},
		{"", "3", "", "TRUE", "null", "8"},
	}
	got := InferKinds(rows, 6)
	want := []ds.Kind{ds.KindInt, ds.KindFloat, ds.KindString, ds.KindBool, ds.KindFloat, ds.KindString}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("column %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestNames(t *testing.T) {
	got := Names([]string{"\ufeffid", "a", "a", "", "a"}, 6)
	want := []string{"id", "a", "a.1", "Unnamed: 3", "a.2", "Unnamed: 5"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("name %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestBuild(t *testing.T) {
	f, st := Build([]string{"age", "city"}, [][]string{{"25", "NY"}, {"NaN", "NY"}, {"35"}})
	if f.Rows() != 3 {
		t.Fatalf("expected 3 rows, got %d", f.Rows())
	}
	if st.ShortRecords != 1 {
		t.Fatalf("expected 1 short record, got %d", st.ShortRecords)
	}
	age, _ := f.ColumnByName("age")
	if age.Kind() != ds.KindInt || !age.IsNull(1) {
		t.Fatalf("age not parsed as nullable int: kind=%v", age.Kind())
	}
	city, _ := f.ColumnByName("city")
	if !city.IsNull(2) {
		t.Fatal("padded cell should be missing")
	}
}

func TestBoolWithGapIsString(t *testing.T) {
	rows := [][]string{{"True", "1"}, {"", "2"}, {"False", "3"}, {"True"}}
	kinds := InferKinds(rows, 2)
	if kinds[0] != ds.KindString {
		t.Fatalf("gappy bool: expected string, got %v", kinds[0])
	}
	full := InferKinds([][]string{{"True"}, {"false"}}, 1)
	if full[0] != ds.KindBool {
		t.Fatalf("complete bool: expected bool, got %v", full[0])
	}

	f, _ := Build([]string{"flag", "age"}, rows)
	ct := ds.InferTypes(f)
	if !ct.IsCategorical("flag") || !ct.IsNumeric("age") {
		t.Fatalf("unexpected partition %+v", ct)
	}
	flag, _ := f.ColumnByName("flag")
	if flag.Value(0) != "True" || !flag.IsNull(1) || !flag.IsNull(3) {
		t.Fatal("flag cells not kept as text with gaps")
	}
}

func TestBuildKindsTime(t *testing.T) {
	rows := [][]string{{"2024-01-02T00:00:00Z", "1"}, {"", "2"}, {"garbage", "3"}}
	f, _ := BuildKinds([]string{"when", "n"}, rows, []ds.Kind{ds.KindTime, ds.KindInt})
	when, _ := f.ColumnByName("when")
	tc, ok := when.(*ds.TimeColumn)
	if !ok {
		t.Fatalf("expected time column, got %T", when)
	}
	v, ok := tc.Get(0)
	if !ok || v.Year() != 2024 || v.Month() != 1 || v.Day() != 2 {
		t.Fatalf("unexpected time %v", v)
	}
	if !tc.IsNull(1) || !tc.IsNull(2) {
		t.Fatal("blank and unparsable cells should be missing")
	}
	if ct := ds.InferTypes(f); ct.IsNumeric("when") || ct.IsCategorical("when") {
		t.Fatalf("time column leaked into %+v", ct)
	}
}
