package jsonlio

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	ds "github.com/wdm0006/datavis/pkg/dataset"
)

func TestJSONLInferAndRead(t *testing.T) {
	p := filepath.FromSlash("testdata/sample.jsonl")
	r, f, err := Open(p)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()
	fr, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if fr.Rows() != 3 {
		t.Fatalf("expected 3 rows, got %d", fr.Rows())
	}
	want := []string{"id", "name", "score", "active"}
	got := fr.Schema().Names()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected columns %v, got %v", want, got)
	}
	kinds := []ds.Kind{ds.KindInt, ds.KindString, ds.KindFloat, ds.KindBool}
	for i, cs := range fr.Schema().Columns {
		if cs.Type != kinds[i] {
			t.Fatalf("column %s: expected %v, got %v", cs.Name, kinds[i], cs.Type)
		}
	}
	score, _ := fr.ColumnByName("score")
	if !score.IsNull(1) {
		t.Fatal("expected null score to be missing")
	}
	name, _ := fr.ColumnByName("name")
	if !name.IsNull(2) {
		t.Fatal("expected absent name to be missing")
	}
}

func TestReadRejectsNonObject(t *testing.T) {
	r, err := NewReader(strings.NewReader("[1,2]\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.ReadAll(); err == nil {
		t.Fatal("expected error for array record")
	}
}

func TestWriteKeepsColumnOrder(t *testing.T) {
	r, err := NewReader(strings.NewReader(`{"b":1,"a":"x"}` + "\n" + `{"b":null,"a":"y"}` + "\n"))
	if err != nil {
		t.Fatal(err)
	}
	fr, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, fr); err != nil {
		t.Fatal(err)
	}
	want := `{"b":1,"a":"x"}` + "\n" + `{"b":null,"a":"y"}` + "\n"
	if buf.String() != want {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestBoolWithGapIsText(t *testing.T) {
	r, err := NewReader(strings.NewReader(`{"flag":true}` + "\n" + `{"flag":null}` + "\n" + `{"flag":false}` + "\n"))
	if err != nil {
		t.Fatal(err)
	}
	fr, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	flag, _ := fr.ColumnByName("flag")
	if flag.Kind() != ds.KindString {
		t.Fatalf("expected string flag, got %v", flag.Kind())
	}
	if v := flag.Value(2); v != "false" || !flag.IsNull(1) {
		t.Fatalf("unexpected cells %v / null=%v", v, flag.IsNull(1))
	}
}
