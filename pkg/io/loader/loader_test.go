package loader

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	ds "github.com/wdm0006/datavis/pkg/dataset"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		name string
		want Format
		err  bool
	}{
		{"data.csv", FormatCSV, false},
		{"DATA.CSV", FormatCSV, false},
		{"data.csv.gz", FormatCSV, false},
		{"notes.txt", FormatCSV, false},
		{"data.tsv", FormatTSV, false},
		{"book.xlsx", FormatExcel, false},
		{"book.xls", FormatExcel, false},
		{"events.ndjson", FormatJSONL, false},
		{"events.jsonl.gz", FormatJSONL, false},
		{"table.parquet", FormatParquet, false},
		{"table.parquet.gz", "", true},
		{"image.png", "", true},
		{"noext", "", true},
	}
	for _, tc := range cases {
		got, err := Detect(tc.name)
		if tc.err {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Fatalf("%s: expected ErrUnsupportedFormat, got %v", tc.name, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("%s: expected %s, got %s (%v)", tc.name, tc.want, got, err)
		}
	}
}

func TestLoadCSV(t *testing.T) {
	f, err := Load("people.csv", strings.NewReader("age,city\n25,NY\n,NY\n35,\n"))
	if err != nil {
		t.Fatal(err)
	}
	if f.Rows() != 3 || f.Cols() != 2 {
		t.Fatalf("expected 3x2, got %dx%d", f.Rows(), f.Cols())
	}
}

func TestLoadTSV(t *testing.T) {
	f, err := Load("people.tsv", strings.NewReader("a,b\tc\n1\t2\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Schema().Names(); len(got) != 2 || got[0] != "a,b" {
		t.Fatalf("unexpected names %v", got)
	}
}

func TestLoadJSONL(t *testing.T) {
	f, err := Load("rows.jsonl", strings.NewReader(`{"x":1}`+"\n"+`{"x":2}`+"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if f.Rows() != 2 {
		t.Fatalf("expected 2 rows, got %d", f.Rows())
	}
}

func TestLoadWrapsReaderErrors(t *testing.T) {
	_, err := Load("broken.xlsx", strings.NewReader("nope"))
	if err == nil || !strings.Contains(err.Error(), "broken.xlsx (excel)") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestLoadExcelDatesAreNotNumeric(t *testing.T) {
	wb := excelize.NewFile()
	defer func() { _ = wb.Close() }()
	cells := map[string]any{
		"A1": "when", "B1": "age", "C1": "city",
		"A2": time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), "B2": 30, "C2": "NY",
		"A3": time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), "B3": 41, "C3": "LA",
	}
	for ref, v := range cells {
		if err := wb.SetCellValue("Sheet1", ref, v); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	f, err := Load("book.xlsx", buf)
	if err != nil {
		t.Fatal(err)
	}
	ct := ds.InferTypes(f)
	if len(ct.Numeric) != 1 || ct.Numeric[0] != "age" {
		t.Fatalf("expected numeric [age], got %v", ct.Numeric)
	}
	if len(ct.Categorical) != 1 || ct.Categorical[0] != "city" {
		t.Fatalf("expected categorical [city], got %v", ct.Categorical)
	}
}
