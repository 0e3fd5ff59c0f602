package xlsxio

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	ds "github.com/wdm0006/datavis/pkg/dataset"
)

func workbook(t *testing.T, cells map[string]any) *bytes.Buffer {
	t.Helper()
	wb := excelize.NewFile()
	defer func() { _ = wb.Close() }()
	for ref, v := range cells {
		if err := wb.SetCellValue("Sheet1", ref, v); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func TestReadFirstSheet(t *testing.T) {
	buf := workbook(t, map[string]any{
		"A1": "age", "B1": "city",
		"A2": 25, "B2": "NY",
		"B3": "NY",
		"A4": 35, "B4": "LA",
	})
	f, err := Read(buf, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if f.Rows() != 3 || f.Cols() != 2 {
		t.Fatalf("expected 3x2, got %dx%d", f.Rows(), f.Cols())
	}
	age, _ := f.ColumnByName("age")
	if age.Kind() != ds.KindInt {
		t.Fatalf("expected int age, got %v", age.Kind())
	}
	if !age.IsNull(1) {
		t.Fatal("expected blank cell to be missing")
	}
	city, _ := f.ColumnByName("city")
	if city.Kind() != ds.KindString {
		t.Fatalf("expected string city, got %v", city.Kind())
	}
}

func TestReadPadsHeader(t *testing.T) {
	buf := workbook(t, map[string]any{"A1": "x", "A2": 1, "B2": 2.5})
	f, err := Read(buf, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Schema().Names(); len(got) != 2 || got[1] != "Unnamed: 1" {
		t.Fatalf("unexpected names %v", got)
	}
}

func TestReadRejectsGarbage(t *testing.T) {
	if _, err := Read(bytes.NewBufferString("not a workbook"), DefaultOptions()); err == nil {
		t.Fatal("expected error")
	}
}

func TestReadDateColumns(t *testing.T) {
	wb := excelize.NewFile()
	defer func() { _ = wb.Close() }()
	set := func(ref string, v any) {
		if err := wb.SetCellValue("Sheet1", ref, v); err != nil {
			t.Fatal(err)
		}
	}
	set("A1", "when")
	set("B1", "age")
	set("C1", "day")
	set("D1", "price")
	set("A2", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	set("A3", time.Date(2024, 2, 3, 12, 0, 0, 0, time.UTC))
	set("B2", 30)
	set("B3", 40)
	set("C2", 45293.0)
	set("D2", 1.5)
	set("D3", 2.25)

	iso := "yyyy-mm-dd"
	dayStyle, err := wb.NewStyle(&excelize.Style{CustomNumFmt: &iso})
	if err != nil {
		t.Fatal(err)
	}
	if err := wb.SetCellStyle("Sheet1", "C2", "C3", dayStyle); err != nil {
		t.Fatal(err)
	}
	money, err := wb.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		t.Fatal(err)
	}
	if err := wb.SetCellStyle("Sheet1", "D2", "D3", money); err != nil {
		t.Fatal(err)
	}
	buf, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	f, err := Read(buf, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	when, _ := f.ColumnByName("when")
	tc, ok := when.(*ds.TimeColumn)
	if !ok {
		t.Fatalf("expected time column, got %T", when)
	}
	if v, _ := tc.Get(0); v.Year() != 2024 || v.Month() != time.January || v.Day() != 2 {
		t.Fatalf("unexpected first date %v", v)
	}
	if v, _ := tc.Get(1); v.Month() != time.February || v.Hour() != 12 {
		t.Fatalf("unexpected second date %v", v)
	}
	day, _ := f.ColumnByName("day")
	if day.Kind() != ds.KindTime || !day.IsNull(1) {
		t.Fatalf("expected nullable time day, got %v", day.Kind())
	}

	ct := ds.InferTypes(f)
	if len(ct.Numeric) != 2 || ct.Numeric[0] != "age" || ct.Numeric[1] != "price" {
		t.Fatalf("expected numeric [age price], got %v", ct.Numeric)
	}
	if len(ct.Categorical) != 0 {
		t.Fatalf("expected no categorical columns, got %v", ct.Categorical)
	}
}

func TestIsDateCode(t *testing.T) {
	for code, want := range map[string]bool{
		"yyyy-mm-dd":          true,
		"[$-409]mmmm d, yyyy": true,
		"hh:mm:ss":            true,
		"0.00":                false,
		"#,##0;[Red]-#,##0":   false,
		`0.0 "days"`:          false,
		"General":             false,
	} {
		if got := isDateCode(code); got != want {
			t.Fatalf("%q: expected %v, got %v", code, want, got)
		}
	}
}
