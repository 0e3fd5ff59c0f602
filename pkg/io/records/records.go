// Package records turns rows of text cells (CSV records, spreadsheet rows)
// into a typed Frame.
package records

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	ds "github.com/wdm0006/datavis/pkg/dataset"
)

var numre = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

// missing holds the cell spellings read as a missing value.
var missing = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "n/a": {}, "NaN": {}, "nan": {}, "-NaN": {}, "-nan": {},
	"null": {}, "NULL": {}, "None": {}, "#N/A": {}, "#NA": {}, "<NA>": {}, "#N/A N/A": {},
	"-1.#IND": {}, "1.#QNAN": {}, "-1.#QNAN": {}, "1.#IND": {},
}

// IsMissing reports whether a trimmed cell denotes a missing value.
func IsMissing(v string) bool {
	_, ok := missing[v]
	return ok
}

// Stats counts repairs made while building a frame.
type Stats struct {
	ShortRecords int
	LongRecords  int
}

// Names normalises a header row: invalid UTF-8 is replaced, a leading BOM is
// stripped, blank names become "Unnamed: i" and duplicates get ".1", ".2".
func Names(header []string, ncol int) []string {
	if ncol < len(header) {
		ncol = len(header)
	}
	names := make([]string, ncol)
	seen := map[string]int{}
	for i := 0; i < ncol; i++ {
		n := ""
		if i < len(header) {
			n = strings.TrimSpace(strings.ToValidUTF8(header[i], "?"))
		}
		if i == 0 {
			n = strings.TrimPrefix(n, "\ufeff")
		}
		if n == "" {
			n = "Unnamed: " + strconv.Itoa(i)
		}
		base := n
		for seen[n] > 0 {
			n = base + "." + strconv.Itoa(seen[base])
			seen[base]++
		}
		seen[n]++
		names[i] = n
	}
	return names
}

// Generic returns positional names col_0..col_{n-1}.
func Generic(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = "col_" + strconv.Itoa(i)
	}
	return names
}

// InferKinds picks a storage kind per column from every non-missing cell:
// int when all parse as integers, float when all are numeric, bool when all
// are true/false and none is missing, string otherwise. A true/false column
// with gaps is string, the way pandas falls back to object. Columns with no
// values are float, the same as an all-NaN column.
func InferKinds(rows [][]string, ncol int) []ds.Kind {
	kinds := make([]ds.Kind, ncol)
	for c := 0; c < ncol; c++ {
		seen, num, integer, boolean := 0, 0, 0, 0
		for _, row := range rows {
			if c >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[c])
			if IsMissing(v) {
				continue
			}
			seen++
			if numre.MatchString(v) {
				num++
				if _, err := strconv.ParseInt(v, 10, 64); err == nil {
					integer++
				}
				continue
			}
			lv := strings.ToLower(v)
			if lv == "true" || lv == "false" {
				boolean++
			}
		}
		switch {
		case seen == 0:
			kinds[c] = ds.KindFloat
		case integer == seen:
			kinds[c] = ds.KindInt
		case num == seen:
			kinds[c] = ds.KindFloat
		case boolean == seen && seen == len(rows):
			kinds[c] = ds.KindBool
		default:
			kinds[c] = ds.KindString
		}
	}
	return kinds
}

// Build infers a schema for rows and loads them into a frame. Short rows are
// padded with missing cells and extra cells are ignored; both are counted.
func Build(names []string, rows [][]string) (*ds.Frame, Stats) {
	return BuildKinds(names, rows, InferKinds(rows, len(names)))
}

// BuildKinds loads rows with caller-chosen kinds. Time cells must be RFC 3339
// text; cells that do not parse as their column's kind are left missing.
func BuildKinds(names []string, rows [][]string, kinds []ds.Kind) (*ds.Frame, Stats) {
	var st Stats
	schema := ds.Schema{Columns: make([]ds.ColumnSchema, len(names))}
	for i := range names {
		schema.Columns[i] = ds.ColumnSchema{Name: names[i], Type: kinds[i], Nullable: true}
	}
	f := ds.NewFrame(schema)
	for _, rec := range rows {
		if len(rec) < len(names) {
			st.ShortRecords++
		} else if len(rec) > len(names) {
			st.LongRecords++
		}
		f.AppendNullRow()
		row := f.Rows() - 1
		for i, cs := range schema.Columns {
			if i >= len(rec) {
				break
			}
			val := strings.ToValidUTF8(strings.TrimSpace(rec[i]), "?")
			if IsMissing(val) {
				continue
			}
			switch cs.Type {
			case ds.KindFloat:
				if x, err := strconv.ParseFloat(val, 64); err == nil {
					_ = f.SetCell(row, cs.Name, x)
				}
			case ds.KindInt:
				if x, err := strconv.ParseInt(val, 10, 64); err == nil {
					_ = f.SetCell(row, cs.Name, x)
				}
			case ds.KindBool:
				if x, err := strconv.ParseBool(strings.ToLower(val)); err == nil {
					_ = f.SetCell(row, cs.Name, x)
				}
			case ds.KindTime:
				if x, err := time.Parse(time.RFC3339Nano, val); err == nil {
					_ = f.SetCell(row, cs.Name, x)
				}
			default:
				_ = f.SetCell(row, cs.Name, val)
			}
		}
	}
	return f, st
}
