// Package xlsxio loads the first worksheet of an Excel workbook.
package xlsxio

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	ds "github.com/wdm0006/datavis/pkg/dataset"
	"github.com/wdm0006/datavis/pkg/io/records"
)

// ErrNoSheets is returned for a workbook without worksheets.
var ErrNoSheets = errors.New("xlsx: workbook has no sheets")

type ReaderOptions struct {
	Sheet     string // empty = first sheet
	HasHeader bool
}

func DefaultOptions() ReaderOptions { return ReaderOptions{HasHeader: true} }

// Read parses a workbook and types the chosen sheet like a CSV file. Raw cell
// values are used so numbers keep full precision; a column whose every value
// is a date-formatted number (or an ISO date cell) becomes a time column.
func Read(r io.Reader, opt ReaderOptions) (*ds.Frame, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	defer func() { _ = wb.Close() }()
	sheet := opt.Sheet
	if sheet == "" {
		list := wb.GetSheetList()
		if len(list) == 0 {
			return nil, ErrNoSheets
		}
		sheet = list[0]
	}
	rows, err := wb.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("xlsx sheet %q: %w", sheet, err)
	}
	ncol := 0
	for _, row := range rows {
		if len(row) > ncol {
			ncol = len(row)
		}
	}
	if len(rows) == 0 || ncol == 0 {
		f, _ := ds.FromColumns()
		return f, nil
	}
	var names []string
	first := 0
	if opt.HasHeader {
		// excelize trims trailing empty cells, so widen the header to the data
		names = records.Names(rows[0], ncol)
		first = 1
	} else {
		names = records.Generic(ncol)
	}
	data := rows[first:]
	kinds := records.InferKinds(data, ncol)
	dc := newDateCells(wb, sheet)
	for c := 0; c < ncol; c++ {
		if dc.convert(data, first, c) {
			kinds[c] = ds.KindTime
		}
	}
	f, _ := records.BuildKinds(names, data, kinds)
	return f, nil
}

// dateCells classifies cells by their number format, caching per style id.
type dateCells struct {
	wb       *excelize.File
	sheet    string
	date1904 bool
	styles   map[int]bool
}

func newDateCells(wb *excelize.File, sheet string) *dateCells {
	d := &dateCells{wb: wb, sheet: sheet, styles: map[int]bool{}}
	if props, err := wb.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

// convert rewrites column c of data as RFC 3339 text when every non-missing
// cell holds a date. offset is the sheet row of data[0], zero based.
func (d *dateCells) convert(data [][]string, offset, c int) bool {
	var times []time.Time
	var at []int
	for r, row := range data {
		if c >= len(row) || records.IsMissing(strings.TrimSpace(row[c])) {
			continue
		}
		t, ok := d.cell(c+1, r+offset+1, strings.TrimSpace(row[c]))
		if !ok {
			return false
		}
		times = append(times, t)
		at = append(at, r)
	}
	if len(times) == 0 {
		return false
	}
	for i, r := range at {
		data[r][c] = times[i].Format(time.RFC3339Nano)
	}
	return true
}

func (d *dateCells) cell(col, row int, raw string) (time.Time, bool) {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return time.Time{}, false
	}
	if typ, err := d.wb.GetCellType(d.sheet, ref); err == nil && typ == excelize.CellTypeDate {
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return time.Time{}, false
	}
	id, err := d.wb.GetCellStyle(d.sheet, ref)
	if err != nil || !d.isDateStyle(id) {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, d.date1904)
	return t, err == nil
}

func (d *dateCells) isDateStyle(id int) bool {
	if v, ok := d.styles[id]; ok {
		return v
	}
	v := false
	if st, err := d.wb.GetStyle(id); err == nil && st != nil {
		v = isDateFormat(st.NumFmt, st.CustomNumFmt)
	}
	d.styles[id] = v
	return v
}

// isDateFormat reports whether a number format renders dates or times.
// Built-in ids follow the OOXML table, including the CJK date ids.
func isDateFormat(id int, custom *string) bool {
	if custom != nil {
		return isDateCode(*custom)
	}
	switch {
	case id >= 14 && id <= 22, id >= 27 && id <= 36, id >= 45 && id <= 47, id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateCode looks for date or time tokens outside quoted text, escapes and
// bracketed sections such as locale or colour tags.
func isDateCode(code string) bool {
	section := code
	if i := strings.IndexByte(code, ';'); i >= 0 {
		section = code[:i]
	}
	quoted, bracket := false, false
	for i := 0; i < len(section); i++ {
		ch := section[i]
		switch {
		case quoted:
			quoted = ch != '"'
		case bracket:
			bracket = ch != ']'
		case ch == '"':
			quoted = true
		case ch == '[':
			bracket = true
		case ch == '\\' || ch == '_' || ch == '*':
			i++
		default:
			switch ch | 0x20 {
			case 'y', 'd', 'h', 's':
				return true
			}
		}
	}
	return false
}
