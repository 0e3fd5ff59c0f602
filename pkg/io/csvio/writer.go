package csvio

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	ds "github.com/wdm0006/datavis/pkg/dataset"
	iox "github.com/wdm0006/datavis/pkg/io/ioutils"
)

type WriterOptions struct {
	Delimiter rune // default ','
}

// WriteAll writes a Frame to a CSV file (gzip when the path ends in .gz).
func WriteAll(path string, f *ds.Frame, opt WriterOptions) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	if err := Write(out, f, opt); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// Write encodes a Frame as CSV with a header row. Missing cells are empty.
func Write(out io.Writer, f *ds.Frame, opt WriterOptions) error {
	w := csv.NewWriter(out)
	if opt.Delimiter != 0 {
		w.Comma = opt.Delimiter
	}
	if err := w.Write(f.Schema().Names()); err != nil {
		return err
	}
	cols := f.Columns()
	row := make([]string, len(cols))
	for r := 0; r < f.Rows(); r++ {
		for c, col := range cols {
			row[c] = FormatCell(col.Value(r))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// FormatCell renders a cell value the way the CSV writer does.
func FormatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case string:
		return t
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return ""
	}
}
