package parquetio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	parquet "github.com/segmentio/parquet-go"

	ds "github.com/wdm0006/datavis/pkg/dataset"
)

// Open reads a whole Parquet file from disk.
func Open(path string) (*ds.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return Read(f, st.Size())
}

// Read decodes every row group of a Parquet file. Leaf columns keep file
// order; nested leaves are named by their dotted path. Byte arrays become
// strings and 32-bit numbers widen to int64/float64.
func Read(r io.ReaderAt, size int64) (*ds.Frame, error) {
	pf, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("parquet: %w", err)
	}
	schema := pf.Schema()
	paths := schema.Columns()
	fs := ds.Schema{Columns: make([]ds.ColumnSchema, len(paths))}
	leaves := make([]leafKind, len(paths))
	for i, path := range paths {
		leaf, _ := schema.Lookup(path...)
		leaves[i] = leafKindOf(leaf.Node.Type())
		fs.Columns[i] = ds.ColumnSchema{
			Name:     strings.Join(path, "."),
			Type:     leaves[i].kind,
			Nullable: true,
		}
	}
	out := ds.NewFrame(fs)
	rdr := parquet.NewReader(pf)
	defer func() { _ = rdr.Close() }()
	buf := make([]parquet.Row, 256)
	for {
		n, err := rdr.ReadRows(buf)
		for _, row := range buf[:n] {
			out.AppendNullRow()
			setRow(out, out.Rows()-1, fs, leaves, row)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("parquet: %w", err)
		}
		if n == 0 {
			break
		}
	}
	return out, nil
}

// leafKind is the frame kind of a leaf plus how its instants are encoded.
type leafKind struct {
	kind ds.Kind
	date bool          // days since the Unix epoch
	unit time.Duration // timestamp resolution
}

// leafKindOf maps DATE and TIMESTAMP leaves (logical or legacy converted
// annotations) to time columns; everything else follows the physical type.
func leafKindOf(t parquet.Type) leafKind {
	if lt := t.LogicalType(); lt != nil {
		switch {
		case lt.Date != nil:
			return leafKind{kind: ds.KindTime, date: true}
		case lt.Timestamp != nil:
			u := lt.Timestamp.Unit
			switch {
			case u.Millis != nil:
				return leafKind{kind: ds.KindTime, unit: time.Millisecond}
			case u.Micros != nil:
				return leafKind{kind: ds.KindTime, unit: time.Microsecond}
			default:
				return leafKind{kind: ds.KindTime, unit: time.Nanosecond}
			}
		}
	}
	return leafKind{kind: kindOf(t.Kind())}
}

func kindOf(k parquet.Kind) ds.Kind {
	switch k {
	case parquet.Boolean:
		return ds.KindBool
	case parquet.Int32, parquet.Int64:
		return ds.KindInt
	case parquet.Float, parquet.Double:
		return ds.KindFloat
	default:
		return ds.KindString
	}
}

func setRow(f *ds.Frame, row int, fs ds.Schema, leaves []leafKind, values parquet.Row) {
	filled := make([]bool, len(fs.Columns))
	for _, v := range values {
		c := v.Column()
		// repeated leaves keep their first value
		if c < 0 || c >= len(fs.Columns) || filled[c] || v.IsNull() {
			continue
		}
		filled[c] = true
		name := fs.Columns[c].Name
		if leaves[c].kind == ds.KindTime {
			_ = f.SetCell(row, name, instant(leaves[c], v))
			continue
		}
		switch v.Kind() {
		case parquet.Boolean:
			_ = f.SetCell(row, name, v.Boolean())
		case parquet.Int32:
			_ = f.SetCell(row, name, int64(v.Int32()))
		case parquet.Int64:
			_ = f.SetCell(row, name, v.Int64())
		case parquet.Float:
			_ = f.SetCell(row, name, float64(v.Float()))
		case parquet.Double:
			_ = f.SetCell(row, name, v.Double())
		case parquet.ByteArray, parquet.FixedLenByteArray:
			_ = f.SetCell(row, name, string(v.ByteArray()))
		default:
			_ = f.SetCell(row, name, v.String())
		}
	}
}

func instant(lk leafKind, v parquet.Value) time.Time {
	if lk.date {
		return time.Unix(0, 0).UTC().AddDate(0, 0, int(v.Int32()))
	}
	n := v.Int64()
	switch lk.unit {
	case time.Millisecond:
		return time.UnixMilli(n).UTC()
	case time.Microsecond:
		return time.UnixMicro(n).UTC()
	default:
		return time.Unix(0, n).UTC()
	}
}
