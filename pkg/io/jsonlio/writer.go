package jsonlio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"time"

	ds "github.com/wdm0006/datavis/pkg/dataset"
	iox "github.com/wdm0006/datavis/pkg/io/ioutils"
)

func WriteAll(path string, f *ds.Frame) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	if err := Write(out, f); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// Write emits one JSON object per row with keys in column order. Missing
// cells are written as null.
func Write(out io.Writer, f *ds.Frame) error {
	w := bufio.NewWriter(out)
	cols := f.Columns()
	var line bytes.Buffer
	for r := 0; r < f.Rows(); r++ {
		line.Reset()
		line.WriteByte('{')
		for c, col := range cols {
			if c > 0 {
				line.WriteByte(',')
			}
			k, _ := json.Marshal(col.Name())
			line.Write(k)
			line.WriteByte(':')
			v := col.Value(r)
			if t, ok := v.(time.Time); ok {
				v = t.Format(time.RFC3339Nano)
			}
			b, err := json.Marshal(v)
			if err != nil {
				return err
			}
			line.Write(b)
		}
		line.WriteString("}\n")
		if _, err := w.Write(line.Bytes()); err != nil {
			return err
		}
	}
	return w.Flush()
}
