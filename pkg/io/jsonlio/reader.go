package jsonlio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	ds "github.com/wdm0006/datavis/pkg/dataset"
	iox "github.com/wdm0006/datavis/pkg/io/ioutils"
	"github.com/wdm0006/datavis/pkg/io/records"
)

// ErrNotObject is returned when a line holds something other than a JSON object.
var ErrNotObject = errors.New("jsonl: record is not an object")

type Reader struct {
	dec  *json.Decoder
	rows []map[string]any
	keys []string
}

func Open(path string) (*Reader, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	r, err := NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return r, f, nil
}

// NewReader reads newline-delimited JSON objects, optionally gzip-compressed.
func NewReader(src io.Reader) (*Reader, error) {
	dr, err := iox.MaybeDecompress(src)
	if err != nil {
		return nil, fmt.Errorf("jsonl: %w", err)
	}
	dec := json.NewDecoder(bufio.NewReader(dr))
	dec.UseNumber()
	return &Reader{dec: dec}, nil
}

// ReadAll decodes every record. Columns follow first-seen key order and
// kinds are inferred from all values; null and absent keys are missing.
func (r *Reader) ReadAll() (*ds.Frame, error) {
	seen := map[string]struct{}{}
	for n := 1; ; n++ {
		var raw json.RawMessage
		if err := r.dec.Decode(&raw); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("jsonl record %d: %w", n, err)
		}
		keys, err := objectKeys(raw)
		if err != nil {
			return nil, fmt.Errorf("jsonl record %d: %w", n, err)
		}
		m := map[string]any{}
		d := json.NewDecoder(bytes.NewReader(raw))
		d.UseNumber()
		if err := d.Decode(&m); err != nil {
			return nil, fmt.Errorf("jsonl record %d: %w", n, err)
		}
		for _, k := range keys {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				r.keys = append(r.keys, k)
			}
		}
		r.rows = append(r.rows, m)
	}
	kinds := inferKinds(r.rows, r.keys)
	schema := ds.Schema{Columns: make([]ds.ColumnSchema, len(r.keys))}
	for i, k := range r.keys {
		schema.Columns[i] = ds.ColumnSchema{Name: k, Type: kinds[i], Nullable: true}
	}
	f := ds.NewFrame(schema)
	for _, m := range r.rows {
		f.AppendNullRow()
		setRowFromMap(f, f.Rows()-1, m)
	}
	return f, nil
}

// objectKeys lists the top-level keys of a JSON object in document order.
func objectKeys(raw []byte) ([]string, error) {
	d := json.NewDecoder(bytes.NewReader(raw))
	tok, err := d.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotObject
	}
	var keys []string
	for d.More() {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		keys = append(keys, tok.(string))
		var skip json.RawMessage
		if err := d.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

func setRowFromMap(f *ds.Frame, row int, m map[string]any) {
	for _, cs := range f.Schema().Columns {
		v, ok := m[cs.Name]
		if !ok || v == nil {
			continue
		}
		switch cs.Type {
		case ds.KindFloat:
			if x, ok := number(v); ok {
				_ = f.SetCell(row, cs.Name, x)
			}
		case ds.KindInt:
			if n, ok := v.(json.Number); ok {
				if x, err := n.Int64(); err == nil {
					_ = f.SetCell(row, cs.Name, x)
				}
			} else if s, ok := v.(string); ok {
				if x, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
					_ = f.SetCell(row, cs.Name, x)
				}
			}
		case ds.KindBool:
			switch t := v.(type) {
			case bool:
				_ = f.SetCell(row, cs.Name, t)
			case string:
				if x, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(t))); err == nil {
					_ = f.SetCell(row, cs.Name, x)
				}
			}
		default:
			switch t := v.(type) {
			case string:
				if !records.IsMissing(strings.TrimSpace(t)) {
					_ = f.SetCell(row, cs.Name, t)
				}
			case json.Number:
				_ = f.SetCell(row, cs.Name, t.String())
			default:
				// nested values keep their JSON text
				b, _ := json.Marshal(t)
				_ = f.SetCell(row, cs.Name, string(b))
			}
		}
	}
}

func number(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		x, err := t.Float64()
		return x, err == nil
	case string:
		s := strings.TrimSpace(t)
		if records.IsMissing(s) {
			return 0, false
		}
		x, err := strconv.ParseFloat(s, 64)
		return x, err == nil
	}
	return 0, false
}

func inferKinds(rows []map[string]any, keys []string) []ds.Kind {
	kinds := make([]ds.Kind, len(keys))
	for i, k := range keys {
		seen, nNum, nInt, nBool := 0, 0, 0, 0
		for _, m := range rows {
			v, ok := m[k]
			if !ok || v == nil {
				continue
			}
			switch t := v.(type) {
			case json.Number:
				seen++
				nNum++
				if _, err := t.Int64(); err == nil {
					nInt++
				}
			case bool:
				seen++
				nBool++
			case string:
				s := strings.TrimSpace(t)
				if records.IsMissing(s) {
					continue
				}
				seen++
				if _, err := strconv.ParseFloat(s, 64); err == nil {
					nNum++
					if _, err := strconv.ParseInt(s, 10, 64); err == nil {
						nInt++
					}
				}
			default:
				seen++
			}
		}
		switch {
		case seen == 0:
			kinds[i] = ds.KindFloat
		case nInt == seen:
			kinds[i] = ds.KindInt
		case nNum == seen:
			kinds[i] = ds.KindFloat
		case nBool == seen && seen == len(rows):
			// a gap turns true/false into text, as pandas does
			kinds[i] = ds.KindBool
		default:
			kinds[i] = ds.KindString
		}
	}
	return kinds
}
