package parquetio

import (
	"encoding/json"
	"fmt"
	"time"

	local "github.com/xitongsys/parquet-go-source/local"
	pw "github.com/xitongsys/parquet-go/writer"

	ds "github.com/wdm0006/datavis/pkg/dataset"
)

func parquetSchemaJSON(s ds.Schema) string {
	// minimal JSON schema for the parquet-go JSONWriter
	type field struct {
		Tag string `json:"Tag"`
	}
	type schema struct {
		Tag    string  `json:"Tag"`
		Fields []field `json:"Fields"`
	}
	sc := schema{Tag: "name=schema, repetitiontype=REQUIRED"}
	for _, cs := range s.Columns {
		tag := "name=" + cs.Name + ", repetitiontype=OPTIONAL, type="
		switch cs.Type {
		case ds.KindFloat:
			tag += "DOUBLE"
		case ds.KindInt:
			tag += "INT64"
		case ds.KindBool:
			tag += "BOOLEAN"
		case ds.KindTime:
			// parquet-go takes converted types in the type slot
			tag += "TIMESTAMP_MILLIS"
		default:
			tag += "UTF8"
		}
		sc.Fields = append(sc.Fields, field{Tag: tag})
	}
	b, _ := json.Marshal(sc)
	return string(b)
}

// WriteAll writes a Frame to a Parquet file using the parquet-go JSONWriter.
// Time cells are stored as millisecond timestamps.
func WriteAll(path string, f *ds.Frame) (err error) {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	writer, err := pw.NewJSONWriter(parquetSchemaJSON(f.Schema()), fw, 4)
	if err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet writer init: %w", err)
	}
	defer func() {
		if serr := writer.WriteStop(); serr != nil && err == nil {
			err = fmt.Errorf("parquet write stop: %w", serr)
		}
		if cerr := fw.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	cols := f.Columns()
	for r := 0; r < f.Rows(); r++ {
		rec := make(map[string]any, len(cols))
		for _, col := range cols {
			v := col.Value(r)
			if v == nil {
				continue
			}
			if t, ok := v.(time.Time); ok {
				v = t.UnixMilli()
			}
			rec[col.Name()] = v
		}
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if err := writer.Write(string(b)); err != nil {
			return fmt.Errorf("parquet write row: %w", err)
		}
	}
	return nil
}
