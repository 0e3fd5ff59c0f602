// Package loader picks a reader for an uploaded file by its extension.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	ds "github.com/wdm0006/datavis/pkg/dataset"
	"github.com/wdm0006/datavis/pkg/io/csvio"
	iox "github.com/wdm0006/datavis/pkg/io/ioutils"
	"github.com/wdm0006/datavis/pkg/io/jsonlio"
	"github.com/wdm0006/datavis/pkg/io/parquetio"
	"github.com/wdm0006/datavis/pkg/io/xlsxio"
)

// ErrUnsupportedFormat is returned for file names no reader claims.
var ErrUnsupportedFormat = errors.New("unsupported file format")

type Format string

const (
	FormatCSV     Format = "csv"
	FormatTSV     Format = "tsv"
	FormatExcel   Format = "excel"
	FormatJSONL   Format = "jsonl"
	FormatParquet Format = "parquet"
)

// Detect maps a file name to its format. A trailing .gz is ignored for the
// text formats.
func Detect(name string) (Format, error) {
	lower := strings.ToLower(filepath.Base(name))
	base := iox.TrimCompressionExt(lower)
	gz := base != lower
	switch filepath.Ext(base) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".tsv":
		return FormatTSV, nil
	case ".jsonl", ".ndjson":
		return FormatJSONL, nil
	case ".xlsx", ".xlsm", ".xls":
		if !gz {
			return FormatExcel, nil
		}
	case ".parquet":
		if !gz {
			return FormatParquet, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(name))
}

// Load reads a whole file into a Frame using the reader its name selects.
func Load(name string, r io.Reader) (*ds.Frame, error) {
	format, err := Detect(name)
	if err != nil {
		return nil, err
	}
	var f *ds.Frame
	switch format {
	case FormatCSV, FormatTSV:
		opt := csvio.DefaultOptions()
		if format == FormatTSV {
			opt.Delimiter = '\t'
		}
		var cr *csvio.Reader
		if cr, err = csvio.NewReader(r, opt); err == nil {
			f, err = cr.ReadAll()
		}
	case FormatJSONL:
		var jr *jsonlio.Reader
		if jr, err = jsonlio.NewReader(r); err == nil {
			f, err = jr.ReadAll()
		}
	case FormatExcel:
		f, err = xlsxio.Read(r, xlsxio.DefaultOptions())
	case FormatParquet:
		f, err = readParquet(r)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s (%s): %w", filepath.Base(name), format, err)
	}
	return f, nil
}

// LoadFile opens path and calls Load.
func LoadFile(path string) (*ds.Frame, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	return Load(path, fh)
}

type sizedReaderAt interface {
	io.ReaderAt
	io.Seeker
}

func readParquet(r io.Reader) (*ds.Frame, error) {
	if ra, ok := r.(sizedReaderAt); ok {
		size, err := ra.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, err
		}
		return parquetio.Read(ra, size)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parquetio.Read(bytes.NewReader(b), int64(len(b)))
}
