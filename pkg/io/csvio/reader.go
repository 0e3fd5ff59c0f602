package csvio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	ds "github.com/wdm0006/datavis/pkg/dataset"
	iox "github.com/wdm0006/datavis/pkg/io/ioutils"
	"github.com/wdm0006/datavis/pkg/io/records"
)

// ErrNoColumns is returned for input that holds no header or records.
var ErrNoColumns = errors.New("csv: no columns to parse")

type ReaderOptions struct {
	HasHeader bool
	Delimiter rune // 0 = sniff, default ','
	Strict    bool // if true, error on short/long records
}

// DefaultOptions matches a spreadsheet-style export: header row, sniffed
// delimiter, lenient record lengths.
func DefaultOptions() ReaderOptions { return ReaderOptions{HasHeader: true} }

type Reader struct {
	r     *csv.Reader
	opt   ReaderOptions
	stats records.Stats
}

// Open opens a CSV file (optionally gzip-compressed) and returns a Reader.
func Open(path string, opt ReaderOptions) (*Reader, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	r, err := NewReader(f, opt)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return r, f, nil
}

// NewReader constructs a Reader from an arbitrary io.Reader (upload, pipe).
func NewReader(src io.Reader, opt ReaderOptions) (*Reader, error) {
	dr, err := iox.MaybeDecompress(src)
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	br := bufio.NewReader(dr)
	rr := csv.NewReader(br)
	if opt.Delimiter == 0 {
		sample, _ := br.Peek(4096)
		d, lazy := sniffDelimiterAndQuotes(sample)
		rr.Comma = d
		rr.LazyQuotes = lazy
	} else {
		rr.Comma = opt.Delimiter
	}
	rr.FieldsPerRecord = -1
	return &Reader{r: rr, opt: opt}, nil
}

// ReadAll loads every record and infers column kinds from all of them.
func (r *Reader) ReadAll() (*ds.Frame, error) {
	all, err := r.r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	if len(all) == 0 {
		return nil, ErrNoColumns
	}
	var names []string
	rows := all
	if r.opt.HasHeader {
		names = records.Names(all[0], len(all[0]))
		rows = all[1:]
	} else {
		names = records.Generic(len(all[0]))
	}
	if r.opt.Strict {
		for i, rec := range rows {
			if len(rec) != len(names) {
				return nil, fmt.Errorf("csv record %d: need %d fields, got %d", i+1, len(names), len(rec))
			}
		}
	}
	f, st := records.Build(names, rows)
	r.stats = st
	return f, nil
}

func sniffDelimiterAndQuotes(sample []byte) (rune, bool) {
	if len(sample) == 0 {
		return ',', false
	}
	// only the first line decides, so quoted commas further down do not skew it
	line := sample
	if i := strings.IndexByte(string(sample), '\n'); i >= 0 {
		line = sample[:i]
	}
	candidates := []byte{',', '\t', ';', '|'}
	best := byte(',')
	bestCount := 0
	for _, c := range candidates {
		cnt := 0
		for _, b := range line {
			if b == c {
				cnt++
			}
		}
		if cnt > bestCount {
			bestCount = cnt
			best = c
		}
	}
	quoteCount := 0
	for _, b := range sample {
		if b == '"' {
			quoteCount++
		}
	}
	return rune(best), quoteCount%2 != 0
}

// Warnings returns a summary string of any repairs/mismatches encountered.
func (r *Reader) Warnings() string {
	if r.stats.ShortRecords == 0 && r.stats.LongRecords == 0 {
		return ""
	}
	parts := []string{}
	if r.stats.ShortRecords > 0 {
		parts = append(parts, fmt.Sprintf("short_records=%d", r.stats.ShortRecords))
	}
	if r.stats.LongRecords > 0 {
		parts = append(parts, fmt.Sprintf("long_records=%d", r.stats.LongRecords))
	}
	return strings.Join(parts, ", ")
}
