package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wdm0006/datavis/internal/analysis"
	"github.com/wdm0006/datavis/pkg/clean"
	ds "github.com/wdm0006/datavis/pkg/dataset"
	"github.com/wdm0006/datavis/pkg/io/csvio"
	iox "github.com/wdm0006/datavis/pkg/io/ioutils"
	"github.com/wdm0006/datavis/pkg/io/jsonlio"
	"github.com/wdm0006/datavis/pkg/io/loader"
	"github.com/wdm0006/datavis/pkg/io/parquetio"
)

func newCleanCmd(a *app) *cobra.Command {
	var input, output, strategy string
	var keepEmpty bool
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Drop empty columns, fill missing values and write the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strategy == "" {
				strategy = a.cfg.Clean.NumericStrategy
			}
			c, err := clean.New(clean.Options{NumericStrategy: clean.Strategy(strategy), KeepEmpty: keepEmpty})
			if err != nil {
				return err
			}
			raw, err := loader.LoadFile(input)
			if err != nil {
				return err
			}
			res, err := analysis.FromFrame(cmd.Context(), raw, c)
			if err != nil {
				return err
			}
			if err := writeFrame(cmd.OutOrStdout(), output, res.Clean); err != nil {
				return err
			}
			a.log.Info("cleaned",
				"input", input, "output", output,
				"rows", res.Clean.Rows(), "columns", res.Clean.Cols(),
				"dropped", res.Report.Dropped, "filled", res.Report.Filled)
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "input file")
	cmd.Flags().StringVar(&output, "output", "-", "output file (.csv, .jsonl, .parquet, optionally .gz; - for CSV on stdout)")
	cmd.Flags().StringVar(&strategy, "strategy", "", "numeric fill: median|mean (default from config)")
	cmd.Flags().BoolVar(&keepEmpty, "keep-empty", false, "keep columns that have no values")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// writeFrame picks an encoder by the output extension.
func writeFrame(stdout io.Writer, path string, f *ds.Frame) error {
	if path == "-" {
		return csvio.Write(stdout, f, csvio.WriterOptions{})
	}
	switch ext := strings.ToLower(filepath.Ext(iox.TrimCompressionExt(path))); ext {
	case ".csv", ".txt":
		return csvio.WriteAll(path, f, csvio.WriterOptions{})
	case ".tsv":
		return csvio.WriteAll(path, f, csvio.WriterOptions{Delimiter: '\t'})
	case ".jsonl", ".ndjson":
		return jsonlio.WriteAll(path, f)
	case ".parquet":
		if strings.EqualFold(filepath.Ext(path), ".gz") {
			return fmt.Errorf("parquet output cannot be gzip-wrapped: %s", path)
		}
		return parquetio.WriteAll(path, f)
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}
}
