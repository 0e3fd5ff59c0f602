// Package analysis runs the shared load, clean and type-inference steps that
// both the HTTP surface and the CLI perform before rendering.
package analysis

import (
	"bytes"
	"context"
	"io"

	"github.com/wdm0006/datavis/pkg/clean"
	ds "github.com/wdm0006/datavis/pkg/dataset"
	"github.com/wdm0006/datavis/pkg/io/loader"
)

type Result struct {
	Raw    *ds.Frame
	Clean  *ds.Frame
	Types  ds.ColumnTypes
	Report clean.Report
}

// Run loads name from r, cleans it and infers the column partition.
func Run(ctx context.Context, name string, r io.Reader, c *clean.Cleaner) (*Result, error) {
	raw, err := loader.Load(name, r)
	if err != nil {
		return nil, err
	}
	return FromFrame(ctx, raw, c)
}

// Bytes is Run over an in-memory file.
func Bytes(ctx context.Context, name string, data []byte, c *clean.Cleaner) (*Result, error) {
	return Run(ctx, name, bytes.NewReader(data), c)
}

func FromFrame(ctx context.Context, raw *ds.Frame, c *clean.Cleaner) (*Result, error) {
	cleaned, rep, err := c.Run(ctx, raw)
	if err != nil {
		return nil, err
	}
	return &Result{Raw: raw, Clean: cleaned, Types: ds.InferTypes(cleaned), Report: rep}, nil
}
