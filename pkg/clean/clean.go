// Package clean fills the gaps in an uploaded dataset so every chart can be
// drawn from fully populated columns.
package clean

import (
	"context"
	"fmt"

	ds "github.com/wdm0006/datavis/pkg/dataset"
	imp "github.com/wdm0006/datavis/pkg/transform/impute"
	"github.com/wdm0006/datavis/pkg/transform/prune"
)

// Strategy names the statistic used to fill numeric columns.
type Strategy string

const (
	StrategyMedian Strategy = "median"
	StrategyMean   Strategy = "mean"
)

type Options struct {
	// NumericStrategy defaults to median.
	NumericStrategy Strategy
	// KeepEmpty skips dropping all-missing columns.
	KeepEmpty bool
	// Sentinel fills string columns that have no value to take a mode from.
	// Only reachable with KeepEmpty.
	Sentinel string
}

// Report summarises what a cleaning pass changed.
type Report struct {
	Dropped []string       `json:"dropped" msgpack:"dropped"`
	Filled  map[string]int `json:"filled" msgpack:"filled"`
	Steps   []string       `json:"steps" msgpack:"steps"`
}

type Cleaner struct {
	opt Options
}

func New(opt Options) (*Cleaner, error) {
	switch opt.NumericStrategy {
	case "":
		opt.NumericStrategy = StrategyMedian
	case StrategyMedian, StrategyMean:
	default:
		return nil, fmt.Errorf("unknown numeric strategy %q", opt.NumericStrategy)
	}
	return &Cleaner{opt: opt}, nil
}

// Clean runs the default cleaner: drop empty columns, mode-fill text,
// median-fill numbers. The input frame is never modified.
func Clean(ctx context.Context, f *ds.Frame) (*ds.Frame, error) {
	c, _ := New(Options{})
	out, _, err := c.Run(ctx, f)
	return out, err
}

// Run cleans a copy of f and reports the changes.
func (c *Cleaner) Run(ctx context.Context, f *ds.Frame) (*ds.Frame, Report, error) {
	rep := Report{Dropped: []string{}, Filled: map[string]int{}}
	cur := f.Clone()

	prep := ds.NewPipeline()
	if !c.opt.KeepEmpty {
		prep.Add(&prune.DropEmpty{})
	}
	cur, err := prep.Run(ctx, cur)
	if err != nil {
		return nil, rep, err
	}
	for _, name := range f.Schema().Names() {
		if _, ok := cur.ColumnByName(name); !ok {
			rep.Dropped = append(rep.Dropped, name)
		}
	}

	fill := ds.NewPipeline()
	for _, col := range cur.Columns() {
		nulls := ds.NullCount(col)
		if nulls == 0 {
			continue
		}
		rep.Filled[col.Name()] = nulls
		switch col.Kind() {
		case ds.KindString:
			if nulls == col.Len() && c.opt.Sentinel != "" {
				fill.Add(&imp.Constant{Column: col.Name(), Value: c.opt.Sentinel})
				continue
			}
			fill.Add(&imp.Mode{Column: col.Name()})
		case ds.KindBool:
			fill.Add(&imp.Mode{Column: col.Name()})
		case ds.KindInt, ds.KindFloat:
			if c.opt.NumericStrategy == StrategyMean {
				fill.Add(&imp.Mean{Column: col.Name()})
			} else {
				fill.Add(&imp.Median{Column: col.Name()})
			}
		case ds.KindTime:
			fill.Add(&imp.Median{Column: col.Name()})
		}
	}
	cur, err = fill.Run(ctx, cur)
	if err != nil {
		return nil, rep, err
	}
	rep.Steps = append(prep.Steps(), fill.Steps()...)
	return cur, rep, nil
}
