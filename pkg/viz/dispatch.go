// Package viz maps a chart selection and the inferred column types of a
// cleaned Frame to one rendered chart, or to a warning when the data cannot
// support the selection.
package viz

import (
	"context"
	"log/slog"

	"gonum.org/v1/plot/vg"

	ds "github.com/wdm0006/datavis/pkg/dataset"
)

// Request is one chart selection. Empty picks default to the first column of
// the matching list.
type Request struct {
	Kind        Kind
	Numeric     string
	Categorical string
	Format      string // empty = dispatcher default
}

// Outcome is either a chart or a warning, never both.
type Outcome struct {
	Chart   *Chart `json:"chart,omitempty" msgpack:"chart,omitempty"`
	Warning string `json:"warning,omitempty" msgpack:"warning,omitempty"`
}

// Rendered reports whether a chart was produced.
func (o Outcome) Rendered() bool { return o.Chart != nil }

func warn() Outcome { return Outcome{Warning: WarningInsufficient} }

type Dispatcher struct {
	width  vg.Length
	height vg.Length
	facet  vg.Length
	format string
	bins   int
	log    *slog.Logger
}

type Option func(*Dispatcher)

// WithSize sets the figure size used by single-panel charts.
func WithSize(w, h vg.Length) Option {
	return func(d *Dispatcher) { d.width, d.height = w, h }
}

// WithFacet sets the side of one pairplot panel.
func WithFacet(side vg.Length) Option { return func(d *Dispatcher) { d.facet = side } }

func WithFormat(format string) Option { return func(d *Dispatcher) { d.format = format } }

// WithBins sets the histogram bin count; non-positive counts are ignored.
func WithBins(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.bins = n
		}
	}
}

func WithLogger(l *slog.Logger) Option { return func(d *Dispatcher) { d.log = l } }

func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		width:  8 * vg.Inch,
		height: 6 * vg.Inch,
		facet:  2.5 * vg.Inch,
		format: "png",
		bins:   20,
		log:    slog.Default(),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Render draws the requested chart. Unmet preconditions yield a warning
// Outcome and a nil error; failures while drawing yield a *RenderError. The
// only other error is context cancellation.
func (d *Dispatcher) Render(ctx context.Context, f *ds.Frame, types ds.ColumnTypes, req Request) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	format := req.Format
	if format == "" {
		format = d.format
	}
	var build func() (*Chart, error)
	switch req.Kind {
	case KindPairplot:
		if len(types.Numeric) < 2 {
			return warn(), nil
		}
		build = func() (*Chart, error) { return d.pairplot(f, types.Numeric, format) }
	case KindHeatmap:
		if len(types.Numeric) < 2 {
			return warn(), nil
		}
		build = func() (*Chart, error) { return d.heatmap(f, types.Numeric, format) }
	case KindCountplot:
		cat, ok := pick(req.Categorical, types.Categorical)
		if !ok {
			return warn(), nil
		}
		build = func() (*Chart, error) { return d.countplot(f, cat, format) }
	case KindBoxplot:
		num, okN := pick(req.Numeric, types.Numeric)
		cat, okC := pick(req.Categorical, types.Categorical)
		if !okN || !okC {
			return warn(), nil
		}
		build = func() (*Chart, error) { return d.boxplot(f, num, cat, format) }
	case KindHistogram:
		num, ok := pick(req.Numeric, types.Numeric)
		if !ok {
			return warn(), nil
		}
		build = func() (*Chart, error) { return d.histogram(f, num, format) }
	default:
		return warn(), nil
	}
	c, err := guard(req.Kind, build)
	if err != nil {
		d.log.Warn("render failed", "kind", string(req.Kind), "error", err)
		return Outcome{}, err
	}
	c.Kind = req.Kind
	c.Format = format
	c.MIME = MIMEType(format)
	d.log.Debug("chart rendered", "kind", string(req.Kind), "columns", c.Columns, "bytes", len(c.Image))
	return Outcome{Chart: c}, nil
}

// pick resolves a column choice against the eligible names.
func pick(choice string, eligible []string) (string, bool) {
	if len(eligible) == 0 {
		return "", false
	}
	if choice == "" {
		return eligible[0], true
	}
	for _, n := range eligible {
		if n == choice {
			return n, true
		}
	}
	return "", false
}
