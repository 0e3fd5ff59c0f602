package viz

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Chart is a rendered figure together with what went into it.
type Chart struct {
	Kind    Kind     `json:"kind" msgpack:"kind"`
	Title   string   `json:"title" msgpack:"title"`
	Columns []string `json:"columns" msgpack:"columns"`
	Bins    int      `json:"bins,omitempty" msgpack:"bins,omitempty"`
	Density bool     `json:"density" msgpack:"density"`
	Format  string   `json:"format" msgpack:"format"`
	MIME    string   `json:"mime" msgpack:"mime"`
	Image   []byte   `json:"-" msgpack:"image"`
}

var (
	fill   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	accent = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

var mimeTypes = map[string]string{
	"png":  "image/png",
	"svg":  "image/svg+xml",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"pdf":  "application/pdf",
}

// Formats lists the image encodings Render accepts.
func Formats() []string { return []string{"png", "svg", "jpg", "jpeg", "pdf"} }

// MIMEType returns the content type for an image format, or "".
func MIMEType(format string) string { return mimeTypes[format] }

func encode(p *plot.Plot, w, h vg.Length, format string) ([]byte, error) {
	wt, err := p.WriterTo(w, h, format)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeGrid draws a matrix of plots with aligned axes onto one canvas.
func encodeGrid(plots [][]*plot.Plot, w, h vg.Length, format string) ([]byte, error) {
	if len(plots) == 0 || len(plots[0]) == 0 {
		return nil, fmt.Errorf("empty plot grid")
	}
	c, err := draw.NewFormattedCanvas(w, h, format)
	if err != nil {
		return nil, err
	}
	dc := draw.New(c)
	t := draw.Tiles{
		Rows:      len(plots),
		Cols:      len(plots[0]),
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(4),
	}
	canvases := plot.Align(plots, t, dc)
	for i := range plots {
		for j := range plots[i] {
			if plots[i][j] != nil {
				plots[i][j].Draw(canvases[i][j])
			}
		}
	}
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// rotateX tilts x tick labels by 45 degrees.
func rotateX(p *plot.Plot) {
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
}

// barWidth spreads n bars or boxes over most of a figure's width.
func barWidth(figure vg.Length, n int) vg.Length {
	if n < 1 {
		n = 1
	}
	w := figure * 0.6 / vg.Length(n)
	if w > vg.Points(40) {
		w = vg.Points(40)
	}
	return w
}
