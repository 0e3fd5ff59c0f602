// Package profile summarises the columns of a Frame: counts, nulls, numeric
// range and the most frequent values.
package profile

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	ds "github.com/wdm0006/datavis/pkg/dataset"
)

type NumStats struct {
	Min float64
	Max float64
	Sum float64
}

type BoolStats struct {
	True  int
	False int
}

type ColumnProfile struct {
	Name  string
	Kind  ds.Kind
	Count int
	Nulls int
	Num   *NumStats
	Bool  *BoolStats
	Freqs map[string]int
	order []string // first-seen order of Freqs keys
}

type Collector struct {
	cols  []ColumnProfile
	index map[string]int
	topK  int
}

func NewCollector(schema ds.Schema, topK int) *Collector {
	c := &Collector{index: make(map[string]int), topK: topK}
	c.cols = make([]ColumnProfile, len(schema.Columns))
	for i, cs := range schema.Columns {
		cp := ColumnProfile{Name: cs.Name, Kind: cs.Type}
		switch cs.Type {
		case ds.KindFloat, ds.KindInt:
			cp.Num = &NumStats{Min: math.Inf(1), Max: math.Inf(-1)}
		case ds.KindBool:
			cp.Bool = &BoolStats{}
		default:
			cp.Freqs = make(map[string]int)
		}
		c.cols[i] = cp
		c.index[cs.Name] = i
	}
	return c
}

// ConsumeFrame folds every row of f into the running profile. Columns not in
// the collector's schema are ignored.
func (c *Collector) ConsumeFrame(f *ds.Frame) {
	for _, col := range f.Columns() {
		idx, ok := c.index[col.Name()]
		if !ok {
			continue
		}
		cp := &c.cols[idx]
		for i := 0; i < col.Len(); i++ {
			if col.IsNull(i) {
				cp.Nulls++
				continue
			}
			cp.Count++
			switch v := col.Value(i).(type) {
			case float64:
				cp.Num.add(v)
			case int64:
				cp.Num.add(float64(v))
			case bool:
				if v {
					cp.Bool.True++
				} else {
					cp.Bool.False++
				}
			case string:
				cp.seen(v)
			case time.Time:
				cp.seen(v.Format(time.RFC3339))
			}
		}
	}
}

func (n *NumStats) add(v float64) {
	if n == nil {
		return
	}
	if v < n.Min {
		n.Min = v
	}
	if v > n.Max {
		n.Max = v
	}
	n.Sum += v
}

func (cp *ColumnProfile) seen(v string) {
	if cp.Freqs == nil {
		return
	}
	if _, ok := cp.Freqs[v]; !ok {
		cp.order = append(cp.order, v)
	}
	cp.Freqs[v]++
}

// Top returns up to k values by descending count; ties keep first-seen order.
func (cp *ColumnProfile) Top(k int) []ValueCount {
	arr := make([]ValueCount, 0, len(cp.order))
	for _, v := range cp.order {
		arr = append(arr, ValueCount{Value: v, Count: cp.Freqs[v]})
	}
	sort.SliceStable(arr, func(i, j int) bool { return arr[i].Count > arr[j].Count })
	if k > 0 && k < len(arr) {
		arr = arr[:k]
	}
	return arr
}

func (c *Collector) ReportText() string {
	var b strings.Builder
	b.WriteString("Profile Summary\n")
	for i := range c.cols {
		cp := &c.cols[i]
		fmt.Fprintf(&b, "- %s (%v): count=%d nulls=%d", cp.Name, cp.Kind, cp.Count, cp.Nulls)
		switch {
		case cp.Num != nil && cp.Count > 0:
			fmt.Fprintf(&b, " min=%.6g max=%.6g mean=%.6g\n", cp.Num.Min, cp.Num.Max, cp.Num.Sum/float64(cp.Count))
		case cp.Bool != nil:
			fmt.Fprintf(&b, " true=%d false=%d\n", cp.Bool.True, cp.Bool.False)
		default:
			b.WriteString("\n")
			for _, vc := range cp.Top(c.topK) {
				fmt.Fprintf(&b, "  * %q: %d\n", vc.Value, vc.Count)
			}
		}
	}
	return b.String()
}

type ValueCount struct {
	Value string `json:"value" msgpack:"value"`
	Count int    `json:"count" msgpack:"count"`
}

type JSONProfile struct {
	Columns []JSONColumn `json:"columns" msgpack:"columns"`
}

type JSONColumn struct {
	Name  string       `json:"name" msgpack:"name"`
	Kind  string       `json:"kind" msgpack:"kind"`
	Count int          `json:"count" msgpack:"count"`
	Nulls int          `json:"nulls" msgpack:"nulls"`
	Min   *float64     `json:"min,omitempty" msgpack:"min,omitempty"`
	Max   *float64     `json:"max,omitempty" msgpack:"max,omitempty"`
	Mean  *float64     `json:"mean,omitempty" msgpack:"mean,omitempty"`
	True  *int         `json:"true,omitempty" msgpack:"true,omitempty"`
	False *int         `json:"false,omitempty" msgpack:"false,omitempty"`
	Top   []ValueCount `json:"top,omitempty" msgpack:"top,omitempty"`
}

// ReportJSON returns an encodable report. Numeric stats are omitted for
// columns without values so no infinities leak into the output.
func (c *Collector) ReportJSON() JSONProfile {
	out := JSONProfile{Columns: make([]JSONColumn, 0, len(c.cols))}
	for i := range c.cols {
		cp := &c.cols[i]
		jc := JSONColumn{Name: cp.Name, Kind: cp.Kind.String(), Count: cp.Count, Nulls: cp.Nulls}
		switch {
		case cp.Num != nil:
			if cp.Count > 0 {
				mn, mx, mean := cp.Num.Min, cp.Num.Max, cp.Num.Sum/float64(cp.Count)
				jc.Min, jc.Max, jc.Mean = &mn, &mx, &mean
			}
		case cp.Bool != nil:
			t, f := cp.Bool.True, cp.Bool.False
			jc.True, jc.False = &t, &f
		default:
			jc.Top = cp.Top(c.topK)
		}
		out.Columns = append(out.Columns, jc)
	}
	return out
}

// Of profiles a single frame.
func Of(f *ds.Frame, topK int) JSONProfile {
	c := NewCollector(f.Schema(), topK)
	c.ConsumeFrame(f)
	return c.ReportJSON()
}
