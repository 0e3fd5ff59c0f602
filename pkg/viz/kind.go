package viz

// Kind is the chart selection exactly as offered in the chart dropdown.
type Kind string

const (
	KindPairplot  Kind = "Pairplot"
	KindHeatmap   Kind = "Correlation Heatmap"
	KindCountplot Kind = "Countplot (categorical)"
	KindBoxplot   Kind = "Boxplot (numeric vs category)"
	KindHistogram Kind = "Histogram"
)

// Pick names a column dropdown a chart kind needs.
type Pick string

const (
	PickNumeric     Pick = "numeric"
	PickCategorical Pick = "categorical"
)

// KindInfo describes one dropdown entry and the column picks it requires.
type KindInfo struct {
	Kind  Kind   `json:"kind" msgpack:"kind"`
	Picks []Pick `json:"picks" msgpack:"picks"`
}

var kinds = []KindInfo{
	{Kind: KindPairplot, Picks: []Pick{}},
	{Kind: KindHeatmap, Picks: []Pick{}},
	{Kind: KindCountplot, Picks: []Pick{PickCategorical}},
	{Kind: KindBoxplot, Picks: []Pick{PickNumeric, PickCategorical}},
	{Kind: KindHistogram, Picks: []Pick{PickNumeric}},
}

// Kinds lists the chart kinds in dropdown order.
func Kinds() []KindInfo {
	out := make([]KindInfo, len(kinds))
	copy(out, kinds)
	return out
}

// Known reports whether k is one of the dropdown kinds.
func (k Kind) Known() bool {
	for _, ki := range kinds {
		if ki.Kind == k {
			return true
		}
	}
	return false
}
