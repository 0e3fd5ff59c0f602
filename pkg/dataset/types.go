package dataset

// ColumnTypes partitions a frame's columns by storage kind. Columns of any
// other kind (bool, time) appear in neither list.
type ColumnTypes struct {
	Numeric     []string `json:"numeric" msgpack:"numeric"`
	Categorical []string `json:"categorical" msgpack:"categorical"`
}

// InferTypes computes the numeric/categorical partition in column order.
func InferTypes(f *Frame) ColumnTypes {
	ct := ColumnTypes{Numeric: []string{}, Categorical: []string{}}
	for _, c := range f.Columns() {
		switch c.Kind() {
		case KindInt, KindFloat:
			ct.Numeric = append(ct.Numeric, c.Name())
		case KindString:
			ct.Categorical = append(ct.Categorical, c.Name())
		}
	}
	return ct
}

func (ct ColumnTypes) IsNumeric(name string) bool     { return contains(ct.Numeric, name) }
func (ct ColumnTypes) IsCategorical(name string) bool { return contains(ct.Categorical, name) }

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
