package viz

import "fmt"

// WarningInsufficient is shown when the data cannot support the selection.
const WarningInsufficient = "Insufficient data or unsupported selection."

// RenderError reports a failure while building or drawing a chart.
type RenderError struct {
	Kind Kind
	Err  error
}

func (e *RenderError) Error() string {
	return "error generating visualization: " + e.Err.Error()
}

func (e *RenderError) Unwrap() error { return e.Err }

// guard runs build and turns both returned errors and panics into a
// *RenderError.
func guard(kind Kind, build func() (*Chart, error)) (c *Chart, err error) {
	defer func() {
		if r := recover(); r != nil {
			c = nil
			err = &RenderError{Kind: kind, Err: fmt.Errorf("%v", r)}
		}
	}()
	c, err = build()
	if err != nil {
		return nil, &RenderError{Kind: kind, Err: err}
	}
	return c, nil
}
