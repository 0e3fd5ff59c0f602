package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wdm0006/datavis/internal/analysis"
	"github.com/wdm0006/datavis/pkg/viz"
)

// WarningResponse is returned when no chart can be drawn for a selection.
type WarningResponse struct {
	Warning string `json:"warning" msgpack:"warning"`
}

// HandleChart re-runs load, clean and infer on the stored upload and renders
// the selected chart.
func (h *Handler) HandleChart(c echo.Context) error {
	id := c.Param("id")
	u, ok := h.store.Get(id)
	if !ok {
		return NewNotFoundError("upload", id)
	}
	req := viz.Request{
		Kind:        viz.Kind(c.QueryParam("kind")),
		Numeric:     c.QueryParam("numeric"),
		Categorical: c.QueryParam("categorical"),
		Format:      c.QueryParam("format"),
	}
	if req.Kind == "" {
		return NewValidationError("kind")
	}
	if req.Format != "" && viz.MIMEType(req.Format) == "" {
		return NewValidationError("format")
	}

	ctx := c.Request().Context()
	res, err := analysis.Bytes(ctx, u.Name, u.Data, h.cleaner)
	if err != nil {
		return NewInternalError("failed to reload upload", err)
	}
	out, err := h.viz.Render(ctx, res.Clean, res.Types, req)
	if err != nil {
		var re *viz.RenderError
		if errors.As(err, &re) {
			return NewRenderError(re)
		}
		return NewInternalError("render aborted", err)
	}
	if !out.Rendered() {
		return respond(c, http.StatusOK, WarningResponse{Warning: out.Warning})
	}
	c.Response().Header().Set("X-Chart-Title", out.Chart.Title)
	return c.Blob(http.StatusOK, out.Chart.MIME, out.Chart.Image)
}
