package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wdm0006/datavis/internal/analysis"
	ds "github.com/wdm0006/datavis/pkg/dataset"
	"github.com/wdm0006/datavis/pkg/io/loader"
	"github.com/wdm0006/datavis/pkg/profile"
)

// profileTopK bounds the frequent values reported per text column.
const profileTopK = 5

type ColumnInfo struct {
	Name string `json:"name" msgpack:"name"`
	Kind string `json:"kind" msgpack:"kind"`
}

// UploadResponse describes a stored upload after cleaning.
type UploadResponse struct {
	ID          string              `json:"id" msgpack:"id"`
	Name        string              `json:"name" msgpack:"name"`
	Rows        int                 `json:"rows" msgpack:"rows"`
	Columns     []ColumnInfo        `json:"columns" msgpack:"columns"`
	Numeric     []string            `json:"numeric" msgpack:"numeric"`
	Categorical []string            `json:"categorical" msgpack:"categorical"`
	Dropped     []string            `json:"dropped" msgpack:"dropped"`
	Filled      map[string]int      `json:"filled" msgpack:"filled"`
	Preview     [][]any             `json:"preview" msgpack:"preview"`
	Profile     profile.JSONProfile `json:"profile" msgpack:"profile"`
}

// HandleUpload accepts a multipart "file", cleans it and keeps the raw bytes.
func (h *Handler) HandleUpload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return NewValidationError("file")
	}
	if _, err := loader.Detect(fh.Filename); err != nil {
		return NewUnsupportedFormatError(err)
	}
	src, err := fh.Open()
	if err != nil {
		return NewBadRequestError("failed to read upload", err)
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return NewBadRequestError("failed to read upload", err)
	}

	res, err := analysis.Bytes(c.Request().Context(), fh.Filename, data, h.cleaner)
	if err != nil {
		if errors.Is(err, loader.ErrUnsupportedFormat) {
			return NewUnsupportedFormatError(err)
		}
		return NewBadRequestError("failed to parse file", err)
	}
	u := h.store.Put(fh.Filename, data)
	h.log.Info("upload stored",
		"id", u.ID, "name", u.Name, "bytes", len(data),
		"rows", res.Clean.Rows(), "columns", res.Clean.Cols(), "dropped", len(res.Report.Dropped))

	return respond(c, http.StatusCreated, buildUploadResponse(u.ID, u.Name, res, h.previewRows))
}

func buildUploadResponse(id, name string, res *analysis.Result, previewRows int) UploadResponse {
	cols := make([]ColumnInfo, 0, res.Clean.Cols())
	for _, cs := range res.Clean.Schema().Columns {
		cols = append(cols, ColumnInfo{Name: cs.Name, Kind: cs.Type.String()})
	}
	return UploadResponse{
		ID:          id,
		Name:        name,
		Rows:        res.Clean.Rows(),
		Columns:     cols,
		Numeric:     res.Types.Numeric,
		Categorical: res.Types.Categorical,
		Dropped:     res.Report.Dropped,
		Filled:      res.Report.Filled,
		Preview:     preview(res.Clean, previewRows),
		Profile:     profile.Of(res.Raw, profileTopK),
	}
}

func preview(f *ds.Frame, n int) [][]any {
	rows := f.Head(n).Records()
	if rows == nil {
		return [][]any{}
	}
	return rows
}

// HandleDelete forgets an upload.
func (h *Handler) HandleDelete(c echo.Context) error {
	id := c.Param("id")
	if !h.store.Delete(id) {
		return NewNotFoundError("upload", id)
	}
	return c.NoContent(http.StatusNoContent)
}
