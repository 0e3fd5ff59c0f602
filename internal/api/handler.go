package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/wdm0006/datavis/internal/uploads"
	"github.com/wdm0006/datavis/pkg/clean"
	"github.com/wdm0006/datavis/pkg/viz"
)

const mimeMsgpack = "application/msgpack"

// Dependencies holds everything the handlers need.
type Dependencies struct {
	Store       *uploads.Store
	Cleaner     *clean.Cleaner
	Visualizer  *viz.Dispatcher
	Logger      *slog.Logger
	PreviewRows int
	Version     string
}

type Handler struct {
	store       *uploads.Store
	cleaner     *clean.Cleaner
	viz         *viz.Dispatcher
	log         *slog.Logger
	previewRows int
	version     string
}

func NewHandler(deps Dependencies) *Handler {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		store:       deps.Store,
		cleaner:     deps.Cleaner,
		viz:         deps.Visualizer,
		log:         log,
		previewRows: deps.PreviewRows,
		version:     deps.Version,
	}
}

// respond writes v as msgpack when the client asks for it, JSON otherwise.
func respond(c echo.Context, status int, v any) error {
	if strings.Contains(c.Request().Header.Get(echo.HeaderAccept), mimeMsgpack) {
		b, err := msgpack.Marshal(v)
		if err != nil {
			return NewInternalError("failed to encode response", err)
		}
		return c.Blob(status, mimeMsgpack, b)
	}
	return c.JSON(status, v)
}

// HandleHealth returns server health status
func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": h.version,
		"uploads": h.store.Len(),
	})
}

// HandleKinds lists the chart kinds in dropdown order.
func (h *Handler) HandleKinds(c echo.Context) error {
	return respond(c, http.StatusOK, viz.Kinds())
}
