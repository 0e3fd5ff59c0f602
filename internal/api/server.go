package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gonum.org/v1/plot/vg"

	"github.com/wdm0006/datavis/internal/config"
	"github.com/wdm0006/datavis/internal/uploads"
	"github.com/wdm0006/datavis/internal/web"
	"github.com/wdm0006/datavis/pkg/clean"
	"github.com/wdm0006/datavis/pkg/viz"
)

// Server wires the upload store, the API and the embedded UI together.
type Server struct {
	Echo  *echo.Echo
	Store *uploads.Store
	cfg   config.Config
	log   *slog.Logger
}

// Visualizer builds the chart dispatcher described by cfg.
func Visualizer(cfg config.Chart, log *slog.Logger) *viz.Dispatcher {
	return viz.New(
		viz.WithSize(vg.Length(cfg.Width)*vg.Inch, vg.Length(cfg.Height)*vg.Inch),
		viz.WithFormat(cfg.Format),
		viz.WithBins(cfg.Bins),
		viz.WithLogger(log),
	)
}

func NewServer(cfg config.Config, log *slog.Logger, version string) (*Server, error) {
	cleaner, err := clean.New(clean.Options{NumericStrategy: clean.Strategy(cfg.Clean.NumericStrategy)})
	if err != nil {
		return nil, err
	}
	store := uploads.NewStore(cfg.Uploads.TTL.Duration, cfg.Uploads.MaxItems)
	h := NewHandler(Dependencies{
		Store:       store,
		Cleaner:     cleaner,
		Visualizer:  Visualizer(cfg.Chart, log),
		Logger:      log,
		PreviewRows: cfg.Uploads.PreviewRows,
		Version:     version,
	})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	SetupMiddleware(e, log, cfg.Server.BodyLimit)
	RegisterRoutes(e, h)
	if err := web.RegisterStaticRoutes(e); err != nil {
		return nil, err
	}
	return &Server{Echo: e, Store: store, cfg: cfg, log: log}, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.Store.Run(sweepCtx, s.cfg.Uploads.SweepInterval.Duration, s.log)

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.cfg.Server.Addr)
		errc <- s.Echo.Start(s.cfg.Server.Addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("shutting down")
	return s.Echo.Shutdown(shutdownCtx)
}
