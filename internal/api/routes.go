// routes.go - Route and middleware registration
package api

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api")
	g.GET("/health", h.HandleHealth)
	g.GET("/kinds", h.HandleKinds)
	g.POST("/uploads", h.HandleUpload)
	g.GET("/uploads/:id/chart", h.HandleChart)
	g.DELETE("/uploads/:id", h.HandleDelete)
}

// SetupMiddleware installs error handling, panic recovery, the body limit
// and slog request logging.
func SetupMiddleware(e *echo.Echo, log *slog.Logger, bodyLimit string) {
	e.HTTPErrorHandler = ErrorHandler(log)
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(bodyLimit))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/api/health"
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= 500 {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			log.LogAttrs(context.Background(), level, "request", attrs...)
			return nil
		},
	}))
}
