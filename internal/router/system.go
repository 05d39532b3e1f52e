package router

import (
	"github.com/deppfellow/emotion-detector/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the
// business logic: health, docs UI and the static assets behind it.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers, staticDir string) {
	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", staticDir)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
