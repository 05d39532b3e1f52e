// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and maps paths to their handlers.
package router

import (
	"github.com/deppfellow/emotion-detector/internal/handler"
	"github.com/deppfellow/emotion-detector/internal/middleware"
	"github.com/deppfellow/emotion-detector/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with middleware and every route.
//
// Middleware order matters: the request id must exist before the New Relic
// transaction is enhanced, and both before the context logger is built.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h, s.Config.Server.StaticDir)
	registerEmotionRoutes(router, h)

	return router
}
