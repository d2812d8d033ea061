// Package router builds the Echo instance: global middleware, the /api routes
// of the site's forms and the system routes.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/janmalik2800/Antigravity-web/internal/handler"
	"github.com/janmalik2800/Antigravity-web/internal/middleware"
	"github.com/janmalik2800/Antigravity-web/internal/server"
)

// NewRouter returns the application's HTTP handler.
//
// Middleware order matters: the request id and the New Relic transaction must
// exist before the context logger is built, and Recover sits innermost so a
// panicking handler is still logged and measured.
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
		middlewares.Metrics.Collect(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api", middlewares.Global.BodyLimit())
	api.POST("/contact", h.Lead.Submit())
	api.POST("/newsletter", h.Newsletter.Subscribe())

	return router
}
