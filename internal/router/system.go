package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/janmalik2800/Antigravity-web/internal/handler"
)

// registerSystemRoutes registers the endpoints that are not part of the site's forms.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.HEAD("/status", h.Health.CheckHealth)

	r.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	r.StaticFS("/static", handler.StaticFS())
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
