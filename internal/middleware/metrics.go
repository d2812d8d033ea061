package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/janmalik2800/Antigravity-web/internal/metrics"
)

// unmatchedPath labels requests that hit no route, keeping label cardinality bounded.
const unmatchedPath = "unmatched"

// MetricsMiddleware records request durations in Prometheus.
type MetricsMiddleware struct {
	skip map[string]bool
}

// NewMetricsMiddleware creates a MetricsMiddleware that ignores scrapes of /metrics.
func NewMetricsMiddleware() *MetricsMiddleware {
	return &MetricsMiddleware{skip: map[string]bool{"/metrics": true}}
}

// Collect observes every request under its route template, not the raw URL.
func (m *MetricsMiddleware) Collect() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			path := c.Path()
			if m.skip[path] {
				return err
			}
			if path == "" || path == "/*" {
				path = unmatchedPath
			}

			metrics.RecordHTTPRequest(c.Request().Method, path, statusOf(c, err), time.Since(start))
			return err
		}
	}
}
