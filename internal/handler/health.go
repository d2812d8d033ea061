package handler

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/janmalik2800/Antigravity-web/internal/integration"
	"github.com/janmalik2800/Antigravity-web/internal/middleware"
	"github.com/janmalik2800/Antigravity-web/internal/server"
)

// HealthChecker reports the state of the integrations.
type HealthChecker interface {
	HealthChecks(ctx context.Context, names []string) map[string]integration.CheckResult
}

// HealthHandler serves GET /status for uptime monitors and load balancers.
type HealthHandler struct {
	Handler
	checker HealthChecker
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(s *server.Server, checker HealthChecker) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		checker: checker,
	}
}

// CheckHealth returns 200 unless a configured integration is unreachable, then 503.
// Integrations without credentials are reported as not_configured and do not fail
// the service: the site itself stays up and only the affected form errors.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
	}

	obs := h.server.Config.Observability
	if obs == nil || !obs.HealthChecks.Enabled || h.checker == nil {
		return c.JSON(http.StatusOK, response)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), obs.HealthChecks.Timeout)
	defer cancel()

	checks := h.checker.HealthChecks(ctx, obs.HealthChecks.Checks)
	response["checks"] = checks

	var failed []string
	for name, result := range checks {
		if !result.Healthy() {
			failed = append(failed, name)
			logger.Error().
				Str("check", name).
				Str("error", result.Error).
				Str("response_time", result.ResponseTime).
				Msg("health check failed")
		}
	}
	sort.Strings(failed)

	if len(failed) > 0 {
		response["status"] = "unhealthy"

		if app := h.server.LoggerService.GetApplication(); app != nil {
			app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
				"operation":         "health_check",
				"failed_checks":     fmt.Sprint(failed),
				"total_duration_ms": time.Since(start).Milliseconds(),
			})
		}

		logger.Warn().
			Strs("failed", failed).
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}
