package handler

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/deppfellow/phonebook/internal/middleware"
	"github.com/deppfellow/phonebook/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

var errDatabaseNotConfigured = errors.New("database not configured")

// HealthHandler exposes the status endpoint used by load balancers and
// uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth reports overall status and one entry per configured check.
// It answers 200 when every check passes and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
	}

	checks := make(map[string]any)
	response["checks"] = checks
	isHealthy := true

	if h.enabled("database") {
		result, ok := h.checkDatabase(c.Request().Context(), &logger)
		checks["database"] = result
		isHealthy = isHealthy && ok
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordFailure(map[string]any{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) enabled(check string) bool {
	obs := h.server.Config.Observability
	if obs == nil || len(obs.HealthChecks.Checks) == 0 {
		return true
	}
	return slices.Contains(obs.HealthChecks.Checks, check)
}

func (h *HealthHandler) checkDatabase(ctx context.Context, logger *zerolog.Logger) (map[string]any, bool) {
	timeout := 5 * time.Second
	if h.server.Config.Observability != nil {
		timeout = h.server.Config.Observability.HealthCheckTimeout()
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dbStart := time.Now()

	err := errDatabaseNotConfigured
	if h.server.DB != nil {
		err = h.server.DB.Ping(ctx)
	}

	if err != nil {
		logger.Error().
			Err(err).
			Dur("response_time", time.Since(dbStart)).
			Msg("database health check failed")

		h.recordFailure(map[string]any{
			"check_type":       "database",
			"operation":        "health_check",
			"error_type":       "database_unhealthy",
			"response_time_ms": time.Since(dbStart).Milliseconds(),
			"error_message":    err.Error(),
		})

		return map[string]any{
			"status":        "unhealthy",
			"response_time": time.Since(dbStart).String(),
			"error":         err.Error(),
		}, false
	}

	return map[string]any{
		"status":        "healthy",
		"response_time": time.Since(dbStart).String(),
	}, true
}

// recordFailure sends a HealthCheckError custom event when APM is enabled.
func (h *HealthHandler) recordFailure(attrs map[string]any) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", attrs)
	}
}
