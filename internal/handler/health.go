package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/emotion-detector/internal/lib/emotion"
	"github.com/deppfellow/emotion-detector/internal/middleware"
	"github.com/deppfellow/emotion-detector/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler serves the endpoint load balancers and uptime monitors
// use to check that the service is alive and the detector is reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth returns 200 when every enabled check passes and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      make(map[string]interface{}),
	}

	checks := response["checks"].(map[string]interface{})
	isHealthy := true

	obs := h.server.Config.Observability
	if pinger, ok := h.server.Detector.(emotion.Pinger); ok && obs.HealthCheckEnabled("detector") {
		ctx, cancel := context.WithTimeout(c.Request().Context(), obs.HealthChecks.Timeout)
		defer cancel()

		detectorStart := time.Now()

		if err := pinger.Ping(ctx); err != nil {
			checks["detector"] = map[string]interface{}{
				"status":        "unhealthy",
				"provider":      h.server.Config.Detector.Provider,
				"response_time": time.Since(detectorStart).String(),
				"error":         err.Error(),
			}

			isHealthy = false

			logger.Error().
				Err(err).
				Dur("response_time", time.Since(detectorStart)).
				Msg("detector health check failed")

			if app := h.server.LoggerService.GetApplication(); app != nil {
				app.RecordCustomEvent(
					"HealthCheckError",
					map[string]interface{}{
						"check_type":       "detector",
						"operation":        "health_check",
						"error_type":       "detector_unhealthy",
						"response_time_ms": time.Since(detectorStart).Milliseconds(),
						"error_message":    err.Error(),
					},
				)
			}
		} else {
			checks["detector"] = map[string]interface{}{
				"status":        "healthy",
				"provider":      h.server.Config.Detector.Provider,
				"response_time": time.Since(detectorStart).String(),
			}

			logger.Debug().
				Dur("response_time", time.Since(detectorStart)).
				Msg("detector health check passed")
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}
