package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/jys-academy-api/internal/models"
	"github.com/noah-isme/jys-academy-api/internal/observability"
)

// Observability records Prometheus metrics and a structured access line for every request made by
// an administrator session. Roles are read after the handler chain has run, so SessionAuth may sit
// further down the stack.
func Observability(logger zerolog.Logger) fiber.Handler {
	observability.RegisterMetrics()
	logger = logger.With().Str("component", "admin_access").Logger()

	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if normalizeRoleValue(c.Locals(LocalUserRole)) == models.RoleAdmin {
			recordAdminRequest(c, logger, time.Since(start))
		}
		return err
	}
}

func recordAdminRequest(c *fiber.Ctx, logger zerolog.Logger, duration time.Duration) {
	route := routeTemplate(c)
	method := c.Method()
	status := c.Response().StatusCode()
	statusLabel := strconv.Itoa(status)

	observability.AdminRequests().WithLabelValues(method, route, statusLabel).Inc()
	observability.AdminLatency().WithLabelValues(method, route).Observe(duration.Seconds())
	if status >= fiber.StatusBadRequest {
		observability.AdminErrors().WithLabelValues(method, route, statusLabel).Inc()
	}

	access := RequestLogger(logger, c)
	var event *zerolog.Event
	switch {
	case status >= fiber.StatusInternalServerError:
		event = access.Error()
	case status >= fiber.StatusBadRequest:
		event = access.Warn()
	default:
		event = access.Info()
	}
	event.
		Str("route", route).
		Str("method", method).
		Int("status", status).
		Float64("latency_ms", float64(duration)/float64(time.Millisecond)).
		Str("latency_bucket", latencyBucket(duration)).
		Msg("admin request")
}

func routeTemplate(c *fiber.Ctx) string {
	if c.Route() != nil && c.Route().Path != "" {
		return c.Route().Path
	}
	return c.Path()
}

func latencyBucket(duration time.Duration) string {
	switch {
	case duration <= 25*time.Millisecond:
		return "<=25ms"
	case duration <= 50*time.Millisecond:
		return "<=50ms"
	case duration <= 100*time.Millisecond:
		return "<=100ms"
	case duration <= 250*time.Millisecond:
		return "<=250ms"
	case duration <= 500*time.Millisecond:
		return "<=500ms"
	default:
		return ">500ms"
	}
}
