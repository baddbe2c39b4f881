package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/jys-academy-api/internal/service"
	"github.com/noah-isme/jys-academy-api/internal/utils"
)

// AdminDashboardHandler exposes the summary of the active course.
type AdminDashboardHandler struct {
	service service.AdminDashboardService
	logger  zerolog.Logger
}

// NewAdminDashboardHandler constructs the admin dashboard handler.
func NewAdminDashboardHandler(service service.AdminDashboardService, logger zerolog.Logger) *AdminDashboardHandler {
	return &AdminDashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_dashboard_handler").Logger(),
	}
}

// Register attaches the dashboard endpoint.
func (h *AdminDashboardHandler) Register(router fiber.Router, guards ...fiber.Handler) {
	router.Get("/admin-dashboard", guarded(guards, h.summary)...)
}

func (h *AdminDashboardHandler) summary(c *fiber.Ctx) error {
	course, err := activeCourse(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load dashboard")
	}

	summary, err := h.service.Summary(c.UserContext(), course)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load dashboard")
	}
	return utils.SendSuccess(c, "dashboard retrieved", summary)
}
