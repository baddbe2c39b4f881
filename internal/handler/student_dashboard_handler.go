package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/jys-academy-api/internal/middleware"
	"github.com/noah-isme/jys-academy-api/internal/service"
	"github.com/noah-isme/jys-academy-api/internal/utils"
)

// StudentDashboardHandler exposes the student dashboard endpoint.
type StudentDashboardHandler struct {
	service service.StudentDashboardService
	logger  zerolog.Logger
}

// NewStudentDashboardHandler creates a new handler instance.
func NewStudentDashboardHandler(service service.StudentDashboardService, logger zerolog.Logger) *StudentDashboardHandler {
	return &StudentDashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "student_dashboard_handler").Logger(),
	}
}

// Register attaches the dashboard endpoint. Only student sessions reach it.
func (h *StudentDashboardHandler) Register(router fiber.Router, guards ...fiber.Handler) {
	dashboard := middleware.WithAuth(h.getDashboard, middleware.AuthOptions{Role: middleware.AuthRoleStudent})
	router.Get("/student-dashboard", guarded(guards, dashboard)...)
}

func (h *StudentDashboardHandler) getDashboard(c *fiber.Ctx) error {
	accountID, ok := middleware.CurrentUserID(c)
	if !ok {
		return utils.Fail(c, fiber.StatusUnauthorized, "authentication required", fiber.Map{"redirect": service.RedirectLogin})
	}

	dashboard, err := h.service.GetDashboard(c.UserContext(), accountID)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load dashboard")
	}

	return utils.SendSuccess(c, "dashboard retrieved", dashboard)
}
