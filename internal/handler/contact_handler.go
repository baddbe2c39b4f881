package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/jys-academy-api/internal/dto"
	"github.com/noah-isme/jys-academy-api/internal/service"
	"github.com/noah-isme/jys-academy-api/internal/utils"
)

// ContactHandler serves the public landing contact form.
type ContactHandler struct {
	service service.ContactService
	courses service.CourseService
	logger  zerolog.Logger
}

// NewContactHandler constructs a contact handler.
func NewContactHandler(service service.ContactService, courses service.CourseService, logger zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		courses: courses,
		logger:  logger.With().Str("component", "contact_handler").Logger(),
	}
}

// Register wires contact routes.
func (h *ContactHandler) Register(router fiber.Router, guards ...fiber.Handler) {
	router.Get("/", h.form)
	router.Post("/", guarded(guards, h.submit)...)
}

func (h *ContactHandler) form(c *fiber.Ctx) error {
	courses, err := h.courses.List(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "failed to load courses")
	}
	return utils.SendSuccess(c, "contact form", dto.ContactFormResponse{Courses: courses})
}

func (h *ContactHandler) submit(c *fiber.Ctx) error {
	var payload dto.ContactRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if payload.Honeypot != "" {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	payload.IPAddress = c.IP()

	response, err := h.service.Submit(c.UserContext(), payload)
	if err != nil {
		return respondError(c, h.logger, err, "failed to submit contact form")
	}

	return utils.SendSuccess(c, "¡Gracias por contactarnos! Te responderemos pronto.", response)
}
