package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/jys-academy-api/internal/dto"
	"github.com/noah-isme/jys-academy-api/internal/middleware"
	"github.com/noah-isme/jys-academy-api/internal/models"
	"github.com/noah-isme/jys-academy-api/internal/service"
	"github.com/noah-isme/jys-academy-api/internal/utils"
)

// ScheduledMessageHandler stores messages for later promotion.
type ScheduledMessageHandler struct {
	service service.ScheduledMessageService
	logger  zerolog.Logger
}

// NewScheduledMessageHandler constructs a scheduled message handler.
func NewScheduledMessageHandler(service service.ScheduledMessageService, logger zerolog.Logger) *ScheduledMessageHandler {
	return &ScheduledMessageHandler{
		service: service,
		logger:  logger.With().Str("component", "scheduled_message_handler").Logger(),
	}
}

// Register wires scheduling routes.
func (h *ScheduledMessageHandler) Register(router fiber.Router, guards ...fiber.Handler) {
	router.Get("/programar-mensaje", guarded(guards, h.form)...)
	router.Post("/programar-mensaje", guarded(guards, h.schedule)...)
}

func (h *ScheduledMessageHandler) form(c *fiber.Ctx) error {
	course, err := activeCourse(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load form")
	}

	kinds := make([]string, 0, len(models.MessageKinds))
	for _, kind := range models.MessageKinds {
		kinds = append(kinds, string(kind))
	}
	return utils.SendSuccess(c, "message form", dto.ContentFormResponse{Course: dto.NewCourseResponse(course), Kinds: kinds})
}

func (h *ScheduledMessageHandler) schedule(c *fiber.Ctx) error {
	course, err := activeCourse(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to schedule message")
	}

	var payload dto.ScheduledMessageCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	message, err := h.service.Schedule(c.UserContext(), course, payload, middleware.Actor(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to schedule message")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "message scheduled", message)
}
