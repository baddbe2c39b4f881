package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/jys-academy-api/internal/dto"
	"github.com/noah-isme/jys-academy-api/internal/middleware"
	"github.com/noah-isme/jys-academy-api/internal/service"
	"github.com/noah-isme/jys-academy-api/internal/utils"
)

// NoticeHandler publishes notices to the active course.
type NoticeHandler struct {
	service service.NoticeService
	logger  zerolog.Logger
}

// NewNoticeHandler constructs a notice handler.
func NewNoticeHandler(service service.NoticeService, logger zerolog.Logger) *NoticeHandler {
	return &NoticeHandler{
		service: service,
		logger:  logger.With().Str("component", "notice_handler").Logger(),
	}
}

// Register wires notice routes.
func (h *NoticeHandler) Register(router fiber.Router, guards ...fiber.Handler) {
	router.Get("/crear-aviso", guarded(guards, h.form)...)
	router.Post("/crear-aviso", guarded(guards, h.create)...)
}

func (h *NoticeHandler) form(c *fiber.Ctx) error {
	course, err := activeCourse(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load form")
	}
	return utils.SendSuccess(c, "notice form", dto.ContentFormResponse{Course: dto.NewCourseResponse(course)})
}

func (h *NoticeHandler) create(c *fiber.Ctx) error {
	course, err := activeCourse(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to publish notice")
	}

	var payload dto.NoticeCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	notice, err := h.service.Create(c.UserContext(), course, payload, middleware.Actor(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to publish notice")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "notice published", notice)
}
