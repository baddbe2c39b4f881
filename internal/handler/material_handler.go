package handler

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/jys-academy-api/internal/dto"
	"github.com/noah-isme/jys-academy-api/internal/middleware"
	"github.com/noah-isme/jys-academy-api/internal/models"
	"github.com/noah-isme/jys-academy-api/internal/service"
	"github.com/noah-isme/jys-academy-api/internal/utils"
)

// MaterialFileField is the multipart field carrying the uploaded file.
const MaterialFileField = "archivo"

// MaterialHandler uploads study material for the active course.
type MaterialHandler struct {
	service service.MaterialService
	logger  zerolog.Logger
}

// NewMaterialHandler constructs a material handler.
func NewMaterialHandler(service service.MaterialService, logger zerolog.Logger) *MaterialHandler {
	return &MaterialHandler{
		service: service,
		logger:  logger.With().Str("component", "material_handler").Logger(),
	}
}

// Register wires upload routes.
func (h *MaterialHandler) Register(router fiber.Router, guards ...fiber.Handler) {
	router.Get("/subir-material", guarded(guards, h.form)...)
	router.Post("/subir-material", guarded(guards, h.upload)...)
}

func (h *MaterialHandler) form(c *fiber.Ctx) error {
	course, err := activeCourse(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load form")
	}

	kinds := make([]string, 0, len(models.MaterialKinds))
	for _, kind := range models.MaterialKinds {
		kinds = append(kinds, string(kind))
	}
	return utils.SendSuccess(c, "material form", dto.ContentFormResponse{Course: dto.NewCourseResponse(course), Kinds: kinds})
}

func (h *MaterialHandler) upload(c *fiber.Ctx) error {
	course, err := activeCourse(c)
	if err != nil {
		return respondError(c, h.logger, err, "upload failed")
	}

	var payload dto.MaterialUploadRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	var file *multipart.FileHeader
	if header, err := c.FormFile(MaterialFileField); err == nil {
		file = header
	}

	material, err := h.service.Upload(c.UserContext(), course, payload, file, middleware.Actor(c))
	if err != nil {
		return respondError(c, h.logger, err, "upload failed")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "material uploaded", material)
}
