package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/jys-academy-api/internal/dto"
	"github.com/noah-isme/jys-academy-api/internal/middleware"
	"github.com/noah-isme/jys-academy-api/internal/service"
	"github.com/noah-isme/jys-academy-api/internal/utils"
)

// StudentHandler serves the admin student workflows for the active course.
type StudentHandler struct {
	service service.StudentService
	logger  zerolog.Logger
}

// NewStudentHandler constructs a student handler.
func NewStudentHandler(service service.StudentService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		service: service,
		logger:  logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register wires the student routes. Every route expects the active course guard.
func (h *StudentHandler) Register(router fiber.Router, guards ...fiber.Handler) {
	router.Get("/crear-alumno", guarded(guards, h.createForm)...)
	router.Post("/crear-alumno", guarded(guards, h.create)...)
	router.Get("/editar-alumno/:id", guarded(guards, h.editForm)...)
	router.Post("/editar-alumno/:id", guarded(guards, h.update)...)
	router.Post("/eliminar-alumno/:id", guarded(guards, h.delete)...)
	router.Get("/gestionar-alumno/:id", guarded(guards, h.detail)...)
	router.Post("/gestionar-alumno/:id", guarded(guards, h.addGrade)...)
	router.Get("/agregar-nota/:id", guarded(guards, h.editForm)...)
	router.Post("/agregar-nota/:id", guarded(guards, h.addGrade)...)
	router.Get("/buscar-alumnos", guarded(guards, h.search)...)
}

func (h *StudentHandler) createForm(c *fiber.Ctx) error {
	course, err := activeCourse(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load form")
	}
	return utils.SendSuccess(c, "student form", dto.ContentFormResponse{Course: dto.NewCourseResponse(course)})
}

func (h *StudentHandler) create(c *fiber.Ctx) error {
	course, err := activeCourse(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to create student")
	}

	var payload dto.StudentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	student, err := h.service.Create(c.UserContext(), course, payload, middleware.Actor(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to create student")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "student created", student)
}

// editForm returns the student being edited or graded.
func (h *StudentHandler) editForm(c *fiber.Ctx) error {
	detail, err := h.loadDetail(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load student")
	}
	return utils.SendSuccess(c, "student retrieved", detail.Student)
}

func (h *StudentHandler) update(c *fiber.Ctx) error {
	course, err := activeCourse(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to update student")
	}
	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to update student")
	}

	var payload dto.StudentUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	student, err := h.service.Update(c.UserContext(), course, id, payload, middleware.Actor(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to update student")
	}
	return utils.SendSuccess(c, "student updated", student)
}

func (h *StudentHandler) delete(c *fiber.Ctx) error {
	course, err := activeCourse(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to delete student")
	}
	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to delete student")
	}

	if err := h.service.Delete(c.UserContext(), course, id, middleware.Actor(c)); err != nil {
		return respondError(c, h.logger, err, "failed to delete student")
	}
	return utils.SendSuccess(c, "student deleted", fiber.Map{"id": id})
}

func (h *StudentHandler) detail(c *fiber.Ctx) error {
	detail, err := h.loadDetail(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load student")
	}
	return utils.SendSuccess(c, "student retrieved", detail)
}

func (h *StudentHandler) addGrade(c *fiber.Ctx) error {
	course, err := activeCourse(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to add grade")
	}
	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to add grade")
	}

	var payload dto.GradeCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	grade, err := h.service.AddGrade(c.UserContext(), course, id, payload, middleware.Actor(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to add grade")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "grade added", grade)
}

func (h *StudentHandler) search(c *fiber.Ctx) error {
	course, err := activeCourse(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to search students")
	}

	results, err := h.service.Search(c.UserContext(), course, c.Query("q"))
	if err != nil {
		return respondError(c, h.logger, err, "failed to search students")
	}
	return utils.OK(c, results.Items, "students retrieved", fiber.Map{"query": results.Query, "total": results.Total})
}

func (h *StudentHandler) loadDetail(c *fiber.Ctx) (dto.StudentDetailResponse, error) {
	course, err := activeCourse(c)
	if err != nil {
		return dto.StudentDetailResponse{}, err
	}
	id, err := parseIDParam(c)
	if err != nil {
		return dto.StudentDetailResponse{}, err
	}
	return h.service.Detail(c.UserContext(), course, id)
}
