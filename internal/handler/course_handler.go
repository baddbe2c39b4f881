package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog"

	"github.com/noah-isme/jys-academy-api/internal/dto"
	"github.com/noah-isme/jys-academy-api/internal/middleware"
	"github.com/noah-isme/jys-academy-api/internal/service"
	"github.com/noah-isme/jys-academy-api/internal/session"
	"github.com/noah-isme/jys-academy-api/internal/utils"
)

// RedirectAdminDashboard is where admins land after choosing a course.
const RedirectAdminDashboard = "/admin-dashboard/"

// CourseSelectionHandler lets administrators pick the course they work on.
type CourseSelectionHandler struct {
	courses  service.CourseService
	activity service.ActivityRecorder
	store    *fibersession.Store
	logger   zerolog.Logger
}

// NewCourseSelectionHandler constructs the course selection handler.
func NewCourseSelectionHandler(courses service.CourseService, activity service.ActivityRecorder, store *fibersession.Store, logger zerolog.Logger) *CourseSelectionHandler {
	return &CourseSelectionHandler{
		courses:  courses,
		activity: activity,
		store:    store,
		logger:   logger.With().Str("component", "course_selection_handler").Logger(),
	}
}

// Register wires the selection form.
func (h *CourseSelectionHandler) Register(router fiber.Router, guards ...fiber.Handler) {
	router.Get("/seleccionar-curso", guarded(guards, h.list)...)
	router.Post("/seleccionar-curso", guarded(guards, h.selectCourse)...)
}

func (h *CourseSelectionHandler) list(c *fiber.Ctx) error {
	courses, err := h.courses.List(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "failed to load courses")
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load session")
	}

	response := dto.CourseSelectionResponse{Courses: courses}
	if id, ok := session.ActiveCourseID(sess); ok {
		response.ActiveCourseID = &id
	}
	return utils.SendSuccess(c, "courses retrieved", response)
}

func (h *CourseSelectionHandler) selectCourse(c *fiber.Ctx) error {
	var payload dto.SelectCourseRequest
	if err := c.BodyParser(&payload); err != nil || payload.CourseID == 0 {
		return utils.Fail(c, fiber.StatusBadRequest, "validation failed", map[string]string{"course_id": "select a valid course"})
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load session")
	}

	course, err := session.SelectCourse(c.UserContext(), sess, h.courses, payload.CourseID)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			return utils.Fail(c, fiber.StatusBadRequest, "validation failed", map[string]string{"course_id": "select a valid course"})
		}
		return respondError(c, h.logger, err, "failed to select course")
	}

	if h.activity != nil {
		actor := middleware.Actor(c)
		if _, err := h.activity.Record(c.UserContext(), service.ActivityEntry{
			ActorID:    actor.ID,
			ActorRole:  actor.Role,
			Action:     "course.selected",
			EntityType: "course",
			EntityID:   &course.ID,
			CourseID:   &course.ID,
			Metadata:   map[string]interface{}{"name": course.Name},
		}); err != nil {
			requestLogger(h.logger, c).Warn().Err(err).Msg("activity not recorded")
		}
	}

	return utils.SendSuccess(c, "course selected", fiber.Map{
		"course":   dto.NewCourseResponse(course),
		"redirect": RedirectAdminDashboard,
	})
}
