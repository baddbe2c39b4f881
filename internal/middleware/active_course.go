package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog"

	"github.com/noah-isme/jys-academy-api/internal/models"
	"github.com/noah-isme/jys-academy-api/internal/service"
	"github.com/noah-isme/jys-academy-api/internal/session"
	"github.com/noah-isme/jys-academy-api/internal/utils"
)

// RequireActiveCourse resolves the admin's selected course once per request and stores it
// under LocalActiveCourse. Without a selection the client is sent to the course picker.
func RequireActiveCourse(store *fibersession.Store, courses session.CourseLookup, logger zerolog.Logger) fiber.Handler {
	logger = logger.With().Str("component", "active_course").Logger()
	redirect := fiber.Map{"redirect": service.RedirectCourseSelection}

	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			logger.Error().Err(err).Str("correlation_id", GetCorrelationID(c)).Msg("failed to load session")
			return utils.SendError(c, fiber.StatusInternalServerError, "session unavailable")
		}

		course, err := session.RequireSelectedCourse(c.UserContext(), sess, courses)
		switch {
		case err == nil:
			c.Locals(LocalActiveCourse, course)
			return c.Next()
		case errors.Is(err, service.ErrNoActiveCourse):
			return utils.Fail(c, fiber.StatusConflict, "select a course first", redirect)
		case errors.Is(err, service.ErrCourseNotFound):
			logger.Warn().Str("correlation_id", GetCorrelationID(c)).Msg("active course no longer exists")
			return utils.Fail(c, fiber.StatusNotFound, "the selected course no longer exists", redirect)
		default:
			logger.Error().Err(err).Str("correlation_id", GetCorrelationID(c)).Msg("failed to resolve active course")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to resolve active course")
		}
	}
}

// ActiveCourse returns the course resolved by RequireActiveCourse.
func ActiveCourse(c *fiber.Ctx) (models.Course, bool) {
	course, ok := c.Locals(LocalActiveCourse).(models.Course)
	return course, ok
}
