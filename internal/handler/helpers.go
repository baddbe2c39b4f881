package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/jys-academy-api/internal/middleware"
	"github.com/noah-isme/jys-academy-api/internal/models"
	"github.com/noah-isme/jys-academy-api/internal/service"
	"github.com/noah-isme/jys-academy-api/internal/utils"
	"github.com/noah-isme/jys-academy-api/internal/validation"
)

var errInvalidID = errors.New("invalid id")

// guarded prepends the route guards to h without sharing the caller's slice.
func guarded(guards []fiber.Handler, h fiber.Handler) []fiber.Handler {
	handlers := make([]fiber.Handler, 0, len(guards)+1)
	handlers = append(handlers, guards...)
	return append(handlers, h)
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	raw := strings.TrimSpace(c.Params("id"))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := middleware.RequestLogger(base, c)
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

// activeCourse returns the course resolved by middleware.RequireActiveCourse.
func activeCourse(c *fiber.Ctx) (models.Course, error) {
	course, ok := middleware.ActiveCourse(c)
	if !ok {
		return models.Course{}, service.ErrNoActiveCourse
	}
	return course, nil
}

// respondError maps service errors onto the response envelope. Unknown errors are logged and
// reported with fallback only.
func respondError(c *fiber.Ctx, logger zerolog.Logger, err error, fallback string) error {
	var fieldErr *service.FieldError
	switch {
	case isValidationError(err):
		return utils.Fail(c, fiber.StatusBadRequest, "validation failed", validation.Details(err))
	case errors.As(err, &fieldErr):
		return utils.Fail(c, fiber.StatusBadRequest, "validation failed", map[string]string{fieldErr.Field: fieldErr.Message})
	case errors.Is(err, errInvalidID):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	case errors.Is(err, service.ErrInvalidCredentials):
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrStudentNotFound), errors.Is(err, service.ErrCourseNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDuplicateStudent), errors.Is(err, service.ErrUsernameTaken):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNoActiveCourse):
		return utils.Fail(c, fiber.StatusConflict, "select a course first", fiber.Map{"redirect": service.RedirectCourseSelection})
	case errors.Is(err, service.ErrUploadTooLarge):
		return utils.SendError(c, fiber.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, service.ErrContactSpam):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	default:
		requestLogger(logger, c).Error().Err(err).Str("path", c.Path()).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
