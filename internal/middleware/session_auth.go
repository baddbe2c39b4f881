package middleware

import (
	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog"

	"github.com/noah-isme/jys-academy-api/internal/models"
	"github.com/noah-isme/jys-academy-api/internal/service"
	"github.com/noah-isme/jys-academy-api/internal/session"
	"github.com/noah-isme/jys-academy-api/internal/utils"
)

// Locals populated by the session middlewares.
const (
	LocalUserID       = "user_id"
	LocalUserRole     = "user_role"
	LocalActiveCourse = "active_course"
)

// SessionAuth loads the session cookie and exposes the authenticated account through Locals.
// Anonymous requests pass through untouched.
func SessionAuth(store *fibersession.Store, logger zerolog.Logger) fiber.Handler {
	logger = logger.With().Str("component", "session_auth").Logger()

	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			logger.Error().Err(err).Str("correlation_id", GetCorrelationID(c)).Msg("failed to load session")
			return utils.SendError(c, fiber.StatusInternalServerError, "session unavailable")
		}

		if accountID, ok := session.AccountID(sess); ok {
			role := models.RoleStudent
			if session.IsAdmin(sess) {
				role = models.RoleAdmin
			}
			c.Locals(LocalUserID, accountID)
			c.Locals(LocalUserRole, role)
		}

		return c.Next()
	}
}

// CurrentUserID returns the authenticated account id.
func CurrentUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(LocalUserID).(uint)
	return id, ok && id != 0
}

// Actor describes the authenticated account for the activity log.
func Actor(c *fiber.Ctx) service.ActivityActor {
	id, _ := CurrentUserID(c)
	return service.ActivityActor{ID: id, Role: normalizeRoleValue(c.Locals(LocalUserRole))}
}
