package handler

import (
	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog"

	"github.com/noah-isme/jys-academy-api/internal/dto"
	"github.com/noah-isme/jys-academy-api/internal/middleware"
	"github.com/noah-isme/jys-academy-api/internal/models"
	"github.com/noah-isme/jys-academy-api/internal/service"
	"github.com/noah-isme/jys-academy-api/internal/session"
	"github.com/noah-isme/jys-academy-api/internal/utils"
)

// AuthHandler signs accounts in and out of the session.
type AuthHandler struct {
	service service.AuthService
	store   *fibersession.Store
	logger  zerolog.Logger
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(service service.AuthService, store *fibersession.Store, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		store:   store,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires login and logout. Guards apply to the login submission only.
func (h *AuthHandler) Register(router fiber.Router, loginGuards ...fiber.Handler) {
	router.Get("/login", h.loginStatus)
	router.Post("/login", guarded(loginGuards, h.login)...)
	router.Get("/logout", h.logout)
	router.Post("/logout", h.logout)
}

// loginStatus tells an already authenticated client where it belongs.
func (h *AuthHandler) loginStatus(c *fiber.Ctx) error {
	if _, ok := middleware.CurrentUserID(c); !ok {
		return utils.SendSuccess(c, "login required", fiber.Map{"authenticated": false})
	}

	redirect := service.RedirectStudentDashboard
	if c.Locals(middleware.LocalUserRole) == models.RoleAdmin {
		redirect = service.RedirectCourseSelection
	}
	return utils.SendSuccess(c, "already authenticated", fiber.Map{"authenticated": true, "redirect": redirect})
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Login(c.UserContext(), payload)
	if err != nil {
		return respondError(c, h.logger, err, "failed to sign in")
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to start session")
	}
	if err := session.SignIn(sess, result.Account.ID, result.Account.IsAdmin); err != nil {
		return respondError(c, h.logger, err, "failed to start session")
	}

	requestLogger(h.logger, c).Info().Uint("account_id", result.Account.ID).Str("role", result.Role).Msg("account signed in")
	return utils.SendSuccess(c, "signed in", result)
}

// logout destroys the session whether or not one exists.
func (h *AuthHandler) logout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to sign out")
	}
	if err := sess.Destroy(); err != nil {
		return respondError(c, h.logger, err, "failed to sign out")
	}
	return utils.SendSuccess(c, "signed out", fiber.Map{"redirect": service.RedirectLogin})
}
