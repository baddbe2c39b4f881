package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog"

	"github.com/noah-isme/jys-academy-api/internal/config"
	"github.com/noah-isme/jys-academy-api/internal/handler"
	"github.com/noah-isme/jys-academy-api/internal/middleware"
	"github.com/noah-isme/jys-academy-api/internal/models"
	"github.com/noah-isme/jys-academy-api/internal/observability"
	"github.com/noah-isme/jys-academy-api/internal/session"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	Sessions       *fibersession.Store
	Courses        session.CourseLookup
	LimiterStorage fiber.Storage
	MediaRoot      string
	Logger         zerolog.Logger

	AuthHandler             *handler.AuthHandler
	CourseSelectionHandler  *handler.CourseSelectionHandler
	AdminDashboardHandler   *handler.AdminDashboardHandler
	StudentHandler          *handler.StudentHandler
	MaterialHandler         *handler.MaterialHandler
	NoticeHandler           *handler.NoticeHandler
	ScheduledMessageHandler *handler.ScheduledMessageHandler
	StudentDashboardHandler *handler.StudentDashboardHandler
	ContactHandler          *handler.ContactHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	app.Get("/healthz", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	if deps.MediaRoot != "" {
		app.Static("/media", deps.MediaRoot)
	}

	app.Use(middleware.SessionAuth(deps.Sessions, deps.Logger))

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(app, middleware.RateLimit("login", cfg.LoginRateLimit, time.Minute, deps.LimiterStorage))
	}

	if deps.ContactHandler != nil {
		deps.ContactHandler.Register(app, middleware.RateLimit("contact", 5, time.Minute, deps.LimiterStorage))
	}

	// Course selection only needs an admin; everything else also needs the selected course.
	requireAdmin := middleware.RequireRole(models.RoleAdmin)
	if deps.CourseSelectionHandler != nil {
		deps.CourseSelectionHandler.Register(app, requireAdmin)
	}

	adminGuards := []fiber.Handler{
		requireAdmin,
		middleware.RequireActiveCourse(deps.Sessions, deps.Courses, deps.Logger),
	}
	if deps.AdminDashboardHandler != nil {
		deps.AdminDashboardHandler.Register(app, adminGuards...)
	}
	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(app, adminGuards...)
	}
	if deps.MaterialHandler != nil {
		deps.MaterialHandler.Register(app, adminGuards...)
	}
	if deps.NoticeHandler != nil {
		deps.NoticeHandler.Register(app, adminGuards...)
	}
	if deps.ScheduledMessageHandler != nil {
		deps.ScheduledMessageHandler.Register(app, adminGuards...)
	}

	if deps.StudentDashboardHandler != nil {
		deps.StudentDashboardHandler.Register(app)
	}
}
