package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/jys-academy-api/internal/config"
	"github.com/noah-isme/jys-academy-api/internal/database"
	"github.com/noah-isme/jys-academy-api/internal/handler"
	"github.com/noah-isme/jys-academy-api/internal/middleware"
	"github.com/noah-isme/jys-academy-api/internal/repository"
	"github.com/noah-isme/jys-academy-api/internal/router"
	"github.com/noah-isme/jys-academy-api/internal/service"
	"github.com/noah-isme/jys-academy-api/internal/session"
	"github.com/noah-isme/jys-academy-api/internal/validation"
	"github.com/noah-isme/jys-academy-api/pkg/sendgridmail"
	"github.com/noah-isme/jys-academy-api/pkg/storage"
)

const noticeChannel = "academy:notices"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", cfg.AppName).Logger()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		connectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err = database.ConnectRedis(connectCtx, cfg.RedisURL)
		cancel()
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis not configured; sessions and rate limits stay in memory")
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL, nats.Name(cfg.AppName))
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Drain()
	}

	files, mediaRoot, err := newFileStorage(cfg, logger)
	if err != nil {
		log.Fatalf("failed to configure material storage: %v", err)
	}

	delivery, err := newContactDelivery(cfg, logger)
	if err != nil {
		log.Fatalf("failed to configure contact delivery: %v", err)
	}

	validate := validation.New()

	accountRepo := repository.NewAccountRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	noticeRepo := repository.NewNoticeRepository(db)
	messageRepo := repository.NewScheduledMessageRepository(db)
	contactRepo := repository.NewContactRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	broadcaster := service.NewNoticeBroadcaster(redisClient, noticeChannel, natsConn, cfg.NATSSubject, logger)
	activityService := service.NewActivityService(activityRepo, logger)
	courseService := service.NewCourseService(courseRepo, activityService, logger)
	authService := service.NewAuthService(accountRepo, validate, logger)
	dashboardService := service.NewStudentDashboardService(studentRepo, materialRepo, noticeRepo, gradeRepo, redisClient, cfg.DashboardCacheTTL, logger)
	studentService := service.NewStudentService(studentRepo, gradeRepo, courseRepo, validate, activityService, dashboardService, logger)
	adminDashboardService := service.NewAdminDashboardService(studentRepo, materialRepo, noticeRepo, messageRepo, activityService, logger)
	materialService := service.NewMaterialService(files, materialRepo, validate, activityService, cfg.UploadMaxMB, logger)
	noticeService := service.NewNoticeService(noticeRepo, validate, activityService, broadcaster, logger)
	messageService := service.NewScheduledMessageService(messageRepo, validate, activityService, cfg.Location, logger)
	contactService := service.NewContactService(contactRepo, redisClient, validate, delivery, logger)
	promotionService := service.NewPromotionService(messageRepo, broadcaster, logger)

	var scheduler *service.PromotionScheduler
	if cfg.PromotionSchedule != "" {
		scheduler, err = service.NewPromotionScheduler(cfg.PromotionSchedule, promotionService, 30*time.Second, logger)
		if err != nil {
			log.Fatalf("invalid promotion schedule: %v", err)
		}
		scheduler.Start()
	}

	sessionOpts := session.Options{TTL: cfg.SessionTTL, CookieSecure: cfg.SessionCookieSecure}
	deps := router.Dependencies{
		Courses:   courseService,
		MediaRoot: mediaRoot,
		Logger:    logger,
	}
	if redisClient != nil {
		sessionOpts.Storage = session.NewRedisStorage(redisClient, "session:")
		deps.LimiterStorage = session.NewRedisStorage(redisClient, "limiter:")
	}
	sessions := session.NewStore(sessionOpts)
	deps.Sessions = sessions

	deps.AuthHandler = handler.NewAuthHandler(authService, sessions, logger)
	deps.CourseSelectionHandler = handler.NewCourseSelectionHandler(courseService, activityService, sessions, logger)
	deps.AdminDashboardHandler = handler.NewAdminDashboardHandler(adminDashboardService, logger)
	deps.StudentHandler = handler.NewStudentHandler(studentService, logger)
	deps.MaterialHandler = handler.NewMaterialHandler(materialService, logger)
	deps.NoticeHandler = handler.NewNoticeHandler(noticeService, logger)
	deps.ScheduledMessageHandler = handler.NewScheduledMessageHandler(messageService, logger)
	deps.StudentDashboardHandler = handler.NewStudentDashboardHandler(dashboardService, logger)
	deps.ContactHandler = handler.NewContactHandler(contactService, courseService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    (cfg.UploadMaxMB + 1) * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{
		Logger:       &logger,
		AllowOrigins: cfg.CORSAllowOrigins,
		AccessLog:    !cfg.IsProduction(),
	})
	router.Register(app, cfg, deps)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, func(ctx context.Context) {
		if scheduler != nil {
			scheduler.Stop(ctx)
		}
		if err := contactService.Close(ctx); err != nil {
			logger.Warn().Err(err).Msg("contact deliveries still pending at shutdown")
		}
	})
}

func newFileStorage(cfg config.Config, logger zerolog.Logger) (service.FileStorage, string, error) {
	if cfg.StorageDriver == config.StorageDriverCloudinary {
		uploader, err := storage.NewCloudinary(storage.CloudinaryConfig{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
			Namespace: service.MaterialsNamespace,
		}, logger)
		if err != nil {
			return nil, "", err
		}
		return uploader, "", nil
	}

	local, err := storage.NewLocal(cfg.StorageLocalRoot, service.MaterialsNamespace, "/media", logger)
	if err != nil {
		return nil, "", err
	}
	return local, local.Root(), nil
}

func newContactDelivery(cfg config.Config, logger zerolog.Logger) (service.ContactDelivery, error) {
	if cfg.SendGridAPIKey == "" {
		return service.NewLogContactDelivery(logger), nil
	}

	mailer, err := sendgridmail.New(sendgridmail.Config{
		APIKey:      cfg.SendGridAPIKey,
		FromName:    cfg.MailFromName,
		FromAddress: cfg.MailFromAddress,
	}, logger)
	if err != nil {
		return nil, err
	}
	return service.NewMailContactDelivery(mailer, cfg.ContactInbox), nil
}

func waitForShutdown(app *fiber.App, cleanup func(context.Context)) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
	cleanup(ctx)

	log.Println("server stopped")
}
