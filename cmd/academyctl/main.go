package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/noah-isme/jys-academy-api/internal/config"
	"github.com/noah-isme/jys-academy-api/internal/database"
	"github.com/noah-isme/jys-academy-api/internal/repository"
	"github.com/noah-isme/jys-academy-api/internal/service"
	"github.com/noah-isme/jys-academy-api/internal/validation"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Str("command", "academyctl").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	// Notices promoted from the command line are not broadcast.
	broadcaster := service.NewNoticeBroadcaster(nil, "", nil, "", logger)
	activity := service.NewActivityService(repository.NewActivityLogRepository(db), logger)

	cli := commandLine{
		courses:   service.NewCourseService(repository.NewCourseRepository(db), activity, logger),
		promotion: service.NewPromotionService(repository.NewScheduledMessageRepository(db), broadcaster, logger),
		auth:      service.NewAuthService(repository.NewAccountRepository(db), validation.New(), logger),
		out:       os.Stdout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = cli.run(ctx, os.Args)
	stop()
	if err != nil {
		if !errors.Is(err, errHelp) {
			logger.Error().Err(err).Msg("command failed")
		}
		os.Exit(1)
	}
}
