package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/jys-academy-api/internal/observability"
	"github.com/noah-isme/jys-academy-api/internal/repository"
)

// PromotedMessage describes one scheduled message turned into a notice.
type PromotedMessage struct {
	MessageID uint   `json:"message_id"`
	NoticeID  uint   `json:"notice_id"`
	CourseID  uint   `json:"course_id"`
	Title     string `json:"title"`
}

// PromotionReport summarises a promotion run.
type PromotionReport struct {
	Processed []PromotedMessage `json:"processed"`
	Skipped   int               `json:"skipped"`
	Failed    int               `json:"failed"`
}

// Empty reports whether the run found nothing to do.
func (r PromotionReport) Empty() bool {
	return len(r.Processed) == 0 && r.Skipped == 0 && r.Failed == 0
}

// PromotionService turns due scheduled messages into published notices.
type PromotionService interface {
	Run(ctx context.Context) (PromotionReport, error)
}

type promotionService struct {
	repo        repository.ScheduledMessageRepository
	broadcaster NoticeBroadcaster
	logger      zerolog.Logger
	now         func() time.Time
	tracer      trace.Tracer
}

// NewPromotionService constructs the promotion job.
func NewPromotionService(repo repository.ScheduledMessageRepository, broadcaster NoticeBroadcaster, logger zerolog.Logger) PromotionService {
	return &promotionService{
		repo:        repo,
		broadcaster: broadcaster,
		logger:      logger.With().Str("component", "promotion_service").Logger(),
		now:         time.Now,
		tracer:      otel.Tracer("github.com/noah-isme/jys-academy-api/internal/service/promotion"),
	}
}

// Run processes every due message on its own. A failure on one message is counted and logged,
// and the run only errors when the due messages cannot be listed. Messages already claimed by
// a concurrent run are skipped.
func (s *promotionService) Run(ctx context.Context) (PromotionReport, error) {
	ctx, span := s.tracer.Start(ctx, "promotion.run")
	defer span.End()

	now := s.now().UTC()
	due, err := s.repo.ListDue(ctx, now)
	if err != nil {
		observability.PromotionRuns().WithLabelValues("failed").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "list failed")
		return PromotionReport{}, err
	}
	span.SetAttributes(attribute.Int("promotion.due", len(due)))

	report := PromotionReport{Processed: make([]PromotedMessage, 0, len(due))}
	for _, message := range due {
		logger := s.logger.With().Uint("message_id", message.ID).Uint("course_id", message.CourseID).Logger()

		notice, claimed, err := s.repo.Promote(ctx, message, now)
		if err != nil {
			report.Failed++
			observability.PromotionMessages().WithLabelValues("failed").Inc()
			span.RecordError(err)
			logger.Error().Err(err).Msg("failed to promote scheduled message")
			continue
		}
		if !claimed {
			report.Skipped++
			observability.PromotionMessages().WithLabelValues("skipped").Inc()
			logger.Debug().Msg("scheduled message already promoted")
			continue
		}

		observability.PromotionMessages().WithLabelValues("promoted").Inc()
		report.Processed = append(report.Processed, PromotedMessage{
			MessageID: message.ID,
			NoticeID:  notice.ID,
			CourseID:  message.CourseID,
			Title:     message.Title,
		})
		logger.Info().Uint("notice_id", notice.ID).Str("title", message.Title).Msg("scheduled message promoted")

		if s.broadcaster != nil {
			s.broadcaster.Broadcast(ctx, notice, NoticeSourcePromotion)
		}
	}

	span.SetAttributes(
		attribute.Int("promotion.processed", len(report.Processed)),
		attribute.Int("promotion.skipped", report.Skipped),
		attribute.Int("promotion.failed", report.Failed),
	)
	observability.PromotionRuns().WithLabelValues("ok").Inc()
	span.SetStatus(codes.Ok, "completed")

	return report, nil
}
