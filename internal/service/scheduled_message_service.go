package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/jys-academy-api/internal/dto"
	"github.com/noah-isme/jys-academy-api/internal/models"
	"github.com/noah-isme/jys-academy-api/internal/repository"
)

var scheduleLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ScheduledMessageService stores messages for later promotion.
type ScheduledMessageService interface {
	Schedule(ctx context.Context, course models.Course, req dto.ScheduledMessageCreateRequest, actor ActivityActor) (dto.ScheduledMessageResponse, error)
}

type scheduledMessageService struct {
	repo      repository.ScheduledMessageRepository
	validator *validator.Validate
	activity  ActivityRecorder
	policy    *bluemonday.Policy
	location  *time.Location
	logger    zerolog.Logger
}

// NewScheduledMessageService constructs the service. Dates without an offset are read in loc.
func NewScheduledMessageService(repo repository.ScheduledMessageRepository, validator *validator.Validate, activity ActivityRecorder, loc *time.Location, logger zerolog.Logger) ScheduledMessageService {
	if loc == nil {
		loc = time.Local
	}
	return &scheduledMessageService{
		repo:      repo,
		validator: validator,
		activity:  activity,
		policy:    bluemonday.UGCPolicy(),
		location:  loc,
		logger:    logger.With().Str("component", "scheduled_message_service").Logger(),
	}
}

// Schedule always stores the message as pending. Past dates are accepted and picked up by the next run.
func (s *scheduledMessageService) Schedule(ctx context.Context, course models.Course, req dto.ScheduledMessageCreateRequest, actor ActivityActor) (dto.ScheduledMessageResponse, error) {
	req.Title = plainTitle(req.Title)
	req.Content = strings.TrimSpace(s.policy.Sanitize(req.Content))
	req.Kind = strings.ToLower(strings.TrimSpace(req.Kind))
	req.ScheduledFor = strings.TrimSpace(req.ScheduledFor)
	if err := s.validator.Struct(req); err != nil {
		return dto.ScheduledMessageResponse{}, err
	}

	scheduledFor, err := s.parseSchedule(req.ScheduledFor)
	if err != nil {
		return dto.ScheduledMessageResponse{}, err
	}

	message := models.ScheduledMessage{
		Title:        req.Title,
		Content:      req.Content,
		Kind:         models.MessageKind(req.Kind),
		CourseID:     course.ID,
		ScheduledFor: scheduledFor,
		Sent:         false,
	}
	if err := s.repo.Create(ctx, &message); err != nil {
		return dto.ScheduledMessageResponse{}, err
	}

	recordActivity(ctx, s.activity, s.logger, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     "message.scheduled",
		EntityType: "scheduled_message",
		EntityID:   uintPtr(message.ID),
		CourseID:   uintPtr(course.ID),
		Metadata: map[string]interface{}{
			"title":         message.Title,
			"kind":          req.Kind,
			"scheduled_for": message.ScheduledFor.Format(time.RFC3339),
		},
	})

	return dto.NewScheduledMessageResponse(message), nil
}

func (s *scheduledMessageService) parseSchedule(raw string) (time.Time, error) {
	for _, layout := range scheduleLayouts {
		var (
			parsed time.Time
			err    error
		)
		if layout == time.RFC3339 {
			parsed, err = time.Parse(layout, raw)
		} else {
			parsed, err = time.ParseInLocation(layout, raw, s.location)
		}
		if err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fieldError("scheduled_for", "use a date and time such as 2024-05-10T18:30", ErrInvalidSchedule)
}
