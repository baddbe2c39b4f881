package service

import (
	"context"
	"html"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/jys-academy-api/internal/dto"
	"github.com/noah-isme/jys-academy-api/internal/models"
	"github.com/noah-isme/jys-academy-api/internal/repository"
)

// NoticeService publishes notices to the active course.
type NoticeService interface {
	Create(ctx context.Context, course models.Course, req dto.NoticeCreateRequest, actor ActivityActor) (dto.NoticeResponse, error)
}

type noticeService struct {
	repo        repository.NoticeRepository
	validator   *validator.Validate
	activity    ActivityRecorder
	broadcaster NoticeBroadcaster
	content     *bluemonday.Policy
	logger      zerolog.Logger
	now         func() time.Time
}

// NewNoticeService constructs the notice service.
func NewNoticeService(repo repository.NoticeRepository, validator *validator.Validate, activity ActivityRecorder, broadcaster NoticeBroadcaster, logger zerolog.Logger) NoticeService {
	return &noticeService{
		repo:        repo,
		validator:   validator,
		activity:    activity,
		broadcaster: broadcaster,
		content:     bluemonday.UGCPolicy(),
		logger:      logger.With().Str("component", "notice_service").Logger(),
		now:         time.Now,
	}
}

var titlePolicy = bluemonday.StrictPolicy()

// plainTitle strips markup from a notice title and returns it as literal text.
// Notices created directly and promoted from scheduled messages share it.
func plainTitle(raw string) string {
	return strings.TrimSpace(html.UnescapeString(titlePolicy.Sanitize(raw)))
}

// Create links the notice to exactly the given course.
func (s *noticeService) Create(ctx context.Context, course models.Course, req dto.NoticeCreateRequest, actor ActivityActor) (dto.NoticeResponse, error) {
	req.Title = plainTitle(req.Title)
	req.Content = strings.TrimSpace(s.content.Sanitize(req.Content))
	if err := s.validator.Struct(req); err != nil {
		return dto.NoticeResponse{}, err
	}

	notice := models.Notice{
		Title:       req.Title,
		Content:     req.Content,
		PublishedAt: s.now().UTC(),
	}
	if err := s.repo.CreateForCourses(ctx, &notice, course.ID); err != nil {
		return dto.NoticeResponse{}, err
	}

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(ctx, notice, NoticeSourceAdmin)
	}

	recordActivity(ctx, s.activity, s.logger, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     "notice.created",
		EntityType: "notice",
		EntityID:   uintPtr(notice.ID),
		CourseID:   uintPtr(course.ID),
		Metadata:   map[string]interface{}{"title": notice.Title},
	})

	return dto.NewNoticeResponse(notice), nil
}
