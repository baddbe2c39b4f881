package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/jys-academy-api/internal/dto"
	"github.com/noah-isme/jys-academy-api/internal/models"
	"github.com/noah-isme/jys-academy-api/internal/observability"
	"github.com/noah-isme/jys-academy-api/internal/repository"
)

// ErrContactSpam indicates the honeypot field was filled.
var ErrContactSpam = errors.New("contact submission flagged as spam")

// ContactService exposes the contact submission workflow.
type ContactService interface {
	Submit(ctx context.Context, req dto.ContactRequest) (dto.ContactResponse, error)
	Close(ctx context.Context) error
}

type contactService struct {
	repo            repository.ContactRepository
	cache           *redis.Client
	validator       *validator.Validate
	delivery        ContactDelivery
	logger          zerolog.Logger
	dedupeTTL       time.Duration
	deliveryTimeout time.Duration
	tracer          trace.Tracer
	inflight        sync.WaitGroup
}

// NewContactService constructs a contact submission service. A nil cache disables de-duplication.
func NewContactService(repo repository.ContactRepository, cache *redis.Client, validator *validator.Validate, delivery ContactDelivery, logger zerolog.Logger) ContactService {
	return &contactService{
		repo:            repo,
		cache:           cache,
		validator:       validator,
		delivery:        delivery,
		logger:          logger.With().Str("component", "contact_service").Logger(),
		dedupeTTL:       5 * time.Minute,
		deliveryTimeout: 30 * time.Second,
		tracer:          otel.Tracer("github.com/noah-isme/jys-academy-api/internal/service/contact"),
	}
}

// Submit validates the enquiry and hands delivery to a background goroutine. Once validation
// passes the visitor always gets a success; persistence and delivery problems are only logged.
func (s *contactService) Submit(ctx context.Context, req dto.ContactRequest) (dto.ContactResponse, error) {
	ctx, span := s.tracer.Start(ctx, "contact.submit")
	defer span.End()

	if req.Honeypot != "" {
		span.SetStatus(codes.Error, "honeypot tripped")
		observability.ContactSubmissions().WithLabelValues("spam").Inc()
		return dto.ContactResponse{}, ErrContactSpam
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.CourseOfInterest = strings.TrimSpace(req.CourseOfInterest)
	req.Message = strings.TrimSpace(req.Message)
	if err := s.validator.Struct(req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return dto.ContactResponse{}, err
	}

	checksum := computeChecksum(req.Name, req.Email, req.Phone, req.CourseOfInterest, req.Message)
	span.SetAttributes(attribute.String("contact.checksum", checksum))

	submission := models.ContactSubmission{
		ReferenceID:      uuid.NewString(),
		Name:             req.Name,
		Email:            strings.ToLower(req.Email),
		Phone:            req.Phone,
		CourseOfInterest: req.CourseOfInterest,
		Message:          req.Message,
		Status:           models.ContactStatusQueued,
		Checksum:         checksum,
		IPAddress:        req.IPAddress,
	}
	if s.isDuplicate(ctx, checksum) {
		submission.Status = models.ContactStatusDuplicate
	}

	persisted := true
	if err := s.repo.Create(ctx, &submission); err != nil {
		persisted = false
		span.RecordError(err)
		s.logger.Error().Err(err).Str("reference_id", submission.ReferenceID).Msg("failed to persist contact submission")
	}

	response := dto.ContactResponse{ReferenceID: submission.ReferenceID, Status: submission.Status}
	if submission.Status == models.ContactStatusDuplicate {
		observability.ContactSubmissions().WithLabelValues("duplicate").Inc()
		s.logger.Info().Str("reference_id", submission.ReferenceID).Msg("duplicate contact submission not re-sent")
		span.SetStatus(codes.Ok, "duplicate")
		return response, nil
	}

	observability.ContactSubmissions().WithLabelValues("queued").Inc()
	s.dispatch(ctx, submission, persisted)
	span.SetStatus(codes.Ok, "queued")
	return response, nil
}

// Close waits for in-flight deliveries or for ctx to expire.
func (s *contactService) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *contactService) isDuplicate(ctx context.Context, checksum string) bool {
	if s.cache == nil {
		return false
	}
	key := fmt.Sprintf("contact:dedupe:%s", checksum)
	ok, err := s.cache.SetNX(ctx, key, 1, s.dedupeTTL).Result()
	if err != nil {
		s.logger.Warn().Err(err).Msg("contact de-duplication unavailable")
		return false
	}
	return !ok
}

func (s *contactService) dispatch(ctx context.Context, submission models.ContactSubmission, persisted bool) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()

		deliverCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.deliveryTimeout)
		defer cancel()

		logger := s.logger.With().
			Str("reference_id", submission.ReferenceID).
			Str("email", maskEmail(submission.Email)).
			Logger()

		status := models.ContactStatusSent
		var deliveredAt *time.Time
		if err := s.delivery.Deliver(deliverCtx, submission); err != nil {
			status = models.ContactStatusFailed
			observability.ContactSubmissions().WithLabelValues("failed").Inc()
			logger.Error().Err(err).Msg("contact delivery failed")
		} else {
			now := time.Now().UTC()
			deliveredAt = &now
			observability.ContactSubmissions().WithLabelValues("sent").Inc()
			logger.Info().Msg("contact submission delivered")
		}

		if !persisted {
			return
		}
		if err := s.repo.UpdateStatus(deliverCtx, submission.ID, status, deliveredAt); err != nil {
			logger.Warn().Err(err).Str("status", status).Msg("failed to update contact status")
		}
	}()
}

func computeChecksum(parts ...string) string {
	hasher := sha256.New()
	for _, part := range parts {
		hasher.Write([]byte(strings.TrimSpace(strings.ToLower(part))))
		hasher.Write([]byte("|"))
	}
	return hex.EncodeToString(hasher.Sum(nil))
}
