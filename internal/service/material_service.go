package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
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

// MaterialsNamespace is the folder every material file is stored under.
const MaterialsNamespace = "materiales"

// FileStorage abstracts upload destinations. The returned string is the public file reference.
type FileStorage interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// MaterialService publishes study material to a course.
type MaterialService interface {
	Upload(ctx context.Context, course models.Course, req dto.MaterialUploadRequest, file *multipart.FileHeader, actor ActivityActor) (dto.MaterialResponse, error)
}

type materialService struct {
	storage   FileStorage
	repo      repository.MaterialRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
	maxSize   int64
	tracer    trace.Tracer
}

// NewMaterialService constructs the material service.
func NewMaterialService(storage FileStorage, repo repository.MaterialRepository, validator *validator.Validate, activity ActivityRecorder, maxSizeMB int, logger zerolog.Logger) MaterialService {
	if maxSizeMB <= 0 {
		maxSizeMB = 50
	}
	return &materialService{
		storage:   storage,
		repo:      repo,
		validator: validator,
		activity:  activity,
		logger:    logger.With().Str("component", "material_service").Logger(),
		maxSize:   int64(maxSizeMB) * 1024 * 1024,
		tracer:    otel.Tracer("github.com/noah-isme/jys-academy-api/internal/service/material"),
	}
}

// Upload stores the file and records the material. The content itself is not inspected beyond MIME detection.
func (s *materialService) Upload(ctx context.Context, course models.Course, req dto.MaterialUploadRequest, file *multipart.FileHeader, actor ActivityActor) (dto.MaterialResponse, error) {
	ctx, span := s.tracer.Start(ctx, "material.upload", trace.WithAttributes(attribute.Int("course.id", int(course.ID))))
	defer span.End()

	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Kind = strings.ToLower(strings.TrimSpace(req.Kind))
	if err := s.validator.Struct(req); err != nil {
		span.SetStatus(codes.Error, "validation failed")
		return dto.MaterialResponse{}, err
	}

	if file == nil {
		span.SetStatus(codes.Error, "file missing")
		return dto.MaterialResponse{}, fieldError("archivo", "a file is required", ErrFileRequired)
	}
	span.SetAttributes(
		attribute.String("upload.original_name", strings.TrimSpace(file.Filename)),
		attribute.Int64("upload.request_size", file.Size),
	)

	if file.Size > s.maxSize {
		observability.UploadRejected().WithLabelValues("size").Inc()
		span.SetStatus(codes.Error, "payload too large")
		return dto.MaterialResponse{}, ErrUploadTooLarge
	}

	start := time.Now()
	defer func() {
		observability.UploadLatency().Observe(time.Since(start).Seconds())
	}()

	handle, err := file.Open()
	if err != nil {
		span.RecordError(err)
		return dto.MaterialResponse{}, err
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, s.maxSize+1)); err != nil {
		span.RecordError(err)
		return dto.MaterialResponse{}, err
	}
	if int64(buf.Len()) > s.maxSize {
		observability.UploadRejected().WithLabelValues("size").Inc()
		span.SetStatus(codes.Error, "payload too large")
		return dto.MaterialResponse{}, ErrUploadTooLarge
	}

	mime := mimetype.Detect(buf.Bytes()).String()
	name := sanitizeFileName(file.Filename)
	span.SetAttributes(attribute.String("upload.detected_mime", mime), attribute.String("upload.sanitized_name", name))

	url, err := s.storage.Upload(ctx, name, bytes.NewReader(buf.Bytes()))
	if err != nil {
		observability.UploadRejected().WithLabelValues("storage").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage failed")
		return dto.MaterialResponse{}, err
	}

	material := models.Material{
		Title:       req.Title,
		Description: req.Description,
		Kind:        models.MaterialKind(req.Kind),
		FileURL:     url,
		FileName:    name,
		MimeType:    mime,
		SizeBytes:   int64(buf.Len()),
		CourseID:    course.ID,
	}
	if err := s.repo.Create(ctx, &material); err != nil {
		s.logger.Error().Err(err).
			Uint("course_id", course.ID).
			Str("file_url", url).
			Msg("material not recorded; stored file is orphaned")
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		return dto.MaterialResponse{}, err
	}

	observability.UploadRequests().WithLabelValues(req.Kind).Inc()
	span.SetStatus(codes.Ok, "stored")

	recordActivity(ctx, s.activity, s.logger, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     "material.uploaded",
		EntityType: "material",
		EntityID:   uintPtr(material.ID),
		CourseID:   uintPtr(course.ID),
		Metadata: map[string]interface{}{
			"title":     material.Title,
			"kind":      req.Kind,
			"mime_type": mime,
		},
	})

	return dto.NewMaterialResponse(material), nil
}

func sanitizeFileName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	ext := strings.ToLower(filepath.Ext(name))
	base := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, base)
	base = strings.Trim(base, "-")
	if base == "" || base == "." {
		base = fmt.Sprintf("material-%d", time.Now().Unix())
	}
	if ext == "" || ext == "." {
		ext = ".bin"
	}
	return base + ext
}
