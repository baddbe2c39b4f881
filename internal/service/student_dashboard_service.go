package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/jys-academy-api/internal/dto"
	"github.com/noah-isme/jys-academy-api/internal/repository"
)

// StudentDashboardService produces the dashboard a student sees after login.
type StudentDashboardService interface {
	DashboardInvalidator
	GetDashboard(ctx context.Context, accountID uint) (dto.StudentDashboardResponse, error)
}

type studentDashboardService struct {
	students  repository.StudentRepository
	materials repository.MaterialRepository
	notices   repository.NoticeRepository
	grades    repository.GradeRepository
	cache     *redis.Client
	cacheTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewStudentDashboardService builds the dashboard aggregator. A nil cache disables caching.
func NewStudentDashboardService(
	students repository.StudentRepository,
	materials repository.MaterialRepository,
	notices repository.NoticeRepository,
	grades repository.GradeRepository,
	cache *redis.Client,
	ttl time.Duration,
	logger zerolog.Logger,
) StudentDashboardService {
	return &studentDashboardService{
		students:  students,
		materials: materials,
		notices:   notices,
		grades:    grades,
		cache:     cache,
		cacheTTL:  ttl,
		logger:    logger.With().Str("component", "student_dashboard_service").Logger(),
		now:       time.Now,
	}
}

func (s *studentDashboardService) GetDashboard(ctx context.Context, accountID uint) (dto.StudentDashboardResponse, error) {
	student, err := s.students.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentDashboardResponse{}, ErrStudentNotFound
		}
		return dto.StudentDashboardResponse{}, err
	}

	cacheKey := dashboardCacheKey(student.ID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.StudentDashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("student_id", student.ID).Msg("dashboard cache hit")
				return response, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	response := dto.StudentDashboardResponse{
		Student:     dto.NewStudentResponse(student),
		Materials:   []dto.MaterialResponse{},
		Notices:     []dto.NoticeResponse{},
		GeneratedAt: s.now().UTC(),
	}

	if student.CourseID != nil {
		if student.Course != nil {
			course := dto.NewCourseResponse(*student.Course)
			response.Course = &course
		}

		materials, err := s.materials.ListByCourse(ctx, *student.CourseID, 0)
		if err != nil {
			return dto.StudentDashboardResponse{}, err
		}
		response.Materials = dto.NewMaterialResponses(materials)

		notices, err := s.notices.ListByCourse(ctx, *student.CourseID, 0)
		if err != nil {
			return dto.StudentDashboardResponse{}, err
		}
		response.Notices = dto.NewNoticeResponses(notices)
	}

	grades, err := s.grades.ListByStudent(ctx, student.ID)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}
	response.Grades = dto.NewGradeResponses(grades)

	if s.cache != nil {
		payload, err := json.Marshal(response)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}

func (s *studentDashboardService) Invalidate(ctx context.Context, studentID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, dashboardCacheKey(studentID)).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("student_id", studentID).Msg("failed to invalidate dashboard cache")
	}
}

func dashboardCacheKey(studentID uint) string {
	return fmt.Sprintf("dashboard:student:%d", studentID)
}
