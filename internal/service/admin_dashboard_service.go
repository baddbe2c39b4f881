package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/jys-academy-api/internal/dto"
	"github.com/noah-isme/jys-academy-api/internal/models"
	"github.com/noah-isme/jys-academy-api/internal/repository"
)

const dashboardRecentLimit = 5

// AdminDashboardService summarises the active course for administrators.
type AdminDashboardService interface {
	Summary(ctx context.Context, course models.Course) (dto.AdminDashboardResponse, error)
}

type adminDashboardService struct {
	students  repository.StudentRepository
	materials repository.MaterialRepository
	notices   repository.NoticeRepository
	messages  repository.ScheduledMessageRepository
	activity  ActivityService
	logger    zerolog.Logger
}

// NewAdminDashboardService constructs the admin dashboard aggregator.
func NewAdminDashboardService(
	students repository.StudentRepository,
	materials repository.MaterialRepository,
	notices repository.NoticeRepository,
	messages repository.ScheduledMessageRepository,
	activity ActivityService,
	logger zerolog.Logger,
) AdminDashboardService {
	return &adminDashboardService{
		students:  students,
		materials: materials,
		notices:   notices,
		messages:  messages,
		activity:  activity,
		logger:    logger.With().Str("component", "admin_dashboard_service").Logger(),
	}
}

func (s *adminDashboardService) Summary(ctx context.Context, course models.Course) (dto.AdminDashboardResponse, error) {
	var (
		counts dto.DashboardCounts
		err    error
	)

	if counts.Students, err = s.students.CountByCourse(ctx, course.ID); err != nil {
		return dto.AdminDashboardResponse{}, err
	}
	if counts.Materials, err = s.materials.CountByCourse(ctx, course.ID); err != nil {
		return dto.AdminDashboardResponse{}, err
	}
	if counts.Notices, err = s.notices.CountByCourse(ctx, course.ID); err != nil {
		return dto.AdminDashboardResponse{}, err
	}
	if counts.PendingMessages, err = s.messages.CountPendingByCourse(ctx, course.ID); err != nil {
		return dto.AdminDashboardResponse{}, err
	}

	students, err := s.students.List(ctx, repository.StudentFilter{CourseID: course.ID, Limit: dashboardRecentLimit, Newest: true})
	if err != nil {
		return dto.AdminDashboardResponse{}, err
	}
	materials, err := s.materials.ListByCourse(ctx, course.ID, dashboardRecentLimit)
	if err != nil {
		return dto.AdminDashboardResponse{}, err
	}
	notices, err := s.notices.ListByCourse(ctx, course.ID, dashboardRecentLimit)
	if err != nil {
		return dto.AdminDashboardResponse{}, err
	}

	activity := []dto.ActivityResponse{}
	if s.activity != nil {
		recent, err := s.activity.Recent(ctx, course.ID, dashboardRecentLimit)
		if err != nil {
			s.logger.Warn().Err(err).Uint("course_id", course.ID).Msg("failed to load recent activity")
		} else {
			activity = recent
		}
	}

	return dto.AdminDashboardResponse{
		Course:          dto.NewCourseResponse(course),
		Counts:          counts,
		RecentStudents:  dto.NewStudentResponses(students),
		RecentMaterials: dto.NewMaterialResponses(materials),
		RecentNotices:   dto.NewNoticeResponses(notices),
		RecentActivity:  activity,
	}, nil
}
