package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/jys-academy-api/internal/dto"
	"github.com/noah-isme/jys-academy-api/internal/models"
	"github.com/noah-isme/jys-academy-api/internal/repository"
)

var maxScore = decimal.NewFromInt(100)

// DashboardInvalidator drops cached student dashboards.
type DashboardInvalidator interface {
	Invalidate(ctx context.Context, studentID uint)
}

// StudentService implements the admin student workflows. Every call is scoped to the active course.
type StudentService interface {
	Create(ctx context.Context, course models.Course, req dto.StudentCreateRequest, actor ActivityActor) (dto.StudentResponse, error)
	Update(ctx context.Context, course models.Course, id uint, req dto.StudentUpdateRequest, actor ActivityActor) (dto.StudentResponse, error)
	Delete(ctx context.Context, course models.Course, id uint, actor ActivityActor) error
	Detail(ctx context.Context, course models.Course, id uint) (dto.StudentDetailResponse, error)
	AddGrade(ctx context.Context, course models.Course, id uint, req dto.GradeCreateRequest, actor ActivityActor) (dto.GradeResponse, error)
	Search(ctx context.Context, course models.Course, query string) (dto.StudentSearchResponse, error)
}

type studentService struct {
	students  repository.StudentRepository
	grades    repository.GradeRepository
	courses   repository.CourseRepository
	validator *validator.Validate
	activity  ActivityRecorder
	cache     DashboardInvalidator
	logger    zerolog.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(
	students repository.StudentRepository,
	grades repository.GradeRepository,
	courses repository.CourseRepository,
	validator *validator.Validate,
	activity ActivityRecorder,
	cache DashboardInvalidator,
	logger zerolog.Logger,
) StudentService {
	return &studentService{
		students:  students,
		grades:    grades,
		courses:   courses,
		validator: validator,
		activity:  activity,
		cache:     cache,
		logger:    logger.With().Str("component", "student_service").Logger(),
	}
}

// Create registers the account (username and initial password are the national id) and the profile together.
func (s *studentService) Create(ctx context.Context, course models.Course, req dto.StudentCreateRequest, actor ActivityActor) (dto.StudentResponse, error) {
	req.NationalID = strings.TrimSpace(req.NationalID)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := s.validator.Struct(req); err != nil {
		return dto.StudentResponse{}, err
	}

	taken, err := s.students.NationalIDTaken(ctx, req.NationalID, 0)
	if err != nil {
		return dto.StudentResponse{}, err
	}
	if !taken {
		taken, err = s.students.UsernameTaken(ctx, req.NationalID)
		if err != nil {
			return dto.StudentResponse{}, err
		}
	}
	if taken {
		return dto.StudentResponse{}, ErrDuplicateStudent
	}

	account := models.Account{
		Username:  req.NationalID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	if err := account.SetPassword(req.NationalID); err != nil {
		return dto.StudentResponse{}, err
	}

	courseID := course.ID
	student := models.Student{
		NationalID: req.NationalID,
		Phone:      req.Phone,
		CourseID:   &courseID,
	}

	if err := s.students.CreateWithAccount(ctx, &account, &student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.StudentResponse{}, ErrDuplicateStudent
		}
		return dto.StudentResponse{}, err
	}
	student.Course = &course

	recordActivity(ctx, s.activity, s.logger, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     "student.created",
		EntityType: "student",
		EntityID:   uintPtr(student.ID),
		CourseID:   uintPtr(course.ID),
		Metadata: map[string]interface{}{
			"national_id": student.NationalID,
			"email":       account.Email,
		},
	})

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Update(ctx context.Context, course models.Course, id uint, req dto.StudentUpdateRequest, actor ActivityActor) (dto.StudentResponse, error) {
	req.NationalID = strings.TrimSpace(req.NationalID)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := s.validator.Struct(req); err != nil {
		return dto.StudentResponse{}, err
	}

	student, err := s.load(ctx, course, id)
	if err != nil {
		return dto.StudentResponse{}, err
	}

	taken, err := s.students.NationalIDTaken(ctx, req.NationalID, student.ID)
	if err != nil {
		return dto.StudentResponse{}, err
	}
	if taken {
		return dto.StudentResponse{}, ErrDuplicateStudent
	}

	if req.CourseID != nil && *req.CourseID != course.ID {
		if _, err := s.courses.GetByID(ctx, *req.CourseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.StudentResponse{}, fieldError("course_id", "select a valid course", ErrCourseNotFound)
			}
			return dto.StudentResponse{}, err
		}
		courseID := *req.CourseID
		student.CourseID = &courseID
	}

	student.NationalID = req.NationalID
	student.Phone = req.Phone
	student.Account.FirstName = req.FirstName
	student.Account.LastName = req.LastName
	student.Account.Email = req.Email

	if err := s.students.UpdateWithAccount(ctx, &student); err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return dto.StudentResponse{}, ErrDuplicateStudent
		case errors.Is(err, gorm.ErrRecordNotFound):
			return dto.StudentResponse{}, ErrStudentNotFound
		default:
			return dto.StudentResponse{}, err
		}
	}

	updated, err := s.students.GetByID(ctx, student.ID)
	if err != nil {
		return dto.StudentResponse{}, err
	}

	s.invalidate(ctx, student.ID)
	recordActivity(ctx, s.activity, s.logger, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     "student.updated",
		EntityType: "student",
		EntityID:   uintPtr(student.ID),
		CourseID:   uintPtr(course.ID),
		Metadata:   map[string]interface{}{"national_id": updated.NationalID},
	})

	return dto.NewStudentResponse(updated), nil
}

// Delete removes the owning account, the profile and every grade of the student.
func (s *studentService) Delete(ctx context.Context, course models.Course, id uint, actor ActivityActor) error {
	student, err := s.load(ctx, course, id)
	if err != nil {
		return err
	}

	if err := s.students.Delete(ctx, student); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}

	s.invalidate(ctx, student.ID)
	recordActivity(ctx, s.activity, s.logger, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     "student.deleted",
		EntityType: "student",
		EntityID:   uintPtr(student.ID),
		CourseID:   uintPtr(course.ID),
		Metadata:   map[string]interface{}{"national_id": student.NationalID},
	})
	return nil
}

func (s *studentService) Detail(ctx context.Context, course models.Course, id uint) (dto.StudentDetailResponse, error) {
	student, err := s.load(ctx, course, id)
	if err != nil {
		return dto.StudentDetailResponse{}, err
	}

	grades, err := s.grades.ListByStudent(ctx, student.ID)
	if err != nil {
		return dto.StudentDetailResponse{}, err
	}

	return dto.StudentDetailResponse{
		Student: dto.NewStudentResponse(student),
		Grades:  dto.NewGradeResponses(grades),
	}, nil
}

func (s *studentService) AddGrade(ctx context.Context, course models.Course, id uint, req dto.GradeCreateRequest, actor ActivityActor) (dto.GradeResponse, error) {
	req.Subject = strings.TrimSpace(req.Subject)
	req.Date = strings.TrimSpace(req.Date)
	req.Remarks = strings.TrimSpace(req.Remarks)
	if err := s.validator.Struct(req); err != nil {
		return dto.GradeResponse{}, err
	}

	score, err := parseScore(string(req.Score))
	if err != nil {
		return dto.GradeResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return dto.GradeResponse{}, fieldError("date", "use the YYYY-MM-DD format", err)
	}

	student, err := s.load(ctx, course, id)
	if err != nil {
		return dto.GradeResponse{}, err
	}

	grade := models.Grade{
		StudentID: student.ID,
		Subject:   req.Subject,
		Score:     score,
		Date:      datatypes.Date(date),
		Remarks:   req.Remarks,
	}
	if err := s.grades.Create(ctx, &grade); err != nil {
		return dto.GradeResponse{}, err
	}

	s.invalidate(ctx, student.ID)
	recordActivity(ctx, s.activity, s.logger, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     "grade.added",
		EntityType: "grade",
		EntityID:   uintPtr(grade.ID),
		CourseID:   uintPtr(course.ID),
		Metadata: map[string]interface{}{
			"student_id": student.ID,
			"subject":    grade.Subject,
			"score":      grade.Score.StringFixed(2),
		},
	})

	return dto.NewGradeResponse(grade), nil
}

// Search returns the whole course roster for an empty query.
func (s *studentService) Search(ctx context.Context, course models.Course, query string) (dto.StudentSearchResponse, error) {
	query = strings.TrimSpace(query)
	students, err := s.students.List(ctx, repository.StudentFilter{CourseID: course.ID, Query: query})
	if err != nil {
		return dto.StudentSearchResponse{}, err
	}

	items := dto.NewStudentResponses(students)
	return dto.StudentSearchResponse{Query: query, Items: items, Total: len(items)}, nil
}

func (s *studentService) load(ctx context.Context, course models.Course, id uint) (models.Student, error) {
	student, err := s.students.GetByIDInCourse(ctx, id, course.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Student{}, ErrStudentNotFound
		}
		return models.Student{}, err
	}
	return student, nil
}

func (s *studentService) invalidate(ctx context.Context, studentID uint) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, studentID)
	}
}

// parseScore accepts values that fit decimal(4,2).
func parseScore(raw string) (decimal.Decimal, error) {
	score, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, fieldError("score", "enter a number", ErrInvalidScore)
	}
	if !score.Equal(score.Round(2)) {
		return decimal.Decimal{}, fieldError("score", "use at most 2 decimal places", ErrInvalidScore)
	}
	if score.Abs().GreaterThanOrEqual(maxScore) {
		return decimal.Decimal{}, fieldError("score", "use at most 2 digits before the decimal point", ErrInvalidScore)
	}
	return score, nil
}
