package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/jys-academy-api/internal/config"
	"github.com/noah-isme/jys-academy-api/internal/dto"
	"github.com/noah-isme/jys-academy-api/internal/middleware"
	"github.com/noah-isme/jys-academy-api/internal/models"
	"github.com/noah-isme/jys-academy-api/internal/service"
)

type envelope[T any] struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    T                 `json:"data"`
	Details map[string]string `json:"details"`
	Meta    map[string]any    `json:"meta"`
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, target), string(body))
}

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func testConfig() config.Config {
	return config.Config{AppName: "JyS Academy", AppEnv: "test", DatabaseDriver: config.DatabaseDriverSQLite, StorageDriver: config.StorageDriverLocal}
}

var testCourse = models.Course{ID: 4, Name: "Kids English"}

// withAdminCourse stands in for the session middlewares.
func withAdminCourse(course models.Course) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.LocalUserID, uint(1))
		c.Locals(middleware.LocalUserRole, models.RoleAdmin)
		c.Locals(middleware.LocalActiveCourse, course)
		return c.Next()
	}
}

type mockCourseService struct {
	courses []models.Course
}

func (m *mockCourseService) List(ctx context.Context) ([]dto.CourseResponse, error) {
	return dto.NewCourseResponses(m.courses), nil
}

func (m *mockCourseService) Get(ctx context.Context, id uint) (models.Course, error) {
	for _, course := range m.courses {
		if course.ID == id {
			return course, nil
		}
	}
	return models.Course{}, service.ErrCourseNotFound
}

func (m *mockCourseService) SeedCatalog(ctx context.Context) (dto.SeedCatalogResponse, error) {
	return dto.SeedCatalogResponse{}, nil
}

func (m *mockCourseService) Delete(ctx context.Context, id uint, actor service.ActivityActor) error {
	return nil
}

type mockStudentService struct {
	createReq  dto.StudentCreateRequest
	course     models.Course
	actor      service.ActivityActor
	lastID     uint
	lastQuery  string
	err        error
	detail     dto.StudentDetailResponse
	gradeReq   dto.GradeCreateRequest
	searchResp dto.StudentSearchResponse
}

func (m *mockStudentService) Create(ctx context.Context, course models.Course, req dto.StudentCreateRequest, actor service.ActivityActor) (dto.StudentResponse, error) {
	m.course, m.createReq, m.actor = course, req, actor
	if m.err != nil {
		return dto.StudentResponse{}, m.err
	}
	return dto.StudentResponse{ID: 11, NationalID: req.NationalID, FirstName: req.FirstName}, nil
}

func (m *mockStudentService) Update(ctx context.Context, course models.Course, id uint, req dto.StudentUpdateRequest, actor service.ActivityActor) (dto.StudentResponse, error) {
	m.course, m.lastID = course, id
	if m.err != nil {
		return dto.StudentResponse{}, m.err
	}
	return dto.StudentResponse{ID: id, NationalID: req.NationalID, CourseID: req.CourseID}, nil
}

func (m *mockStudentService) Delete(ctx context.Context, course models.Course, id uint, actor service.ActivityActor) error {
	m.course, m.lastID = course, id
	return m.err
}

func (m *mockStudentService) Detail(ctx context.Context, course models.Course, id uint) (dto.StudentDetailResponse, error) {
	m.course, m.lastID = course, id
	if m.err != nil {
		return dto.StudentDetailResponse{}, m.err
	}
	return m.detail, nil
}

func (m *mockStudentService) AddGrade(ctx context.Context, course models.Course, id uint, req dto.GradeCreateRequest, actor service.ActivityActor) (dto.GradeResponse, error) {
	m.course, m.lastID, m.gradeReq = course, id, req
	if m.err != nil {
		return dto.GradeResponse{}, m.err
	}
	return dto.GradeResponse{ID: 3, StudentID: id, Subject: req.Subject, Score: "8.50", Date: req.Date}, nil
}

func (m *mockStudentService) Search(ctx context.Context, course models.Course, query string) (dto.StudentSearchResponse, error) {
	m.course, m.lastQuery = course, query
	return m.searchResp, m.err
}

type mockMaterialService struct {
	req  dto.MaterialUploadRequest
	file *multipart.FileHeader
	err  error
}

func (m *mockMaterialService) Upload(ctx context.Context, course models.Course, req dto.MaterialUploadRequest, file *multipart.FileHeader, actor service.ActivityActor) (dto.MaterialResponse, error) {
	m.req, m.file = req, file
	if m.err != nil {
		return dto.MaterialResponse{}, m.err
	}
	if file == nil {
		return dto.MaterialResponse{}, &service.FieldError{Field: "archivo", Message: "a file is required", Err: service.ErrFileRequired}
	}
	return dto.MaterialResponse{ID: 1, Title: req.Title, FileName: file.Filename, CourseID: course.ID}, nil
}

type mockContactService struct {
	lastPayload dto.ContactRequest
	response    dto.ContactResponse
	err         error
}

func (m *mockContactService) Submit(_ context.Context, req dto.ContactRequest) (dto.ContactResponse, error) {
	m.lastPayload = req
	if m.err != nil {
		return dto.ContactResponse{}, m.err
	}
	return m.response, nil
}

func (m *mockContactService) Close(context.Context) error {
	return nil
}
