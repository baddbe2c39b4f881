package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/jys-academy-api/internal/dto"
	"github.com/noah-isme/jys-academy-api/internal/handler"
	"github.com/noah-isme/jys-academy-api/internal/service"
	"github.com/noah-isme/jys-academy-api/internal/validation"
)

func newStudentApp(svc *mockStudentService, withCourse bool) *fiber.App {
	app := fiber.New()
	var guards []fiber.Handler
	if withCourse {
		guards = append(guards, withAdminCourse(testCourse))
	}
	handler.NewStudentHandler(svc, testLogger()).Register(app, guards...)
	return app
}

func postJSON(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestStudentHandlerCreate(t *testing.T) {
	svc := &mockStudentService{}
	app := newStudentApp(svc, true)

	resp, err := app.Test(postJSON("/crear-alumno/", `{"national_id":"30111222","first_name":"Ana","last_name":"Pérez","email":"ana@gmail.com"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body envelope[dto.StudentResponse]
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "30111222", body.Data.NationalID)
	require.Equal(t, testCourse.ID, svc.course.ID)
	require.Equal(t, uint(1), svc.actor.ID)
	require.Equal(t, "admin", svc.actor.Role)
}

func TestStudentHandlerCreateAcceptsForms(t *testing.T) {
	svc := &mockStudentService{}
	app := newStudentApp(svc, true)

	resp, err := app.Test(postForm("/crear-alumno", url.Values{
		"national_id": {"30111222"},
		"first_name":  {"Ana"},
		"last_name":   {"Pérez"},
		"email":       {"ana@gmail.com"},
		"phone":       {"1123456789"},
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, "1123456789", svc.createReq.Phone)
}

func TestStudentHandlerErrorMapping(t *testing.T) {
	validationErr := validation.New().Struct(dto.StudentCreateRequest{NationalID: "1", FirstName: "Ana1", LastName: "Pérez", Email: "a@gmail.com"})
	require.Error(t, validationErr)

	cases := []struct {
		name    string
		err     error
		status  int
		details map[string]string
	}{
		{"validation", validationErr, fiber.StatusBadRequest, map[string]string{"first_name": validation.ErrLettersOnly.Error()}},
		{"duplicate", service.ErrDuplicateStudent, fiber.StatusConflict, nil},
		{"field", &service.FieldError{Field: "score", Message: "enter a number", Err: service.ErrInvalidScore}, fiber.StatusBadRequest, map[string]string{"score": "enter a number"}},
		{"internal", fmt.Errorf("boom"), fiber.StatusInternalServerError, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newStudentApp(&mockStudentService{err: tc.err}, true)
			resp, err := app.Test(postJSON("/crear-alumno", `{"national_id":"1"}`))
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)

			var body envelope[any]
			decodeResponse(t, resp, &body)
			require.False(t, body.Success)
			require.Equal(t, tc.details, body.Details)
			if tc.status == fiber.StatusInternalServerError {
				require.NotContains(t, body.Message, "boom")
			}
		})
	}
}

func TestStudentHandlerRequiresActiveCourse(t *testing.T) {
	app := newStudentApp(&mockStudentService{}, false)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/buscar-alumnos?q=an", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var body envelope[any]
	decodeResponse(t, resp, &body)
	require.Equal(t, service.RedirectCourseSelection, body.Details["redirect"])
}

func TestStudentHandlerDetailAndDelete(t *testing.T) {
	svc := &mockStudentService{detail: dto.StudentDetailResponse{Student: dto.StudentResponse{ID: 5}, Grades: []dto.GradeResponse{{ID: 1, Score: "7.00"}}}}
	app := newStudentApp(svc, true)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/gestionar-alumno/5/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var detail envelope[dto.StudentDetailResponse]
	decodeResponse(t, resp, &detail)
	require.Len(t, detail.Data.Grades, 1)
	require.Equal(t, uint(5), svc.lastID)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/editar-alumno/abc/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	svc.err = service.ErrStudentNotFound
	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/eliminar-alumno/9/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.Equal(t, uint(9), svc.lastID)
}

func TestStudentHandlerAddGrade(t *testing.T) {
	svc := &mockStudentService{}
	app := newStudentApp(svc, true)

	resp, err := app.Test(postJSON("/agregar-nota/5/", `{"subject":"Grammar","score":8.5,"date":"2024-05-10"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, "8.5", string(svc.gradeReq.Score))

	resp, err = app.Test(postForm("/gestionar-alumno/5/", url.Values{"subject": {"Listening"}, "score": {"9.25"}, "date": {"2024-05-11"}}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, "9.25", string(svc.gradeReq.Score))
}

func TestStudentHandlerSearch(t *testing.T) {
	svc := &mockStudentService{searchResp: dto.StudentSearchResponse{Query: "an", Items: []dto.StudentResponse{{ID: 1}}, Total: 1}}
	app := newStudentApp(svc, true)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/buscar-alumnos/?q=an", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body envelope[[]dto.StudentResponse]
	decodeResponse(t, resp, &body)
	require.Len(t, body.Data, 1)
	require.Equal(t, "an", body.Meta["query"])
	require.Equal(t, float64(1), body.Meta["total"])
	require.Equal(t, "an", svc.lastQuery)
}
