package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/jys-academy-api/internal/models"
	"github.com/noah-isme/jys-academy-api/internal/service"
	"github.com/noah-isme/jys-academy-api/internal/session"
)

type courseLookupStub struct {
	courses map[uint]models.Course
}

func (s *courseLookupStub) Get(ctx context.Context, id uint) (models.Course, error) {
	course, ok := s.courses[id]
	if !ok {
		return models.Course{}, service.ErrCourseNotFound
	}
	return course, nil
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

func newSessionTestApp(t *testing.T, courses *courseLookupStub) (*fiber.App, *fibersession.Store) {
	t.Helper()
	store := session.NewStore(session.Options{TTL: time.Hour})
	logger := zerolog.New(io.Discard)

	app := fiber.New()
	app.Use(SessionAuth(store, logger))
	app.Post("/login/:id/:admin", func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		id, _ := c.ParamsInt("id")
		return session.SignIn(sess, uint(id), c.Params("admin") == "true")
	})
	app.Post("/select/:id", func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		id, _ := c.ParamsInt("id")
		_, err = session.SelectCourse(c.UserContext(), sess, courses, uint(id))
		return err
	})
	app.Get("/me", func(c *fiber.Ctx) error {
		actor := Actor(c)
		return c.SendString(fmt.Sprintf("%d:%s", actor.ID, actor.Role))
	})
	admin := app.Group("/admin", RequireRole(models.RoleAdmin), RequireActiveCourse(store, courses, logger))
	admin.Get("/course", func(c *fiber.Ctx) error {
		course, ok := ActiveCourse(c)
		require.True(t, ok)
		return c.SendString(course.Name)
	})
	return app, store
}

func call(t *testing.T, app *fiber.App, method, target string, cookie *http.Cookie) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func cookieFrom(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == session.CookieName {
			return cookie
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestSessionAuthPopulatesLocals(t *testing.T) {
	app, _ := newSessionTestApp(t, &courseLookupStub{})

	_, body := call(t, app, http.MethodGet, "/me", nil)
	require.Equal(t, "0:", body)

	resp, _ := call(t, app, http.MethodPost, "/login/7/false", nil)
	cookie := cookieFrom(t, resp)

	_, body = call(t, app, http.MethodGet, "/me", cookie)
	require.Equal(t, "7:student", body)
}

func TestRequireActiveCourse(t *testing.T) {
	courses := &courseLookupStub{courses: map[uint]models.Course{3: {ID: 3, Name: "Adults English"}}}
	app, _ := newSessionTestApp(t, courses)

	resp, _ := call(t, app, http.MethodPost, "/login/1/true", nil)
	cookie := cookieFrom(t, resp)

	resp, body := call(t, app, http.MethodGet, "/admin/course", cookie)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	var payload envelope
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	require.Equal(t, service.RedirectCourseSelection, payload.Details["redirect"])

	resp, _ = call(t, app, http.MethodPost, "/select/3", cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body = call(t, app, http.MethodGet, "/admin/course", cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "Adults English", body)

	delete(courses.courses, 3)
	resp, _ = call(t, app, http.MethodGet, "/admin/course", cookie)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/admin/course", cookie)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestRequireActiveCourseRejectsStudents(t *testing.T) {
	app, _ := newSessionTestApp(t, &courseLookupStub{})

	resp, _ := call(t, app, http.MethodPost, "/login/9/false", nil)
	cookie := cookieFrom(t, resp)

	resp, _ = call(t, app, http.MethodGet, "/admin/course", cookie)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
