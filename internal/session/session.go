package session

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"

	"github.com/noah-isme/jys-academy-api/internal/models"
	"github.com/noah-isme/jys-academy-api/internal/service"
)

// Keys stored in the server-side session.
const (
	KeyAccountID      = "account_id"
	KeyIsAdmin        = "is_admin"
	KeyActiveCourseID = "active_course_id"
)

// CookieName is the name of the session cookie.
const CookieName = "academy_session"

// Options configures the session store.
type Options struct {
	Storage      fiber.Storage
	TTL          time.Duration
	CookieSecure bool
}

// NewStore builds the fiber session store. A nil Storage keeps sessions in memory.
func NewStore(opts Options) *fibersession.Store {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return fibersession.New(fibersession.Config{
		Storage:        opts.Storage,
		Expiration:     ttl,
		KeyLookup:      "cookie:" + CookieName,
		CookieHTTPOnly: true,
		CookieSecure:   opts.CookieSecure,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		CookiePath:     "/",
	})
}

// CourseLookup resolves courses by id.
type CourseLookup interface {
	Get(ctx context.Context, id uint) (models.Course, error)
}

// SignIn rotates the session id and stores the authenticated account.
func SignIn(sess *fibersession.Session, accountID uint, isAdmin bool) error {
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(KeyAccountID, accountID)
	sess.Set(KeyIsAdmin, isAdmin)
	return sess.Save()
}

// AccountID returns the authenticated account stored in the session.
func AccountID(sess *fibersession.Session) (uint, bool) {
	id, ok := sess.Get(KeyAccountID).(uint)
	return id, ok && id != 0
}

// IsAdmin reports the admin flag captured at login.
func IsAdmin(sess *fibersession.Session) bool {
	admin, _ := sess.Get(KeyIsAdmin).(bool)
	return admin
}

// SelectCourse stores courseID as the active course once it resolves. The session is left
// untouched when the course does not exist.
func SelectCourse(ctx context.Context, sess *fibersession.Session, courses CourseLookup, courseID uint) (models.Course, error) {
	course, err := courses.Get(ctx, courseID)
	if err != nil {
		return models.Course{}, err
	}
	sess.Set(KeyActiveCourseID, course.ID)
	if err := sess.Save(); err != nil {
		return models.Course{}, err
	}
	return course, nil
}

// ActiveCourseID returns the stored selection, if any.
func ActiveCourseID(sess *fibersession.Session) (uint, bool) {
	id, ok := sess.Get(KeyActiveCourseID).(uint)
	return id, ok && id != 0
}

// RequireSelectedCourse resolves the active course. It returns service.ErrNoActiveCourse when
// nothing is selected and service.ErrCourseNotFound when the stored id no longer resolves; the
// stale id is removed from the session in that case.
func RequireSelectedCourse(ctx context.Context, sess *fibersession.Session, courses CourseLookup) (models.Course, error) {
	id, ok := ActiveCourseID(sess)
	if !ok {
		return models.Course{}, service.ErrNoActiveCourse
	}

	course, err := courses.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			sess.Delete(KeyActiveCourseID)
			if saveErr := sess.Save(); saveErr != nil {
				return models.Course{}, saveErr
			}
		}
		return models.Course{}, err
	}
	return course, nil
}
