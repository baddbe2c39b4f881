package service

import (
	"context"
	"fmt"
	"io"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/jys-academy-api/internal/dto"
	"github.com/noah-isme/jys-academy-api/internal/models"
	"github.com/noah-isme/jys-academy-api/internal/repository"
	"github.com/noah-isme/jys-academy-api/internal/validation"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func testValidator() *validator.Validate {
	return validation.New()
}

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return server, client
}

func createCourse(t *testing.T, db *gorm.DB, name string) models.Course {
	t.Helper()
	course := models.Course{Name: name, Description: name}
	require.NoError(t, db.Create(&course).Error)
	return course
}

type activityStub struct {
	entries []ActivityEntry
}

func (a *activityStub) Record(ctx context.Context, entry ActivityEntry) (dto.ActivityResponse, error) {
	a.entries = append(a.entries, entry)
	return dto.ActivityResponse{}, nil
}

func (a *activityStub) actions() []string {
	actions := make([]string, 0, len(a.entries))
	for _, entry := range a.entries {
		actions = append(actions, entry.Action)
	}
	return actions
}

type invalidatorStub struct {
	invalidated []uint
}

func (i *invalidatorStub) Invalidate(ctx context.Context, studentID uint) {
	i.invalidated = append(i.invalidated, studentID)
}

type broadcasterStub struct {
	notices []models.Notice
	sources []string
}

func (b *broadcasterStub) Broadcast(ctx context.Context, notice models.Notice, source string) {
	b.notices = append(b.notices, notice)
	b.sources = append(b.sources, source)
}

func newStudentServiceForTest(db *gorm.DB, activity ActivityRecorder, cache DashboardInvalidator) StudentService {
	return NewStudentService(
		repository.NewStudentRepository(db),
		repository.NewGradeRepository(db),
		repository.NewCourseRepository(db),
		testValidator(),
		activity,
		cache,
		testLogger(),
	)
}
