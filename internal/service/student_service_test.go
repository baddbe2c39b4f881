package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/jys-academy-api/internal/dto"
	"github.com/noah-isme/jys-academy-api/internal/models"
	"github.com/noah-isme/jys-academy-api/internal/validation"
)

var adminActor = ActivityActor{ID: 1, Role: models.RoleAdmin}

func validStudent(dni, first, last string) dto.StudentCreateRequest {
	return dto.StudentCreateRequest{
		NationalID: dni,
		FirstName:  first,
		LastName:   last,
		Email:      dni + "@gmail.com",
		Phone:      "1123456789",
	}
}

func TestStudentServiceCreateBuildsAccount(t *testing.T) {
	db := setupServiceDB(t)
	activity := &activityStub{}
	svc := newStudentServiceForTest(db, activity, nil)
	course := createCourse(t, db, "Kids English")

	created, err := svc.Create(context.Background(), course, validStudent("30111222", "María José", "Núñez"), adminActor)
	require.NoError(t, err)
	require.Equal(t, "30111222", created.Username)
	require.Equal(t, course.ID, *created.CourseID)
	require.Equal(t, "Kids English", created.CourseName)

	var account models.Account
	require.NoError(t, db.Where("username = ?", "30111222").First(&account).Error)
	require.True(t, account.CheckPassword("30111222"))
	require.False(t, account.IsAdmin)

	require.Equal(t, []string{"student.created"}, activity.actions())
	require.Equal(t, course.ID, *activity.entries[0].CourseID)
}

func TestStudentServiceCreateDuplicateNationalID(t *testing.T) {
	db := setupServiceDB(t)
	svc := newStudentServiceForTest(db, nil, nil)
	course := createCourse(t, db, "Kids English")
	ctx := context.Background()

	_, err := svc.Create(ctx, course, validStudent("30111222", "Ana", "Pérez"), adminActor)
	require.NoError(t, err)

	_, err = svc.Create(ctx, course, validStudent("30111222", "Luis", "Gómez"), adminActor)
	require.ErrorIs(t, err, ErrDuplicateStudent)

	var accounts, students int64
	require.NoError(t, db.Model(&models.Account{}).Count(&accounts).Error)
	require.NoError(t, db.Model(&models.Student{}).Count(&students).Error)
	require.Equal(t, int64(1), accounts)
	require.Equal(t, int64(1), students)
}

func TestStudentServiceCreateReportsRuleViolations(t *testing.T) {
	db := setupServiceDB(t)
	svc := newStudentServiceForTest(db, nil, nil)
	course := createCourse(t, db, "Kids English")

	req := dto.StudentCreateRequest{
		NationalID: "30111222",
		FirstName:  "Juan123",
		LastName:   "Pérez",
		Email:      "juan@hotmail.com",
		Phone:      "12-34",
	}
	_, err := svc.Create(context.Background(), course, req, adminActor)
	require.Error(t, err)

	details := validation.Details(err)
	require.Equal(t, validation.ErrLettersOnly.Error(), details["first_name"])
	require.Equal(t, validation.ErrEmailDomain.Error(), details["email"])
	require.Equal(t, validation.ErrPhoneDigits.Error(), details["phone"])
	require.NotContains(t, details, "last_name")
}

func TestStudentServiceScopesByActiveCourse(t *testing.T) {
	db := setupServiceDB(t)
	svc := newStudentServiceForTest(db, nil, nil)
	course := createCourse(t, db, "Kids English")
	other := createCourse(t, db, "Teens English")
	ctx := context.Background()

	created, err := svc.Create(ctx, course, validStudent("30111222", "Ana", "Pérez"), adminActor)
	require.NoError(t, err)

	_, err = svc.Detail(ctx, other, created.ID)
	require.ErrorIs(t, err, ErrStudentNotFound)

	err = svc.Delete(ctx, other, created.ID, adminActor)
	require.ErrorIs(t, err, ErrStudentNotFound)

	_, err = svc.AddGrade(ctx, other, created.ID, dto.GradeCreateRequest{Subject: "Grammar", Score: json.Number("8"), Date: "2024-05-10"}, adminActor)
	require.ErrorIs(t, err, ErrStudentNotFound)

	results, err := svc.Search(ctx, other, "")
	require.NoError(t, err)
	require.Empty(t, results.Items)
}

func TestStudentServiceUpdate(t *testing.T) {
	db := setupServiceDB(t)
	cache := &invalidatorStub{}
	svc := newStudentServiceForTest(db, nil, cache)
	course := createCourse(t, db, "Kids English")
	other := createCourse(t, db, "Teens English")
	ctx := context.Background()

	first, err := svc.Create(ctx, course, validStudent("30111222", "Ana", "Pérez"), adminActor)
	require.NoError(t, err)
	_, err = svc.Create(ctx, course, validStudent("30999888", "Luis", "Gómez"), adminActor)
	require.NoError(t, err)

	update := dto.StudentUpdateRequest{
		NationalID: "30999888",
		FirstName:  "Ana",
		LastName:   "Pérez",
		Email:      "ana@gmail.com",
	}
	_, err = svc.Update(ctx, course, first.ID, update, adminActor)
	require.ErrorIs(t, err, ErrDuplicateStudent)

	missing := uint(999)
	update.NationalID = "30111223"
	update.CourseID = &missing
	_, err = svc.Update(ctx, course, first.ID, update, adminActor)
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	require.Equal(t, "course_id", fieldErr.Field)

	update.CourseID = &other.ID
	update.FirstName = "Ana María"
	updated, err := svc.Update(ctx, course, first.ID, update, adminActor)
	require.NoError(t, err)
	require.Equal(t, "Ana María", updated.FirstName)
	require.Equal(t, "30111223", updated.NationalID)
	require.Equal(t, other.ID, *updated.CourseID)
	require.Equal(t, []uint{first.ID}, cache.invalidated)

	_, err = svc.Detail(ctx, course, first.ID)
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestStudentServiceDeleteRemovesOnlyOwnGrades(t *testing.T) {
	db := setupServiceDB(t)
	svc := newStudentServiceForTest(db, nil, nil)
	course := createCourse(t, db, "Adults English")
	ctx := context.Background()

	first, err := svc.Create(ctx, course, validStudent("30111222", "Ana", "Pérez"), adminActor)
	require.NoError(t, err)
	second, err := svc.Create(ctx, course, validStudent("30999888", "Luis", "Gómez"), adminActor)
	require.NoError(t, err)

	grade := dto.GradeCreateRequest{Subject: "Grammar", Score: json.Number("7.5"), Date: "2024-05-10"}
	_, err = svc.AddGrade(ctx, course, first.ID, grade, adminActor)
	require.NoError(t, err)
	kept, err := svc.AddGrade(ctx, course, second.ID, grade, adminActor)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, course, first.ID, adminActor))

	var grades []models.Grade
	require.NoError(t, db.Find(&grades).Error)
	require.Len(t, grades, 1)
	require.Equal(t, kept.ID, grades[0].ID)

	var accounts int64
	require.NoError(t, db.Model(&models.Account{}).Where("username = ?", "30111222").Count(&accounts).Error)
	require.Zero(t, accounts)
}

func TestStudentServiceAddGradeValidatesScore(t *testing.T) {
	db := setupServiceDB(t)
	cache := &invalidatorStub{}
	svc := newStudentServiceForTest(db, nil, cache)
	course := createCourse(t, db, "Kids English")
	ctx := context.Background()

	student, err := svc.Create(ctx, course, validStudent("30111222", "Ana", "Pérez"), adminActor)
	require.NoError(t, err)

	for _, raw := range []string{"abc", "8.555", "100", "-100.5"} {
		_, err := svc.AddGrade(ctx, course, student.ID, dto.GradeCreateRequest{Subject: "Grammar", Score: json.Number(raw), Date: "2024-05-10"}, adminActor)
		require.ErrorIs(t, err, ErrInvalidScore, raw)
	}

	_, err = svc.AddGrade(ctx, course, student.ID, dto.GradeCreateRequest{Subject: "Grammar", Score: json.Number("9"), Date: "10/05/2024"}, adminActor)
	require.Error(t, err)
	require.Contains(t, validation.Details(err), "date")

	grade, err := svc.AddGrade(ctx, course, student.ID, dto.GradeCreateRequest{Subject: "Grammar", Score: json.Number("99.99"), Date: "2024-05-10", Remarks: "great"}, adminActor)
	require.NoError(t, err)
	require.Equal(t, "99.99", grade.Score)
	require.Equal(t, "2024-05-10", grade.Date)
	require.Equal(t, []uint{student.ID}, cache.invalidated)

	detail, err := svc.Detail(ctx, course, student.ID)
	require.NoError(t, err)
	require.Len(t, detail.Grades, 1)
	require.Equal(t, "great", detail.Grades[0].Remarks)
}

func TestStudentServiceSearch(t *testing.T) {
	db := setupServiceDB(t)
	svc := newStudentServiceForTest(db, nil, nil)
	course := createCourse(t, db, "Kids English")
	ctx := context.Background()

	for _, req := range []dto.StudentCreateRequest{
		validStudent("40111222", "Juan", "Pérez"),
		validStudent("40999888", "Diego", "Sosa"),
		validStudent("41000111", "Carla", "Ramos"),
	} {
		_, err := svc.Create(ctx, course, req, adminActor)
		require.NoError(t, err)
	}

	all, err := svc.Search(ctx, course, "")
	require.NoError(t, err)
	require.Equal(t, 3, all.Total)

	matches, err := svc.Search(ctx, course, "an")
	require.NoError(t, err)
	require.Equal(t, 1, matches.Total)
	require.Equal(t, "Juan", matches.Items[0].FirstName)
	require.Equal(t, "an", matches.Query)
}
