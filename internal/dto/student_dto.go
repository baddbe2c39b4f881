package dto

import (
	"encoding/json"
	"time"

	"github.com/noah-isme/jys-academy-api/internal/models"
)

// StudentCreateRequest captures the create-student form.
type StudentCreateRequest struct {
	NationalID string `json:"national_id" form:"national_id" validate:"required,max=20"`
	FirstName  string `json:"first_name" form:"first_name" validate:"required,max=30,letters"`
	LastName   string `json:"last_name" form:"last_name" validate:"required,max=30,letters"`
	Email      string `json:"email" form:"email" validate:"required,max=254,gmail"`
	Phone      string `json:"phone" form:"phone" validate:"omitempty,phone"`
}

// StudentUpdateRequest captures the edit-student form. A nil CourseID keeps the current course.
type StudentUpdateRequest struct {
	NationalID string `json:"national_id" form:"national_id" validate:"required,max=20"`
	FirstName  string `json:"first_name" form:"first_name" validate:"required,max=30,letters"`
	LastName   string `json:"last_name" form:"last_name" validate:"required,max=30,letters"`
	Email      string `json:"email" form:"email" validate:"required,max=254,gmail"`
	Phone      string `json:"phone" form:"phone" validate:"omitempty,phone"`
	CourseID   *uint  `json:"course_id" form:"course_id"`
}

// StudentResponse serialises a student profile with its account fields.
type StudentResponse struct {
	ID           uint      `json:"id"`
	AccountID    uint      `json:"account_id"`
	Username     string    `json:"username"`
	NationalID   string    `json:"national_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	CourseID     *uint     `json:"course_id"`
	CourseName   string    `json:"course_name,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}

// NewStudentResponse converts a student model. The account should be preloaded.
func NewStudentResponse(student models.Student) StudentResponse {
	resp := StudentResponse{
		ID:           student.ID,
		AccountID:    student.AccountID,
		Username:     student.Account.Username,
		NationalID:   student.NationalID,
		FirstName:    student.Account.FirstName,
		LastName:     student.Account.LastName,
		Email:        student.Account.Email,
		Phone:        student.Phone,
		CourseID:     student.CourseID,
		RegisteredAt: student.RegisteredAt,
	}
	if student.Course != nil {
		resp.CourseName = student.Course.Name
	}
	return resp
}

// NewStudentResponses converts a slice of student models.
func NewStudentResponses(students []models.Student) []StudentResponse {
	items := make([]StudentResponse, 0, len(students))
	for _, student := range students {
		items = append(items, NewStudentResponse(student))
	}
	return items
}

// StudentDetailResponse is the manage-student view.
type StudentDetailResponse struct {
	Student StudentResponse `json:"student"`
	Grades  []GradeResponse `json:"grades"`
}

// StudentSearchResponse carries search results for the active course.
type StudentSearchResponse struct {
	Query string            `json:"query"`
	Items []StudentResponse `json:"items"`
	Total int               `json:"total"`
}

// GradeCreateRequest captures the add-grade form. Score accepts a JSON number or a decimal string.
type GradeCreateRequest struct {
	Subject string      `json:"subject" form:"subject" validate:"required,max=100"`
	Score   json.Number `json:"score" form:"score" validate:"required"`
	Date    string      `json:"date" form:"date" validate:"required,datetime=2006-01-02"`
	Remarks string      `json:"remarks" form:"remarks" validate:"omitempty,max=2000"`
}

// GradeResponse serialises a grade.
type GradeResponse struct {
	ID        uint      `json:"id"`
	StudentID uint      `json:"student_id"`
	Subject   string    `json:"subject"`
	Score     string    `json:"score"`
	Date      string    `json:"date"`
	Remarks   string    `json:"remarks"`
	CreatedAt time.Time `json:"created_at"`
}

// NewGradeResponse converts a grade model. Scores always carry two decimals.
func NewGradeResponse(grade models.Grade) GradeResponse {
	return GradeResponse{
		ID:        grade.ID,
		StudentID: grade.StudentID,
		Subject:   grade.Subject,
		Score:     grade.Score.StringFixed(2),
		Date:      time.Time(grade.Date).Format("2006-01-02"),
		Remarks:   grade.Remarks,
		CreatedAt: grade.CreatedAt,
	}
}

// NewGradeResponses converts a slice of grade models.
func NewGradeResponses(grades []models.Grade) []GradeResponse {
	items := make([]GradeResponse, 0, len(grades))
	for _, grade := range grades {
		items = append(items, NewGradeResponse(grade))
	}
	return items
}
