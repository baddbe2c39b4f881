package dto

import (
	"time"

	"github.com/noah-isme/jys-academy-api/internal/models"
)

// CourseResponse serialises a course.
type CourseResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewCourseResponse converts a course model.
func NewCourseResponse(course models.Course) CourseResponse {
	return CourseResponse{
		ID:          course.ID,
		Name:        course.Name,
		Description: course.Description,
		CreatedAt:   course.CreatedAt,
	}
}

// NewCourseResponses converts a slice of course models.
func NewCourseResponses(courses []models.Course) []CourseResponse {
	items := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		items = append(items, NewCourseResponse(course))
	}
	return items
}

// SelectCourseRequest picks the active course for an admin session.
type SelectCourseRequest struct {
	CourseID uint `json:"course_id" form:"course_id" validate:"required"`
}

// CourseSelectionResponse lists the selectable courses and the current choice.
type CourseSelectionResponse struct {
	Courses        []CourseResponse `json:"courses"`
	ActiveCourseID *uint            `json:"active_course_id,omitempty"`
}

// Seed outcomes.
const (
	SeedStatusCreated = "created"
	SeedStatusExists  = "exists"
)

// SeedItemResult reports what happened to one catalog entry.
type SeedItemResult struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// SeedCatalogResponse summarises a catalog seed run.
type SeedCatalogResponse struct {
	Items    []SeedItemResult `json:"items"`
	Created  int              `json:"created"`
	Existing int              `json:"existing"`
}
