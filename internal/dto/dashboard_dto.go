package dto

import (
	"time"

	"github.com/noah-isme/jys-academy-api/internal/models"
)

// DashboardCounts summarises the active course.
type DashboardCounts struct {
	Students        int64 `json:"students"`
	Materials       int64 `json:"materials"`
	Notices         int64 `json:"notices"`
	PendingMessages int64 `json:"pending_messages"`
}

// AdminDashboardResponse is the admin summary for the active course.
type AdminDashboardResponse struct {
	Course          CourseResponse     `json:"course"`
	Counts          DashboardCounts    `json:"counts"`
	RecentStudents  []StudentResponse  `json:"recent_students"`
	RecentMaterials []MaterialResponse `json:"recent_materials"`
	RecentNotices   []NoticeResponse   `json:"recent_notices"`
	RecentActivity  []ActivityResponse `json:"recent_activity"`
}

// StudentDashboardResponse aggregates what a student sees after login.
type StudentDashboardResponse struct {
	Student     StudentResponse    `json:"student"`
	Course      *CourseResponse    `json:"course,omitempty"`
	Materials   []MaterialResponse `json:"materials"`
	Notices     []NoticeResponse   `json:"notices"`
	Grades      []GradeResponse    `json:"grades"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// ActivityResponse serialises an activity log entry.
type ActivityResponse struct {
	ID         uint                   `json:"id"`
	ActorID    uint                   `json:"actor_id"`
	ActorRole  string                 `json:"actor_role"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entity_type"`
	EntityID   *uint                  `json:"entity_id,omitempty"`
	CourseID   *uint                  `json:"course_id,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

// NewActivityResponse converts an activity log model.
func NewActivityResponse(entry models.ActivityLog) ActivityResponse {
	var metadata map[string]interface{}
	if len(entry.Metadata) > 0 {
		metadata = make(map[string]interface{}, len(entry.Metadata))
		for key, value := range entry.Metadata {
			metadata[key] = value
		}
	}
	return ActivityResponse{
		ID:         entry.ID,
		ActorID:    entry.ActorID,
		ActorRole:  entry.ActorRole,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		CourseID:   entry.CourseID,
		Metadata:   metadata,
		CreatedAt:  entry.CreatedAt,
	}
}

// NewActivityResponses converts a slice of activity log models.
func NewActivityResponses(entries []models.ActivityLog) []ActivityResponse {
	items := make([]ActivityResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, NewActivityResponse(entry))
	}
	return items
}
