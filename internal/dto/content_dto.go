package dto

import (
	"time"

	"github.com/noah-isme/jys-academy-api/internal/models"
)

// MaterialUploadRequest carries the text fields of the upload form. The file travels as "archivo".
type MaterialUploadRequest struct {
	Title       string `json:"title" form:"title" validate:"required,max=200"`
	Description string `json:"description" form:"description" validate:"omitempty,max=5000"`
	Kind        string `json:"kind" form:"kind" validate:"required,oneof=note video audio document"`
}

// MaterialResponse serialises a material.
type MaterialResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Kind        string    `json:"kind"`
	FileURL     string    `json:"file_url"`
	FileName    string    `json:"file_name"`
	MimeType    string    `json:"mime_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CourseID    uint      `json:"course_id"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// NewMaterialResponse converts a material model.
func NewMaterialResponse(material models.Material) MaterialResponse {
	return MaterialResponse{
		ID:          material.ID,
		Title:       material.Title,
		Description: material.Description,
		Kind:        string(material.Kind),
		FileURL:     material.FileURL,
		FileName:    material.FileName,
		MimeType:    material.MimeType,
		SizeBytes:   material.SizeBytes,
		CourseID:    material.CourseID,
		UploadedAt:  material.UploadedAt,
	}
}

// NewMaterialResponses converts a slice of material models.
func NewMaterialResponses(materials []models.Material) []MaterialResponse {
	items := make([]MaterialResponse, 0, len(materials))
	for _, material := range materials {
		items = append(items, NewMaterialResponse(material))
	}
	return items
}

// NoticeCreateRequest captures the publish-notice form.
type NoticeCreateRequest struct {
	Title   string `json:"title" form:"title" validate:"required,max=200"`
	Content string `json:"content" form:"content" validate:"required,max=10000"`
}

// NoticeResponse serialises a notice.
type NoticeResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"published_at"`
	CourseIDs   []uint    `json:"course_ids"`
}

// NewNoticeResponse converts a notice model.
func NewNoticeResponse(notice models.Notice) NoticeResponse {
	return NoticeResponse{
		ID:          notice.ID,
		Title:       notice.Title,
		Content:     notice.Content,
		PublishedAt: notice.PublishedAt,
		CourseIDs:   notice.CourseIDs(),
	}
}

// NewNoticeResponses converts a slice of notice models.
func NewNoticeResponses(notices []models.Notice) []NoticeResponse {
	items := make([]NoticeResponse, 0, len(notices))
	for _, notice := range notices {
		items = append(items, NewNoticeResponse(notice))
	}
	return items
}

// ScheduledMessageCreateRequest captures the schedule-message form.
// ScheduledFor accepts RFC 3339 or the HTML datetime-local layout.
type ScheduledMessageCreateRequest struct {
	Title        string `json:"title" form:"title" validate:"required,max=200"`
	Content      string `json:"content" form:"content" validate:"required,max=10000"`
	Kind         string `json:"kind" form:"kind" validate:"required,oneof=exam_reminder class_reminder homework_reminder general"`
	ScheduledFor string `json:"scheduled_for" form:"scheduled_for" validate:"required"`
}

// ScheduledMessageResponse serialises a scheduled message.
type ScheduledMessageResponse struct {
	ID           uint       `json:"id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Kind         string     `json:"kind"`
	CourseID     uint       `json:"course_id"`
	ScheduledFor time.Time  `json:"scheduled_for"`
	Sent         bool       `json:"sent"`
	SentAt       *time.Time `json:"sent_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NewScheduledMessageResponse converts a scheduled message model.
func NewScheduledMessageResponse(message models.ScheduledMessage) ScheduledMessageResponse {
	return ScheduledMessageResponse{
		ID:           message.ID,
		Title:        message.Title,
		Content:      message.Content,
		Kind:         string(message.Kind),
		CourseID:     message.CourseID,
		ScheduledFor: message.ScheduledFor,
		Sent:         message.Sent,
		SentAt:       message.SentAt,
		CreatedAt:    message.CreatedAt,
	}
}

// ContentFormResponse describes what a create form needs: the active course and accepted kinds.
type ContentFormResponse struct {
	Course CourseResponse `json:"course"`
	Kinds  []string       `json:"kinds,omitempty"`
}
