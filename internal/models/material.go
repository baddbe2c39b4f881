package models

import "time"

// MaterialKind classifies uploaded study material.
type MaterialKind string

// Material kinds.
const (
	MaterialKindNote     MaterialKind = "note"
	MaterialKindVideo    MaterialKind = "video"
	MaterialKindAudio    MaterialKind = "audio"
	MaterialKindDocument MaterialKind = "document"
)

// MaterialKinds lists every accepted kind in display order.
var MaterialKinds = []MaterialKind{MaterialKindNote, MaterialKindVideo, MaterialKindAudio, MaterialKindDocument}

// Material is a file published to a course.
type Material struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"size:200;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Kind        MaterialKind `gorm:"size:20;not null" json:"kind"`
	FileURL     string       `gorm:"size:512;not null" json:"file_url"`
	FileName    string       `gorm:"size:255" json:"file_name"`
	MimeType    string       `gorm:"size:128" json:"mime_type"`
	SizeBytes   int64        `json:"size_bytes"`
	CourseID    uint         `gorm:"index;not null" json:"course_id"`
	Course      Course       `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	UploadedAt  time.Time    `gorm:"autoCreateTime;index" json:"uploaded_at"`
}
