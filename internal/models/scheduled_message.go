package models

import "time"

// MessageKind classifies scheduled messages.
type MessageKind string

// Scheduled message kinds.
const (
	MessageKindExamReminder     MessageKind = "exam_reminder"
	MessageKindClassReminder    MessageKind = "class_reminder"
	MessageKindHomeworkReminder MessageKind = "homework_reminder"
	MessageKindGeneral          MessageKind = "general"
)

// MessageKinds lists every accepted kind in display order.
var MessageKinds = []MessageKind{MessageKindExamReminder, MessageKindClassReminder, MessageKindHomeworkReminder, MessageKindGeneral}

// ScheduledMessage is promoted into a Notice once ScheduledFor has passed.
// Sent only ever moves from false to true.
type ScheduledMessage struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Title        string      `gorm:"size:200;not null" json:"title"`
	Content      string      `gorm:"type:text;not null" json:"content"`
	Kind         MessageKind `gorm:"size:20;not null" json:"kind"`
	CourseID     uint        `gorm:"index;not null" json:"course_id"`
	Course       Course      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	ScheduledFor time.Time   `gorm:"not null;index" json:"scheduled_for"`
	Sent         bool        `gorm:"not null;default:false;index" json:"sent"`
	SentAt       *time.Time  `json:"sent_at"`
	CreatedAt    time.Time   `json:"created_at"`
}
