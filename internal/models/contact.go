package models

import "time"

// Contact submission statuses.
const (
	ContactStatusQueued    = "queued"
	ContactStatusSent      = "sent"
	ContactStatusFailed    = "failed"
	ContactStatusDuplicate = "duplicate"
)

// ContactSubmission stores inbound enquiries from the public contact form.
type ContactSubmission struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	ReferenceID      string     `gorm:"size:64;uniqueIndex" json:"reference_id"`
	Name             string     `gorm:"size:128;not null" json:"name"`
	Email            string     `gorm:"size:160" json:"email"`
	Phone            string     `gorm:"size:32" json:"phone"`
	CourseOfInterest string     `gorm:"size:128;not null" json:"course_of_interest"`
	Message          string     `gorm:"type:text" json:"message"`
	Status           string     `gorm:"size:32;not null" json:"status"`
	Checksum         string     `gorm:"size:128;index" json:"checksum"`
	IPAddress        string     `gorm:"size:64" json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	DeliveredAt      *time.Time `json:"delivered_at"`
}
