package models

import "time"

// Notice is a published announcement visible to students of the linked courses.
type Notice struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	PublishedAt time.Time `gorm:"not null;index" json:"published_at"`
	Courses     []Course  `gorm:"many2many:notice_courses;" json:"courses,omitempty"`
}

// CourseIDs returns the ids of the linked courses.
func (n Notice) CourseIDs() []uint {
	ids := make([]uint, 0, len(n.Courses))
	for _, course := range n.Courses {
		ids = append(ids, course.ID)
	}
	return ids
}
