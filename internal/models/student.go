package models

import "time"

// Student is the academic profile attached one-to-one to an Account.
type Student struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AccountID    uint      `gorm:"uniqueIndex;not null" json:"account_id"`
	Account      Account   `gorm:"constraint:OnDelete:CASCADE;" json:"account"`
	NationalID   string    `gorm:"column:dni;size:20;uniqueIndex;not null" json:"national_id"`
	Phone        string    `gorm:"size:20" json:"phone"`
	CourseID     *uint     `gorm:"index" json:"course_id"`
	Course       *Course   `gorm:"constraint:OnDelete:SET NULL;" json:"course,omitempty"`
	RegisteredAt time.Time `gorm:"autoCreateTime" json:"registered_at"`
	Grades       []Grade   `gorm:"constraint:OnDelete:CASCADE;" json:"grades,omitempty"`
}

// FullName returns the owning account's full name.
func (s Student) FullName() string {
	return s.Account.FullName()
}
