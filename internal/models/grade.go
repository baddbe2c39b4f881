package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Grade is a single score recorded for a student.
type Grade struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	StudentID uint            `gorm:"index;not null" json:"student_id"`
	Subject   string          `gorm:"size:100;not null" json:"subject"`
	Score     decimal.Decimal `gorm:"type:decimal(4,2);not null" json:"score"`
	Date      datatypes.Date  `gorm:"not null" json:"date"`
	Remarks   string          `gorm:"type:text" json:"remarks"`
	CreatedAt time.Time       `json:"created_at"`
}
