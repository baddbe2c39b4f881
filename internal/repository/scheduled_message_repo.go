package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/jys-academy-api/internal/models"
)

// ScheduledMessageRepository persists scheduled messages and promotes them into notices.
type ScheduledMessageRepository interface {
	Create(ctx context.Context, message *models.ScheduledMessage) error
	ListDue(ctx context.Context, now time.Time) ([]models.ScheduledMessage, error)
	CountPendingByCourse(ctx context.Context, courseID uint) (int64, error)
	Promote(ctx context.Context, message models.ScheduledMessage, publishedAt time.Time) (models.Notice, bool, error)
}

type scheduledMessageRepository struct {
	db *gorm.DB
}

// NewScheduledMessageRepository constructs a scheduled message repository.
func NewScheduledMessageRepository(db *gorm.DB) ScheduledMessageRepository {
	return &scheduledMessageRepository{db: db}
}

func (r *scheduledMessageRepository) Create(ctx context.Context, message *models.ScheduledMessage) error {
	return r.db.WithContext(ctx).Omit("Course").Create(message).Error
}

func (r *scheduledMessageRepository) ListDue(ctx context.Context, now time.Time) ([]models.ScheduledMessage, error) {
	var messages []models.ScheduledMessage
	err := r.db.WithContext(ctx).
		Where("scheduled_for <= ? AND sent = ?", now, false).
		Order("scheduled_for ASC").
		Order("id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *scheduledMessageRepository) CountPendingByCourse(ctx context.Context, courseID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ScheduledMessage{}).
		Where("course_id = ? AND sent = ?", courseID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Promote claims the message with a conditional update and publishes it as a notice in the
// same transaction. The boolean is false when another run already claimed the message.
func (r *scheduledMessageRepository) Promote(ctx context.Context, message models.ScheduledMessage, publishedAt time.Time) (models.Notice, bool, error) {
	var notice models.Notice
	claimed := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ScheduledMessage{}).
			Where("id = ? AND sent = ?", message.ID, false).
			Updates(map[string]interface{}{"sent": true, "sent_at": publishedAt})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		notice = models.Notice{
			Title:       message.Title,
			Content:     message.Content,
			PublishedAt: publishedAt,
		}
		if err := createNotice(tx, &notice, message.CourseID); err != nil {
			return err
		}
		claimed = true
		return nil
	})
	if err != nil {
		return models.Notice{}, false, err
	}

	return notice, claimed, nil
}
