package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/jys-academy-api/internal/models"
)

// NoticeRepository persists notices and their course links.
type NoticeRepository interface {
	CreateForCourses(ctx context.Context, notice *models.Notice, courseIDs ...uint) error
	ListByCourse(ctx context.Context, courseID uint, limit int) ([]models.Notice, error)
	CountByCourse(ctx context.Context, courseID uint) (int64, error)
}

type noticeRepository struct {
	db *gorm.DB
}

// NewNoticeRepository constructs a notice repository.
func NewNoticeRepository(db *gorm.DB) NoticeRepository {
	return &noticeRepository{db: db}
}

func (r *noticeRepository) CreateForCourses(ctx context.Context, notice *models.Notice, courseIDs ...uint) error {
	return createNotice(r.db.WithContext(ctx), notice, courseIDs...)
}

func (r *noticeRepository) ListByCourse(ctx context.Context, courseID uint, limit int) ([]models.Notice, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Notice{}).
		Select("notices.*").
		Joins("JOIN notice_courses ON notice_courses.notice_id = notices.id").
		Where("notice_courses.course_id = ?", courseID).
		Preload("Courses").
		Order("notices.published_at DESC").
		Order("notices.id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var notices []models.Notice
	if err := query.Find(&notices).Error; err != nil {
		return nil, err
	}
	return notices, nil
}

func (r *noticeRepository) CountByCourse(ctx context.Context, courseID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("notice_courses").
		Where("course_id = ?", courseID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// createNotice inserts the notice and its join rows without touching the course rows.
func createNotice(tx *gorm.DB, notice *models.Notice, courseIDs ...uint) error {
	notice.Courses = make([]models.Course, 0, len(courseIDs))
	for _, id := range courseIDs {
		notice.Courses = append(notice.Courses, models.Course{ID: id})
	}
	return tx.Omit("Courses.*").Create(notice).Error
}
