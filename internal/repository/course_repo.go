package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/noah-isme/jys-academy-api/internal/models"
)

// CourseRepository persists courses.
type CourseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	GetByID(ctx context.Context, id uint) (models.Course, error)
	FirstOrCreateByName(ctx context.Context, course *models.Course) (bool, error)
	Delete(ctx context.Context, id uint) error
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository constructs a course repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) List(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) GetByID(ctx context.Context, id uint) (models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return models.Course{}, err
	}
	return course, nil
}

// FirstOrCreateByName loads the course with the same name or inserts it. It reports whether a row was created.
func (r *courseRepository) FirstOrCreateByName(ctx context.Context, course *models.Course) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Course
		err := tx.Where("name = ?", course.Name).Order("id ASC").First(&existing).Error
		if err == nil {
			*course = existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(course).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

// Delete removes a course. Students keep their profile with no course, materials and
// scheduled messages go with the course, and notices only lose the link.
func (r *courseRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.First(&course, id).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Student{}).Where("course_id = ?", id).Update("course_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&models.Material{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&models.ScheduledMessage{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM notice_courses WHERE course_id = ?", id).Error; err != nil {
			return err
		}

		return tx.Delete(&course).Error
	})
}
