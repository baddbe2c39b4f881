package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/jys-academy-api/internal/models"
)

// MaterialRepository persists course materials.
type MaterialRepository interface {
	Create(ctx context.Context, material *models.Material) error
	ListByCourse(ctx context.Context, courseID uint, limit int) ([]models.Material, error)
	CountByCourse(ctx context.Context, courseID uint) (int64, error)
}

type materialRepository struct {
	db *gorm.DB
}

// NewMaterialRepository constructs a material repository.
func NewMaterialRepository(db *gorm.DB) MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) Create(ctx context.Context, material *models.Material) error {
	return r.db.WithContext(ctx).Omit("Course").Create(material).Error
}

func (r *materialRepository) ListByCourse(ctx context.Context, courseID uint, limit int) ([]models.Material, error) {
	query := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("uploaded_at DESC").
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var materials []models.Material
	if err := query.Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *materialRepository) CountByCourse(ctx context.Context, courseID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Material{}).Where("course_id = ?", courseID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
