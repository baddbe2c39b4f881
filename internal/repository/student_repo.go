package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/noah-isme/jys-academy-api/internal/models"
)

// StudentFilter narrows student listings. CourseID zero means every course.
type StudentFilter struct {
	CourseID uint
	Query    string
	Limit    int
	Newest   bool
}

// StudentRepository persists student profiles together with their accounts.
type StudentRepository interface {
	CreateWithAccount(ctx context.Context, account *models.Account, student *models.Student) error
	NationalIDTaken(ctx context.Context, nationalID string, excludeStudentID uint) (bool, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	GetByID(ctx context.Context, id uint) (models.Student, error)
	GetByIDInCourse(ctx context.Context, id, courseID uint) (models.Student, error)
	GetByAccountID(ctx context.Context, accountID uint) (models.Student, error)
	List(ctx context.Context, filter StudentFilter) ([]models.Student, error)
	CountByCourse(ctx context.Context, courseID uint) (int64, error)
	UpdateWithAccount(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, student models.Student) error
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs a student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

// CreateWithAccount inserts the account and the profile in one transaction.
func (r *studentRepository) CreateWithAccount(ctx context.Context, account *models.Account, student *models.Student) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		student.AccountID = account.ID
		if err := tx.Omit("Account", "Course", "Grades").Create(student).Error; err != nil {
			return err
		}
		student.Account = *account
		return nil
	})
}

func (r *studentRepository) NationalIDTaken(ctx context.Context, nationalID string, excludeStudentID uint) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Student{}).Where("dni = ?", nationalID)
	if excludeStudentID != 0 {
		query = query.Where("id <> ?", excludeStudentID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *studentRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Account{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (models.Student, error) {
	var student models.Student
	if err := r.preloaded(ctx).First(&student, id).Error; err != nil {
		return models.Student{}, err
	}
	return student, nil
}

func (r *studentRepository) GetByIDInCourse(ctx context.Context, id, courseID uint) (models.Student, error) {
	var student models.Student
	if err := r.preloaded(ctx).Where("course_id = ?", courseID).First(&student, id).Error; err != nil {
		return models.Student{}, err
	}
	return student, nil
}

func (r *studentRepository) GetByAccountID(ctx context.Context, accountID uint) (models.Student, error) {
	var student models.Student
	if err := r.preloaded(ctx).Where("account_id = ?", accountID).First(&student).Error; err != nil {
		return models.Student{}, err
	}
	return student, nil
}

// List matches the query as a case-insensitive substring of the national id, first name or last name.
func (r *studentRepository) List(ctx context.Context, filter StudentFilter) ([]models.Student, error) {
	query := r.preloaded(ctx).
		Select("students.*").
		Joins("JOIN accounts ON accounts.id = students.account_id")

	if filter.CourseID != 0 {
		query = query.Where("students.course_id = ?", filter.CourseID)
	}

	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + escapeLike(strings.ToLower(q)) + "%"
		query = query.Where(
			"LOWER(students.dni) LIKE ? ESCAPE '\\' OR LOWER(accounts.first_name) LIKE ? ESCAPE '\\' OR LOWER(accounts.last_name) LIKE ? ESCAPE '\\'",
			like, like, like,
		)
	}

	if filter.Newest {
		query = query.Order("students.registered_at DESC").Order("students.id DESC")
	} else {
		query = query.Order("accounts.last_name ASC").Order("accounts.first_name ASC").Order("students.id ASC")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var students []models.Student
	if err := query.Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepository) CountByCourse(ctx context.Context, courseID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Student{}).Where("course_id = ?", courseID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateWithAccount saves the editable profile and account columns together.
func (r *studentRepository) UpdateWithAccount(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		accountUpdates := map[string]interface{}{
			"first_name": student.Account.FirstName,
			"last_name":  student.Account.LastName,
			"email":      student.Account.Email,
		}
		if err := tx.Model(&models.Account{}).Where("id = ?", student.AccountID).Updates(accountUpdates).Error; err != nil {
			return err
		}

		studentUpdates := map[string]interface{}{
			"dni":       student.NationalID,
			"phone":     student.Phone,
			"course_id": student.CourseID,
		}
		result := tx.Model(&models.Student{}).Where("id = ?", student.ID).Updates(studentUpdates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Delete removes the owning account along with the profile and every grade of that student.
func (r *studentRepository) Delete(ctx context.Context, student models.Student) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", student.ID).Delete(&models.Grade{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Student{}, student.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Delete(&models.Account{}, student.AccountID).Error
	})
}

func (r *studentRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Student{}).Preload("Account").Preload("Course")
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
