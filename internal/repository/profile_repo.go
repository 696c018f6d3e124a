package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Aadith-Viswam/student-progress/internal/models"
)

// StudentProfileRepository defines persistence operations for student profiles.
type StudentProfileRepository interface {
	Create(ctx context.Context, profile *models.StudentProfile) error
	GetByUserID(ctx context.Context, userID uint) (models.StudentProfile, error)
	GetByRegNo(ctx context.Context, regNo string) (models.StudentProfile, error)
	ListByClass(ctx context.Context, classID uint) ([]models.StudentProfile, error)
	Update(ctx context.Context, profile *models.StudentProfile) error
}

type studentProfileRepository struct {
	db *gorm.DB
}

// NewStudentProfileRepository instantiates the repository.
func NewStudentProfileRepository(db *gorm.DB) StudentProfileRepository {
	return &studentProfileRepository{db: db}
}

func (r *studentProfileRepository) Create(ctx context.Context, profile *models.StudentProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *studentProfileRepository) GetByUserID(ctx context.Context, userID uint) (models.StudentProfile, error) {
	var profile models.StudentProfile
	if err := r.db.WithContext(ctx).
		Preload("Class").
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		return models.StudentProfile{}, err
	}

	return profile, nil
}

func (r *studentProfileRepository) GetByRegNo(ctx context.Context, regNo string) (models.StudentProfile, error) {
	var profile models.StudentProfile
	if err := r.db.WithContext(ctx).Where("reg_no = ?", regNo).First(&profile).Error; err != nil {
		return models.StudentProfile{}, err
	}

	return profile, nil
}

func (r *studentProfileRepository) ListByClass(ctx context.Context, classID uint) ([]models.StudentProfile, error) {
	var profiles []models.StudentProfile
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("class_id = ?", classID).
		Order("reg_no ASC").
		Find(&profiles).Error; err != nil {
		return nil, err
	}

	return profiles, nil
}

func (r *studentProfileRepository) Update(ctx context.Context, profile *models.StudentProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// TeacherProfileRepository defines persistence operations for teacher profiles.
type TeacherProfileRepository interface {
	Create(ctx context.Context, profile *models.TeacherProfile) error
	GetByUserID(ctx context.Context, userID uint) (models.TeacherProfile, error)
}

type teacherProfileRepository struct {
	db *gorm.DB
}

// NewTeacherProfileRepository instantiates the repository.
func NewTeacherProfileRepository(db *gorm.DB) TeacherProfileRepository {
	return &teacherProfileRepository{db: db}
}

func (r *teacherProfileRepository) Create(ctx context.Context, profile *models.TeacherProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *teacherProfileRepository) GetByUserID(ctx context.Context, userID uint) (models.TeacherProfile, error) {
	var profile models.TeacherProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return models.TeacherProfile{}, err
	}

	return profile, nil
}
