package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/IPodymov/pd-projects-backend/internal/model"
)

// SchoolRepository — school directory data access.
type SchoolRepository interface {
	Create(ctx context.Context, school *model.School) error
	GetByID(ctx context.Context, id string) (*model.School, error)
	GetByNumber(ctx context.Context, number string) (*model.School, error)
	List(ctx context.Context, search string) ([]model.School, error)
	Update(ctx context.Context, school *model.School) error
	Delete(ctx context.Context, id string) error
	CountUsers(ctx context.Context, schoolID string) (int64, error)
}

type schoolRepo struct {
	db *gorm.DB
}

// NewSchoolRepo creates the GORM-backed SchoolRepository.
func NewSchoolRepo(db *gorm.DB) SchoolRepository {
	return &schoolRepo{db: db}
}

func (r *schoolRepo) Create(ctx context.Context, school *model.School) error {
	return r.db.WithContext(ctx).Create(school).Error
}

func (r *schoolRepo) GetByID(ctx context.Context, id string) (*model.School, error) {
	var school model.School
	err := r.db.WithContext(ctx).
		Preload("Classes", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Where("school_id = ?", id).
		First(&school).Error
	if err != nil {
		return nil, err
	}
	return &school, nil
}

func (r *schoolRepo) GetByNumber(ctx context.Context, number string) (*model.School, error) {
	var school model.School
	err := r.db.WithContext(ctx).
		Where("number = ?", number).
		First(&school).Error
	if err != nil {
		return nil, err
	}
	return &school, nil
}

// List returns schools ordered by number, optionally filtered by a
// case-insensitive match over number, name or city.
func (r *schoolRepo) List(ctx context.Context, search string) ([]model.School, error) {
	var schools []model.School
	db := r.db.WithContext(ctx).Order("number ASC")
	if search != "" {
		pattern := "%" + search + "%"
		db = db.Where("number ILIKE ? OR name ILIKE ? OR city ILIKE ?", pattern, pattern, pattern)
	}
	err := db.Find(&schools).Error
	return schools, err
}

func (r *schoolRepo) Update(ctx context.Context, school *model.School) error {
	return r.db.WithContext(ctx).Save(school).Error
}

func (r *schoolRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("school_id = ?", id).
		Delete(&model.School{}).Error
}

func (r *schoolRepo) CountUsers(ctx context.Context, schoolID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("school_id = ?", schoolID).
		Count(&count).Error
	return count, err
}
