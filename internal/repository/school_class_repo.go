package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/IPodymov/pd-projects-backend/internal/model"
)

// SchoolClassRepository — class data access.
type SchoolClassRepository interface {
	Create(ctx context.Context, class *model.SchoolClass) error
	GetByID(ctx context.Context, id string) (*model.SchoolClass, error)
	List(ctx context.Context, schoolID, search string) ([]model.SchoolClass, error)
	CountBySchool(ctx context.Context, schoolID string) (int64, error)
	Update(ctx context.Context, class *model.SchoolClass) error
	Delete(ctx context.Context, id string) error
}

type schoolClassRepo struct {
	db *gorm.DB
}

// NewSchoolClassRepo creates the GORM-backed SchoolClassRepository.
func NewSchoolClassRepo(db *gorm.DB) SchoolClassRepository {
	return &schoolClassRepo{db: db}
}

func (r *schoolClassRepo) Create(ctx context.Context, class *model.SchoolClass) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *schoolClassRepo) GetByID(ctx context.Context, id string) (*model.SchoolClass, error) {
	var class model.SchoolClass
	err := r.db.WithContext(ctx).
		Preload("School").
		Where("school_class_id = ?", id).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

// List returns classes ordered by name; schoolID and search are both
// optional.
func (r *schoolClassRepo) List(ctx context.Context, schoolID, search string) ([]model.SchoolClass, error) {
	var classes []model.SchoolClass
	db := r.db.WithContext(ctx).Preload("School").Order("name ASC")
	if schoolID != "" {
		db = db.Where("school_id = ?", schoolID)
	}
	if search != "" {
		db = db.Where("name ILIKE ?", "%"+search+"%")
	}
	err := db.Find(&classes).Error
	return classes, err
}

func (r *schoolClassRepo) CountBySchool(ctx context.Context, schoolID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SchoolClass{}).
		Where("school_id = ?", schoolID).
		Count(&count).Error
	return count, err
}

func (r *schoolClassRepo) Update(ctx context.Context, class *model.SchoolClass) error {
	return r.db.WithContext(ctx).Save(class).Error
}

func (r *schoolClassRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("school_class_id = ?", id).
		Delete(&model.SchoolClass{}).Error
}
