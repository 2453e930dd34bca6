package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/IPodymov/pd-projects-backend/internal/model"
)

// FileRepository — project file metadata access. Rows are written once
// and removed only by the project cascade.
type FileRepository interface {
	Create(ctx context.Context, file *model.ProjectFile) error
}

type fileRepo struct {
	db *gorm.DB
}

// NewFileRepo creates the GORM-backed FileRepository.
func NewFileRepo(db *gorm.DB) FileRepository {
	return &fileRepo{db: db}
}

func (r *fileRepo) Create(ctx context.Context, file *model.ProjectFile) error {
	return r.db.WithContext(ctx).Create(file).Error
}
