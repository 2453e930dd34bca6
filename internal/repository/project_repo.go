package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/IPodymov/pd-projects-backend/internal/authz"
	"github.com/IPodymov/pd-projects-backend/internal/model"
	apperrors "github.com/IPodymov/pd-projects-backend/pkg/errors"
)

// ProjectRepository — project data access.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	GetByID(ctx context.Context, id string) (*model.Project, error)
	ListVisible(ctx context.Context, scope authz.ProjectScope) ([]model.Project, error)
	Update(ctx context.Context, project *model.Project) error
	// AppendMember adds a user to the member set, guarded by the
	// version the caller observed while checking capacity.
	AppendMember(ctx context.Context, projectID string, user *model.User, expectedVersion int) error
	Delete(ctx context.Context, id string) error
}

type projectRepo struct {
	db *gorm.DB
}

// NewProjectRepo creates the GORM-backed ProjectRepository.
func NewProjectRepo(db *gorm.DB) ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepo) GetByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Members").
		Preload("Files").
		Preload("School").
		Preload("SchoolClass").
		Where("project_id = ?", id).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ListVisible applies the actor's visibility scope: admin sees all,
// teacher/staff see their school, students additionally only their
// class or class-less projects.
func (r *projectRepo) ListVisible(ctx context.Context, scope authz.ProjectScope) ([]model.Project, error) {
	var projects []model.Project
	db := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Members").
		Preload("Files").
		Order("created_at DESC")

	if !scope.All {
		if scope.SchoolID == "" {
			return []model.Project{}, nil
		}
		db = db.Where("school_id = ?", scope.SchoolID)
		if scope.ClassScoped {
			if scope.ClassID != nil {
				db = db.Where("school_class_id = ? OR school_class_id IS NULL", *scope.ClassID)
			} else {
				db = db.Where("school_class_id IS NULL")
			}
		}
	}

	err := db.Find(&projects).Error
	return projects, err
}

// Update writes content fields only. The version column is omitted so
// a stale in-memory value cannot roll back the counter AppendMember
// guards on.
func (r *projectRepo) Update(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).
		Omit("version", "Members", "Files", "Owner", "School", "SchoolClass").
		Save(project).Error
}

func (r *projectRepo) AppendMember(ctx context.Context, projectID string, user *model.User, expectedVersion int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Project{}).
			Where("project_id = ? AND version = ?", projectID, expectedVersion).
			Update("version", gorm.Expr("version + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// The capacity check ran against a stale row.
			return apperrors.ErrOptimisticLock
		}
		return tx.Model(&model.Project{ProjectID: projectID}).
			Association("Members").
			Append(user)
	})
}

func (r *projectRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("project_id = ?", id).
		Delete(&model.Project{}).Error
}
