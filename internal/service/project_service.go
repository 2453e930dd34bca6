package service

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/IPodymov/pd-projects-backend/internal/authz"
	"github.com/IPodymov/pd-projects-backend/internal/dto"
	"github.com/IPodymov/pd-projects-backend/internal/model"
	"github.com/IPodymov/pd-projects-backend/internal/repository"
	"github.com/IPodymov/pd-projects-backend/pkg/storage"
)

// ── project errors ──

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrProjectFull     = errors.New("project is full")
	ErrAlreadyMember   = errors.New("already a member")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrNotMember       = errors.New("not a project member")
)

// ProjectService — project workflow: creation, membership, review
// status and uploads. Every operation re-derives the actor from
// storage and consults the policy before touching state.
type ProjectService interface {
	List(ctx context.Context, actorID string) ([]dto.ProjectResponse, error)
	Get(ctx context.Context, actorID, projectID string) (*dto.ProjectResponse, error)
	Create(ctx context.Context, actorID string, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	Join(ctx context.Context, actorID, projectID string) error
	Update(ctx context.Context, actorID, projectID string, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	UpdateStatus(ctx context.Context, actorID, projectID string, req *dto.UpdateStatusRequest) error
	Delete(ctx context.Context, actorID, projectID string) error
	AttachFile(ctx context.Context, actorID, projectID, filename string, fileType model.FileType, r io.Reader) (*dto.FileResponse, error)
}

type projectService struct {
	repo   *repository.Repository
	school SchoolService
	files  storage.Store
	logger *zap.Logger
}

// NewProjectService creates the ProjectService.
func NewProjectService(repo *repository.Repository, school SchoolService, files storage.Store, logger *zap.Logger) ProjectService {
	return &projectService{repo: repo, school: school, files: files, logger: logger}
}

func (s *projectService) List(ctx context.Context, actorID string) ([]dto.ProjectResponse, error) {
	actor, err := loadActor(ctx, s.repo.User, actorID)
	if err != nil {
		return nil, err
	}

	projects, err := s.repo.Project.ListVisible(ctx, authz.ProjectScopeFor(actor))
	if err != nil {
		s.logger.Error("list projects failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		result = append(result, dto.NewProjectResponse(&projects[i]))
	}
	return result, nil
}

func (s *projectService) Get(ctx context.Context, actorID, projectID string) (*dto.ProjectResponse, error) {
	actor, err := loadActor(ctx, s.repo.User, actorID)
	if err != nil {
		return nil, err
	}

	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewProject(actor, project) {
		// Invisible records read as absent, not as forbidden.
		return nil, ErrProjectNotFound
	}

	resp := dto.NewProjectResponse(project)
	return &resp, nil
}

// Create sets the owner as the sole initial member and derives the
// initial status from the creator's stored role: privileged roles
// self-certify straight to approved, students start pending.
func (s *projectService) Create(ctx context.Context, actorID string, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	actor, err := loadActor(ctx, s.repo.User, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor.Role, authz.ActionProjectCreate) {
		return nil, ErrForbidden
	}

	if _, err := s.repo.School.GetByID(ctx, req.SchoolID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchoolNotFound
		}
		return nil, err
	}

	var classID *string
	if req.SchoolClassID != "" {
		class, err := s.repo.SchoolClass.GetByID(ctx, req.SchoolClassID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrClassNotFound
			}
			return nil, err
		}
		if class.SchoolID != req.SchoolID {
			return nil, ErrClassNotFound
		}
		classID = &req.SchoolClassID
	}

	status := model.StatusPending
	switch actor.Role {
	case model.RoleTeacher, model.RoleUniversityStaff, model.RoleAdmin:
		status = model.StatusApproved
	}

	project := &model.Project{
		Title:         req.Title,
		Description:   req.Description,
		GithubURL:     req.GithubURL,
		Status:        status,
		SchoolID:      req.SchoolID,
		SchoolClassID: classID,
		OwnerID:       actor.UserID,
		Members:       []model.User{*actor},
	}
	if err := s.repo.Project.Create(ctx, project); err != nil {
		s.logger.Error("create project failed", zap.Error(err))
		return nil, err
	}

	if err := s.school.EnsureDefaultClasses(ctx, req.SchoolID); err != nil {
		// Project row exists; provisioning self-heals on the next
		// placement into this school.
		return nil, err
	}

	created, err := s.repo.Project.GetByID(ctx, project.ProjectID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewProjectResponse(created)
	return &resp, nil
}

// Join appends the student to the member set. The capacity check and
// the append are guarded by the project version so two concurrent
// joiners cannot both slip past a count of two.
func (s *projectService) Join(ctx context.Context, actorID, projectID string) error {
	actor, err := loadActor(ctx, s.repo.User, actorID)
	if err != nil {
		return err
	}
	if !authz.Can(actor.Role, authz.ActionProjectJoin) {
		return ErrForbidden
	}

	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return err
	}
	if project.HasMember(actor.UserID) {
		return ErrAlreadyMember
	}
	if len(project.Members) >= model.MaxProjectMembers {
		return ErrProjectFull
	}

	if err := s.repo.Project.AppendMember(ctx, projectID, actor, project.Version); err != nil {
		s.logger.Error("join project failed",
			zap.String("project_id", projectID),
			zap.String("user_id", actor.UserID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *projectService) Update(ctx context.Context, actorID, projectID string, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	actor, err := loadActor(ctx, s.repo.User, actorID)
	if err != nil {
		return nil, err
	}

	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !authz.CanEditProject(actor, project) {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.GithubURL != nil {
		project.GithubURL = *req.GithubURL
	}

	if err := s.repo.Project.Update(ctx, project); err != nil {
		s.logger.Error("update project failed", zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.Project.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewProjectResponse(updated)
	return &resp, nil
}

// UpdateStatus reassigns the review status. There is no transition
// graph: any status may follow any other when set by an authorized
// role.
func (s *projectService) UpdateStatus(ctx context.Context, actorID, projectID string, req *dto.UpdateStatusRequest) error {
	if !req.Status.Valid() {
		return ErrInvalidStatus
	}

	actor, err := loadActor(ctx, s.repo.User, actorID)
	if err != nil {
		return err
	}
	if !authz.Can(actor.Role, authz.ActionProjectStatus) {
		return ErrForbidden
	}

	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return err
	}

	project.Status = req.Status
	if err := s.repo.Project.Update(ctx, project); err != nil {
		s.logger.Error("update status failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *projectService) Delete(ctx context.Context, actorID, projectID string) error {
	actor, err := loadActor(ctx, s.repo.User, actorID)
	if err != nil {
		return err
	}
	if !authz.Can(actor.Role, authz.ActionProjectDelete) {
		return ErrForbidden
	}

	if _, err := s.getProject(ctx, projectID); err != nil {
		return err
	}

	// Members and files cascade with the project.
	return s.repo.Project.Delete(ctx, projectID)
}

// AttachFile stores the upload and records its metadata. Only the
// owner or a member may attach files.
func (s *projectService) AttachFile(ctx context.Context, actorID, projectID, filename string, fileType model.FileType, r io.Reader) (*dto.FileResponse, error) {
	if !fileType.Valid() {
		return nil, ErrInvalidFileType
	}

	actor, err := loadActor(ctx, s.repo.User, actorID)
	if err != nil {
		return nil, err
	}

	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != actor.UserID && !project.HasMember(actor.UserID) {
		return nil, ErrNotMember
	}

	path, err := s.files.Save(filename, r)
	if err != nil {
		s.logger.Error("store upload failed", zap.Error(err))
		return nil, err
	}

	file := &model.ProjectFile{
		Filename:  filename,
		Path:      path,
		Type:      fileType,
		ProjectID: projectID,
	}
	if err := s.repo.File.Create(ctx, file); err != nil {
		s.logger.Error("record upload failed", zap.Error(err))
		return nil, err
	}

	resp := dto.NewFileResponse(file)
	return &resp, nil
}

func (s *projectService) getProject(ctx context.Context, projectID string) (*model.Project, error) {
	project, err := s.repo.Project.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}
