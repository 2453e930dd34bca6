package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/IPodymov/pd-projects-backend/internal/authz"
	"github.com/IPodymov/pd-projects-backend/internal/dto"
	"github.com/IPodymov/pd-projects-backend/internal/model"
	"github.com/IPodymov/pd-projects-backend/internal/repository"
)

// ── school directory errors ──

var (
	ErrSchoolNotFound     = errors.New("school not found")
	ErrClassNotFound      = errors.New("class not found")
	ErrSchoolNumberExists = errors.New("school number already exists")
	ErrSchoolHasUsers     = errors.New("school still has users")
)

// defaultClassNames are the three most senior grade levels, created in
// this order when a school has no classes yet.
var defaultClassNames = []string{"Grade 9", "Grade 10", "Grade 11"}

// SchoolService — directory hierarchy operations. Read operations are
// public (the registration form needs them); mutations are gated by
// the policy table against the actor's stored role.
type SchoolService interface {
	ListSchools(ctx context.Context, search string) ([]dto.SchoolResponse, error)
	GetSchool(ctx context.Context, id string) (*dto.SchoolResponse, error)
	ListClasses(ctx context.Context, schoolID, search string) ([]dto.SchoolClassResponse, error)
	CreateSchool(ctx context.Context, actorID string, req *dto.CreateSchoolRequest) (*dto.SchoolResponse, error)
	UpdateSchool(ctx context.Context, actorID, id string, req *dto.UpdateSchoolRequest) (*dto.SchoolResponse, error)
	DeleteSchool(ctx context.Context, actorID, id string) error
	CreateClass(ctx context.Context, actorID, schoolID string, req *dto.ClassRequest) (*dto.SchoolClassResponse, error)
	UpdateClass(ctx context.Context, actorID, classID string, req *dto.ClassRequest) (*dto.SchoolClassResponse, error)
	DeleteClass(ctx context.Context, actorID, classID string) error

	// EnsureDefaultClasses provisions the three default classes for a
	// school that owns none. Idempotent; safe to call from every path
	// that places a user or project into a school.
	EnsureDefaultClasses(ctx context.Context, schoolID string) error
}

type schoolService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSchoolService creates the SchoolService.
func NewSchoolService(repo *repository.Repository, logger *zap.Logger) SchoolService {
	return &schoolService{repo: repo, logger: logger}
}

func (s *schoolService) ListSchools(ctx context.Context, search string) ([]dto.SchoolResponse, error) {
	schools, err := s.repo.School.List(ctx, search)
	if err != nil {
		s.logger.Error("list schools failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.SchoolResponse, 0, len(schools))
	for i := range schools {
		result = append(result, dto.NewSchoolResponse(&schools[i]))
	}
	return result, nil
}

func (s *schoolService) GetSchool(ctx context.Context, id string) (*dto.SchoolResponse, error) {
	school, err := s.repo.School.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchoolNotFound
		}
		return nil, err
	}
	resp := dto.NewSchoolResponse(school)
	return &resp, nil
}

func (s *schoolService) ListClasses(ctx context.Context, schoolID, search string) ([]dto.SchoolClassResponse, error) {
	classes, err := s.repo.SchoolClass.List(ctx, schoolID, search)
	if err != nil {
		s.logger.Error("list classes failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.SchoolClassResponse, 0, len(classes))
	for i := range classes {
		result = append(result, dto.NewSchoolClassResponse(&classes[i]))
	}
	return result, nil
}

func (s *schoolService) CreateSchool(ctx context.Context, actorID string, req *dto.CreateSchoolRequest) (*dto.SchoolResponse, error) {
	actor, err := loadActor(ctx, s.repo.User, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor.Role, authz.ActionSchoolCreate) {
		return nil, ErrForbidden
	}

	school := &model.School{
		Number: req.Number,
		Name:   req.Name,
		City:   req.City,
	}
	if err := s.repo.School.Create(ctx, school); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSchoolNumberExists
		}
		s.logger.Error("create school failed", zap.Error(err))
		return nil, err
	}

	if err := s.EnsureDefaultClasses(ctx, school.SchoolID); err != nil {
		// The school row exists; a retry of any placement path will
		// finish provisioning.
		return nil, err
	}

	created, err := s.repo.School.GetByID(ctx, school.SchoolID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewSchoolResponse(created)
	return &resp, nil
}

func (s *schoolService) UpdateSchool(ctx context.Context, actorID, id string, req *dto.UpdateSchoolRequest) (*dto.SchoolResponse, error) {
	actor, err := loadActor(ctx, s.repo.User, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor.Role, authz.ActionSchoolManage) {
		return nil, ErrForbidden
	}

	school, err := s.repo.School.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchoolNotFound
		}
		return nil, err
	}

	if req.Number != nil {
		school.Number = *req.Number
	}
	if req.Name != nil {
		school.Name = *req.Name
	}
	if req.City != nil {
		school.City = *req.City
	}

	if err := s.repo.School.Update(ctx, school); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSchoolNumberExists
		}
		s.logger.Error("update school failed", zap.Error(err))
		return nil, err
	}

	resp := dto.NewSchoolResponse(school)
	return &resp, nil
}

// DeleteSchool removes a school and its classes. Rejected while users
// still reference the school; projects of the school are not a blocker
// here only because users always are first.
func (s *schoolService) DeleteSchool(ctx context.Context, actorID, id string) error {
	actor, err := loadActor(ctx, s.repo.User, actorID)
	if err != nil {
		return err
	}
	if !authz.Can(actor.Role, authz.ActionSchoolManage) {
		return ErrForbidden
	}

	if _, err := s.repo.School.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSchoolNotFound
		}
		return err
	}

	users, err := s.repo.School.CountUsers(ctx, id)
	if err != nil {
		return err
	}
	if users > 0 {
		return ErrSchoolHasUsers
	}

	return s.repo.School.Delete(ctx, id)
}

func (s *schoolService) CreateClass(ctx context.Context, actorID, schoolID string, req *dto.ClassRequest) (*dto.SchoolClassResponse, error) {
	actor, err := loadActor(ctx, s.repo.User, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor.Role, authz.ActionSchoolManage) {
		return nil, ErrForbidden
	}

	if _, err := s.repo.School.GetByID(ctx, schoolID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchoolNotFound
		}
		return nil, err
	}

	class := &model.SchoolClass{
		Name:     req.Name,
		SchoolID: schoolID,
	}
	if err := s.repo.SchoolClass.Create(ctx, class); err != nil {
		s.logger.Error("create class failed", zap.Error(err))
		return nil, err
	}

	resp := dto.NewSchoolClassResponse(class)
	return &resp, nil
}

func (s *schoolService) UpdateClass(ctx context.Context, actorID, classID string, req *dto.ClassRequest) (*dto.SchoolClassResponse, error) {
	actor, err := loadActor(ctx, s.repo.User, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor.Role, authz.ActionSchoolManage) {
		return nil, ErrForbidden
	}

	class, err := s.repo.SchoolClass.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	class.Name = req.Name
	if err := s.repo.SchoolClass.Update(ctx, class); err != nil {
		s.logger.Error("update class failed", zap.Error(err))
		return nil, err
	}

	resp := dto.NewSchoolClassResponse(class)
	return &resp, nil
}

func (s *schoolService) DeleteClass(ctx context.Context, actorID, classID string) error {
	actor, err := loadActor(ctx, s.repo.User, actorID)
	if err != nil {
		return err
	}
	if !authz.Can(actor.Role, authz.ActionSchoolManage) {
		return ErrForbidden
	}

	if _, err := s.repo.SchoolClass.GetByID(ctx, classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		return err
	}

	return s.repo.SchoolClass.Delete(ctx, classID)
}

func (s *schoolService) EnsureDefaultClasses(ctx context.Context, schoolID string) error {
	count, err := s.repo.SchoolClass.CountBySchool(ctx, schoolID)
	if err != nil {
		return err
	}
	if count > 0 {
		// Any existing class, default or not, means the school is
		// already provisioned. No dedup, no merge.
		return nil
	}

	for _, name := range defaultClassNames {
		class := &model.SchoolClass{
			Name:     name,
			SchoolID: schoolID,
		}
		if err := s.repo.SchoolClass.Create(ctx, class); err != nil {
			// Partial creation is possible and not rolled back; the
			// next call will be a no-op past the count check only if
			// at least one class was saved, which is fine: callers
			// tolerate fewer than three classes after a fault.
			s.logger.Error("provision default class failed",
				zap.String("school_id", schoolID),
				zap.String("name", name),
				zap.Error(err),
			)
			return err
		}
	}

	return nil
}
