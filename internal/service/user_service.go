package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/IPodymov/pd-projects-backend/internal/authz"
	"github.com/IPodymov/pd-projects-backend/internal/dto"
	"github.com/IPodymov/pd-projects-backend/internal/model"
	"github.com/IPodymov/pd-projects-backend/internal/repository"
)

// ── user errors ──

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrInvalidRole    = errors.New("invalid role")
	ErrSelfRoleChange = errors.New("cannot change own role")
	ErrSelfDelete     = errors.New("cannot delete own account")
)

// UserService — profile and admin user management.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error)
	List(ctx context.Context, actorID string) ([]dto.UserResponse, error)
	Search(ctx context.Context, actorID, keyword string) ([]dto.UserResponse, error)
	Create(ctx context.Context, actorID string, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, actorID, targetID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, actorID, targetID string) error
	ChangeRole(ctx context.Context, actorID, targetID string, req *dto.ChangeRoleRequest) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService creates the UserService.
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) List(ctx context.Context, actorID string) ([]dto.UserResponse, error) {
	actor, err := loadActor(ctx, s.repo.User, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor.Role, authz.ActionUserList) {
		return nil, ErrForbidden
	}

	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("list users failed", zap.Error(err))
		return nil, err
	}
	return projectUsers(users), nil
}

func (s *userService) Search(ctx context.Context, actorID, keyword string) ([]dto.UserResponse, error) {
	actor, err := loadActor(ctx, s.repo.User, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor.Role, authz.ActionUserSearch) {
		return nil, ErrForbidden
	}

	users, err := s.repo.User.Search(ctx, keyword)
	if err != nil {
		s.logger.Error("search users failed", zap.Error(err))
		return nil, err
	}
	return projectUsers(users), nil
}

func (s *userService) Create(ctx context.Context, actorID string, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	actor, err := loadActor(ctx, s.repo.User, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor.Role, authz.ActionUserCreate) {
		return nil, ErrForbidden
	}
	if !req.Role.Valid() {
		return nil, ErrInvalidRole
	}

	var schoolID, classID *string
	if req.SchoolID != "" {
		if _, err := s.repo.School.GetByID(ctx, req.SchoolID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSchoolNotFound
			}
			return nil, err
		}
		schoolID = &req.SchoolID
	}
	if req.SchoolClassID != "" {
		class, err := s.repo.SchoolClass.GetByID(ctx, req.SchoolClassID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrClassNotFound
			}
			return nil, err
		}
		if schoolID == nil || class.SchoolID != *schoolID {
			return nil, ErrClassNotFound
		}
		classID = &req.SchoolClassID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Name:          req.Name,
		Email:         req.Email,
		PasswordHash:  string(hash),
		Role:          req.Role,
		SchoolID:      schoolID,
		SchoolClassID: classID,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		s.logger.Error("create user failed", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.User.GetByID(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(created)
	return &resp, nil
}

func (s *userService) Update(ctx context.Context, actorID, targetID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	actor, err := loadActor(ctx, s.repo.User, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanEditUser(actor, targetID) {
		return nil, ErrForbidden
	}

	target, err := s.repo.User.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	schoolChanged := req.SchoolID != nil && !equalPtr(req.SchoolID, target.SchoolID)
	classChanged := req.SchoolClassID != nil && !equalPtr(req.SchoolClassID, target.SchoolClassID)
	if !authz.CanChangePlacement(actor.Role, schoolChanged, classChanged) {
		return nil, ErrForbidden
	}

	if req.Name != nil {
		target.Name = *req.Name
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("hash password failed", zap.Error(err))
			return nil, err
		}
		target.PasswordHash = string(hash)
	}
	if schoolChanged {
		if _, err := s.repo.School.GetByID(ctx, *req.SchoolID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSchoolNotFound
			}
			return nil, err
		}
		target.SchoolID = req.SchoolID
		// A school move invalidates the old class placement unless a
		// new one arrives in the same request.
		if req.SchoolClassID == nil {
			target.SchoolClassID = nil
		}
	}
	if classChanged {
		class, err := s.repo.SchoolClass.GetByID(ctx, *req.SchoolClassID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrClassNotFound
			}
			return nil, err
		}
		if target.SchoolID == nil || class.SchoolID != *target.SchoolID {
			return nil, ErrClassNotFound
		}
		target.SchoolClassID = req.SchoolClassID
	}

	if err := s.repo.User.Update(ctx, target); err != nil {
		s.logger.Error("update user failed", zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.User.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(updated)
	return &resp, nil
}

func (s *userService) Delete(ctx context.Context, actorID, targetID string) error {
	actor, err := loadActor(ctx, s.repo.User, actorID)
	if err != nil {
		return err
	}
	if !authz.Can(actor.Role, authz.ActionUserDelete) {
		return ErrForbidden
	}
	if actorID == targetID {
		return ErrSelfDelete
	}

	if _, err := s.repo.User.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	// Membership rows cascade with the user at the storage boundary.
	return s.repo.User.Delete(ctx, targetID)
}

func (s *userService) ChangeRole(ctx context.Context, actorID, targetID string, req *dto.ChangeRoleRequest) error {
	actor, err := loadActor(ctx, s.repo.User, actorID)
	if err != nil {
		return err
	}
	if !authz.Can(actor.Role, authz.ActionUserRoleChange) {
		return ErrForbidden
	}
	if actorID == targetID {
		return ErrSelfRoleChange
	}
	if !req.Role.Valid() {
		return ErrInvalidRole
	}

	target, err := s.repo.User.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	target.Role = req.Role
	if err := s.repo.User.Update(ctx, target); err != nil {
		s.logger.Error("change role failed", zap.Error(err))
		return err
	}
	return nil
}

func projectUsers(users []model.User) []dto.UserResponse {
	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, dto.NewUserResponse(&users[i]))
	}
	return result
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
