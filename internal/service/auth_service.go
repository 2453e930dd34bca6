package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/IPodymov/pd-projects-backend/config"
	"github.com/IPodymov/pd-projects-backend/internal/dto"
	"github.com/IPodymov/pd-projects-backend/internal/model"
	"github.com/IPodymov/pd-projects-backend/internal/repository"
	"github.com/IPodymov/pd-projects-backend/pkg/jwt"
)

// ── auth errors ──

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already in use")
	ErrSchoolRequired     = errors.New("school placement is required")
)

// AuthService — registration and login.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
}

type authService struct {
	cfg        *config.Config
	repo       *repository.Repository
	invitation InvitationService
	school     SchoolService
	jwtMgr     *jwt.Manager
	logger     *zap.Logger
}

// NewAuthService creates the AuthService.
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	invitation InvitationService,
	school SchoolService,
	jwtMgr *jwt.Manager,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:        cfg,
		repo:       repo,
		invitation: invitation,
		school:     school,
		jwtMgr:     jwtMgr,
		logger:     logger,
	}
}

// Register creates an account. Placement comes from either an
// invitation token (teacher path) or a direct school id (student
// path); the student path requires one.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	role := model.RoleStudent
	var schoolID, classID *string

	if req.InviteToken != "" {
		grantedRole, grantedSchoolID, err := s.invitation.Redeem(ctx, req.InviteToken)
		if err != nil {
			return nil, err
		}
		role = grantedRole
		schoolID = &grantedSchoolID
	} else {
		if req.SchoolID == "" {
			return nil, ErrSchoolRequired
		}
		if _, err := s.repo.School.GetByID(ctx, req.SchoolID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSchoolNotFound
			}
			return nil, err
		}
		schoolID = &req.SchoolID

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

		if err := s.school.EnsureDefaultClasses(ctx, req.SchoolID); err != nil {
			return nil, err
		}
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
		Role:          role,
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

	return s.issueSession(created)
}

// Login verifies credentials. Unknown email and wrong password fail
// identically so the response does not reveal which emails exist.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("lookup user failed", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueSession(user)
}

func (s *authService) issueSession(user *model.User) (*dto.TokenResponse, error) {
	token, err := s.jwtMgr.Generate(user.UserID, user.Email, string(user.Role))
	if err != nil {
		s.logger.Error("issue session token failed", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		Token:     token,
		ExpiresIn: int(s.jwtMgr.TTL().Seconds()),
		User:      dto.NewUserResponse(user),
	}, nil
}
