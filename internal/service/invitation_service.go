package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/IPodymov/pd-projects-backend/config"
	"github.com/IPodymov/pd-projects-backend/internal/authz"
	"github.com/IPodymov/pd-projects-backend/internal/dto"
	"github.com/IPodymov/pd-projects-backend/internal/model"
	"github.com/IPodymov/pd-projects-backend/internal/repository"
)

// ── invitation errors ──

var (
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInvitationExpired  = errors.New("invitation expired")
)

// invitationTTL is the fixed validity window of a new invitation.
const invitationTTL = 7 * 24 * time.Hour

// InvitationService — the invitation ledger. Tokens are bearer
// capabilities granting the teacher role and a school placement.
// Redemption is read-only against the ledger: a token is NOT consumed
// and stays redeemable, by any number of callers, until it expires.
type InvitationService interface {
	Create(ctx context.Context, actorID string, req *dto.CreateInvitationRequest) (*dto.InvitationResponse, error)
	// Redeem resolves a token into the granted role and school id,
	// provisioning default classes for the school on the way.
	Redeem(ctx context.Context, token string) (model.Role, string, error)
	// Validate is the public pre-check used by the registration form.
	Validate(ctx context.Context, token string) (*dto.InvitationInfo, error)
}

type invitationService struct {
	cfg    *config.Config
	repo   *repository.Repository
	school SchoolService
	logger *zap.Logger
}

// NewInvitationService creates the InvitationService.
func NewInvitationService(cfg *config.Config, repo *repository.Repository, school SchoolService, logger *zap.Logger) InvitationService {
	return &invitationService{cfg: cfg, repo: repo, school: school, logger: logger}
}

func (s *invitationService) Create(ctx context.Context, actorID string, req *dto.CreateInvitationRequest) (*dto.InvitationResponse, error) {
	actor, err := loadActor(ctx, s.repo.User, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor.Role, authz.ActionInvitationCreate) {
		return nil, ErrForbidden
	}

	token, err := generateToken()
	if err != nil {
		s.logger.Error("generate invitation token failed", zap.Error(err))
		return nil, err
	}

	invitation := &model.Invitation{
		Token:        token,
		SchoolNumber: req.SchoolNumber,
		Role:         model.RoleTeacher,
		ExpiresAt:    time.Now().Add(invitationTTL),
	}
	if err := s.repo.Invitation.Create(ctx, invitation); err != nil {
		s.logger.Error("create invitation failed", zap.Error(err))
		return nil, err
	}

	return &dto.InvitationResponse{
		Token:     token,
		Link:      fmt.Sprintf("%s/register?token=%s", s.cfg.Server.BaseURL, token),
		ExpiresAt: invitation.ExpiresAt,
	}, nil
}

func (s *invitationService) Redeem(ctx context.Context, token string) (model.Role, string, error) {
	invitation, err := s.lookup(ctx, token)
	if err != nil {
		return "", "", err
	}

	school, err := s.repo.School.GetByNumber(ctx, invitation.SchoolNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrSchoolNotFound
		}
		return "", "", err
	}

	if err := s.school.EnsureDefaultClasses(ctx, school.SchoolID); err != nil {
		return "", "", err
	}

	return invitation.Role, school.SchoolID, nil
}

func (s *invitationService) Validate(ctx context.Context, token string) (*dto.InvitationInfo, error) {
	invitation, err := s.lookup(ctx, token)
	if err != nil {
		return nil, err
	}
	return &dto.InvitationInfo{
		SchoolNumber: invitation.SchoolNumber,
		Role:         string(invitation.Role),
		ExpiresAt:    invitation.ExpiresAt,
	}, nil
}

func (s *invitationService) lookup(ctx context.Context, token string) (*model.Invitation, error) {
	invitation, err := s.repo.Invitation.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}
	if invitation.Expired(time.Now()) {
		return nil, ErrInvitationExpired
	}
	return invitation, nil
}

// generateToken returns 32 hex chars from a CSPRNG.
func generateToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
