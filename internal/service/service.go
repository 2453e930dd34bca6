package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/IPodymov/pd-projects-backend/config"
	"github.com/IPodymov/pd-projects-backend/internal/model"
	"github.com/IPodymov/pd-projects-backend/internal/repository"
	"github.com/IPodymov/pd-projects-backend/pkg/jwt"
	"github.com/IPodymov/pd-projects-backend/pkg/storage"
)

// ErrForbidden is returned whenever the acting user's current stored
// role does not permit the operation.
var ErrForbidden = errors.New("forbidden")

// Service aggregates every business service.
type Service struct {
	Auth       AuthService
	Invitation InvitationService
	User       UserService
	School     SchoolService
	Project    ProjectService
	Export     ExportService
}

// NewService wires the services over one repository aggregate.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	files storage.Store,
	logger *zap.Logger,
) *Service {
	school := NewSchoolService(repo, logger)
	invitation := NewInvitationService(cfg, repo, school, logger)
	return &Service{
		Auth:       NewAuthService(cfg, repo, invitation, school, jwtMgr, logger),
		Invitation: invitation,
		User:       NewUserService(repo, logger),
		School:     school,
		Project:    NewProjectService(repo, school, files, logger),
		Export:     NewExportService(repo, logger),
	}
}

// loadActor re-fetches the caller's current record. Session claims are
// an identity hint only; the stored role is what gates privileged
// actions, since the role can change between token issuance and use.
func loadActor(ctx context.Context, users repository.UserRepository, actorID string) (*model.User, error) {
	actor, err := users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	return actor, nil
}
