package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/IPodymov/pd-projects-backend/internal/model"
)

// InvitationRepository — invitation ledger access. Deliberately has no
// consume/mark-used operation: redemption is read-only and a token
// stays redeemable until it expires.
type InvitationRepository interface {
	Create(ctx context.Context, invitation *model.Invitation) error
	GetByToken(ctx context.Context, token string) (*model.Invitation, error)
}

type invitationRepo struct {
	db *gorm.DB
}

// NewInvitationRepo creates the GORM-backed InvitationRepository.
func NewInvitationRepo(db *gorm.DB) InvitationRepository {
	return &invitationRepo{db: db}
}

func (r *invitationRepo) Create(ctx context.Context, invitation *model.Invitation) error {
	return r.db.WithContext(ctx).Create(invitation).Error
}

func (r *invitationRepo) GetByToken(ctx context.Context, token string) (*model.Invitation, error) {
	var invitation model.Invitation
	err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&invitation).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}
