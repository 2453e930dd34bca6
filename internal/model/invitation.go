package model

import "time"

// Invitation — invitations table. A bearer capability that grants the
// embedded role and a school placement during registration. Redemption
// never mutates the row; a token stays valid for repeated use until it
// expires.
type Invitation struct {
	InvitationID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"invitation_id"`
	Token        string    `gorm:"type:varchar(64);not null;uniqueIndex"          json:"token"`
	SchoolNumber string    `gorm:"type:varchar(20);not null"                      json:"school_number"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'teacher'"    json:"role"`
	ExpiresAt    time.Time `gorm:"not null"                                       json:"expires_at"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName overrides the table name.
func (Invitation) TableName() string { return "invitations" }

// Expired reports whether the invitation is past its expiry at now.
func (i *Invitation) Expired(now time.Time) bool {
	return i.ExpiresAt.Before(now)
}
