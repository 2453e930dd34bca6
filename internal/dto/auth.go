package dto

import "time"

// ── auth DTOs ──

// LoginRequest — credential login.
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest — self-service registration. Either a direct school
// placement (student path) or an invitation token (teacher path) must
// be supplied; the service enforces that.
type RegisterRequest struct {
	Name          string `json:"name"            binding:"required,min=2,max=100"`
	Email         string `json:"email"           binding:"required,email"`
	Password      string `json:"password"        binding:"required,min=6,max=72"`
	SchoolID      string `json:"school_id"       binding:"omitempty,uuid"`
	SchoolClassID string `json:"school_class_id" binding:"omitempty,uuid"`
	InviteToken   string `json:"invite_token"    binding:"omitempty"`
}

// TokenResponse — issued session plus the hash-stripped user
// projection.
type TokenResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"` // seconds
	User      UserResponse `json:"user"`
}

// CreateInvitationRequest — admin/staff invitation issuance.
type CreateInvitationRequest struct {
	SchoolNumber string `json:"school_number" binding:"required"`
}

// InvitationResponse — raw token plus the redemption link.
type InvitationResponse struct {
	Token     string    `json:"token"`
	Link      string    `json:"link"`
	ExpiresAt time.Time `json:"expires_at"`
}

// InvitationInfo — public pre-check of a token before registration.
type InvitationInfo struct {
	SchoolNumber string    `json:"school_number"`
	Role         string    `json:"role"`
	ExpiresAt    time.Time `json:"expires_at"`
}
