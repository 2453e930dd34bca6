package dto

import "github.com/IPodymov/pd-projects-backend/internal/model"

// ── user DTOs ──

// UserResponse is the caller-visible user projection. The credential
// hash never appears here.
type UserResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Email       string               `json:"email"`
	Role        model.Role           `json:"role"`
	SchoolID    *string              `json:"school_id,omitempty"`
	ClassID     *string              `json:"school_class_id,omitempty"`
	School      *SchoolResponse      `json:"school,omitempty"`
	SchoolClass *SchoolClassResponse `json:"school_class,omitempty"`
}

// NewUserResponse projects a stored user for output.
func NewUserResponse(u *model.User) UserResponse {
	resp := UserResponse{
		ID:       u.UserID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		SchoolID: u.SchoolID,
		ClassID:  u.SchoolClassID,
	}
	if u.School != nil {
		s := NewSchoolResponse(u.School)
		resp.School = &s
	}
	if u.SchoolClass != nil {
		c := NewSchoolClassResponse(u.SchoolClass)
		resp.SchoolClass = &c
	}
	return resp
}

// CreateUserRequest — admin-issued account with explicit role and
// placement.
type CreateUserRequest struct {
	Name          string     `json:"name"            binding:"required,min=2,max=100"`
	Email         string     `json:"email"           binding:"required,email"`
	Password      string     `json:"password"        binding:"required,min=6,max=72"`
	Role          model.Role `json:"role"            binding:"required"`
	SchoolID      string     `json:"school_id"       binding:"omitempty,uuid"`
	SchoolClassID string     `json:"school_class_id" binding:"omitempty,uuid"`
}

// UpdateUserRequest — profile or admin update. Nil pointers leave the
// field untouched; placement changes go through the placement policy.
type UpdateUserRequest struct {
	Name          *string `json:"name"            binding:"omitempty,min=2,max=100"`
	Password      *string `json:"password"        binding:"omitempty,min=6,max=72"`
	SchoolID      *string `json:"school_id"       binding:"omitempty,uuid"`
	SchoolClassID *string `json:"school_class_id" binding:"omitempty,uuid"`
}

// ChangeRoleRequest — admin role assignment.
type ChangeRoleRequest struct {
	Role model.Role `json:"role" binding:"required"`
}
