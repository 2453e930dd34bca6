package dto

import "github.com/IPodymov/pd-projects-backend/internal/model"

// ── school directory DTOs ──

// SchoolResponse — school projection, optionally with classes.
type SchoolResponse struct {
	ID      string                `json:"id"`
	Number  string                `json:"number"`
	Name    string                `json:"name"`
	City    string                `json:"city,omitempty"`
	Classes []SchoolClassResponse `json:"classes,omitempty"`
}

// NewSchoolResponse projects a stored school for output.
func NewSchoolResponse(s *model.School) SchoolResponse {
	resp := SchoolResponse{
		ID:     s.SchoolID,
		Number: s.Number,
		Name:   s.Name,
		City:   s.City,
	}
	for i := range s.Classes {
		resp.Classes = append(resp.Classes, NewSchoolClassResponse(&s.Classes[i]))
	}
	return resp
}

// SchoolClassResponse — class projection.
type SchoolClassResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	SchoolID string `json:"school_id"`
}

// NewSchoolClassResponse projects a stored class for output.
func NewSchoolClassResponse(c *model.SchoolClass) SchoolClassResponse {
	return SchoolClassResponse{
		ID:       c.SchoolClassID,
		Name:     c.Name,
		SchoolID: c.SchoolID,
	}
}

// CreateSchoolRequest — admin/staff school creation.
type CreateSchoolRequest struct {
	Number string `json:"number" binding:"required,max=20"`
	Name   string `json:"name"   binding:"required,max=255"`
	City   string `json:"city"   binding:"omitempty,max=100"`
}

// UpdateSchoolRequest — partial school update.
type UpdateSchoolRequest struct {
	Number *string `json:"number" binding:"omitempty,max=20"`
	Name   *string `json:"name"   binding:"omitempty,max=255"`
	City   *string `json:"city"   binding:"omitempty,max=100"`
}

// ClassRequest — class creation or rename.
type ClassRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}
