package dto

import "github.com/IPodymov/pd-projects-backend/internal/model"

// ── project DTOs ──

// ProjectResponse — project projection with owner, members and files.
type ProjectResponse struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	GithubURL   string              `json:"github_url,omitempty"`
	Status      model.ProjectStatus `json:"status"`
	SchoolID    string              `json:"school_id"`
	ClassID     *string             `json:"school_class_id,omitempty"`
	Owner       *UserResponse       `json:"owner,omitempty"`
	Members     []UserResponse      `json:"members"`
	Files       []FileResponse      `json:"files,omitempty"`
}

// NewProjectResponse projects a stored project for output.
func NewProjectResponse(p *model.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:          p.ProjectID,
		Title:       p.Title,
		Description: p.Description,
		GithubURL:   p.GithubURL,
		Status:      p.Status,
		SchoolID:    p.SchoolID,
		ClassID:     p.SchoolClassID,
		Members:     make([]UserResponse, 0, len(p.Members)),
	}
	if p.Owner != nil {
		o := NewUserResponse(p.Owner)
		resp.Owner = &o
	}
	for i := range p.Members {
		resp.Members = append(resp.Members, NewUserResponse(&p.Members[i]))
	}
	for i := range p.Files {
		resp.Files = append(resp.Files, NewFileResponse(&p.Files[i]))
	}
	return resp
}

// CreateProjectRequest — project creation. The school placement is
// required; class is optional.
type CreateProjectRequest struct {
	Title         string `json:"title"           binding:"required,max=255"`
	Description   string `json:"description"     binding:"required"`
	GithubURL     string `json:"github_url"      binding:"omitempty,url"`
	SchoolID      string `json:"school_id"       binding:"required,uuid"`
	SchoolClassID string `json:"school_class_id" binding:"omitempty,uuid"`
}

// UpdateProjectRequest — owner content update. Status is not here;
// it has its own operation and policy.
type UpdateProjectRequest struct {
	Title       *string `json:"title"       binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty"`
	GithubURL   *string `json:"github_url"  binding:"omitempty,url"`
}

// UpdateStatusRequest — review decision.
type UpdateStatusRequest struct {
	Status model.ProjectStatus `json:"status" binding:"required"`
}

// FileResponse — uploaded file projection.
type FileResponse struct {
	ID       string         `json:"id"`
	Filename string         `json:"filename"`
	Path     string         `json:"path"`
	Type     model.FileType `json:"type"`
}

// NewFileResponse projects a stored file for output.
func NewFileResponse(f *model.ProjectFile) FileResponse {
	return FileResponse{
		ID:       f.FileID,
		Filename: f.Filename,
		Path:     f.Path,
		Type:     f.Type,
	}
}
