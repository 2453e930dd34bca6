package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/IPodymov/pd-projects-backend/config"
	"github.com/IPodymov/pd-projects-backend/internal/dto"
	"github.com/IPodymov/pd-projects-backend/internal/model"
	"github.com/IPodymov/pd-projects-backend/internal/service"
	"github.com/IPodymov/pd-projects-backend/pkg/response"
)

// ProjectHandler serves the project workflow.
type ProjectHandler struct {
	cfg        *config.Config
	projectSvc service.ProjectService
}

// NewProjectHandler creates the ProjectHandler.
func NewProjectHandler(cfg *config.Config, projectSvc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{cfg: cfg, projectSvc: projectSvc}
}

// List projects visible to the caller
// GET /api/v1/projects
func (h *ProjectHandler) List(c *gin.Context) {
	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	projects, err := h.projectSvc.List(c.Request.Context(), actorID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.OK(c, projects)
}

// Get single project
// GET /api/v1/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	project, err := h.projectSvc.Get(c.Request.Context(), actorID, c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.OK(c, project)
}

// Create project creation
// POST /api/v1/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	project, err := h.projectSvc.Create(c.Request.Context(), actorID, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Created(c, project)
}

// Join student joins the member set
// POST /api/v1/projects/:id/join
func (h *ProjectHandler) Join(c *gin.Context) {
	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.projectSvc.Join(c.Request.Context(), actorID, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}

	response.OK(c, nil)
}

// Update owner edits content fields
// PATCH /api/v1/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	project, err := h.projectSvc.Update(c.Request.Context(), actorID, c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.OK(c, project)
}

// UpdateStatus review decision
// PATCH /api/v1/projects/:id/status
func (h *ProjectHandler) UpdateStatus(c *gin.Context) {
	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	if err := h.projectSvc.UpdateStatus(c.Request.Context(), actorID, c.Param("id"), &req); err != nil {
		writeServiceError(c, err)
		return
	}

	response.OK(c, nil)
}

// Delete project removal, admin only
// DELETE /api/v1/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.projectSvc.Delete(c.Request.Context(), actorID, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}

	response.NoContent(c)
}

// Upload attaches a file to a project
// POST /api/v1/projects/:id/upload
// Multipart form: file (the upload), type (document|presentation).
func (h *ProjectHandler) Upload(c *gin.Context) {
	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "missing file")
		return
	}
	if fileHeader.Size > h.cfg.Upload.MaxBytes {
		response.BadRequest(c, 10001, "file too large")
		return
	}

	fileType := model.FileType(c.PostForm("type"))

	src, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c)
		return
	}
	defer src.Close()

	file, err := h.projectSvc.AttachFile(
		c.Request.Context(),
		actorID,
		c.Param("id"),
		fileHeader.Filename,
		fileType,
		src,
	)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Created(c, file)
}
