package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/IPodymov/pd-projects-backend/internal/dto"
	"github.com/IPodymov/pd-projects-backend/internal/service"
	"github.com/IPodymov/pd-projects-backend/pkg/response"
)

// SchoolHandler serves the school directory and its administration.
type SchoolHandler struct {
	schoolSvc service.SchoolService
}

// NewSchoolHandler creates the SchoolHandler.
func NewSchoolHandler(schoolSvc service.SchoolService) *SchoolHandler {
	return &SchoolHandler{schoolSvc: schoolSvc}
}

// List public school directory, optional ?q= filter
// GET /api/v1/schools
func (h *SchoolHandler) List(c *gin.Context) {
	schools, err := h.schoolSvc.ListSchools(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.OK(c, schools)
}

// Get single school
// GET /api/v1/schools/:id
func (h *SchoolHandler) Get(c *gin.Context) {
	school, err := h.schoolSvc.GetSchool(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.OK(c, school)
}

// ListClasses classes of a school, optional ?q= filter
// GET /api/v1/schools/:id/classes
func (h *SchoolHandler) ListClasses(c *gin.Context) {
	classes, err := h.schoolSvc.ListClasses(c.Request.Context(), c.Param("id"), c.Query("q"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.OK(c, classes)
}

// Create school creation, staff or admin
// POST /api/v1/schools
func (h *SchoolHandler) Create(c *gin.Context) {
	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	school, err := h.schoolSvc.CreateSchool(c.Request.Context(), actorID, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Created(c, school)
}

// Update school update, admin only
// PATCH /api/v1/schools/:id
func (h *SchoolHandler) Update(c *gin.Context) {
	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	school, err := h.schoolSvc.UpdateSchool(c.Request.Context(), actorID, c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.OK(c, school)
}

// Delete school removal, admin only, refused while users remain
// DELETE /api/v1/schools/:id
func (h *SchoolHandler) Delete(c *gin.Context) {
	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.schoolSvc.DeleteSchool(c.Request.Context(), actorID, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}

	response.NoContent(c)
}

// CreateClass class creation, admin only
// POST /api/v1/schools/:id/classes
func (h *SchoolHandler) CreateClass(c *gin.Context) {
	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	class, err := h.schoolSvc.CreateClass(c.Request.Context(), actorID, c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Created(c, class)
}

// UpdateClass class rename, admin only
// PATCH /api/v1/classes/:id
func (h *SchoolHandler) UpdateClass(c *gin.Context) {
	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	class, err := h.schoolSvc.UpdateClass(c.Request.Context(), actorID, c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.OK(c, class)
}

// DeleteClass class removal, admin only
// DELETE /api/v1/classes/:id
func (h *SchoolHandler) DeleteClass(c *gin.Context) {
	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.schoolSvc.DeleteClass(c.Request.Context(), actorID, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}

	response.NoContent(c)
}
