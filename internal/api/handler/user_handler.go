package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/IPodymov/pd-projects-backend/internal/dto"
	"github.com/IPodymov/pd-projects-backend/internal/service"
	"github.com/IPodymov/pd-projects-backend/pkg/response"
)

// UserHandler serves user directory and account operations.
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler creates the UserHandler.
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// GetProfile current user's own record
// GET /api/v1/users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	profile, err := h.userSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.OK(c, profile)
}

// List full user listing, admin only
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	users, err := h.userSvc.List(c.Request.Context(), actorID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.OK(c, users)
}

// Search keyword search over name and email
// GET /api/v1/users/search?q=
func (h *UserHandler) Search(c *gin.Context) {
	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	keyword := c.Query("q")
	if keyword == "" {
		response.BadRequest(c, 10001, "missing query parameter q")
		return
	}

	users, err := h.userSvc.Search(c.Request.Context(), actorID, keyword)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.OK(c, users)
}

// Create admin user creation
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	user, err := h.userSvc.Create(c.Request.Context(), actorID, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Created(c, user)
}

// Update record update, self or admin
// PATCH /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	user, err := h.userSvc.Update(c.Request.Context(), actorID, c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.OK(c, user)
}

// Delete admin user removal
// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.userSvc.Delete(c.Request.Context(), actorID, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}

	response.NoContent(c)
}

// ChangeRole admin role reassignment
// PATCH /api/v1/users/:id/role
func (h *UserHandler) ChangeRole(c *gin.Context) {
	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	if err := h.userSvc.ChangeRole(c.Request.Context(), actorID, c.Param("id"), &req); err != nil {
		writeServiceError(c, err)
		return
	}

	response.OK(c, nil)
}
