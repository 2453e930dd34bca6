package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IPodymov/pd-projects-backend/internal/service"
	apperrors "github.com/IPodymov/pd-projects-backend/pkg/errors"
	"github.com/IPodymov/pd-projects-backend/pkg/response"
)

// writeServiceError maps service sentinel errors onto the response
// envelope. Anything unrecognized becomes a 500 with no detail leaked.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "forbidden")

	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, 11001, "invalid email or password")
	case errors.Is(err, service.ErrEmailExists):
		response.Conflict(c, 11002, "email already in use")
	case errors.Is(err, service.ErrSchoolRequired):
		response.BadRequest(c, 11003, "school placement is required")

	case errors.Is(err, service.ErrInvitationNotFound):
		response.NotFound(c, 12001, "invitation not found")
	case errors.Is(err, service.ErrInvitationExpired):
		response.Gone(c, 12002, "invitation expired")

	case errors.Is(err, service.ErrSchoolNotFound):
		response.NotFound(c, 13001, "school not found")
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 13002, "class not found")
	case errors.Is(err, service.ErrSchoolNumberExists):
		response.Conflict(c, 13003, "school number already exists")
	case errors.Is(err, service.ErrSchoolHasUsers):
		response.Conflict(c, 13004, "school still has users")

	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 14001, "user not found")
	case errors.Is(err, service.ErrInvalidRole):
		response.BadRequest(c, 14002, "invalid role")
	case errors.Is(err, service.ErrSelfRoleChange):
		response.BadRequest(c, 14003, "cannot change own role")
	case errors.Is(err, service.ErrSelfDelete):
		response.BadRequest(c, 14004, "cannot delete own account")

	case errors.Is(err, service.ErrProjectNotFound):
		response.NotFound(c, 15001, "project not found")
	case errors.Is(err, service.ErrProjectFull):
		response.Conflict(c, 15002, "project is full")
	case errors.Is(err, service.ErrAlreadyMember):
		response.Conflict(c, 15003, "already a member")
	case errors.Is(err, service.ErrInvalidStatus):
		response.BadRequest(c, 15004, "invalid status")
	case errors.Is(err, service.ErrInvalidFileType):
		response.BadRequest(c, 15005, "invalid file type")
	case errors.Is(err, service.ErrNotMember):
		response.Forbidden(c, 15006, "not a project member")
	case errors.Is(err, apperrors.ErrOptimisticLock):
		response.Conflict(c, 15007, "project changed concurrently, retry")

	default:
		response.InternalError(c)
	}
}
