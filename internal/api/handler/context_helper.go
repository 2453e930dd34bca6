package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/IPodymov/pd-projects-backend/pkg/response"
)

// MustGetUserID extracts user_id from the Gin context. When the auth
// middleware did not run, it writes a 401 and returns false; callers
// return immediately on ok=false.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}
