package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/IPodymov/pd-projects-backend/pkg/jwt"
	"github.com/IPodymov/pd-projects-backend/pkg/response"
)

// JWTAuth extracts and verifies the session token from
// Authorization: Bearer <token>.
//
// The claims only identify the caller. Role checks happen in the
// service layer against the stored role, so there is no role
// middleware here.
func JWTAuth(jwtMgr *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "invalid authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.Parse(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token invalid or expired")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}
