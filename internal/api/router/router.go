package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/IPodymov/pd-projects-backend/config"
	"github.com/IPodymov/pd-projects-backend/internal/api/handler"
	"github.com/IPodymov/pd-projects-backend/internal/api/middleware"
	"github.com/IPodymov/pd-projects-backend/pkg/jwt"
	"github.com/IPodymov/pd-projects-backend/pkg/redis"
)

// Setup builds the Gin engine with all routes and middleware.
//
// Role gates are not applied at the route level: every privileged
// operation re-checks the caller's stored role in the service layer,
// so routes only distinguish public from authenticated.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Upload.MaxBytes + 1<<20))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	loginLimit := middleware.RateLimit(rdb, 10, time.Minute)

	v1 := r.Group("/api/v1")
	{
		// Public routes.
		auth := v1.Group("/auth")
		{
			auth.POST("/login", loginLimit, h.Auth.Login)
			auth.POST("/register", loginLimit, h.Auth.Register)
			auth.GET("/invite/:token", h.Auth.ValidateInvite)
		}

		// The school directory is browsable before login so the
		// registration form can offer placements.
		schools := v1.Group("/schools")
		{
			schools.GET("", h.School.List)
			schools.GET("/:id", h.School.Get)
			schools.GET("/:id/classes", h.School.ListClasses)
		}

		// Authenticated routes.
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr))
		{
			authorized.POST("/auth/invite", h.Auth.CreateInvitation)

			users := authorized.Group("/users")
			{
				users.GET("/me", h.User.GetProfile)
				users.GET("", h.User.List)
				users.GET("/search", h.User.Search)
				users.POST("", h.User.Create)
				users.PATCH("/:id", h.User.Update)
				users.DELETE("/:id", h.User.Delete)
				users.PATCH("/:id/role", h.User.ChangeRole)
			}

			authorized.POST("/schools", h.School.Create)
			authorized.PATCH("/schools/:id", h.School.Update)
			authorized.DELETE("/schools/:id", h.School.Delete)
			authorized.POST("/schools/:id/classes", h.School.CreateClass)
			authorized.PATCH("/classes/:id", h.School.UpdateClass)
			authorized.DELETE("/classes/:id", h.School.DeleteClass)

			projects := authorized.Group("/projects")
			{
				projects.GET("", h.Project.List)
				projects.GET("/:id", h.Project.Get)
				projects.POST("", h.Project.Create)
				projects.POST("/:id/join", h.Project.Join)
				projects.PATCH("/:id", h.Project.Update)
				projects.PATCH("/:id/status", h.Project.UpdateStatus)
				projects.DELETE("/:id", h.Project.Delete)
				projects.POST("/:id/upload", h.Project.Upload)
			}

			export := authorized.Group("/export")
			{
				export.GET("/projects", h.Export.ExportProjects)
			}
		}
	}

	return r
}
