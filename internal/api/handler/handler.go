package handler

import (
	"github.com/IPodymov/pd-projects-backend/config"
	"github.com/IPodymov/pd-projects-backend/internal/service"
)

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	School  *SchoolHandler
	Project *ProjectHandler
	Export  *ExportHandler
}

// NewHandler creates the handler aggregate.
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(cfg, svc.Auth, svc.Invitation),
		User:    NewUserHandler(svc.User),
		School:  NewSchoolHandler(svc.School),
		Project: NewProjectHandler(cfg, svc.Project),
		Export:  NewExportHandler(svc.Export),
	}
}
