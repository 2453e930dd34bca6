package handler

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/IPodymov/pd-projects-backend/config"
	"github.com/IPodymov/pd-projects-backend/internal/dto"
	"github.com/IPodymov/pd-projects-backend/internal/service"
	"github.com/IPodymov/pd-projects-backend/pkg/response"
)

// AuthHandler serves registration, login and invitations.
type AuthHandler struct {
	cfg       *config.Config
	authSvc   service.AuthService
	inviteSvc service.InvitationService
}

// NewAuthHandler creates the AuthHandler.
func NewAuthHandler(cfg *config.Config, authSvc service.AuthService, inviteSvc service.InvitationService) *AuthHandler {
	return &AuthHandler{cfg: cfg, authSvc: authSvc, inviteSvc: inviteSvc}
}

// Register self-service registration
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	h.setUserCookie(c, result)
	response.Created(c, result)
}

// Login credential login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	h.setUserCookie(c, result)
	response.OK(c, result)
}

// CreateInvitation issues a teacher invitation link
// POST /api/v1/auth/invite
func (h *AuthHandler) CreateInvitation(c *gin.Context) {
	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.inviteSvc.Create(c.Request.Context(), actorID, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Created(c, result)
}

// ValidateInvite public invitation pre-check for the registration form
// GET /api/v1/auth/invite/:token
func (h *AuthHandler) ValidateInvite(c *gin.Context) {
	info, err := h.inviteSvc.Validate(c.Request.Context(), c.Param("token"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.OK(c, info)
}

// setUserCookie stores a client-readable user projection alongside the
// session. It carries no secret, so it is deliberately not HttpOnly;
// the token itself travels only in the response body.
func (h *AuthHandler) setUserCookie(c *gin.Context, result *dto.TokenResponse) {
	payload, err := json.Marshal(result.User)
	if err != nil {
		return
	}

	cookie := h.cfg.Auth.Cookie
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "user",
		Value:    url.QueryEscape(string(payload)),
		Path:     "/",
		Domain:   cookie.Domain,
		MaxAge:   result.ExpiresIn,
		Secure:   cookie.Secure,
		HttpOnly: false,
		SameSite: sameSiteMode(cookie.SameSite),
	})
}

func sameSiteMode(s string) http.SameSite {
	switch s {
	case "Strict":
		return http.SameSiteStrictMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
