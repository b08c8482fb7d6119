// Package auth serves the admin login and session routes.
package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	sharedauth "realestate-backend/internal/shared/auth"
	"realestate-backend/internal/shared/metrics"
	"realestate-backend/internal/shared/server/middleware"
	"realestate-backend/internal/shared/server/respond"
	"realestate-backend/internal/shared/telemetry"
	"realestate-backend/internal/shared/validate"
)

// LoginInput is the login request body.
type LoginInput struct {
	Username *string `json:"username" create:"required,notblank"`
	Password *string `json:"password" create:"required,notblank"`
}

// User is the public view of the signed-in admin.
type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResponse carries the bearer token for subsequent admin calls.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Handler checks admin credentials and issues tokens.
type Handler struct {
	Creds  sharedauth.Credentials
	Issuer *sharedauth.Issuer
}

func NewHandler(creds sharedauth.Credentials, issuer *sharedauth.Issuer) *Handler {
	return &Handler{Creds: creds, Issuer: issuer}
}

// RegisterRoutes attaches /auth/login and the admin-only /auth/me.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	rg.POST("/auth/login", h.login)
	rg.GET("/auth/me", admin, h.me)
}

func (h *Handler) login(c *gin.Context) {
	var in LoginInput
	if err := validate.Decode(c.Request, &in); err != nil {
		if !respond.Input(c, err) {
			respond.Internal(c, err)
		}
		return
	}
	validate.Trim(in.Username)
	if errs := validate.Create(in); errs != nil {
		respond.Validation(c, errs)
		return
	}

	if !h.Creds.Check(*in.Username, *in.Password) {
		metrics.IncLoginFailed()
		telemetry.Warn("auth.login_failed", map[string]any{
			"username":  *in.Username,
			"client_ip": c.ClientIP(),
		})
		respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials", nil)
		return
	}

	token, claims, err := h.Issuer.Sign(h.Creds.Username)
	if err != nil {
		respond.Internal(c, err)
		return
	}
	telemetry.Info("auth.login", map[string]any{
		"username":   claims.Subject,
		"expires_at": claims.ExpiresAt,
	})
	respond.OK(c, LoginResponse{
		Token: token,
		User:  User{Username: claims.Subject, Role: claims.Role},
	})
}

func (h *Handler) me(c *gin.Context) {
	respond.OK(c, User{Username: middleware.AdminUserFromContext(c), Role: sharedauth.RoleAdmin})
}
