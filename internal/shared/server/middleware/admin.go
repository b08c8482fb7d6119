package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"realestate-backend/internal/shared/auth"
	"realestate-backend/internal/shared/server/respond"
)

const (
	isAdminKey   = "isAdmin"
	adminUserKey = "adminUser"
)

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (auth.Claims, error)
}

// RequireAdmin rejects the request with 401 unless it carries a valid admin
// bearer token. The cause of a rejection is logged, never returned.
func RequireAdmin(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Set(isAdminKey, false)
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Unauthorized", nil)
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			c.Set(isAdminKey, false)
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Unauthorized", nil)
			return
		}

		c.Set(isAdminKey, true)
		c.Set(adminUserKey, claims.Subject)
		c.Next()
	}
}

// AdminUserFromContext returns the admin username set by RequireAdmin.
func AdminUserFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(adminUserKey)
}

func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
