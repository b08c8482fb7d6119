package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"realestate-backend/internal/shared/auth"
)

func newAdminRouter(t *testing.T, issuer *auth.Issuer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", RequireAdmin(issuer), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": AdminUserFromContext(c)})
	})
	return r
}

func TestRequireAdminRejects(t *testing.T) {
	issuer, err := auth.NewIssuer("secret", time.Hour)
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	other, err := auth.NewIssuer("other-secret", time.Hour)
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	foreign, _, err := other.Sign("admin")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	expiredIssuer := issuer.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
	expired, _, err := expiredIssuer.Sign("admin")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	router := newAdminRouter(t, issuer)
	cases := map[string]string{
		"missing":        "",
		"wrong scheme":   "Basic abc",
		"empty bearer":   "Bearer ",
		"garbage":        "Bearer not-a-token",
		"foreign secret": "Bearer " + foreign,
		"expired":        "Bearer " + expired,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", resp.Code)
			}
			var body map[string]any
			if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["message"] != "Unauthorized" {
				t.Fatalf("unexpected body: %v", body)
			}
		})
	}
}

func TestRequireAdminAccepts(t *testing.T) {
	issuer, err := auth.NewIssuer("secret", time.Hour)
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	token, _, err := issuer.Sign("admin")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "bearer "+token)
	resp := httptest.NewRecorder()
	newAdminRouter(t, issuer).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["user"] != "admin" {
		t.Fatalf("expected admin user, got %q", body["user"])
	}
}
