package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedauth "realestate-backend/internal/shared/auth"
	"realestate-backend/internal/shared/server/middleware"
)

func newRouter(t *testing.T, password string) (*gin.Engine, *sharedauth.Issuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	issuer, err := sharedauth.NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	r := gin.New()
	NewHandler(sharedauth.Credentials{Username: "admin", Password: password}, issuer).
		RegisterRoutes(r.Group("/api"), middleware.RequireAdmin(issuer))
	return r, issuer
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	r, issuer := newRouter(t, "admin123")

	rec := post(r, `{"username":" admin ","password":"admin123"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, User{Username: "admin", Role: "admin"}, resp.User)

	claims, err := issuer.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	me := httptest.NewRecorder()
	r.ServeHTTP(me, req)
	require.Equal(t, http.StatusOK, me.Code)
	assert.JSONEq(t, `{"username":"admin","role":"admin"}`, me.Body.String())
}

func TestLoginAcceptsBcryptPassword(t *testing.T) {
	hash, err := sharedauth.HashPassword("s3cret")
	require.NoError(t, err)
	r, _ := newRouter(t, hash)

	assert.Equal(t, http.StatusOK, post(r, `{"username":"admin","password":"s3cret"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, post(r, `{"username":"admin","password":"`+hash+`"}`).Code)
}

func TestLoginRejectsWrongCredentials(t *testing.T) {
	r, _ := newRouter(t, "admin123")

	for _, body := range []string{
		`{"username":"admin","password":"nope"}`,
		`{"username":"root","password":"admin123"}`,
	} {
		rec := post(r, body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"message":"Invalid credentials"}`, rec.Body.String())
	}
}

func TestLoginRequiresFields(t *testing.T) {
	r, _ := newRouter(t, "admin123")

	rec := post(r, `{"username":"  "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Errors []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	fields := map[string]bool{}
	for _, e := range body.Errors {
		fields[e.Field] = true
	}
	assert.True(t, fields["username"])
	assert.True(t, fields["password"])

	assert.Equal(t, http.StatusBadRequest, post(r, `{"username":`).Code)
}

func TestMeRequiresToken(t *testing.T) {
	r, _ := newRouter(t, "admin123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
