package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhbank/credit-backend/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

func newAuthRouter(jwt *helpers.JWTManager) *gin.Engine {
	r := gin.New()
	r.GET("/me", Auth(jwt), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"uid":   c.GetString(CtxUserIDKey),
			"admin": c.GetBool(CtxAdminKey),
		})
	})
	r.GET("/admin", Auth(jwt), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthMissingToken(t *testing.T) {
	jwt := &helpers.JWTManager{Secret: []byte("secret"), TTL: time.Hour}
	r := newAuthRouter(jwt)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMalformedHeader(t *testing.T) {
	jwt := &helpers.JWTManager{Secret: []byte("secret"), TTL: time.Hour}
	r := newAuthRouter(jwt)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token abcdef")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthValidToken(t *testing.T) {
	jwt := &helpers.JWTManager{Secret: []byte("secret"), TTL: time.Hour}
	token, _, err := jwt.GenerateToken("user-1", false)
	require.NoError(t, err)

	r := newAuthRouter(jwt)
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestAuthWrongSecret(t *testing.T) {
	issuer := &helpers.JWTManager{Secret: []byte("other"), TTL: time.Hour}
	token, _, err := issuer.GenerateToken("user-1", false)
	require.NoError(t, err)

	jwt := &helpers.JWTManager{Secret: []byte("secret"), TTL: time.Hour}
	r := newAuthRouter(jwt)
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthExpiredToken(t *testing.T) {
	jwt := &helpers.JWTManager{Secret: []byte("secret"), TTL: time.Hour}
	issuer := &helpers.JWTManager{Secret: []byte("secret"), TTL: -time.Hour}
	token, _, err := issuer.GenerateToken("user-1", false)
	require.NoError(t, err)

	r := newAuthRouter(jwt)
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	jwt := &helpers.JWTManager{Secret: []byte("secret"), TTL: time.Hour}
	r := newAuthRouter(jwt)

	userToken, _, err := jwt.GenerateToken("user-1", false)
	require.NoError(t, err)
	adminToken, _, err := jwt.GenerateToken("admin-1", true)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
