package middlewares

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snapclock.com/snapclock/security"
)

const testSecret = "IxrAjDoa2FqElO7IhrSrUJELhUckePEPVpaePlS/Xaw="

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	secret, err := base64.StdEncoding.DecodeString(testSecret)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/protected", Authentication(secret), func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"email": identity.Email})
	})
	return r
}

func TestAuthenticationAcceptsValidToken(t *testing.T) {
	r := newRouter(t)

	token, err := security.CreateIdentityToken(&security.Identity{
		ID:    7,
		Email: "ann@example.com",
	}, testSecret, 3600)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ann@example.com")
}

func TestAuthenticationRejects(t *testing.T) {
	r := newRouter(t)

	expired, err := security.CreateIdentityToken(&security.Identity{ID: 7}, testSecret, -10)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not-a-jwt"},
		{name: "expired token", header: "Bearer " + expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
