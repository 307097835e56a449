package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func newProtectedRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", Middleware(secret), func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "claims missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"subject": claims.Subject, "role": claims.Role})
	})
	return router
}

func request(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestValidTokenPasses(t *testing.T) {
	router := newProtectedRouter(testSecret)

	token, err := GenerateToken(testSecret, "ops", "admin", time.Hour)
	require.NoError(t, err)

	rec := request(router, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"subject":"ops"`)
	assert.Contains(t, rec.Body.String(), `"role":"admin"`)
}

func TestRejectsBadTokens(t *testing.T) {
	router := newProtectedRouter(testSecret)

	expired, err := GenerateToken(testSecret, "ops", "admin", -time.Minute)
	require.NoError(t, err)
	wrongSecret, err := GenerateToken("other-secret", "ops", "admin", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + expired},
		{"wrong secret", "Bearer " + wrongSecret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := request(router, tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
