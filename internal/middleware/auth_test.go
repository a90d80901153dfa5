package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/middleware"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newProtectedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := append([]gin.HandlerFunc{middleware.Auth(testSecret)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		role, _ := c.Get("role")
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role})
	})
	router.GET("/protected", handlers...)
	return router
}

func doGet(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestAuth_ValidTokenSetsIdentity(t *testing.T) {
	router := newProtectedRouter()
	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": 42,
		"role":    "resident",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	w := doGet(router, "Bearer "+token)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
	assert.Contains(t, w.Body.String(), `"role":"resident"`)
}

func TestAuth_MissingHeader(t *testing.T) {
	w := doGet(newProtectedRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	w := doGet(newProtectedRouter(), "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	router := newProtectedRouter()
	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": 42,
		"role":    "resident",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	w := doGet(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_WrongSecret(t *testing.T) {
	router := newProtectedRouter()
	token := signToken(t, "other-secret", jwt.MapClaims{
		"user_id": 42,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	w := doGet(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_InvalidUserIDClaim(t *testing.T) {
	router := newProtectedRouter()
	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": "not-a-number",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	w := doGet(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole_AdminOnly(t *testing.T) {
	router := newProtectedRouter(middleware.RequireRole("admin"))

	adminToken := signToken(t, testSecret, jwt.MapClaims{
		"user_id": 1,
		"role":    "admin",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	residentToken := signToken(t, testSecret, jwt.MapClaims{
		"user_id": 42,
		"role":    "resident",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	assert.Equal(t, http.StatusOK, doGet(router, "Bearer "+adminToken).Code)
	assert.Equal(t, http.StatusForbidden, doGet(router, "Bearer "+residentToken).Code)
}
