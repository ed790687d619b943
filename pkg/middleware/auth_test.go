package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtutil "github.com/socialee/socialee/pkg/jwt"
	"github.com/socialee/socialee/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	logger.InitLogger()
}

func protectedHandler(t *testing.T, called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		claims := GetUserFromContext(r.Context())
		require.NotNil(t, claims)
		assert.Equal(t, "user-1", claims.UserID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	called := false
	handler := AuthMiddleware(testSecret)(protectedHandler(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/api/posts/feed", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	called := false
	handler := AuthMiddleware(testSecret)(protectedHandler(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/api/posts/feed", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	called := false
	handler := AuthMiddleware(testSecret)(protectedHandler(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/api/posts/feed", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	token, err := jwtutil.GenerateToken("user-1", "alice", "alice@example.com", testSecret, time.Hour)
	require.NoError(t, err)

	called := false
	handler := AuthMiddleware(testSecret)(protectedHandler(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/api/posts/feed", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestGetUserFromContextEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, GetUserFromContext(req.Context()))
}
