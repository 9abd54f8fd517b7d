package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chatu326/Stationary-Manager/internal/infrastructure/auth"
	"github.com/chatu326/Stationary-Manager/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTService(accessExpiration time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-long",
		AccessTokenExpiration:  accessExpiration,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "test-issuer",
	})
}

func newProtectedEngine(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(JWTAuthMiddleware(jwtService))
	engine.GET("/api/v1/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, GetJWTUsername(c))
	})
	engine.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func TestJWTAuthMiddleware(t *testing.T) {
	t.Run("passes a valid token and exposes the username", func(t *testing.T) {
		jwtService := newJWTService(time.Minute)
		engine := newProtectedEngine(jwtService)
		access, _, _, err := jwtService.GenerateTokenPair("alice")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+access)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "alice", w.Body.String())
	})

	t.Run("rejects a missing authorization header", func(t *testing.T) {
		engine := newProtectedEngine(newJWTService(time.Minute))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects a refresh token on a protected route", func(t *testing.T) {
		jwtService := newJWTService(time.Minute)
		engine := newProtectedEngine(jwtService)
		_, refresh, _, err := jwtService.GenerateTokenPair("alice")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+refresh)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("reports an expired token", func(t *testing.T) {
		jwtService := newJWTService(-time.Minute)
		engine := newProtectedEngine(jwtService)
		access, _, _, err := jwtService.GenerateTokenPair("alice")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+access)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_TOKEN_EXPIRED")
	})

	t.Run("skips configured paths", func(t *testing.T) {
		engine := newProtectedEngine(newJWTService(time.Minute))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
