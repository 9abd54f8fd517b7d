package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appidentity "github.com/chatu326/Stationary-Manager/internal/application/identity"
	"github.com/chatu326/Stationary-Manager/internal/infrastructure/auth"
	"github.com/chatu326/Stationary-Manager/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
	}
}

func newAuthTestEngine() (*gin.Engine, *fakeCredentialRepo) {
	credentialRepo := newFakeCredentialRepo()
	jwtService := auth.NewJWTService(testJWTConfig())
	authService := appidentity.NewAuthService(credentialRepo, jwtService)
	return newTestEngine(NewAuthHandler(authService)), credentialRepo
}

func postJSON(engine *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeResponse(t, w)
	errInfo, ok := body["error"].(map[string]any)
	require.True(t, ok, "response has no error object: %s", w.Body.String())
	return errInfo["code"].(string)
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("registers a new user", func(t *testing.T) {
		engine, _ := newAuthTestEngine()

		w := postJSON(engine, "/api/v1/auth/register", gin.H{
			"username": "Alice",
			"password": "pencil-case",
		})

		require.Equal(t, http.StatusCreated, w.Code)
		body := decodeResponse(t, w)
		data := body["data"].(map[string]any)
		assert.Equal(t, "alice", data["username"])
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		engine, _ := newAuthTestEngine()

		first := postJSON(engine, "/api/v1/auth/register", gin.H{"username": "alice", "password": "pencil-case"})
		require.Equal(t, http.StatusCreated, first.Code)

		w := postJSON(engine, "/api/v1/auth/register", gin.H{"username": "ALICE", "password": "other-pass"})

		require.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "ERR_USERNAME_TAKEN", errorCode(t, w))
	})

	t.Run("rejects a short password", func(t *testing.T) {
		engine, _ := newAuthTestEngine()

		w := postJSON(engine, "/api/v1/auth/register", gin.H{"username": "alice", "password": "abc"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("issues a token pair for valid credentials", func(t *testing.T) {
		engine, _ := newAuthTestEngine()
		postJSON(engine, "/api/v1/auth/register", gin.H{"username": "alice", "password": "pencil-case"})

		w := postJSON(engine, "/api/v1/auth/login", gin.H{"username": "alice", "password": "pencil-case"})

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeResponse(t, w)
		data := body["data"].(map[string]any)
		assert.NotEmpty(t, data["access_token"])
		assert.NotEmpty(t, data["refresh_token"])
		assert.Equal(t, "Bearer", data["token_type"])
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		engine, _ := newAuthTestEngine()
		postJSON(engine, "/api/v1/auth/register", gin.H{"username": "alice", "password": "pencil-case"})

		w := postJSON(engine, "/api/v1/auth/login", gin.H{"username": "alice", "password": "wrong"})

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "ERR_INVALID_CREDENTIALS", errorCode(t, w))
	})

	t.Run("rejects an unknown user with the same error", func(t *testing.T) {
		engine, _ := newAuthTestEngine()

		w := postJSON(engine, "/api/v1/auth/login", gin.H{"username": "nobody", "password": "whatever"})

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "ERR_INVALID_CREDENTIALS", errorCode(t, w))
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	t.Run("exchanges a refresh token for a new pair", func(t *testing.T) {
		engine, _ := newAuthTestEngine()
		postJSON(engine, "/api/v1/auth/register", gin.H{"username": "alice", "password": "pencil-case"})
		login := postJSON(engine, "/api/v1/auth/login", gin.H{"username": "alice", "password": "pencil-case"})
		loginData := decodeResponse(t, login)["data"].(map[string]any)

		w := postJSON(engine, "/api/v1/auth/refresh", gin.H{
			"refresh_token": loginData["refresh_token"],
		})

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w)["data"].(map[string]any)
		assert.NotEmpty(t, data["access_token"])
	})

	t.Run("rejects a garbage refresh token", func(t *testing.T) {
		engine, _ := newAuthTestEngine()

		w := postJSON(engine, "/api/v1/auth/refresh", gin.H{"refresh_token": "not-a-token"})

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "ERR_UNAUTHORIZED", errorCode(t, w))
	})
}
