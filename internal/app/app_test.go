package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/coursehub-backend/internal/data/db"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "rzp_test_secret")
	t.Setenv("SENDGRID_API_KEY", "")
	t.Setenv("REDIS_ADDR", "")
	return Config{
		Port:           "0",
		DB:             db.Config{Driver: "sqlite", SQLitePath: ":memory:"},
		JWTSecret:      "test-secret",
		AllowedOrigins: []string{"http://localhost:3000"},
		StorageMode:    StorageLocal,
		AssetsDir:      t.TempDir(),
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	a, err := NewWithConfig(logger.Nop(), testConfig(t))
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func do(a *App, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(w, req)
	return w
}

func TestAppServesHealthAndFallback(t *testing.T) {
	a := newTestApp(t)

	w := do(a, http.MethodGet, "/healthcheck", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())

	w = do(a, http.MethodGet, "/api/nope", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	var env struct {
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "Route not found", env.Error.Message)
	assert.Equal(t, "not_found", env.Error.Code)
}

func TestAppSignupSessionRoundTrip(t *testing.T) {
	a := newTestApp(t)

	w := do(a, http.MethodPost, "/api/auth/signup", `{"name":"Asha","email":"asha@example.com","password":"pw123456"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var token *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			token = c
		}
	}
	require.NotNil(t, token, "signup should set the session cookie")
	assert.True(t, token.HttpOnly)

	w = do(a, http.MethodGet, "/api/auth/status", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	var status struct {
		IsLoggedIn bool `json:"isLoggedIn"`
		User       struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.True(t, status.IsLoggedIn)
	assert.Equal(t, "asha@example.com", status.User.Email)
	assert.Equal(t, "user", status.User.Role)

	w = do(a, http.MethodPost, "/api/auth/signup", `{"name":"Asha","email":"ASHA@example.com","password":"pw123456"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Admin-only routes reject ordinary users.
	w = do(a, http.MethodGet, "/api/auth/users", "", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestWireClientsRejectsUnknownStorageMode(t *testing.T) {
	cfg := testConfig(t)
	cfg.StorageMode = "ftp"
	_, err := wireClients(logger.Nop(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_MODE")
}

func TestLoadConfigCollectsOrigins(t *testing.T) {
	t.Setenv("CLIENT_ORIGIN1", "http://localhost:3000")
	t.Setenv("CLIENT_ORIGIN2", "")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("DB_DRIVER", "SQLite")

	cfg := LoadConfig(logger.Nop())
	assert.Equal(t, []string{"http://localhost:3000", "https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.False(t, cfg.AllowAdminSignup)
	assert.Equal(t, 5, cfg.OTPMaxAttempts)
}
