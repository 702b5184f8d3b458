package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/coursehub-backend/internal/domain"
	"github.com/yungbote/coursehub-backend/internal/platform/ctxutil"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
	"github.com/yungbote/coursehub-backend/internal/services"
)

type stubAuth struct {
	users map[string]*types.User
}

func (s *stubAuth) Login(ctx context.Context, email, password string) (*types.User, string, error) {
	return nil, "", errors.New("unused")
}

func (s *stubAuth) Signup(ctx context.Context, in services.SignupInput) (*types.User, string, error) {
	return nil, "", errors.New("unused")
}

func (s *stubAuth) AdminLogin(ctx context.Context, name, password string) (*types.User, string, error) {
	return nil, "", errors.New("unused")
}

func (s *stubAuth) Authenticate(ctx context.Context, token string) (*types.User, error) {
	u, ok := s.users[token]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return u, nil
}

func (s *stubAuth) TokenTTL() time.Duration { return time.Hour }

func newTestEngine(auth services.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	am := NewAuthMiddleware(logger.Nop(), auth)
	r := gin.New()
	r.Use(am.Session())
	r.GET("/whoami", func(c *gin.Context) {
		s := ctxutil.GetSession(c.Request.Context())
		if s == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, s.Email)
	})
	r.GET("/private", am.RequireAuth(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/admin", am.RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func doGet(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSessionAndGuards(t *testing.T) {
	auth := &stubAuth{users: map[string]*types.User{
		"user-token":  {ID: uuid.New(), Email: "u@x.com", Role: types.RoleUser},
		"admin-token": {ID: uuid.New(), Email: "a@x.com", Role: types.RoleAdmin},
		"gone-token":  nil,
	}}
	r := newTestEngine(auth)

	cases := []struct {
		path, token string
		status      int
		body        string
	}{
		{"/whoami", "", http.StatusOK, "anonymous"},
		{"/whoami", "garbage", http.StatusOK, "anonymous"},
		{"/whoami", "gone-token", http.StatusOK, "anonymous"},
		{"/whoami", "user-token", http.StatusOK, "u@x.com"},
		{"/private", "", http.StatusUnauthorized, ""},
		{"/private", "user-token", http.StatusNoContent, ""},
		{"/admin", "", http.StatusUnauthorized, ""},
		{"/admin", "user-token", http.StatusForbidden, ""},
		{"/admin", "admin-token", http.StatusNoContent, ""},
	}
	for _, tc := range cases {
		rec := doGet(r, tc.path, tc.token)
		if rec.Code != tc.status {
			t.Fatalf("%s with %q: got %d want %d", tc.path, tc.token, rec.Code, tc.status)
		}
		if tc.body != "" && rec.Body.String() != tc.body {
			t.Fatalf("%s with %q: body %q want %q", tc.path, tc.token, rec.Body.String(), tc.body)
		}
	}

	rec := doGet(r, "/private", "")
	var env struct {
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Error.Code != "unauthorized" || env.Error.Message != "Unauthorized. Please log in." {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestAttachTraceContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/", func(c *gin.Context) {
		td := ctxutil.GetTraceData(c.Request.Context())
		c.String(http.StatusOK, td.RequestID+" "+td.TraceID)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(headerRequestID, "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Header().Get(headerRequestID) != "req-123" {
		t.Fatalf("request id not echoed: %q", rec.Header().Get(headerRequestID))
	}
	if rec.Body.String() != "req-123 req-123" {
		t.Fatalf("unexpected ids: %q", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(headerRequestID, "bad id\nwith newline")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	got := rec.Header().Get(headerRequestID)
	if got == "" || strings.Contains(got, " ") {
		t.Fatalf("unsafe request id kept: %q", got)
	}
	if _, err := uuid.Parse(got); err != nil {
		t.Fatalf("expected generated uuid, got %q", got)
	}
}
