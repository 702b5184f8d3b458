package sendgrid

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

func TestSendPostsMailPayload(t *testing.T) {
	var got mailSendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/mail/send" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sg-key" {
			t.Errorf("missing bearer key")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("X-Message-Id", "msg-1")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c, err := New(logger.Nop(), Config{APIKey: "sg-key", BaseURL: srv.URL, DefaultFromEmail: "no-reply@x.com"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := c.Send(context.Background(), SendEmailRequest{
		To:      []EmailAddress{{Email: "a@x.com"}},
		Subject: "Your OTP for Password Reset",
		HTML:    "<p>123456</p>",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if res.StatusCode != http.StatusAccepted || res.MessageID != "msg-1" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got.From.Email != "no-reply@x.com" || got.Subject != "Your OTP for Password Reset" {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if len(got.Content) != 1 || got.Content[0].Type != "text/html" {
		t.Fatalf("unexpected content: %+v", got.Content)
	}
}

func TestSendDoesNotRetryByDefault(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"errors":[{"message":"try later"}]}`))
	}))
	defer srv.Close()

	c, err := New(logger.Nop(), Config{APIKey: "k", BaseURL: srv.URL, DefaultFromEmail: "f@x.com"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = c.Send(context.Background(), SendEmailRequest{
		To:      []EmailAddress{{Email: "a@x.com"}},
		Subject: "s",
		Text:    "t",
	})
	var he *HTTPError
	if !errors.As(err, &he) || he.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected HTTPError 503, got %v", err)
	}
	if he.Error() != "sendgrid http 503: try later" {
		t.Fatalf("unexpected message: %q", he.Error())
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected 1 call, got %d", n)
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(logger.Nop(), Config{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
