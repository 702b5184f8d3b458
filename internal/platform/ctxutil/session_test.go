package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestGetSession(t *testing.T) {
	if GetSession(context.Background()) != nil {
		t.Fatalf("expected nil session on bare context")
	}
	if GetSession(WithSession(context.Background(), &Session{})) != nil {
		t.Fatalf("session without user id must read as anonymous")
	}
	id := uuid.New()
	s := GetSession(WithSession(context.Background(), &Session{UserID: id, Role: "admin"}))
	if s == nil || s.UserID != id || !s.IsAdmin() {
		t.Fatalf("unexpected session: %+v", s)
	}
}
