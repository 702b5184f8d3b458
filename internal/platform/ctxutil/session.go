package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type sessionKey struct{}

// Session is the caller identity derived from the token cookie and reloaded from storage.
type Session struct {
	UserID    uuid.UUID
	Name      string
	Email     string
	Role      string
	AvatarURL string
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == "admin"
}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(Default(ctx), sessionKey{}, s)
}

// GetSession returns nil for anonymous requests.
func GetSession(ctx context.Context) *Session {
	if ctx == nil {
		return nil
	}
	if s, ok := ctx.Value(sessionKey{}).(*Session); ok && s != nil && s.UserID != uuid.Nil {
		return s
	}
	return nil
}
