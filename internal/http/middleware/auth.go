package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/coursehub-backend/internal/http/response"
	"github.com/yungbote/coursehub-backend/internal/platform/ctxutil"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
	"github.com/yungbote/coursehub-backend/internal/services"
)

// SessionCookie carries the signed session token.
const SessionCookie = "token"

var (
	errLoginRequired = errors.New("Unauthorized. Please log in.")
	errAdminRequired = errors.New("Access denied: admins only.")
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	middlewareLogger := log.With("Middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLogger, authService: authService}
}

// Session resolves the cookie to the current user. It never rejects; routes
// that need a caller add RequireAuth or RequireAdmin.
func (am *AuthMiddleware) Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}
		user, err := am.authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			am.log.Debug("Ignoring invalid session token", "error", err)
			c.Next()
			return
		}
		if user == nil {
			c.Next()
			return
		}
		ctx := ctxutil.WithSession(c.Request.Context(), &ctxutil.Session{
			UserID:    user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Role:      user.Role,
			AvatarURL: user.AvatarURL,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ctxutil.GetSession(c.Request.Context()) == nil {
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", errLoginRequired)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (am *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := ctxutil.GetSession(c.Request.Context())
		if s == nil {
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", errLoginRequired)
			c.Abort()
			return
		}
		if !s.IsAdmin() {
			response.RespondError(c, http.StatusForbidden, "forbidden", errAdminRequired)
			c.Abort()
			return
		}
		c.Next()
	}
}
