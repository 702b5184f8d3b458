package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/coursehub-backend/internal/http/response"
	"github.com/yungbote/coursehub-backend/internal/platform/ctxutil"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
	"github.com/yungbote/coursehub-backend/internal/services"
)

type AuthHandler struct {
	log          *logger.Logger
	authService  services.AuthService
	resetService services.PasswordResetService
	cookie       CookieConfig
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService, resetService services.PasswordResetService, cookie CookieConfig) *AuthHandler {
	if cookie.TTL <= 0 {
		cookie.TTL = authService.TokenTTL()
	}
	return &AuthHandler{
		log:          log.With("handler", "AuthHandler"),
		authService:  authService,
		resetService: resetService,
		cookie:       cookie,
	}
}

// GET /api/auth/status
func (ah *AuthHandler) Status(c *gin.Context) {
	s := ctxutil.GetSession(c.Request.Context())
	if s == nil {
		response.RespondOK(c, gin.H{"isLoggedIn": false, "user": nil})
		return
	}
	response.RespondOK(c, gin.H{"isLoggedIn": true, "user": sessionUser(s)})
}

func sessionUser(s *ctxutil.Session) gin.H {
	return gin.H{
		"id":        s.UserID,
		"name":      s.Name,
		"email":     s.Email,
		"role":      s.Role,
		"avatarUrl": s.AvatarURL,
	}
}

// POST /api/auth/login
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, token, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	ah.cookie.set(c, token)
	response.RespondOK(c, gin.H{"message": "Login successful", "user": user})
}

// POST /api/auth/signup
func (ah *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, token, err := ah.authService.Signup(c.Request.Context(), services.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	ah.cookie.set(c, token)
	response.RespondCreated(c, gin.H{"message": "Signup successful", "user": user})
}

// POST /api/auth/logout
func (ah *AuthHandler) Logout(c *gin.Context) {
	ah.cookie.clear(c)
	response.RespondOK(c, gin.H{"message": "Logged out successfully."})
}

// POST /api/auth/forgot-password
func (ah *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := ah.resetService.RequestReset(c.Request.Context(), req.Email); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "OTP sent to email."})
}

// POST /api/auth/verify-otp
func (ah *AuthHandler) VerifyOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := ah.resetService.VerifyOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "OTP verified."})
}

// POST /api/auth/reset-password
func (ah *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Email       string `json:"email"`
		OTP         string `json:"otp"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := ah.resetService.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Password reset successful."})
}

// POST /api/admin/login
func (ah *AuthHandler) AdminLogin(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, token, err := ah.authService.AdminLogin(c.Request.Context(), req.Name, req.Password)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	ah.cookie.set(c, token)
	response.RespondOK(c, gin.H{
		"message": "Admin login successful",
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"role":  user.Role,
			"email": user.Email,
		},
	})
}

// GET /api/admin/profile
func (ah *AuthHandler) AdminProfile(c *gin.Context) {
	s := ctxutil.GetSession(c.Request.Context())
	if !s.IsAdmin() {
		response.RespondOK(c, gin.H{"isLoggedIn": false})
		return
	}
	response.RespondOK(c, gin.H{"isLoggedIn": true, "user": sessionUser(s)})
}
