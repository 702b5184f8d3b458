package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/coursehub-backend/internal/http/response"
	"github.com/yungbote/coursehub-backend/internal/platform/ctxutil"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
	"github.com/yungbote/coursehub-backend/internal/services"
)

type UserHandler struct {
	log         *logger.Logger
	userService services.UserService
}

func NewUserHandler(log *logger.Logger, userService services.UserService) *UserHandler {
	return &UserHandler{log: log.With("handler", "UserHandler"), userService: userService}
}

// GET /api/auth/users
func (uh *UserHandler) List(c *gin.Context) {
	users, err := uh.userService.List(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"users": users})
}

// GET /api/auth/users/:id
func (uh *UserHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	user, err := uh.userService.Get(c.Request.Context(), ctxutil.GetSession(c.Request.Context()), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"user": user})
}

// PUT /api/auth/users/:id (multipart: name, email, password, role, avatar)
func (uh *UserHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	limitBody(c, MaxImageBytes)
	avatar, closeFn, ok := formUpload(c, "avatar", MaxImageBytes)
	if !ok {
		return
	}
	defer closeFn()

	user, err := uh.userService.Update(c.Request.Context(), ctxutil.GetSession(c.Request.Context()), id, services.UpdateUserInput{
		Name:     c.PostForm("name"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
		Role:     c.PostForm("role"),
	}, avatar)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "User updated successfully", "avatarUrl": user.AvatarURL, "user": user})
}

// DELETE /api/auth/users/:id
func (uh *UserHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := uh.userService.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "User and avatar deleted successfully"})
}

// GET /api/auth/users/:id/enrollments
func (uh *UserHandler) Enrollments(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	courses, err := uh.userService.Enrollments(c.Request.Context(), ctxutil.GetSession(c.Request.Context()), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"courses": courses})
}
