package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/coursehub-backend/internal/http/response"
	"github.com/yungbote/coursehub-backend/internal/platform/ctxutil"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
	"github.com/yungbote/coursehub-backend/internal/services"
)

type ProgressHandler struct {
	log             *logger.Logger
	progressService services.ProgressService
}

func NewProgressHandler(log *logger.Logger, progressService services.ProgressService) *ProgressHandler {
	return &ProgressHandler{log: log.With("handler", "ProgressHandler"), progressService: progressService}
}

// POST /api/progress/complete {courseId, lessonId}
func (h *ProgressHandler) Complete(c *gin.Context) {
	s := ctxutil.GetSession(c.Request.Context())
	if s == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errLoginRequired)
		return
	}
	var req struct {
		CourseID uuid.UUID `json:"courseId"`
		LessonID uuid.UUID `json:"lessonId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.progressService.CompleteLesson(c.Request.Context(), s.UserID, req.CourseID, req.LessonID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"success":           true,
		"message":           "Lesson marked as completed",
		"completedLessonId": req.LessonID,
	})
}

// GET /api/progress/:courseId
func (h *ProgressHandler) CourseProgress(c *gin.Context) {
	s := ctxutil.GetSession(c.Request.Context())
	if s == nil {
		response.RespondOK(c, gin.H{"isLoggedIn": false, "enrollmentId": nil})
		return
	}
	courseID, ok := uuidParam(c, "courseId")
	if !ok {
		return
	}
	p, err := h.progressService.CourseProgress(c.Request.Context(), s.UserID, courseID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, p)
}
