package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/coursehub-backend/internal/http/response"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
	"github.com/yungbote/coursehub-backend/internal/services"
)

type LessonHandler struct {
	log           *logger.Logger
	lessonService services.LessonService
}

func NewLessonHandler(log *logger.Logger, lessonService services.LessonService) *LessonHandler {
	return &LessonHandler{log: log.With("handler", "LessonHandler"), lessonService: lessonService}
}

func lessonInput(c *gin.Context) services.LessonInput {
	return services.LessonInput{
		Title:    c.PostForm("title"),
		Duration: c.PostForm("duration"),
		Content:  c.PostForm("content"),
		CourseID: c.PostForm("course_id"),
	}
}

func (h *LessonHandler) List(c *gin.Context) {
	rows, err := h.lessonService.List(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

func (h *LessonHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	lesson, err := h.lessonService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, lesson)
}

// POST /api/lessons (multipart, video)
func (h *LessonHandler) Create(c *gin.Context) {
	limitBody(c, MaxVideoBytes)
	video, closeFn, ok := formUpload(c, "video", MaxVideoBytes)
	if !ok {
		return
	}
	defer closeFn()

	lesson, err := h.lessonService.Create(c.Request.Context(), lessonInput(c), video)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"message": "Lesson created", "id": lesson.ID})
}

// PUT /api/lessons/:id (multipart, optional video)
func (h *LessonHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	limitBody(c, MaxVideoBytes)
	video, closeFn, ok := formUpload(c, "video", MaxVideoBytes)
	if !ok {
		return
	}
	defer closeFn()

	if err := h.lessonService.Update(c.Request.Context(), id, lessonInput(c), video); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Lesson updated"})
}

func (h *LessonHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.lessonService.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Lesson deleted"})
}
