package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/coursehub-backend/internal/http/response"
	"github.com/yungbote/coursehub-backend/internal/platform/ctxutil"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
	"github.com/yungbote/coursehub-backend/internal/services"
)

type CourseHandler struct {
	log               *logger.Logger
	courseService     services.CourseService
	enrollmentService services.EnrollmentService
}

func NewCourseHandler(log *logger.Logger, courseService services.CourseService, enrollmentService services.EnrollmentService) *CourseHandler {
	return &CourseHandler{
		log:               log.With("handler", "CourseHandler"),
		courseService:     courseService,
		enrollmentService: enrollmentService,
	}
}

func (h *CourseHandler) List(c *gin.Context) {
	rows, err := h.courseService.List(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/courses/search?q= and /api/search?query=
func (h *CourseHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		q = strings.TrimSpace(c.Query("query"))
	}
	rows, err := h.courseService.Search(c.Request.Context(), q)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/courses/enrolled
func (h *CourseHandler) Enrolled(c *gin.Context) {
	s := ctxutil.GetSession(c.Request.Context())
	if s == nil {
		response.RespondOK(c, gin.H{"isLoggedIn": false})
		return
	}
	rows, err := h.enrollmentService.EnrolledCourses(c.Request.Context(), s.UserID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	course, err := h.courseService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, course)
}

func courseInput(c *gin.Context) services.CourseInput {
	return services.CourseInput{
		Title:           c.PostForm("title"),
		Description:     c.PostForm("description"),
		LongDescription: c.PostForm("longDescription"),
		Instructor:      c.PostForm("instructor"),
		ImageHint:       c.PostForm("imageHint"),
		CategoryID:      c.PostForm("category_id"),
		Tags:            c.PostForm("tags"),
		Price:           c.PostForm("price"),
	}
}

// POST /api/courses (multipart, image)
func (h *CourseHandler) Create(c *gin.Context) {
	limitBody(c, MaxImageBytes)
	image, closeFn, ok := formUpload(c, "image", MaxImageBytes)
	if !ok {
		return
	}
	defer closeFn()

	course, err := h.courseService.Create(c.Request.Context(), courseInput(c), image)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"message": "Course created", "id": course.ID})
}

// PUT /api/courses/:id (multipart, optional image)
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	limitBody(c, MaxImageBytes)
	image, closeFn, ok := formUpload(c, "image", MaxImageBytes)
	if !ok {
		return
	}
	defer closeFn()

	course, err := h.courseService.Update(c.Request.Context(), id, courseInput(c), image)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Course updated", "course": course})
}

func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.courseService.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Course deleted"})
}

// GET /api/courses/enrollments
func (h *CourseHandler) ListEnrollments(c *gin.Context) {
	rows, err := h.enrollmentService.List(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

// POST /api/courses/enrollments {user_id, course_id}
func (h *CourseHandler) Enroll(c *gin.Context) {
	var req struct {
		UserID   string `json:"user_id"`
		CourseID string `json:"course_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	userID, uerr := uuid.Parse(req.UserID)
	courseID, cerr := uuid.Parse(req.CourseID)
	if uerr != nil || cerr != nil {
		response.RespondError(c, http.StatusBadRequest, "missing_fields", errMissingEnrollFields)
		return
	}
	res, err := h.enrollmentService.Enroll(c.Request.Context(), nil, userID, courseID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Enrolled successfully", "result": res})
}

// DELETE /api/courses/enrollments/:userId/:courseId
func (h *CourseHandler) Unenroll(c *gin.Context) {
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}
	courseID, ok := uuidParam(c, "courseId")
	if !ok {
		return
	}
	if err := h.enrollmentService.Unenroll(c.Request.Context(), userID, courseID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Unenrolled successfully"})
}
