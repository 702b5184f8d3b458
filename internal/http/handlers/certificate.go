package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/coursehub-backend/internal/http/response"
	"github.com/yungbote/coursehub-backend/internal/platform/ctxutil"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
	"github.com/yungbote/coursehub-backend/internal/services"
)

type CertificateHandler struct {
	log                *logger.Logger
	certificateService services.CertificateService
}

func NewCertificateHandler(log *logger.Logger, certificateService services.CertificateService) *CertificateHandler {
	return &CertificateHandler{log: log.With("handler", "CertificateHandler"), certificateService: certificateService}
}

func certificateInput(c *gin.Context) services.CertificateInput {
	return services.CertificateInput{
		StudentID:   c.PostForm("studentId"),
		CourseTitle: c.PostForm("courseTitle"),
		DateIssued:  c.PostForm("dateIssued"),
	}
}

func (h *CertificateHandler) List(c *gin.Context) {
	rows, err := h.certificateService.List(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/certificates/user
func (h *CertificateHandler) Mine(c *gin.Context) {
	s := ctxutil.GetSession(c.Request.Context())
	if s == nil {
		response.RespondOK(c, gin.H{"isLoggedIn": false})
		return
	}
	rows, err := h.certificateService.ListByStudent(c.Request.Context(), s.UserID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

func (h *CertificateHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	cert, err := h.certificateService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, cert)
}

// POST /api/certificates (multipart, courseCertificate)
func (h *CertificateHandler) Create(c *gin.Context) {
	limitBody(c, MaxImageBytes)
	image, closeFn, ok := formUpload(c, "courseCertificate", MaxImageBytes)
	if !ok {
		return
	}
	defer closeFn()

	cert, err := h.certificateService.Create(c.Request.Context(), certificateInput(c), image)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"message": "Certificate created", "id": cert.ID})
}

func (h *CertificateHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	limitBody(c, MaxImageBytes)
	image, closeFn, ok := formUpload(c, "courseCertificate", MaxImageBytes)
	if !ok {
		return
	}
	defer closeFn()

	if err := h.certificateService.Update(c.Request.Context(), id, certificateInput(c), image); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Certificate updated"})
}

func (h *CertificateHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.certificateService.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Certificate deleted"})
}
