package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/coursehub-backend/internal/http/middleware"
	"github.com/yungbote/coursehub-backend/internal/http/response"
	"github.com/yungbote/coursehub-backend/internal/services"
)

const (
	MaxImageBytes = 10 << 20
	MaxVideoBytes = 500 << 20
)

var (
	errLoginRequired       = errors.New("Unauthorized. Please log in.")
	errMissingEnrollFields = errors.New("Missing user_id or course_id")
)

// uuidParam parses a path parameter, answering 400 when it is not a uuid.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_"+name, fmt.Errorf("invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}

// formUpload opens an optional multipart file. A missing field yields a nil
// upload; an oversized one is rejected with 400. The caller must run closeFn.
func formUpload(c *gin.Context, field string, maxBytes int64) (up *services.Upload, closeFn func(), ok bool) {
	closeFn = func() {}
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, closeFn, true
		}
		response.RespondError(c, http.StatusBadRequest, "invalid_multipart_form", err)
		return nil, closeFn, false
	}
	if fh.Size > maxBytes {
		response.RespondError(c, http.StatusBadRequest, "file_too_large",
			fmt.Errorf("%s exceeds %d MB", field, maxBytes>>20))
		return nil, closeFn, false
	}
	f, err := fh.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "open_file_failed", err)
		return nil, closeFn, false
	}
	return &services.Upload{Name: fh.Filename, Body: f}, func() { closeFile(f) }, true
}

func closeFile(f multipart.File) { _ = f.Close() }

// limitBody caps the request body before multipart parsing.
func limitBody(c *gin.Context, maxBytes int64) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+1<<20)
}

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Secure bool
	TTL    time.Duration
}

func (cc CookieConfig) set(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookie, token, int(cc.TTL.Seconds()), "/", "", cc.Secure, true)
}

func (cc CookieConfig) clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", cc.Secure, true)
}
