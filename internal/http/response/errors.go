package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	errSomethingWrong = errors.New("Something went wrong.")
	errRouteNotFound  = errors.New("Route not found")
)

// NotFound is the router's fallback for unknown paths.
func NotFound(c *gin.Context) {
	RespondError(c, http.StatusNotFound, "not_found", errRouteNotFound)
}

// Recovered answers a request whose handler panicked.
func Recovered(c *gin.Context, _ any) {
	RespondError(c, http.StatusInternalServerError, "internal", errSomethingWrong)
	c.Abort()
}
