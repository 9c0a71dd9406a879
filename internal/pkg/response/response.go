// Package response writes JSON bodies and the shared error envelope.
package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the envelope for every non-2xx response.
type ErrorBody struct {
	OK      int    `json:"ok"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	// Fallback names a client-side capability the caller can use instead.
	Fallback string `json:"fallback,omitempty"`
	// RetryAfter is the wait in seconds after a 429.
	RetryAfter int `json:"retryAfter,omitempty"`
}

// OK sends a 200 response.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error aborts with the envelope for status.
func Error(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{Code: status, Message: message})
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "authentication required")
}

// TooManyRequests sends a 429 with Retry-After.
func TooManyRequests(c *gin.Context, message string, retryAfterSeconds int) {
	if retryAfterSeconds < 1 {
		retryAfterSeconds = 1
	}
	c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorBody{
		Code:       http.StatusTooManyRequests,
		Message:    message,
		RetryAfter: retryAfterSeconds,
	})
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "not found")
}

// InternalError sends a 500 error response. message is shown to the caller,
// so it must not carry internal details.
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// ServiceUnavailable sends a 503 with a client-side fallback hint.
func ServiceUnavailable(c *gin.Context, message, fallback string) {
	c.AbortWithStatusJSON(http.StatusServiceUnavailable, ErrorBody{
		Code:     http.StatusServiceUnavailable,
		Message:  message,
		Fallback: fallback,
	})
}
