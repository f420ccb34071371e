package errors

import (
	"net/http"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
)

// Error is the domain error surfaced to handlers. Status carries the HTTP
// status the handler should respond with.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *Error) Error() string {
	return e.Message
}

// New returns a new Error with the given message and status code.
func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

var (
	ErrNotFound            = New("resource not found", http.StatusNotFound)
	ErrInvalidTransition   = New("invalid status transition", http.StatusConflict)
	ErrAlreadyAssigned     = New("report already assigned to organization", http.StatusConflict)
	ErrAlreadyExists       = New("resource already exists", http.StatusConflict)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	InActiveUserError      = New("user is suspended", http.StatusUnauthorized)
)

// ErrorHandler is plugged into the rate limiter middleware.
func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"message": "too many requests, try again later",
		"status":  http.StatusTooManyRequests,
		"errors":  []string{"rate limit exceeded"},
	})
}
