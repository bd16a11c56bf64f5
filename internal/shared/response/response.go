package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/shared/apperror"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type Meta struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total"`
}

// Success responses
func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SuccessWithMeta(c *gin.Context, statusCode int, data interface{}, meta *Meta) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", message)
}

func Conflict(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusConflict, "CONFLICT", message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message)
}

// ErrorSpec describes how a known domain error is rendered.
type ErrorSpec struct {
	Status  int
	Code    string
	Message string
}

// HandleError renders err using the domain's known errors first, then the
// generic validation/persistence kinds. Returns false when err is nil.
func HandleError(c *gin.Context, err error, known map[error]ErrorSpec) bool {
	if err == nil {
		return false
	}

	for target, spec := range known {
		if errors.Is(err, target) {
			ErrorResponse(c, spec.Status, spec.Code, spec.Message)
			return true
		}
	}

	var vErr *apperror.ValidationError
	if errors.As(err, &vErr) {
		ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", vErr.Fields)
		return true
	}

	if errors.Is(err, apperror.ErrConstraint) {
		log.Warn().Err(err).Str("request_id", c.GetString("request_id")).Msg("row rejected by storage constraint")
		ErrorResponse(c, http.StatusUnprocessableEntity, "CONSTRAINT_VIOLATION", "Record violates a storage constraint")
		return true
	}

	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Bool("persistence", apperror.IsPersistence(err)).
		Msg("request failed")
	InternalServerError(c, "Internal server error")
	return true
}
