package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/safetrip/internal/pkg/logger"
	apperrors "github.com/xyz-asif/safetrip/pkg/errors"
	"go.uber.org/zap"
)

// ErrorResponse represents a standard error payload returned by the API
type ErrorResponse struct {
	Error     string `json:"error" example:"Title is required"`
	Code      string `json:"code,omitempty" example:"VALIDATION_FAILED"`
	Field     string `json:"field,omitempty" example:"title"`
	Retryable bool   `json:"retryable,omitempty" example:"false"`
}

// SuccessResponse represents a standard success payload
type SuccessResponse struct {
	Status string      `json:"status" example:"success"`
	Data   interface{} `json:"data"`
}

// PaginatedResponse represents a paginated list response
type PaginatedResponse struct {
	Status string      `json:"status" example:"success"`
	Data   interface{} `json:"data"`
	Limit  int         `json:"limit" example:"20"`
	Page   int         `json:"page" example:"1"`
}

// Success sends a 200 OK response with data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Status: "success",
		Data:   data,
	})
}

// Created sends a 201 Created response
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, SuccessResponse{
		Status: "success",
		Data:   data,
	})
}

// Paginated sends one page of a list
func Paginated(c *gin.Context, data interface{}, page, limit int) {
	c.JSON(http.StatusOK, PaginatedResponse{
		Status: "success",
		Data:   data,
		Limit:  limit,
		Page:   page,
	})
}

// Error sends an error response with custom status code and message
func Error(c *gin.Context, statusCode int, message string, errorCode ...string) {
	code := ""
	if len(errorCode) > 0 {
		code = errorCode[0]
	}

	c.JSON(statusCode, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// BadRequest sends a 400 Bad Request error
func BadRequest(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusBadRequest, message, errorCode...)
}

// Unauthorized sends a 401 Unauthorized error
func Unauthorized(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusUnauthorized, message, errorCode...)
}

// Forbidden sends a 403 Forbidden error
func Forbidden(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusForbidden, message, errorCode...)
}

// NotFound sends a 404 Not Found error
func NotFound(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusNotFound, message, errorCode...)
}

// Conflict sends a 409 Conflict error
func Conflict(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusConflict, message, errorCode...)
}

// TooManyRequests sends a 429 error
func TooManyRequests(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
		Error:     message,
		Code:      "RATE_LIMITED",
		Retryable: true,
	})
}

// InternalServerError sends a 500 Internal Server Error
func InternalServerError(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusInternalServerError, message, errorCode...)
}

// ServiceUnavailable sends a 503 the client may retry
func ServiceUnavailable(c *gin.Context, message string) {
	c.JSON(http.StatusServiceUnavailable, ErrorResponse{
		Error:     message,
		Code:      "SERVICE_UNAVAILABLE",
		Retryable: true,
	})
}

// BindJSONError handles JSON decode errors in request body
func BindJSONError(c *gin.Context, err error) {
	BadRequest(c, "Invalid request format", "INVALID_JSON")
}

// ValidationFailed sends a 422 naming the offending field
func ValidationFailed(c *gin.Context, field, message string) {
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error: message,
		Code:  "VALIDATION_FAILED",
		Field: field,
	})
}

// AuthenticationError handles authentication failures
func AuthenticationError(c *gin.Context, message string) {
	Unauthorized(c, message, "AUTH_REQUIRED")
}

// AuthorizationError handles authorization failures
func AuthorizationError(c *gin.Context, message string) {
	Forbidden(c, message, "FORBIDDEN")
}

// FromError maps a service error onto the matching status and error code.
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		ValidationFailed(c, apperrors.FieldOf(err), apperrors.MessageOf(err))
	case errors.Is(err, apperrors.ErrUnauthenticated):
		AuthenticationError(c, "Please log in to continue")
	case errors.Is(err, apperrors.ErrForbidden):
		AuthorizationError(c, "You are not allowed to do that")
	case errors.Is(err, apperrors.ErrNotFound):
		NotFound(c, "Resource not found", "NOT_FOUND")
	case errors.Is(err, apperrors.ErrDuplicate):
		Conflict(c, "Resource already exists", "DUPLICATE")
	case errors.Is(err, apperrors.ErrUnavailable):
		logger.Warn("backing service unavailable", zap.String("path", c.FullPath()), zap.Error(err))
		ServiceUnavailable(c, "Service temporarily unavailable, please try again")
	default:
		logger.Error("unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
		InternalServerError(c, "Something went wrong", "INTERNAL_ERROR")
	}
}
