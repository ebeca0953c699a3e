package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Error codes shared across services and handlers
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// AppError is the error type returned by the service layer.
// Code selects the HTTP status in the handler layer; Details carries
// internal context for logs and is never sent to clients.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// NewAppError creates a new AppError
func NewAppError(code, message, details string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewNotFoundError creates an AppError with the NOT_FOUND code
func NewNotFoundError(message, details string) *AppError {
	return NewAppError(ErrCodeNotFound, message, details)
}

// NewValidationError creates an AppError with the VALIDATION_ERROR code
func NewValidationError(message, details string) *AppError {
	return NewAppError(ErrCodeValidation, message, details)
}

// NewForbiddenError creates an AppError with the FORBIDDEN code
func NewForbiddenError(message, details string) *AppError {
	return NewAppError(ErrCodeForbidden, message, details)
}

// ErrorBody is the error payload inside an ErrorResponse
type ErrorBody struct {
	Code    string `json:"code" example:"NOT_FOUND"`
	Message string `json:"message" example:"Resource not found"`
}

// SuccessResponse is the envelope for all successful API responses
type SuccessResponse struct {
	Data      interface{} `json:"data"`
	RequestID string      `json:"requestId" example:"b9fca1a7-8714-4b7e-a9b6-15e5e1f4a6ce"`
}

// ErrorResponse is the envelope for all error API responses
type ErrorResponse struct {
	Error     ErrorBody `json:"error"`
	RequestID string    `json:"requestId" example:"b9fca1a7-8714-4b7e-a9b6-15e5e1f4a6ce"`
}

// SendSuccess writes a success envelope with a generated request id
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{
		Data:      data,
		RequestID: requestID(c),
	})
}

// SendError writes an error envelope with a generated request id
func SendError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
		},
		RequestID: requestID(c),
	})
}

// requestID reuses the id set by upstream middleware when present so a
// request keeps one id across success and error paths.
func requestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	id := uuid.New().String()
	c.Set("request_id", id)
	return id
}
