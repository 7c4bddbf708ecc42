package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes returned in the Code field of ErrorResponse.
const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeValidation      = "VALIDATION_ERROR"
	CodeUpstreamFailure = "UPSTREAM_FAILURE"
	CodeUploadFailed    = "UPLOAD_FAILED"
	CodeUpdateFailed    = "UPDATE_FAILED"
	CodeInternal        = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewUnauthenticatedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthenticated,
		Message: message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
	}
}

// NewUpstreamError wraps a failure of an external collaborator (identity
// provider, blob host) that the request cannot proceed without.
func NewUpstreamError(message string, err error) *AppError {
	return &AppError{
		Code:    CodeUpstreamFailure,
		Message: message,
		Err:     err,
	}
}

func NewUploadFailedError(err error) *AppError {
	return &AppError{
		Code:    CodeUploadFailed,
		Message: "Image upload failed",
		Err:     err,
	}
}

func NewUpdateFailedError(resource string, err error) *AppError {
	return &AppError{
		Code:    CodeUpdateFailed,
		Message: fmt.Sprintf("Failed to update %s", resource),
		Err:     err,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
