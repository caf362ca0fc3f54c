package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// AppError is the tagged error returned by every core operation. Status
// drives the HTTP translation at the response boundary.
type AppError struct {
	Status  int
	Code    string
	Message string
	Fields  []string
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

func NewBadRequestError(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusBadRequest,
		Code:    "BAD_REQUEST",
		Message: message,
	}
}

// NewValidationError aggregates per-field validation failures into a single
// BadRequest error.
func NewValidationError(message string, fields ...string) *AppError {
	return &AppError{
		Status:  fiber.StatusBadRequest,
		Code:    "VALIDATION_ERROR",
		Message: message,
		Fields:  fields,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusUnauthorized,
		Code:    "UNAUTHORIZED",
		Message: message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusForbidden,
		Code:    "FORBIDDEN",
		Message: message,
	}
}

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Status:  fiber.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewTooManyRequestsError(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusTooManyRequests,
		Code:    "RATE_LIMITED",
		Message: message,
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusConflict,
		Code:    "CONFLICT",
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Status:  fiber.StatusInternalServerError,
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
		Err:     err,
	}
}
