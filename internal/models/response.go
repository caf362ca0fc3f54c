package models

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// APIResponse is the uniform success envelope.
type APIResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// ErrorResponse is the uniform failure envelope. Errors carries per-field
// validation messages when present.
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// Respond writes the success envelope with the given status code.
func Respond(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(APIResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// RespondWithError writes the failure envelope. AppError carries its own
// status; anything else is treated as an internal error.
func RespondWithError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"
	fields := []string{}

	var appErr *AppError
	if errors.As(err, &appErr) {
		status = appErr.Status
		message = appErr.Message
		if appErr.Fields != nil {
			fields = appErr.Fields
		}
	}

	return c.Status(status).JSON(ErrorResponse{
		StatusCode: status,
		Message:    message,
		Success:    false,
		Errors:     fields,
	})
}

// Page is a paginated result set. Pages are 1-based.
type Page[T any] struct {
	Docs       []T   `json:"docs"`
	TotalDocs  int64 `json:"total_docs"`
	TotalPages int   `json:"total_pages"`
	Page       int   `json:"page"`
}
