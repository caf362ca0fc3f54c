package models

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantStatus int
		wantCode   string
	}{
		{"Bad Request", NewBadRequestError("bad input"), 400, "BAD_REQUEST"},
		{"Validation", NewValidationError("Validation failed", "Email is invalid"), 400, "VALIDATION_ERROR"},
		{"Unauthorized", NewUnauthorizedError("nope"), 401, "UNAUTHORIZED"},
		{"Forbidden", NewForbiddenError("not yours"), 403, "FORBIDDEN"},
		{"Not Found", NewNotFoundError("Video", 7), 404, "NOT_FOUND"},
		{"Conflict", NewConflictError("exists"), 409, "CONFLICT"},
		{"Too Many Requests", NewTooManyRequestsError("slow down"), 429, "RATE_LIMITED"},
		{"Internal", NewInternalError(errors.New("boom")), 500, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.Status)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError(cause)

	assert.Contains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, cause)

	plain := NewNotFoundError("User", 3)
	assert.Equal(t, "User with ID 3 not found", plain.Error())
	assert.Nil(t, errors.Unwrap(plain))
}

func TestRespondWithError(t *testing.T) {
	app := fiber.New()
	app.Get("/app-error", func(c *fiber.Ctx) error {
		return RespondWithError(c, NewValidationError("Validation failed", "Email is invalid", "Password is required"))
	})
	app.Get("/plain-error", func(c *fiber.Ctx) error {
		return RespondWithError(c, errors.New("raw failure"))
	})

	t.Run("AppError Keeps Status And Fields", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/app-error", nil))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.False(t, body.Success)
		assert.Equal(t, http.StatusBadRequest, body.StatusCode)
		assert.Equal(t, "Validation failed", body.Message)
		assert.Equal(t, []string{"Email is invalid", "Password is required"}, body.Errors)
	})

	t.Run("Plain Error Becomes 500 Without Detail", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/plain-error", nil))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "raw failure")

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "Internal server error", body.Message)
		assert.Empty(t, body.Errors)
	})
}

func TestRespond(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error {
		return Respond(c, fiber.StatusCreated, fiber.Map{"id": 1}, "Created")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, http.StatusCreated, body.StatusCode)
	assert.Equal(t, "Created", body.Message)
}
