package utils

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// MessageResponse is the 200-shaped body used by the auth endpoints
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationErrorResponse carries field-scoped error messages, matching
// the 422 shape consumed by the login frontend
type ValidationErrorResponse struct {
	Errors map[string][]string `json:"errors"`
}

// RateLimitedResponse is the 429 body; RetryAfter mirrors the Retry-After
// header in seconds
type RateLimitedResponse struct {
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"`
}

// OKResponse sends a 200 with a message body
func OKResponse(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, MessageResponse{Message: message})
}

// FieldErrorResponse sends a 422 with a single field-scoped error
func FieldErrorResponse(c echo.Context, field, message string) error {
	return c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{
		Errors: map[string][]string{field: {message}},
	})
}

// TooManyRequestsResponse sends a 429 with Retry-After and rate-limit headers
func TooManyRequestsResponse(c echo.Context, limit, retryAfter int) error {
	c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
	c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Response().Header().Set("X-RateLimit-Remaining", "0")
	return c.JSON(http.StatusTooManyRequests, RateLimitedResponse{
		Message:    "Too many requests. Please try again in " + strconv.Itoa(retryAfter) + " seconds.",
		RetryAfter: retryAfter,
	})
}

// BadRequestResponse sends a 400 with a message body
func BadRequestResponse(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, MessageResponse{Message: message})
}

// NotFoundResponse sends a 404 with a message body
func NotFoundResponse(c echo.Context, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return c.JSON(http.StatusNotFound, MessageResponse{Message: message})
}

// InternalServerErrorResponse sends a 500 with a message body
func InternalServerErrorResponse(c echo.Context, message string) error {
	if message == "" {
		message = "Internal server error"
	}
	return c.JSON(http.StatusInternalServerError, MessageResponse{Message: message})
}
