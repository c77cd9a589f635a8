package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/slidegen-api/internal/domain"
	"github.com/phrazzld/slidegen-api/internal/generation"
	"github.com/phrazzld/slidegen-api/internal/session"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes based on
// the error type. This prevents leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Upstream generation failures: the request was sound, the provider
	// was not. Retry policy belongs to the caller.
	case errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrContentBlocked):
		return http.StatusServiceUnavailable

	// Not found errors
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound

	// Semantically invalid input
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrEmptyPresentationID),
		errors.Is(err, domain.ErrEmptySlideID),
		errors.Is(err, domain.ErrInvalidContentKind):
		return http.StatusUnprocessableEntity

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, generation.ErrContentBlocked):
		return "Content generation was blocked by the provider"

	case errors.Is(err, generation.ErrGenerationFailed):
		return "Content generation failed"

	case errors.Is(err, session.ErrNotFound):
		return "Session not found"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrEmptyPresentationID),
		errors.Is(err, domain.ErrEmptySlideID),
		errors.Is(err, domain.ErrInvalidContentKind):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns a validator error into a user-friendly
// message naming the offending field without echoing submitted values.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example: "Key: 'TextGenerationRequest.Topics' Error:Field validation
		// for 'Topics' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "value too small"
	case "max":
		return "value too large"
	case "gt", "lt":
		return "value out of range"
	default:
		return "validation failed"
	}
}
