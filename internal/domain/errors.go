package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyPresentationID is returned when a presentation ID is missing.
	ErrEmptyPresentationID = errors.New("presentation ID cannot be empty")

	// ErrEmptySlideID is returned when a slide ID is missing.
	ErrEmptySlideID = errors.New("slide ID cannot be empty")

	// ErrInvalidContentKind is returned when a slide summary carries an
	// unknown content kind.
	ErrInvalidContentKind = errors.New("invalid content kind")
)
