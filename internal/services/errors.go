package services

import (
	"errors"

	apperrors "github.com/henley-workshops/survey-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")

	// Response specific errors
	ErrResponseNotFound  = errors.New("survey response not found")
	ErrInvalidSurveyType = errors.New("invalid survey type")

	// Participant specific errors
	ErrParticipantNotFound = errors.New("participant not found")
)

// Use shared validation errors from the errors package.
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// NewValidationError creates a validation error in the shared format.
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}
