package service

import (
	"errors"

	"github.com/emzola/shelf/internal/validator"
)

var (
	ErrFailedValidation     = errors.New("failed validation")
	ErrRecordNotFound       = errors.New("record not found")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrContentTooLarge      = errors.New("content too large")
	ErrBadRequest           = errors.New("bad request")
	ErrCoverStorageDisabled = errors.New("cover storage is not configured")
	ErrInvalidURL           = errors.New("invalid Amazon URL")
	ErrProviderNotFound     = errors.New("book not found")
	ErrResolutionFailed     = errors.New("failed to fetch book details")
)

// ValidationError carries the field errors of a rejected input.
// errors.Is(err, ErrFailedValidation) holds for it.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	v := validator.Validator{Errors: e.Errors}
	return ErrFailedValidation.Error() + ": " + v.String()
}

func (e *ValidationError) Unwrap() error {
	return ErrFailedValidation
}

// failedValidation turns the errors collected by v into a *ValidationError.
func (s *service) failedValidation(v *validator.Validator) error {
	return &ValidationError{Errors: v.Errors}
}
