package engine

import (
	"errors"
	"fmt"
)

// ValidationErrorCode categorizes validation errors.
type ValidationErrorCode string

const (
	// ErrCodeInvalidToy indicates a malformed, duplicate, or unknown toy
	// token in an adopter inventory. Internal faults are also normalized to
	// this code as a conservative default.
	ErrCodeInvalidToy ValidationErrorCode = "INVALID_TOY"

	// ErrCodeInvalidAnimal indicates a duplicate or unknown animal name in
	// the processing order.
	ErrCodeInvalidAnimal ValidationErrorCode = "INVALID_ANIMAL"
)

// User-facing error labels, as rendered in results.
const (
	LabelInvalidToy    = "Brinquedo inválido"
	LabelInvalidAnimal = "Animal inválido"
)

// ValidationError is returned when input validation rejects a run.
//
// Validation errors are fatal to the call: no partial placement is ever
// returned alongside one. Exactly one code is carried per failure.
type ValidationError struct {
	// Code identifies the error category.
	Code ValidationErrorCode

	// Message is a diagnostic description (not shown to end users).
	Message string

	// Token is the offending toy token or animal name, when known.
	Token string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%s: %s (token=%q)", e.Code, e.Message, e.Token)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Label returns the fixed user-facing label for the error kind.
func (e *ValidationError) Label() string {
	if e.Code == ErrCodeInvalidAnimal {
		return LabelInvalidAnimal
	}
	return LabelInvalidToy
}

// NewInvalidToyError creates a ValidationError for a bad toy token.
func NewInvalidToyError(message, token string) *ValidationError {
	return &ValidationError{Code: ErrCodeInvalidToy, Message: message, Token: token}
}

// NewInvalidAnimalError creates a ValidationError for a bad animal name.
func NewInvalidAnimalError(message, token string) *ValidationError {
	return &ValidationError{Code: ErrCodeInvalidAnimal, Message: message, Token: token}
}

// IsInvalidToy returns true if the error is an invalid-toy validation error.
// Uses errors.As to handle wrapped errors.
func IsInvalidToy(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) && ve.Code == ErrCodeInvalidToy
}

// IsInvalidAnimal returns true if the error is an invalid-animal validation error.
// Uses errors.As to handle wrapped errors.
func IsInvalidAnimal(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) && ve.Code == ErrCodeInvalidAnimal
}
