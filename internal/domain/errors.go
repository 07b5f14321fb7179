package domain

import (
	"errors"
	"fmt"
)

// DataValidationError is the single error kind for every core failure:
// bad or missing input fields, unknown category tokens, update without an id,
// and storage failures surfaced by the repository. Callers distinguish cases
// by message, not by subtype.
type DataValidationError struct {
	Message string
	Cause   error
}

// NewDataValidationError builds a DataValidationError from a format string.
func NewDataValidationError(format string, args ...any) *DataValidationError {
	return &DataValidationError{Message: fmt.Sprintf(format, args...)}
}

// WrapDataValidationError attaches an underlying cause, typically a
// storage-layer error that was rolled back.
func WrapDataValidationError(cause error, format string, args ...any) *DataValidationError {
	return &DataValidationError{Message: fmt.Sprintf(format, args...), Cause: cause}
}

func (e *DataValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DataValidationError) Unwrap() error {
	return e.Cause
}

// IsDataValidation reports whether err is, or wraps, a DataValidationError.
func IsDataValidation(err error) bool {
	var dve *DataValidationError
	return errors.As(err, &dve)
}
