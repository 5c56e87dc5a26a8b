package expense

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("expense not found")
	ErrMissingCategory   = errors.New("missing category")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrMissingAmount     = errors.New("missing amount")
	ErrInvalidAmount     = errors.New("amount is not a number")
	ErrNegativeAmount    = errors.New("amount must not be negative")
	ErrEmptyCatalog      = errors.New("no categories configured")
	ErrDuplicateCategory = errors.New("duplicate category")
)

// FieldError names the input field that failed validation.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
	}

	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// IsValidation reports whether err was caused by bad user input rather than storage.
func IsValidation(err error) bool {
	var fe *FieldError
	return errors.As(err, &fe)
}
