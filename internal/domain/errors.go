package domain

import (
	"errors"
	"fmt"
)

// Common domain errors.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("invalid data")
	ErrConflict   = errors.New("conflict")
)

// ValidationError reports a rejected field value on an entity.
type ValidationError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", e.Entity, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(entity, field, reason string) error {
	return &ValidationError{Entity: entity, Field: field, Reason: reason}
}
