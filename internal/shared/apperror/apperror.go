// Package apperror defines the two failure kinds every layer reports:
// validation failures raised before storage, and persistence failures raised by it.
package apperror

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrPersistence = errors.New("persistence failure")

	// ErrConstraint is a persistence failure caused by a storage CHECK or
	// NOT NULL rule rejecting the row.
	ErrConstraint = fmt.Errorf("%w: constraint violation", ErrPersistence)
)

// ValidationError carries one message per offending field.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// FromValidation converts an ozzo-validation result. Nil stays nil; internal
// rule errors are returned unchanged.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}

	var internal validation.InternalError
	if errors.As(err, &internal) {
		return err
	}

	fields := map[string]string{}
	var errs validation.Errors
	if errors.As(err, &errs) {
		for field, fieldErr := range errs {
			fields[field] = fieldErr.Error()
		}
	} else {
		fields["_"] = err.Error()
	}
	return &ValidationError{Fields: fields}
}

// Persistence marks err as a storage failure while keeping it inspectable.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}

// Constraint marks err as a row rejected by a storage rule.
func Constraint(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrConstraint, err)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistence)
}
