// Package validation turns struct-tag rule violations into a single typed error.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid matches every *Error through errors.Is.
var ErrInvalid = errors.New("validation failed")

// Error describes one rejected input or configuration value.
type Error struct {
	Field  string
	Value  string
	Reason string
}

// New returns a validation error for the given field.
func New(field, value, reason string) *Error {
	return &Error{Field: field, Value: value, Reason: reason}
}

func (e *Error) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *Error) Is(target error) bool { return target == ErrInvalid }

// Struct checks the `validate` tags of v and reports the first violation as *Error.
func Struct(v any) error {
	err := validator.New().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	return &Error{
		Field:  fe.Namespace(),
		Value:  fmt.Sprint(fe.Value()),
		Reason: describe(fe),
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(fe.Param()), ", ")
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
		}
		return "failed " + fe.Tag()
	}
}
