package schema

import (
	"fmt"
	"strings"
)

// FieldError reports one field of a record that failed validation.
type FieldError struct {
	Field  string // field name in the record
	Want   string // expected type name
	Detail string // what the type check reported; "required" when absent
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q (want %s): %s", e.Field, e.Want, e.Detail)
}

// AggregateError bundles every field failure found in one record, so a bad
// deck entry or save payload reports all of its problems in a single pass.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	parts := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		parts[i] = err.Error()
	}
	return fmt.Sprintf("%d invalid fields: %s", len(e.Errors), strings.Join(parts, "; "))
}

// Unwrap exposes the individual field errors to errors.Is/As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}
