// Package schema provides a small structural validation system for untyped
// data decoded from JSON or YAML.
//
// It defines a type system with built-in types (string, number, bool),
// slices, maps and custom validators. Schemas map field names to types,
// enabling runtime validation of deck records and saved game state before
// anything touches the live aggregate.
//
// Basic usage:
//
//	s := schema.Schema{
//	    "lives":  schema.Number(),
//	    "score":  schema.Number(),
//	    "traits": schema.Map(schema.Number()),
//	}
//
//	if err := schema.Validate(s, data); err != nil {
//	    // Reject without mutating anything.
//	}
//
// This package has zero dependencies beyond the standard library.
package schema

// Schema is a map of field names to their expected types.
type Schema map[string]Type

// Validate checks if data conforms to the schema.
// Returns an error aggregating all validation failures found.
func Validate(schema Schema, data map[string]any) error {
	if len(schema) == 0 {
		// No schema = no validation
		return nil
	}

	var errs []error

	for fieldName, fieldType := range schema {
		value, exists := data[fieldName]
		if !exists {
			errs = append(errs, &FieldError{
				Field:  fieldName,
				Want:   fieldType.Name(),
				Detail: "required",
			})
			continue
		}

		if err := fieldType.Validate(value); err != nil {
			errs = append(errs, &FieldError{
				Field:  fieldName,
				Want:   fieldType.Name(),
				Detail: err.Error(),
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}

	return nil
}
