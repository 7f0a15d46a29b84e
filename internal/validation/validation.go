// Package validation wires go-playground/validator for request shaping.
// Business rules stay in the aggregates; these checks only reject
// structurally malformed payloads before a use case runs.
package validation

import (
	"errors"
	"fmt"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator.
func New() *validatorv10.Validate {
	return validatorv10.New(validatorv10.WithRequiredStructEnabled())
}

// Message flattens validator errors into one client-facing sentence.
func Message(err error) string {
	var verrs validatorv10.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fieldName(fe)))
		case "min":
			parts = append(parts, fmt.Sprintf("%s must have at least %s entries", fieldName(fe), fe.Param()))
		case "gt":
			parts = append(parts, fmt.Sprintf("%s must be greater than %s", fieldName(fe), fe.Param()))
		case "uuid":
			parts = append(parts, fmt.Sprintf("%s must be a valid UUID", fieldName(fe)))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of [%s]", fieldName(fe), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", fieldName(fe)))
		}
	}
	return strings.Join(parts, "; ")
}

func fieldName(fe validatorv10.FieldError) string {
	// strip the struct name prefix from the namespace
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
