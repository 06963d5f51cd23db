package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrNotFound is returned when a referenced document does not exist.
var ErrNotFound = errors.New("record not found")

// ValidationError reports every offending field path of a record that
// failed schema validation. It is always raised before any store call.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, ", "))
}

// asValidationError converts a validator error into a *ValidationError so
// callers never see validator internals.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fieldPath(fe.Namespace()))
		}
		return &ValidationError{Fields: fields}
	}
	return &ValidationError{Fields: []string{err.Error()}}
}

// fieldPath strips the struct name prefix from a validator namespace and
// lower-cases the leading segment so errors read like wire field names.
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	parts := strings.Split(ns, ".")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToLower(p[:1]) + p[1:]
	}
	return strings.Join(parts, ".")
}
