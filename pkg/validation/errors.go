package validation

import "github.com/goliatone/go-formstate/pkg/model"

// FieldError carries a failing verdict as an error value for callers that
// plumb validation through error-returning hooks (prompt validators, HTTP
// handlers). The engine itself keeps verdicts as plain strings.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// Check runs Validate and wraps a failing verdict in a *FieldError.
func Check(field model.Field, value model.Value) error {
	if msg := Validate(field, value); msg != "" {
		return &FieldError{Field: field.Name, Message: msg}
	}
	return nil
}
