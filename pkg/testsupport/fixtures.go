package testsupport

import (
	"testing"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/schemaio"
)

// DemoSchema returns the built-in registration schema: username (text,
// required, minLength 3), email (required), age (number 18..60), gender
// (radio) and terms (checkbox).
func DemoSchema(t testing.TB) model.Schema {
	t.Helper()
	return schemaio.Demo()
}

// AgeSchema returns a single required number field bounded to 18..60.
func AgeSchema(t testing.TB) model.Schema {
	t.Helper()
	return MustSchema(t, model.Field{
		Name:     "age",
		Label:    "Age",
		Kind:     model.KindNumber,
		Required: true,
		Min:      model.Float(18),
		Max:      model.Float(60),
	})
}

// MustSchema builds a schema or fails the test.
func MustSchema(t testing.TB, fields ...model.Field) model.Schema {
	t.Helper()
	schema, err := model.NewSchema(fields...)
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}
	return schema
}

// ValidValues returns a value map that passes every DemoSchema check.
func ValidValues() model.Values {
	return model.Values{
		"username": model.Text("ada"),
		"email":    model.Text("ada@example.com"),
		"age":      model.Text("36"),
		"gender":   model.Text("Female"),
		"terms":    model.Flag(true),
	}
}
