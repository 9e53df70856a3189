package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyFieldName is returned when a descriptor has no name.
	ErrEmptyFieldName = errors.New("model: field name is required")
	// ErrDuplicateField is returned when two descriptors share a name.
	ErrDuplicateField = errors.New("model: duplicate field name")
	// ErrRadioOptions is returned when a radio field has no options.
	ErrRadioOptions = errors.New("model: radio field requires options")
)

// Schema is an ordered, immutable field list with unique names.
type Schema struct {
	fields []Field
	index  map[string]int
}

// NewSchema validates the descriptors and builds a Schema. Descriptors with
// an unsupported kind are skipped: they produce no field and no state.
func NewSchema(fields ...Field) (Schema, error) {
	s := Schema{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for i, field := range fields {
		if !field.Kind.Valid() {
			continue
		}
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return Schema{}, fmt.Errorf("%w (index %d)", ErrEmptyFieldName, i)
		}
		if _, exists := s.index[name]; exists {
			return Schema{}, fmt.Errorf("%w: %q", ErrDuplicateField, name)
		}
		if field.Kind == KindRadio && len(field.Options) == 0 {
			return Schema{}, fmt.Errorf("%w: %q", ErrRadioOptions, name)
		}
		cloned := field.clone()
		cloned.Name = name
		s.index[name] = len(s.fields)
		s.fields = append(s.fields, cloned)
	}
	return s, nil
}

// MustSchema is NewSchema that panics on error. Intended for fixtures and
// package-level schemas.
func MustSchema(fields ...Field) Schema {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Fields returns a copy of the descriptors in schema order.
func (s Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.clone()
	}
	return out
}

// Field looks up a descriptor by name.
func (s Schema) Field(name string) (Field, bool) {
	idx, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[idx].clone(), true
}

// Has reports whether name is a field of the schema.
func (s Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Names returns field names in schema order.
func (s Schema) Names() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name
	}
	return out
}

// Len returns the number of fields.
func (s Schema) Len() int {
	return len(s.fields)
}

// Defaults returns the default value map for the schema.
func (s Schema) Defaults() Values {
	out := make(Values, len(s.fields))
	for _, f := range s.fields {
		out[f.Name] = DefaultValue(f)
	}
	return out
}
