package formstate

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/validation"
)

var (
	// ErrUnknownField is returned when an operation names a field that is not
	// part of the schema.
	ErrUnknownField = errors.New("formstate: unknown field")
	// ErrValueKind is returned when a value's shape does not match the kind
	// of its field (a string for a checkbox, a flag for a text input).
	ErrValueKind = errors.New("formstate: value does not match field kind")
)

// State is an immutable snapshot of a form: values, touched flags and the
// last verdict per field. Every operation returns a new State and leaves the
// receiver untouched, so a State can be shared freely once built.
type State struct {
	schema  model.Schema
	values  model.Values
	touched map[string]bool
	errors  map[string]string
}

// Initialize builds the starting State. When ok is true the snapshot is
// reconciled against the schema; otherwise every field starts at its default.
// Touched flags and errors always start empty.
func Initialize(schema model.Schema, snapshot Snapshot, ok bool) State {
	values := schema.Defaults()
	if ok {
		values = Reconcile(schema, snapshot)
	}
	return State{
		schema:  schema,
		values:  values,
		touched: make(map[string]bool),
		errors:  make(map[string]string),
	}
}

// Schema returns the descriptors the state was built from.
func (s State) Schema() model.Schema {
	return s.schema
}

// Value returns the current value of name.
func (s State) Value(name string) (model.Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Values returns a copy of the value map.
func (s State) Values() model.Values {
	return s.values.Clone()
}

// Touched reports whether name has been visited.
func (s State) Touched(name string) bool {
	return s.touched[name]
}

// Error returns the stored verdict for name. An empty string means the field
// passed or was never evaluated.
func (s State) Error(name string) string {
	return s.errors[name]
}

// Errors returns a copy of the non-empty verdicts.
func (s State) Errors() map[string]string {
	return cloneErrors(s.errors)
}

// VisibleError returns the message to show next to name: the stored verdict
// when the field is touched, otherwise the empty string.
func (s State) VisibleError(name string) string {
	if !s.touched[name] {
		return ""
	}
	return s.errors[name]
}

// VisibleErrors returns every message that should currently be displayed.
func (s State) VisibleErrors() map[string]string {
	out := make(map[string]string)
	for name, msg := range s.errors {
		if msg != "" && s.touched[name] {
			out[name] = msg
		}
	}
	return out
}

// SetValue replaces the value of name. A touched field is revalidated
// immediately; an untouched field keeps whatever verdict it had, so errors
// do not appear before the user reaches the field.
func (s State) SetValue(name string, v model.Value) (State, error) {
	field, ok := s.schema.Field(name)
	if !ok {
		return s, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if !field.Accepts(v) {
		return s, fmt.Errorf("%w: %q is %s", ErrValueKind, name, field.Kind)
	}

	next := s.clone()
	next.values[name] = v
	if next.touched[name] {
		next.setVerdict(name, validation.Validate(field, v))
	}
	return next, nil
}

// MarkTouched flags name as visited and revalidates it against its current
// value.
func (s State) MarkTouched(name string) (State, error) {
	field, ok := s.schema.Field(name)
	if !ok {
		return s, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	next := s.clone()
	next.touched[name] = true
	next.setVerdict(name, validation.Validate(field, next.values[name]))
	return next, nil
}

// TouchAll flags every schema field as visited. Verdicts are not touched.
func (s State) TouchAll() State {
	next := s.clone()
	for _, name := range s.schema.Names() {
		next.touched[name] = true
	}
	return next
}

// ValidateAll evaluates every field in schema order and replaces the whole
// error map. The boolean reports whether every field passed.
func (s State) ValidateAll() (State, bool) {
	next := s.clone()
	next.errors = make(map[string]string, s.schema.Len())
	valid := true
	for _, field := range s.schema.Fields() {
		if msg := validation.Validate(field, next.values[field.Name]); msg != "" {
			next.errors[field.Name] = msg
			valid = false
		}
	}
	return next, valid
}

func (s *State) setVerdict(name, msg string) {
	if msg == "" {
		delete(s.errors, name)
		return
	}
	s.errors[name] = msg
}

func (s State) clone() State {
	return State{
		schema:  s.schema,
		values:  s.values.Clone(),
		touched: cloneTouched(s.touched),
		errors:  cloneErrors(s.errors),
	}
}

func cloneTouched(src map[string]bool) map[string]bool {
	out := make(map[string]bool, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func cloneErrors(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
