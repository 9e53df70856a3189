package model

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// Value is a form value: text for every kind except checkbox, a flag for
// checkboxes. The zero Value is the empty text value.
type Value struct {
	text   string
	flag   bool
	isFlag bool
}

// Text wraps a string value.
func Text(s string) Value {
	return Value{text: s}
}

// Flag wraps a boolean value.
func Flag(b bool) Value {
	return Value{flag: b, isFlag: true}
}

// IsFlag reports whether the value carries a boolean.
func (v Value) IsFlag() bool {
	return v.isFlag
}

// String returns the text payload, or "true"/"false" for flags.
func (v Value) String() string {
	if v.isFlag {
		if v.flag {
			return "true"
		}
		return "false"
	}
	return v.text
}

// Bool returns the flag payload. Text values report false.
func (v Value) Bool() bool {
	return v.isFlag && v.flag
}

// IsEmpty reports whether the value counts as missing for the required
// check. Only the empty string is empty; flags never are.
func (v Value) IsEmpty() bool {
	return !v.isFlag && v.text == ""
}

// Equal reports whether both values have the same shape and payload.
func (v Value) Equal(other Value) bool {
	return v == other
}

// MarshalJSON encodes the value as a bare JSON string or boolean.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.isFlag {
		return json.Marshal(v.flag)
	}
	return json.Marshal(v.text)
}

var errValueShape = errors.New("model: value must be a string or boolean")

// UnmarshalJSON accepts a JSON string or boolean.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("true")):
		*v = Flag(true)
		return nil
	case bytes.Equal(trimmed, []byte("false")):
		*v = Flag(false)
		return nil
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return fmt.Errorf("%w: %s", errValueShape, string(trimmed))
	}
	*v = Text(s)
	return nil
}

// Values maps field names to their current value.
type Values map[string]Value

// Clone returns an independent copy.
func (vs Values) Clone() Values {
	if vs == nil {
		return nil
	}
	out := make(Values, len(vs))
	for k, v := range vs {
		out[k] = v
	}
	return out
}

// Plain converts the map into name -> string|bool, the flat shape used for
// snapshots and submission payloads.
func (vs Values) Plain() map[string]any {
	out := make(map[string]any, len(vs))
	for k, v := range vs {
		if v.IsFlag() {
			out[k] = v.Bool()
		} else {
			out[k] = v.String()
		}
	}
	return out
}
