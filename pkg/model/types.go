package model

// Kind is the closed set of field kinds the engine understands.
type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindNumber   Kind = "number"
	KindRadio    Kind = "radio"
	KindCheckbox Kind = "checkbox"
)

// Valid reports whether k belongs to the supported set.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindEmail, KindNumber, KindRadio, KindCheckbox:
		return true
	default:
		return false
	}
}

// AcceptsFlag reports whether values of this kind are booleans.
func (k Kind) AcceptsFlag() bool {
	return k == KindCheckbox
}

// Field describes one input and its constraints. Fields are immutable once
// handed to NewSchema; the schema keeps its own copy.
type Field struct {
	Name     string `json:"name" yaml:"name"`
	Kind     Kind   `json:"type" yaml:"type"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`

	// text and email
	MinLength *int `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`

	// number
	Min *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max *float64 `json:"max,omitempty" yaml:"max,omitempty"`

	// radio
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`
}

// DisplayLabel returns the label shown to users, falling back to the name.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// DefaultValue returns the value a field starts with when nothing was
// persisted: false for checkboxes, the empty string for everything else.
func DefaultValue(field Field) Value {
	if field.Kind.AcceptsFlag() {
		return Flag(false)
	}
	return Text("")
}

// Accepts reports whether v has the right shape for the field's kind.
func (f Field) Accepts(v Value) bool {
	return f.Kind.AcceptsFlag() == v.IsFlag()
}

func (f Field) clone() Field {
	out := f
	if f.MinLength != nil {
		v := *f.MinLength
		out.MinLength = &v
	}
	if f.MaxLength != nil {
		v := *f.MaxLength
		out.MaxLength = &v
	}
	if f.Min != nil {
		v := *f.Min
		out.Min = &v
	}
	if f.Max != nil {
		v := *f.Max
		out.Max = &v
	}
	if len(f.Options) > 0 {
		out.Options = append([]string(nil), f.Options...)
	}
	return out
}

// Int returns a pointer to v. Handy for building descriptors in code.
func Int(v int) *int {
	return &v
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}
