package validation

import (
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-formstate/pkg/model"
)

const (
	msgInvalidEmail  = "Please enter a valid email address"
	msgInvalidNumber = "Please enter a valid number"
)

var (
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	radixPattern   = regexp.MustCompile(`^0([xX][0-9a-fA-F]+|[oO][0-7]+|[bB][01]+)$`)
)

// Validate returns the first failing message for value against field, or the
// empty string when the value passes. It has no side effects.
func Validate(field model.Field, value model.Value) string {
	label := field.DisplayLabel()

	if field.Required && value.IsEmpty() {
		return label + " is required"
	}

	switch field.Kind {
	case model.KindText:
		return checkLength(field, label, value)
	case model.KindEmail:
		if msg := checkLength(field, label, value); msg != "" {
			return msg
		}
		return checkEmail(value)
	case model.KindNumber:
		return checkNumber(field, value)
	case model.KindRadio, model.KindCheckbox:
		return ""
	default:
		return ""
	}
}

func checkLength(field model.Field, label string, value model.Value) string {
	if value.IsFlag() {
		return ""
	}
	length := utf8.RuneCountInString(value.String())
	// A zero length bound counts as unset.
	if field.MinLength != nil && *field.MinLength > 0 && length < *field.MinLength {
		return fmt.Sprintf("%s must be at least %d characters", label, *field.MinLength)
	}
	if field.MaxLength != nil && *field.MaxLength > 0 && length > *field.MaxLength {
		return fmt.Sprintf("%s must be less than %d characters", label, *field.MaxLength)
	}
	return ""
}

func checkEmail(value model.Value) string {
	if value.IsFlag() || value.String() == "" {
		return ""
	}
	if !emailPattern.MatchString(value.String()) {
		return msgInvalidEmail
	}
	return ""
}

func checkNumber(field model.Field, value model.Value) string {
	if value.IsFlag() || value.String() == "" {
		return ""
	}
	number, ok := ParseNumber(value.String())
	if !ok {
		return msgInvalidNumber
	}
	if field.Min != nil && number < *field.Min {
		return "Value must be at least " + FormatNumber(*field.Min)
	}
	if field.Max != nil && number > *field.Max {
		return "Value must be less than or equal to " + FormatNumber(*field.Max)
	}
	return ""
}

// ParseNumber parses user input as a finite float. It accepts decimal
// literals with an optional exponent and unsigned 0x, 0o and 0b integers.
// Go-only spellings such as "inf", hex floats and digit underscores are
// rejected, as are blank input and values that overflow to infinity.
func ParseNumber(raw string) (float64, bool) {
	trimmed := strings.TrimFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})

	var (
		v   float64
		err error
	)
	switch {
	case decimalPattern.MatchString(trimmed):
		v, err = strconv.ParseFloat(trimmed, 64)
	case radixPattern.MatchString(trimmed):
		v, err = parseRadix(trimmed)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseRadix(literal string) (float64, error) {
	base := 16
	switch literal[1] {
	case 'o', 'O':
		base = 8
	case 'b', 'B':
		base = 2
	}
	n, ok := new(big.Int).SetString(literal[2:], base)
	if !ok {
		return 0, fmt.Errorf("validation: malformed integer %q", literal)
	}
	v, _ := new(big.Float).SetInt(n).Float64()
	return v, nil
}

// FormatNumber prints a bound without trailing zeros (18, 2.5).
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
