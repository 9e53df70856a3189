package formstate

import (
	"strconv"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Snapshot is a decoded persisted value map: field name to string or bool.
// Numbers are tolerated for number fields since hand-edited stores often
// carry them unquoted.
type Snapshot map[string]any

// Reconcile builds a value map for schema from snapshot. Entries for unknown
// fields are dropped, entries whose type does not fit the field's kind fall
// back to the default, and fields missing from the snapshot get their
// default.
func Reconcile(schema model.Schema, snapshot Snapshot) model.Values {
	values := schema.Defaults()
	for _, field := range schema.Fields() {
		raw, ok := snapshot[field.Name]
		if !ok {
			continue
		}
		if v, ok := coerce(field, raw); ok {
			values[field.Name] = v
		}
	}
	return values
}

// SnapshotOf converts values into the flat persisted shape.
func SnapshotOf(values model.Values) Snapshot {
	return Snapshot(values.Plain())
}

func coerce(field model.Field, raw any) (model.Value, bool) {
	if field.Kind.AcceptsFlag() {
		b, ok := raw.(bool)
		return model.Flag(b), ok
	}
	switch typed := raw.(type) {
	case string:
		return model.Text(typed), true
	case float64:
		if field.Kind == model.KindNumber {
			return model.Text(strconv.FormatFloat(typed, 'f', -1, 64)), true
		}
	case int64:
		if field.Kind == model.KindNumber {
			return model.Text(strconv.FormatInt(typed, 10)), true
		}
	case int:
		if field.Kind == model.KindNumber {
			return model.Text(strconv.Itoa(typed)), true
		}
	}
	return model.Value{}, false
}
