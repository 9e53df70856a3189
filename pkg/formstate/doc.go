// Package formstate holds the per-form state machine: the value map, the
// touched set and the error map, kept consistent by a small set of pure
// operations (SetValue, MarkTouched, TouchAll, ValidateAll).
//
// The error map is always the result of running the validator against the
// value the field had at that moment. Whether an error is shown is derived:
// VisibleError returns a message only when the field is touched. Untouched
// fields therefore never surface errors even if a full validation pass has
// recorded one for them.
//
// States are values. Operations copy the three maps and return the copy, so
// hosts can keep the previous State for undo or diffing without aliasing.
// The package is not safe for concurrent mutation of a single host variable;
// hosts apply one event at a time.
package formstate
