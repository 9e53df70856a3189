// Package model defines the passive schema values the form engine consumes.
// A Schema is an ordered list of Field descriptors, each carrying one of the
// five supported kinds (text, email, number, radio, checkbox) plus the
// constraints that apply to that kind: minLength/maxLength for text and email,
// min/max for numbers and a non-empty option list for radio groups. Optional
// constraints are pointers so "unset" never collapses into zero.
//
// Form values are carried as Value, a small tagged union holding either a
// string (every kind except checkbox, numbers included) or a boolean
// (checkbox). Values serialise as bare JSON strings or booleans so a value map
// round-trips through the flat persistence snapshot unchanged.
package model
