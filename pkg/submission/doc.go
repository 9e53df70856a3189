// Package submission runs the all-or-nothing submit step: touch every field,
// validate the whole form, and call the host's callback only when every
// field passes.
package submission
