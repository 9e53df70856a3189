// Package session wires the form engine to a host. A Session owns one
// formstate.State, restores it from a persist.Bridge at construction, saves
// the value map after each change, and delegates submit to a
// submission.Controller. Rendering surfaces (see renderers/tui) translate
// their input events into Change, Blur and Submit calls.
package session
