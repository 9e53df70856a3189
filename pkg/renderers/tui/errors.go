package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrSubmitRejected is returned when the form is still invalid after the
	// configured number of submit rounds.
	ErrSubmitRejected = errors.New("tui: submission rejected")
	// ErrNoSession is returned when Run is called without a session.
	ErrNoSession = errors.New("tui: session is nil")
)
