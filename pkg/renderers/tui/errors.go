package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrEmptyForm is returned when the session's form declares no sections,
	// which callers present as the no-form-available state.
	ErrEmptyForm = errors.New("tui: form has no sections")
)
