package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrAttemptsExhausted is returned when every allowed submit failed.
	ErrAttemptsExhausted = errors.New("tui: submit attempts exhausted")
)
