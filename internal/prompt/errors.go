package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoChoices is returned when there is nothing to pick from.
	ErrNoChoices = errors.New("prompt: nothing to choose from")
)
