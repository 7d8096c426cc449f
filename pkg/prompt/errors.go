package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoChoice is returned when a driver reports an index outside the
	// offered options.
	ErrNoChoice = errors.New("prompt: no option chosen")
)
