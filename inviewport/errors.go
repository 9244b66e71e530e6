package inviewport

import "errors"

var (
	// ErrInvalidUsage is returned when the modifier receives positional
	// arguments or neither an onEnter nor an onExit callback.
	ErrInvalidUsage = errors.New("in-viewport: invalid usage")

	// ErrDuplicateWatch is returned when an element is already being
	// watched, typically because two modifiers were attached to it.
	ErrDuplicateWatch = errors.New("in-viewport: element is already being watched")

	// ErrDisposed is returned by Modify after Dispose.
	ErrDisposed = errors.New("in-viewport: modifier disposed")
)
