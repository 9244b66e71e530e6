//go:build dev
// +build dev

package inviewport

// watchedElements is shared by every modifier in the process so a second
// modifier on the same element fails fast during development.
var watchedElements = NewWatchedSet()

// DefaultRegistry returns the registry used when none is injected.
// In dev builds it is a process-wide WatchedSet.
func DefaultRegistry() Registry {
	return watchedElements
}
