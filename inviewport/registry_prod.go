//go:build !dev
// +build !dev

package inviewport

// DefaultRegistry returns the registry used when none is injected.
// Release builds do not track elements.
func DefaultRegistry() Registry {
	return NopRegistry{}
}
