//go:build !(js && wasm)
// +build !js !wasm

package console

import "os"

// Stub file for non-WASM builds to allow generated code to compile.
// The actual implementation is in console.go with js/wasm build tags.

// Log is a no-op in non-WASM builds.
func Log(args ...any) {
	// No-op for tests
}

// Warn is a no-op in non-WASM builds.
func Warn(args ...any) {
	// No-op for tests
}

// Error is a no-op in non-WASM builds.
func Error(args ...any) {
	// No-op for tests
}

// Write forwards log entries to stderr outside the browser.
func (Writer) Write(p []byte) (int, error) {
	return os.Stderr.Write(p)
}
