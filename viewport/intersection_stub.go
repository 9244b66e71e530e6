//go:build !(js && wasm)
// +build !js !wasm

package viewport

// DefaultObserver returns a ManualObserver outside the browser.
func DefaultObserver() Observer {
	return NewManualObserver()
}
