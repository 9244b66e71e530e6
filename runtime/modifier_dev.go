//go:build dev
// +build dev

package runtime

import "github.com/vcrobe/nojs-viewport/vdom"

// callModify invokes Modify in development mode.
// In dev mode, panics propagate to aid debugging and fast failure.
func (m *ModifierManager) callModify(mod Modifier, key string, el *vdom.Element, positional []any, named map[string]any) error {
	return mod.Modify(el, positional, named)
}

// callDispose invokes Dispose in development mode.
// In dev mode, panics propagate to aid debugging and fast failure.
func (m *ModifierManager) callDispose(mod Modifier, key string) {
	mod.Dispose()
}
