//go:build js && wasm
// +build js,wasm

package vdom

import "syscall/js"

type handle struct {
	value js.Value
}

// WrapElement creates an element handle for an existing DOM node.
func WrapElement(tag, key string, v js.Value) *Element {
	return &Element{Tag: tag, Key: key, handle: handle{value: v}}
}

// Value returns the DOM node behind the handle, or undefined for detached
// handles created with NewElement.
func (e *Element) Value() js.Value {
	if e == nil || e.handle.value.IsUndefined() {
		return js.Undefined()
	}
	return e.handle.value
}
