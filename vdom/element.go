package vdom

import "fmt"

// Element is a stable handle to a mounted DOM node. Modifiers and the
// viewport service key their state on the *Element pointer, so a node keeps
// the same handle for as long as the renderer reuses its DOM node.
type Element struct {
	Tag string
	Key string

	handle handle
}

// NewElement creates a detached element handle. Test renderers and
// non-browser builds use it in place of a real DOM node.
func NewElement(tag, key string) *Element {
	return &Element{Tag: tag, Key: key}
}

func (e *Element) String() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("<%s key=%q>", e.Tag, e.Key)
}
