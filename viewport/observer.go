package viewport

import "github.com/vcrobe/nojs-viewport/vdom"

// Rect is a DOMRectReadOnly snapshot.
type Rect struct {
	Top, Right, Bottom, Left float64
	Width, Height            float64
}

// Entry is one intersection observation for an element. It is passed to
// enter and exit handlers as their only detection argument.
type Entry struct {
	Target             *vdom.Element
	IsIntersecting     bool
	IntersectionRatio  float64
	BoundingClientRect Rect
	IntersectionRect   Rect
	RootBounds         Rect
	Time               float64
}

// Observer is the intersection primitive the service is built on. The
// browser implementation wraps IntersectionObserver.
type Observer interface {
	// Observe starts delivering entries for el to cb.
	Observe(el *vdom.Element, opts ObserveOptions, cb func(Entry)) error
	// Unobserve stops delivering entries for el. Unknown elements are ignored.
	Unobserve(el *vdom.Element)
}
