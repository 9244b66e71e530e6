package inviewport

import (
	"fmt"
	"sync"

	"github.com/vcrobe/nojs-viewport/vdom"
)

// Registry tracks the elements that currently have a watcher installed by
// a modifier. It exists to catch the same element being bound twice.
type Registry interface {
	// Add records el, failing with ErrDuplicateWatch if it is already present.
	Add(el *vdom.Element) error
	// Remove forgets el. Removing an unknown element is a no-op.
	Remove(el *vdom.Element)
}

// WatchedSet is a Registry backed by a set of element handles.
type WatchedSet struct {
	mu       sync.Mutex
	elements map[*vdom.Element]struct{}
}

// NewWatchedSet returns an empty set.
func NewWatchedSet() *WatchedSet {
	return &WatchedSet{elements: make(map[*vdom.Element]struct{})}
}

func (s *WatchedSet) Add(el *vdom.Element) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.elements[el]; ok {
		return fmt.Errorf("%w: %s; make sure in-viewport is used once on this element and that WatchElement is not called for it elsewhere", ErrDuplicateWatch, el)
	}
	s.elements[el] = struct{}{}
	return nil
}

func (s *WatchedSet) Remove(el *vdom.Element) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.elements, el)
}

// Has reports whether el is in the set.
func (s *WatchedSet) Has(el *vdom.Element) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.elements[el]
	return ok
}

// Len returns the number of tracked elements.
func (s *WatchedSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.elements)
}

// NopRegistry accepts every element. Release builds use it so duplicate
// registrations fall through to the watcher, which replaces the earlier one.
type NopRegistry struct{}

func (NopRegistry) Add(*vdom.Element) error { return nil }
func (NopRegistry) Remove(*vdom.Element)    {}
