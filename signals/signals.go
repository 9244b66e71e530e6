// Package signals provides reactive values for components. It has no build
// tags and is fully testable outside WASM.
package signals

import "sync"

// Signal[T] is a reactive value that notifies subscribers when changed.
type Signal[T any] struct {
	mu     sync.RWMutex
	value  T
	nextID int
	subs   []subscriber
}

type subscriber struct {
	id int
	fn func()
}

// NewSignal creates a Signal with an initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and notifies all subscribers.
func (s *Signal[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	s.mu.Unlock()
	s.notify()
}

// Update replaces the value with fn(current) and notifies subscribers.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	s.value = fn(s.value)
	s.mu.Unlock()
	s.notify()
}

// Subscribe registers a callback fired when the value changes. Subscribers
// are notified in subscription order.
// Returns an unsubscribe func; call it in OnDestroy to avoid memory leaks.
func (s *Signal[T]) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Signal[T]) notify() {
	s.mu.RLock()
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, sub := range subs {
		sub.fn()
	}
}
