// Package viewport provides the service that watches elements for
// visibility changes. It sits between element modifiers and the browser's
// IntersectionObserver and turns raw observations into enter and exit
// callbacks.
package viewport

import (
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/vcrobe/nojs-viewport/config"
	"github.com/vcrobe/nojs-viewport/vdom"
)

// Service watches elements and calls their enter and exit handlers.
type Service struct {
	mu       sync.Mutex
	observer Observer
	defaults config.Viewport
	logger   *zap.Logger
	watched  map[*vdom.Element]*registration
}

type registration struct {
	opts    Options
	onEnter func(args ...any)
	onExit  func(args ...any)
	inView  bool
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger of the service.
func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = l
	}
}

// NewService creates a service backed by obs. defaults apply to every
// element unless its options override them.
func NewService(obs Observer, defaults config.Viewport, opts ...ServiceOption) *Service {
	s := &Service{
		observer: obs,
		defaults: defaults,
		watched:  make(map[*vdom.Element]*registration),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = Logger()
	}
	s.logger = s.logger.Named("viewport")
	return s
}

// WatchElement starts watching el. Watching an element that is already
// watched replaces its registration.
func (s *Service) WatchElement(el *vdom.Element, options map[string]any, onEnter, onExit func(args ...any)) error {
	if el == nil {
		return fmt.Errorf("%w: nil element", ErrInvalidOption)
	}
	opts, err := ParseOptions(options, s.defaults)
	if err != nil {
		return err
	}

	reg := &registration{opts: opts, onEnter: onEnter, onExit: onExit}

	s.mu.Lock()
	_, replaced := s.watched[el]
	s.watched[el] = reg
	s.mu.Unlock()

	if replaced {
		s.logger.Warn("element already watched, replacing registration", zap.Stringer("element", el))
		s.observer.Unobserve(el)
	}

	if err := s.observer.Observe(el, opts.Observe(), func(e Entry) { s.dispatch(el, reg, e) }); err != nil {
		s.mu.Lock()
		if s.watched[el] == reg {
			delete(s.watched, el)
		}
		s.mu.Unlock()
		return fmt.Errorf("observe %s: %w", el, err)
	}

	s.logger.Debug("watch element",
		zap.Stringer("element", el),
		zap.String("rootMargin", opts.Observe().RootMargin),
		zap.Float64s("thresholds", opts.Thresholds),
		zap.Bool("viewportSpy", opts.ViewportSpy),
	)
	return nil
}

// StopWatching stops watching el. It is a no-op for unknown elements.
func (s *Service) StopWatching(el *vdom.Element) {
	s.mu.Lock()
	_, ok := s.watched[el]
	delete(s.watched, el)
	s.mu.Unlock()

	if !ok {
		return
	}
	s.observer.Unobserve(el)
	s.logger.Debug("stop watching element", zap.Stringer("element", el))
}

// IsWatching reports whether el is currently watched.
func (s *Service) IsWatching(el *vdom.Element) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.watched[el]
	return ok
}

// Len returns the number of watched elements.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.watched)
}

// Close stops watching every element.
func (s *Service) Close() {
	s.mu.Lock()
	elements := make([]*vdom.Element, 0, len(s.watched))
	for el := range s.watched {
		elements = append(elements, el)
	}
	s.watched = make(map[*vdom.Element]*registration)
	s.mu.Unlock()

	for _, el := range elements {
		s.observer.Unobserve(el)
	}
	s.logger.Debug("closed", zap.Int("elements", len(elements)))
}

// dispatch turns an observation into an enter or exit edge. Handlers run
// without the lock held so they may call back into the service.
func (s *Service) dispatch(el *vdom.Element, reg *registration, e Entry) {
	s.mu.Lock()
	if s.watched[el] != reg {
		// Stale entry for a replaced or stopped registration.
		s.mu.Unlock()
		return
	}
	visible := e.IsIntersecting && e.IntersectionRatio >= slices.Min(reg.opts.Thresholds)
	var handler func(args ...any)
	switch {
	case visible && !reg.inView:
		reg.inView = true
		handler = reg.onEnter
	case !visible && reg.inView:
		reg.inView = false
		handler = reg.onExit
	}
	s.mu.Unlock()

	if handler != nil {
		handler(e)
	}
}
