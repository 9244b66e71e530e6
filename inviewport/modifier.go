// Package inviewport implements the in-viewport element modifier. It binds
// an element to a viewport watcher and calls onEnter / onExit when the
// element scrolls into or out of view.
//
// In a component's Render:
//
//	vdom.Image(c.Src, nil).Modify(inviewport.Name, map[string]any{
//		"onEnter":     c.reveal,
//		"viewportSpy": true,
//	})
//
// By default a watcher fires once: after the first onEnter the element is
// no longer watched. Set viewportSpy to keep watching, per element or for
// the whole application with WithSpyDefault.
package inviewport

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/vcrobe/nojs-viewport/vdom"
)

// Name is the name the modifier is registered under.
const Name = "in-viewport"

// Named arguments interpreted by the modifier itself.
const (
	OnEnterArg  = "onEnter"
	OnExitArg   = "onExit"
	ViewportSpy = "viewportSpy"
)

// Watcher is the viewport-watching service the modifier delegates to.
type Watcher interface {
	// WatchElement starts observing el with the given options. onEnter and
	// onExit receive the detection arguments of the underlying observer.
	WatchElement(el *vdom.Element, options map[string]any, onEnter, onExit func(args ...any)) error

	// StopWatching stops observing el. It must tolerate elements that are
	// not being watched.
	StopWatching(el *vdom.Element)
}

// Callback is the signature of user supplied onEnter / onExit callbacks.
type Callback func(el *vdom.Element, args ...any)

// Option configures a Modifier.
type Option func(*Modifier)

// WithRegistry overrides the registry used to detect duplicate watches.
func WithRegistry(r Registry) Option {
	return func(m *Modifier) {
		m.registry = r
	}
}

// WithSpyDefault sets the viewportSpy value used when an element does not
// pass one. Applications pass the configured viewport default here.
func WithSpyDefault(spy bool) Option {
	return func(m *Modifier) {
		m.spyDefault = spy
	}
}

// WithLogger sets the logger of a single modifier.
func WithLogger(l *zap.Logger) Option {
	return func(m *Modifier) {
		m.logger = l
	}
}

// Modifier binds one element to a Watcher. The host calls Modify on attach
// and on every update, and Dispose exactly once on detach.
type Modifier struct {
	watcher  Watcher
	registry Registry
	logger   *zap.Logger

	spyDefault bool

	element     *vdom.Element
	options     map[string]any
	lastOptions map[string]any
	onEnterArg  Callback
	onExitArg   Callback

	installed bool
	disposed  bool

	// generation counts watcher registrations. A callback that re-renders
	// may register again before onEnter returns.
	generation uint64
}

// New creates a modifier that registers elements with w.
func New(w Watcher, opts ...Option) *Modifier {
	m := &Modifier{
		watcher:  w,
		registry: DefaultRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = Logger()
	}
	m.logger = m.logger.Named(Name)
	return m
}

// Modify validates the arguments and (re)installs the watcher when needed.
// On error nothing is registered and the previous state is kept.
func (m *Modifier) Modify(el *vdom.Element, positional []any, named map[string]any) error {
	if m.disposed {
		return ErrDisposed
	}
	if el == nil {
		return fmt.Errorf("%w: nil element", ErrInvalidUsage)
	}

	onEnter, onExit, options, err := parseArguments(positional, named)
	if err != nil {
		return err
	}

	switch {
	case !m.installed:
		if err := m.setupWatcher(el, options); err != nil {
			return err
		}
		m.installed = true
	case el != m.element:
		if err := m.moveWatcher(el, options); err != nil {
			return err
		}
	case !optionsEqual(options, m.options):
		m.logger.Debug("options changed, re-registering", zap.Stringer("element", el))
		m.destroyWatcher()
		if err := m.setupWatcher(el, options); err != nil {
			m.installed = false
			return err
		}
	}

	m.lastOptions = m.options
	m.options = options
	m.element = el
	m.onEnterArg = onEnter
	m.onExitArg = onExit
	return nil
}

// Options returns the options of the current registration, without the
// callbacks.
func (m *Modifier) Options() map[string]any {
	return m.options
}

// LastOptions returns the options in effect before the last Modify.
func (m *Modifier) LastOptions() map[string]any {
	return m.lastOptions
}

// Element returns the currently bound element.
func (m *Modifier) Element() *vdom.Element {
	return m.element
}

// Installed reports whether a watcher is registered for the element.
func (m *Modifier) Installed() bool {
	return m.installed
}

// Dispose unregisters the watcher. It is safe to call more than once.
func (m *Modifier) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	if m.element == nil {
		return
	}
	m.destroyWatcher()
	m.installed = false
}

func (m *Modifier) onEnter(args ...any) {
	el := m.element
	gen := m.generation
	if m.onEnterArg != nil {
		m.onEnterArg(el, args...)
	}

	if m.spying() {
		return
	}
	if m.generation != gen || m.disposed {
		m.logger.Debug("re-registered during onEnter, keeping watcher", zap.Stringer("element", m.element))
		return
	}
	m.logger.Debug("entered viewport, no longer watching", zap.Stringer("element", el))
	m.watcher.StopWatching(el)
}

// spying reports whether the watcher keeps firing after the first enter.
func (m *Modifier) spying() bool {
	v, ok := m.options[ViewportSpy]
	if !ok {
		return m.spyDefault
	}
	spy, _ := v.(bool)
	return spy
}

func (m *Modifier) onExit(args ...any) {
	if m.onExitArg != nil {
		m.onExitArg(m.element, args...)
	}
}

func (m *Modifier) setupWatcher(el *vdom.Element, options map[string]any) error {
	if err := m.registry.Add(el); err != nil {
		return err
	}
	if err := m.watcher.WatchElement(el, options, m.onEnter, m.onExit); err != nil {
		m.registry.Remove(el)
		return fmt.Errorf("watch %s: %w", el, err)
	}
	m.generation++
	m.logger.Debug("watching element", zap.Stringer("element", el), zap.Any("options", options))
	return nil
}

// moveWatcher transfers the registration to a new element. The new element
// is claimed first so a duplicate leaves the old registration untouched.
func (m *Modifier) moveWatcher(el *vdom.Element, options map[string]any) error {
	if err := m.registry.Add(el); err != nil {
		return err
	}
	m.registry.Remove(el)

	m.destroyWatcher()
	if err := m.setupWatcher(el, options); err != nil {
		m.installed = false
		m.element = nil
		return err
	}
	return nil
}

func (m *Modifier) destroyWatcher() {
	m.registry.Remove(m.element)
	m.watcher.StopWatching(m.element)
	m.logger.Debug("stopped watching element", zap.Stringer("element", m.element))
}

// parseArguments validates the modifier arguments and splits the callbacks
// off the options.
func parseArguments(positional []any, named map[string]any) (onEnter, onExit Callback, options map[string]any, err error) {
	if len(positional) != 0 {
		return nil, nil, nil, fmt.Errorf("%w: %s does not accept positional parameters; specify listeners via %s / %s", ErrInvalidUsage, Name, OnEnterArg, OnExitArg)
	}

	onEnter, enterOK := asCallback(named[OnEnterArg])
	onExit, exitOK := asCallback(named[OnExitArg])
	if !enterOK && !exitOK {
		return nil, nil, nil, fmt.Errorf("%w: %s expects %s, %s or both to be functions", ErrInvalidUsage, Name, OnEnterArg, OnExitArg)
	}

	options = make(map[string]any, len(named))
	for k, v := range named {
		if k == OnEnterArg || k == OnExitArg {
			continue
		}
		options[k] = v
	}
	return onEnter, onExit, options, nil
}

// asCallback adapts the function shapes accepted for onEnter / onExit.
func asCallback(v any) (Callback, bool) {
	switch fn := v.(type) {
	case Callback:
		return fn, fn != nil
	case func(*vdom.Element, ...any):
		return fn, fn != nil
	case func(*vdom.Element):
		if fn == nil {
			return nil, false
		}
		return func(el *vdom.Element, _ ...any) { fn(el) }, true
	case func():
		if fn == nil {
			return nil, false
		}
		return func(*vdom.Element, ...any) { fn() }, true
	}
	return nil, false
}
