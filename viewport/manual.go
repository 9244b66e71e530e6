package viewport

import (
	"sync"

	"github.com/vcrobe/nojs-viewport/vdom"
)

// ManualObserver is an Observer driven by explicit Trigger calls. It backs
// the service in tests and outside the browser.
type ManualObserver struct {
	mu       sync.Mutex
	observed map[*vdom.Element]manualTarget
}

type manualTarget struct {
	opts ObserveOptions
	cb   func(Entry)
}

// NewManualObserver returns an observer with nothing observed.
func NewManualObserver() *ManualObserver {
	return &ManualObserver{observed: make(map[*vdom.Element]manualTarget)}
}

func (o *ManualObserver) Observe(el *vdom.Element, opts ObserveOptions, cb func(Entry)) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.observed[el] = manualTarget{opts: opts, cb: cb}
	return nil
}

func (o *ManualObserver) Unobserve(el *vdom.Element) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.observed, el)
}

// Observed reports whether el is observed and with which options.
func (o *ManualObserver) Observed(el *vdom.Element) (ObserveOptions, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	t, ok := o.observed[el]
	return t.opts, ok
}

// Trigger delivers entry for el. It reports false when el is not observed.
func (o *ManualObserver) Trigger(el *vdom.Element, entry Entry) bool {
	o.mu.Lock()
	t, ok := o.observed[el]
	o.mu.Unlock()
	if !ok {
		return false
	}
	entry.Target = el
	t.cb(entry)
	return true
}

// Enter delivers a fully visible entry for el.
func (o *ManualObserver) Enter(el *vdom.Element) bool {
	return o.Trigger(el, Entry{IsIntersecting: true, IntersectionRatio: 1})
}

// Exit delivers a non-intersecting entry for el.
func (o *ManualObserver) Exit(el *vdom.Element) bool {
	return o.Trigger(el, Entry{})
}
