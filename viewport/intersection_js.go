//go:build js && wasm
// +build js,wasm

package viewport

import (
	"fmt"
	"sync"
	"syscall/js"

	"github.com/vcrobe/nojs-viewport/vdom"
)

// IntersectionObserver implements Observer with the browser API. Elements
// sharing the same root, margin and thresholds share one JS observer.
type IntersectionObserver struct {
	mu        sync.Mutex
	observers map[string]*jsObserver
	byElement map[*vdom.Element]*jsObserver
}

type jsObserver struct {
	value   js.Value
	cb      js.Func
	targets map[*vdom.Element]func(Entry)
}

// NewIntersectionObserver returns an observer over window.IntersectionObserver.
func NewIntersectionObserver() *IntersectionObserver {
	return &IntersectionObserver{
		observers: make(map[string]*jsObserver),
		byElement: make(map[*vdom.Element]*jsObserver),
	}
}

// DefaultObserver returns the browser observer.
func DefaultObserver() Observer {
	return NewIntersectionObserver()
}

func (o *IntersectionObserver) Observe(el *vdom.Element, opts ObserveOptions, cb func(Entry)) error {
	node := el.Value()
	if !node.Truthy() {
		return fmt.Errorf("element %s is not mounted", el)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	obs, ok := o.observers[opts.Key()]
	if !ok {
		var err error
		obs, err = o.newJSObserver(opts)
		if err != nil {
			return err
		}
		o.observers[opts.Key()] = obs
	}
	obs.targets[el] = cb
	o.byElement[el] = obs
	obs.value.Call("observe", node)
	return nil
}

func (o *IntersectionObserver) Unobserve(el *vdom.Element) {
	o.mu.Lock()
	defer o.mu.Unlock()

	obs, ok := o.byElement[el]
	if !ok {
		return
	}
	delete(o.byElement, el)
	delete(obs.targets, el)
	if node := el.Value(); node.Truthy() {
		obs.value.Call("unobserve", node)
	}

	if len(obs.targets) == 0 {
		obs.value.Call("disconnect")
		obs.cb.Release()
		for key, candidate := range o.observers {
			if candidate == obs {
				delete(o.observers, key)
			}
		}
	}
}

func (o *IntersectionObserver) newJSObserver(opts ObserveOptions) (*jsObserver, error) {
	ctor := js.Global().Get("IntersectionObserver")
	if !ctor.Truthy() {
		return nil, fmt.Errorf("IntersectionObserver is not supported by this browser")
	}

	jsInit := map[string]any{
		"rootMargin": opts.RootMargin,
	}
	thresholds := make([]any, len(opts.Thresholds))
	for i, t := range opts.Thresholds {
		thresholds[i] = t
	}
	jsInit["threshold"] = thresholds
	if opts.Root != "" {
		root := js.Global().Get("document").Call("querySelector", opts.Root)
		if !root.Truthy() {
			return nil, fmt.Errorf("scrollable area %q not found", opts.Root)
		}
		jsInit["root"] = root
	}

	obs := &jsObserver{targets: make(map[*vdom.Element]func(Entry))}
	obs.cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		o.deliver(obs, args[0])
		return nil
	})
	obs.value = ctor.New(obs.cb, jsInit)
	return obs, nil
}

// deliver matches each entry's target against the observed elements.
func (o *IntersectionObserver) deliver(obs *jsObserver, entries js.Value) {
	type delivery struct {
		cb    func(Entry)
		entry Entry
	}
	var pending []delivery

	o.mu.Lock()
	for i := 0; i < entries.Length(); i++ {
		raw := entries.Index(i)
		target := raw.Get("target")
		for el, cb := range obs.targets {
			if el.Value().Equal(target) {
				pending = append(pending, delivery{cb: cb, entry: toEntry(el, raw)})
				break
			}
		}
	}
	o.mu.Unlock()

	for _, d := range pending {
		d.cb(d.entry)
	}
}

func toEntry(el *vdom.Element, raw js.Value) Entry {
	return Entry{
		Target:             el,
		IsIntersecting:     raw.Get("isIntersecting").Bool(),
		IntersectionRatio:  raw.Get("intersectionRatio").Float(),
		BoundingClientRect: toRect(raw.Get("boundingClientRect")),
		IntersectionRect:   toRect(raw.Get("intersectionRect")),
		RootBounds:         toRect(raw.Get("rootBounds")),
		Time:               raw.Get("time").Float(),
	}
}

func toRect(v js.Value) Rect {
	if !v.Truthy() {
		return Rect{}
	}
	return Rect{
		Top:    v.Get("top").Float(),
		Right:  v.Get("right").Float(),
		Bottom: v.Get("bottom").Float(),
		Left:   v.Get("left").Float(),
		Width:  v.Get("width").Float(),
		Height: v.Get("height").Float(),
	}
}
