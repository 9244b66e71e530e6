package inviewport

import (
	"errors"

	"github.com/vcrobe/nojs-viewport/vdom"
)

type watchCall struct {
	el      *vdom.Element
	options map[string]any
}

// recordingWatcher records every call and keeps the latest handlers per
// element so tests can simulate detections.
type recordingWatcher struct {
	watches  []watchCall
	stops    []*vdom.Element
	onEnter  map[*vdom.Element]func(args ...any)
	onExit   map[*vdom.Element]func(args ...any)
	watchErr error
}

func newRecordingWatcher() *recordingWatcher {
	return &recordingWatcher{
		onEnter: make(map[*vdom.Element]func(args ...any)),
		onExit:  make(map[*vdom.Element]func(args ...any)),
	}
}

func (w *recordingWatcher) WatchElement(el *vdom.Element, options map[string]any, onEnter, onExit func(args ...any)) error {
	if w.watchErr != nil {
		return w.watchErr
	}
	w.watches = append(w.watches, watchCall{el: el, options: options})
	w.onEnter[el] = onEnter
	w.onExit[el] = onExit
	return nil
}

func (w *recordingWatcher) StopWatching(el *vdom.Element) {
	w.stops = append(w.stops, el)
	delete(w.onEnter, el)
	delete(w.onExit, el)
}

func (w *recordingWatcher) enter(el *vdom.Element, args ...any) {
	if fn, ok := w.onEnter[el]; ok {
		fn(args...)
	}
}

func (w *recordingWatcher) exit(el *vdom.Element, args ...any) {
	if fn, ok := w.onExit[el]; ok {
		fn(args...)
	}
}

var errWatchFailed = errors.New("observer unavailable")
