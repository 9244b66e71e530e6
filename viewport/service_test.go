package viewport

import (
	"errors"
	"testing"

	"github.com/vcrobe/nojs-viewport/config"
	"github.com/vcrobe/nojs-viewport/vdom"
)

type handlerLog struct {
	enters []Entry
	exits  []Entry
}

func (h *handlerLog) onEnter(args ...any) { h.enters = append(h.enters, args[0].(Entry)) }
func (h *handlerLog) onExit(args ...any)  { h.exits = append(h.exits, args[0].(Entry)) }

func newTestService() (*Service, *ManualObserver) {
	obs := NewManualObserver()
	return NewService(obs, config.Default().Viewport), obs
}

func TestService_EnterExitEdges(t *testing.T) {
	svc, obs := newTestService()
	el := vdom.NewElement("div", "0")
	var h handlerLog

	if err := svc.WatchElement(el, nil, h.onEnter, h.onExit); err != nil {
		t.Fatalf("WatchElement failed: %v", err)
	}

	// Initial "not intersecting" report does not count as an exit.
	obs.Exit(el)
	if len(h.exits) != 0 {
		t.Errorf("Expected no exit before the first enter, got %d", len(h.exits))
	}

	obs.Enter(el)
	obs.Enter(el)
	if len(h.enters) != 1 {
		t.Fatalf("Expected a single enter on the rising edge, got %d", len(h.enters))
	}
	if h.enters[0].Target != el || !h.enters[0].IsIntersecting {
		t.Errorf("Unexpected enter entry: %+v", h.enters[0])
	}

	obs.Exit(el)
	obs.Exit(el)
	if len(h.exits) != 1 {
		t.Errorf("Expected a single exit on the falling edge, got %d", len(h.exits))
	}

	obs.Enter(el)
	if len(h.enters) != 2 {
		t.Errorf("Expected a second enter after exit, got %d", len(h.enters))
	}
}

func TestService_StopWatching(t *testing.T) {
	svc, obs := newTestService()
	el := vdom.NewElement("div", "0")
	var h handlerLog

	if err := svc.WatchElement(el, nil, h.onEnter, h.onExit); err != nil {
		t.Fatalf("WatchElement failed: %v", err)
	}
	svc.StopWatching(el)

	if svc.IsWatching(el) {
		t.Error("Element should no longer be watched")
	}
	if _, ok := obs.Observed(el); ok {
		t.Error("Element should be unobserved")
	}
	if obs.Enter(el) {
		t.Error("Observer should not deliver entries for a stopped element")
	}

	// Unknown elements are tolerated.
	svc.StopWatching(el)
	svc.StopWatching(vdom.NewElement("span", "other"))
}

func TestService_StopWatchingFromEnterHandler(t *testing.T) {
	svc, obs := newTestService()
	el := vdom.NewElement("img", "0")

	entered := 0
	onEnter := func(args ...any) {
		entered++
		svc.StopWatching(el)
	}
	if err := svc.WatchElement(el, nil, onEnter, nil); err != nil {
		t.Fatalf("WatchElement failed: %v", err)
	}

	obs.Enter(el)
	obs.Exit(el)
	obs.Enter(el)

	if entered != 1 {
		t.Errorf("Expected a single enter, got %d", entered)
	}
	if svc.Len() != 0 {
		t.Errorf("Expected no watched elements, got %d", svc.Len())
	}
}

func TestService_ReplacesDuplicateRegistration(t *testing.T) {
	svc, obs := newTestService()
	el := vdom.NewElement("div", "0")
	var first, second handlerLog

	if err := svc.WatchElement(el, nil, first.onEnter, first.onExit); err != nil {
		t.Fatalf("WatchElement failed: %v", err)
	}
	if err := svc.WatchElement(el, map[string]any{"rootMargin": "50px"}, second.onEnter, second.onExit); err != nil {
		t.Fatalf("second WatchElement failed: %v", err)
	}

	obs.Enter(el)
	if len(first.enters) != 0 || len(second.enters) != 1 {
		t.Errorf("Expected only the latest registration to fire, got first=%d second=%d", len(first.enters), len(second.enters))
	}
	if opts, _ := obs.Observed(el); opts.RootMargin != "50px" {
		t.Errorf("Observer root margin = %q, want 50px", opts.RootMargin)
	}
	if svc.Len() != 1 {
		t.Errorf("Len() = %d, want 1", svc.Len())
	}
}

func TestService_ThresholdGatesEnter(t *testing.T) {
	svc, obs := newTestService()
	el := vdom.NewElement("div", "0")
	var h handlerLog

	if err := svc.WatchElement(el, map[string]any{"intersectionThreshold": 0.5}, h.onEnter, h.onExit); err != nil {
		t.Fatalf("WatchElement failed: %v", err)
	}

	obs.Trigger(el, Entry{IsIntersecting: true, IntersectionRatio: 0.2})
	if len(h.enters) != 0 {
		t.Errorf("Entry below threshold should not enter, got %d", len(h.enters))
	}
	obs.Trigger(el, Entry{IsIntersecting: true, IntersectionRatio: 0.6})
	if len(h.enters) != 1 {
		t.Errorf("Entry above threshold should enter, got %d", len(h.enters))
	}
	obs.Trigger(el, Entry{IsIntersecting: true, IntersectionRatio: 0.3})
	if len(h.exits) != 1 {
		t.Errorf("Dropping below threshold should exit, got %d", len(h.exits))
	}
}

func TestService_InvalidOptions(t *testing.T) {
	svc, obs := newTestService()
	el := vdom.NewElement("div", "0")

	err := svc.WatchElement(el, map[string]any{"intersectionThreshold": "half"}, nil, nil)
	if !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("Expected ErrInvalidOption, got %v", err)
	}
	if svc.IsWatching(el) {
		t.Error("Element should not be watched after invalid options")
	}
	if _, ok := obs.Observed(el); ok {
		t.Error("Element should not be observed after invalid options")
	}
}

type failingObserver struct{ *ManualObserver }

var errObserve = errors.New("not mounted")

func (failingObserver) Observe(*vdom.Element, ObserveOptions, func(Entry)) error { return errObserve }

func TestService_ObserverError(t *testing.T) {
	svc := NewService(failingObserver{NewManualObserver()}, config.Default().Viewport)
	el := vdom.NewElement("div", "0")

	if err := svc.WatchElement(el, nil, nil, nil); !errors.Is(err, errObserve) {
		t.Fatalf("Expected the observer error, got %v", err)
	}
	if svc.IsWatching(el) {
		t.Error("Failed registration should be rolled back")
	}
}

func TestService_Close(t *testing.T) {
	svc, obs := newTestService()
	a := vdom.NewElement("div", "a")
	b := vdom.NewElement("div", "b")

	for _, el := range []*vdom.Element{a, b} {
		if err := svc.WatchElement(el, nil, func(...any) {}, nil); err != nil {
			t.Fatalf("WatchElement failed: %v", err)
		}
	}
	svc.Close()

	if svc.Len() != 0 {
		t.Errorf("Len() = %d after Close, want 0", svc.Len())
	}
	for _, el := range []*vdom.Element{a, b} {
		if _, ok := obs.Observed(el); ok {
			t.Errorf("%s still observed after Close", el)
		}
	}
}

func TestService_AppliesDefaults(t *testing.T) {
	defaults := config.Default().Viewport
	defaults.RootMargin = "20px"
	defaults.ScrollableArea = "#feed"
	obs := NewManualObserver()
	svc := NewService(obs, defaults)
	el := vdom.NewElement("div", "0")

	if err := svc.WatchElement(el, map[string]any{"custom": 1}, nil, nil); err != nil {
		t.Fatalf("WatchElement failed: %v", err)
	}
	opts, ok := obs.Observed(el)
	if !ok {
		t.Fatal("Element should be observed")
	}
	if opts.RootMargin != "20px" || opts.Root != "#feed" {
		t.Errorf("Observer options = %+v, want defaults applied", opts)
	}
}
