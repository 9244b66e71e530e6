package feed

import (
	"fmt"

	"github.com/vcrobe/nojs-viewport/inviewport"
	"github.com/vcrobe/nojs-viewport/runtime"
	"github.com/vcrobe/nojs-viewport/signals"
	"github.com/vcrobe/nojs-viewport/vdom"
	"github.com/vcrobe/nojs-viewport/viewport"
)

// Feed lists items and keeps a live count of how many are on screen. Every
// item is spied on, so enter and exit keep firing while it is mounted.
type Feed struct {
	runtime.ComponentBase

	Items []string

	visible     *signals.Signal[int]
	seen        map[string]float64
	unsubscribe func()
}

// NewFeed creates a feed over items.
func NewFeed(items ...string) *Feed {
	f := &Feed{
		Items:   items,
		visible: signals.NewSignal(0),
		seen:    make(map[string]float64),
	}
	f.unsubscribe = f.visible.Subscribe(f.StateHasChanged)
	return f
}

// Visible returns the number of items currently in view.
func (f *Feed) Visible() int {
	return f.visible.Get()
}

// Seen returns the last intersection ratio reported for an item.
func (f *Feed) Seen(item string) (float64, bool) {
	ratio, ok := f.seen[item]
	return ratio, ok
}

// OnDestroy stops re-rendering on count changes.
func (f *Feed) OnDestroy() {
	f.unsubscribe()
}

func (f *Feed) entered(item string) inviewport.Callback {
	return func(_ *vdom.Element, args ...any) {
		if len(args) > 0 {
			if e, ok := args[0].(viewport.Entry); ok {
				f.seen[item] = e.IntersectionRatio
			}
		}
		f.visible.Update(func(n int) int { return n + 1 })
	}
}

func (f *Feed) exited(item string) inviewport.Callback {
	return func(*vdom.Element, ...any) {
		f.visible.Update(func(n int) int { return n - 1 })
	}
}

func (f *Feed) Render(r runtime.Renderer) *vdom.VNode {
	children := []*vdom.VNode{
		vdom.Paragraph(fmt.Sprintf("Visible: %d", f.visible.Get()), map[string]any{"id": "counter"}),
	}
	for _, item := range f.Items {
		children = append(children, vdom.Section(map[string]any{"id": "item-" + item},
			vdom.Text(item),
		).Modify(inviewport.Name, map[string]any{
			"onEnter":               f.entered(item),
			"onExit":                f.exited(item),
			"viewportSpy":           true,
			"intersectionThreshold": []any{0, 0.5},
		}))
	}
	return vdom.Div(map[string]any{"class": "feed"}, children...)
}
