package lazyimage

import (
	"github.com/vcrobe/nojs-viewport/inviewport"
	"github.com/vcrobe/nojs-viewport/runtime"
	"github.com/vcrobe/nojs-viewport/vdom"
)

// LazyImage renders a placeholder until the image scrolls into view, then
// swaps in the real source. It watches once.
type LazyImage struct {
	runtime.ComponentBase

	ID          string
	Src         string
	Placeholder string
	RootMargin  string

	Loaded bool
}

func (c *LazyImage) reveal(el *vdom.Element) {
	c.Loaded = true
	c.StateHasChanged()
}

func (c *LazyImage) Render(r runtime.Renderer) *vdom.VNode {
	src := c.Placeholder
	if c.Loaded {
		src = c.Src
	}

	named := map[string]any{"onEnter": c.reveal}
	if c.RootMargin != "" {
		named["rootMargin"] = c.RootMargin
	}

	return vdom.Div(map[string]any{"class": "lazy-image"},
		vdom.Image(src, map[string]any{"id": c.ID, "data-loaded": c.Loaded}).
			Modify(inviewport.Name, named),
	)
}
