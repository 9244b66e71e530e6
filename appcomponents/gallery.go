package appcomponents

import (
	"fmt"

	"github.com/vcrobe/nojs-viewport/components/feed"
	"github.com/vcrobe/nojs-viewport/components/lazyimage"
	"github.com/vcrobe/nojs-viewport/runtime"
	"github.com/vcrobe/nojs-viewport/vdom"
)

// Gallery is the demo page: a column of lazily loaded images followed by a
// feed that tracks what is on screen.
type Gallery struct {
	runtime.ComponentBase

	Images []string
	Feed   *feed.Feed
}

// OnInit fills the page with sample content.
func (g *Gallery) OnInit() {
	if len(g.Images) == 0 {
		for i := 1; i <= 12; i++ {
			g.Images = append(g.Images, fmt.Sprintf("https://picsum.photos/seed/nojs-%d/640/360", i))
		}
	}
	if g.Feed == nil {
		g.Feed = feed.NewFeed("alpha", "bravo", "charlie", "delta", "echo")
	}
}

// OnDestroy releases the feed subscription.
func (g *Gallery) OnDestroy() {
	if g.Feed != nil {
		g.Feed.OnDestroy()
	}
}

func (g *Gallery) Render(r runtime.Renderer) *vdom.VNode {
	children := []*vdom.VNode{vdom.Paragraph("Scroll down: images load as they enter the viewport.", nil)}
	for i, src := range g.Images {
		key := fmt.Sprintf("image-%d", i)
		children = append(children, r.RenderChild(key, &lazyimage.LazyImage{
			ID:          key,
			Src:         src,
			Placeholder: "data:image/gif;base64,R0lGODlhAQABAAAAACw=",
			RootMargin:  "200px",
		}))
	}
	if g.Feed != nil {
		children = append(children, r.RenderChild("feed", g.Feed))
	}
	return vdom.Div(map[string]any{"class": "gallery"}, children...)
}
