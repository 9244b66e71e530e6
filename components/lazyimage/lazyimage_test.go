package lazyimage

import (
	"strings"
	"testing"

	"github.com/vcrobe/nojs-viewport/config"
	"github.com/vcrobe/nojs-viewport/inviewport"
	"github.com/vcrobe/nojs-viewport/runtime"
	"github.com/vcrobe/nojs-viewport/testcomponents"
	"github.com/vcrobe/nojs-viewport/vdom"
	"github.com/vcrobe/nojs-viewport/viewport"
)

func setup(t *testing.T, c *LazyImage) (*testcomponents.TestRenderer, *viewport.Service, *viewport.ManualObserver) {
	t.Helper()
	obs := viewport.NewManualObserver()
	svc := viewport.NewService(obs, config.Default().Viewport)

	mm := runtime.NewModifierManager()
	inviewport.Register(mm, svc, inviewport.WithRegistry(inviewport.NewWatchedSet()))

	renderer := testcomponents.NewTestRenderer(c).UseModifiers(mm)
	return renderer, svc, obs
}

// TestLazyImage_LoadsOnEnter verifies that the real source is swapped in
// once the image enters the viewport, and that the watcher is released.
func TestLazyImage_LoadsOnEnter(t *testing.T) {
	// Arrange
	c := &LazyImage{ID: "hero", Src: "/img/hero.jpg", Placeholder: "/img/blur.jpg"}
	renderer, svc, obs := setup(t, c)

	vnode := renderer.RenderRoot()
	if err := renderer.ModifierError(); err != nil {
		t.Fatalf("Modifier error on initial render: %v", err)
	}

	img := vnode.Children[0]
	if img.Attributes["src"] != "/img/blur.jpg" {
		t.Errorf("Expected placeholder before entering, got %v", img.Attributes["src"])
	}
	if !svc.IsWatching(img.Element) {
		t.Fatal("Expected the image to be watched after the first render")
	}

	// Act
	obs.Enter(img.Element)

	// Assert
	if !c.Loaded {
		t.Fatal("Expected the component to be loaded")
	}
	img = renderer.FindByID("hero")
	if img.Attributes["src"] != "/img/hero.jpg" {
		t.Errorf("Expected the real source after entering, got %v", img.Attributes["src"])
	}
	if svc.IsWatching(img.Element) {
		t.Error("Expected the watcher to stop after the first enter")
	}
	if renderer.RenderCount() != 2 {
		t.Errorf("Expected 2 renders, got %d", renderer.RenderCount())
	}
}

// TestLazyImage_ReRenderKeepsRegistration verifies that re-rendering with
// the same options does not re-register the element.
func TestLazyImage_ReRenderKeepsRegistration(t *testing.T) {
	c := &LazyImage{ID: "thumb", Src: "/a.png", Placeholder: "/p.png", RootMargin: "100px"}
	renderer, svc, obs := setup(t, c)

	first := renderer.RenderRoot().Children[0].Element
	renderer.ReRender()
	second := renderer.GetCurrentVDOM().Children[0].Element

	if first != second {
		t.Fatal("Expected the element handle to survive the re-render")
	}
	if svc.Len() != 1 {
		t.Errorf("Expected 1 watched element, got %d", svc.Len())
	}
	opts, ok := obs.Observed(second)
	if !ok || opts.RootMargin != "100px" {
		t.Errorf("Observer options = %+v (observed=%v), want rootMargin 100px", opts, ok)
	}
}

// TestLazyImage_OptionChangeReRegisters verifies that changed options
// replace the observer registration.
func TestLazyImage_OptionChangeReRegisters(t *testing.T) {
	c := &LazyImage{ID: "thumb", Src: "/a.png", Placeholder: "/p.png", RootMargin: "0px"}
	renderer, _, obs := setup(t, c)

	el := renderer.RenderRoot().Children[0].Element

	c.RootMargin = "250px"
	c.StateHasChanged()

	opts, ok := obs.Observed(el)
	if !ok {
		t.Fatal("Expected the element to still be observed")
	}
	if opts.RootMargin != "250px" {
		t.Errorf("Expected rootMargin 250px after the change, got %q", opts.RootMargin)
	}
}

// TestLazyImage_UnmountStopsWatching verifies teardown.
func TestLazyImage_UnmountStopsWatching(t *testing.T) {
	c := &LazyImage{ID: "hero", Src: "/a.png", Placeholder: "/p.png"}
	renderer, svc, _ := setup(t, c)

	renderer.RenderRoot()
	renderer.Unmount()

	if svc.Len() != 0 {
		t.Errorf("Expected no watched elements after unmount, got %d", svc.Len())
	}
}

// TestLazyImage_HTML verifies the static markup marks the modifier.
func TestLazyImage_HTML(t *testing.T) {
	c := &LazyImage{ID: "hero", Src: "/a.png", Placeholder: "/p.png"}
	renderer, _, _ := setup(t, c)
	renderer.RenderRoot()

	html, err := renderer.HTML()
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	for _, want := range []string{`class="lazy-image"`, `id="hero"`, `src="/p.png"`, `data-nojs-modifiers="in-viewport"`} {
		if !strings.Contains(html, want) {
			t.Errorf("Expected %s in %s", want, html)
		}
	}
	if strings.Contains(html, "data-loaded") {
		t.Errorf("False boolean attribute should be omitted: %s", html)
	}
}

// prefetchBox widens its margin on the first enter so the next images are
// fetched earlier.
type prefetchBox struct {
	runtime.ComponentBase

	margin string
	enters int
}

func (c *prefetchBox) widen() {
	c.enters++
	c.margin = "200px"
	c.StateHasChanged()
}

func (c *prefetchBox) Render(r runtime.Renderer) *vdom.VNode {
	return vdom.Div(map[string]any{"id": "box"}).
		Modify(inviewport.Name, map[string]any{"onEnter": c.widen, "rootMargin": c.margin})
}

// TestOnEnter_ReRenderWithNewOptionsKeepsWatching verifies that a watcher
// re-registered by the re-render of an onEnter callback stays active.
func TestOnEnter_ReRenderWithNewOptionsKeepsWatching(t *testing.T) {
	// Arrange
	obs := viewport.NewManualObserver()
	svc := viewport.NewService(obs, config.Default().Viewport)
	mm := runtime.NewModifierManager()
	inviewport.Register(mm, svc, inviewport.WithRegistry(inviewport.NewWatchedSet()))

	c := &prefetchBox{margin: "0px"}
	renderer := testcomponents.NewTestRenderer(c).UseModifiers(mm)
	el := renderer.RenderRoot().Element

	// Act
	obs.Enter(el)

	// Assert
	if err := renderer.ModifierError(); err != nil {
		t.Fatalf("Modifier error on re-render: %v", err)
	}
	if c.enters != 1 {
		t.Fatalf("Expected 1 enter, got %d", c.enters)
	}
	if !svc.IsWatching(el) {
		t.Fatal("Expected the re-registered element to be watched")
	}
	opts, ok := obs.Observed(el)
	if !ok || opts.RootMargin != "200px" {
		t.Errorf("Observer options = %+v (observed=%v), want rootMargin 200px", opts, ok)
	}
}

// TestLazyImage_ConfiguredSpyDefault verifies that viewportSpy from the
// configuration keeps images watched after they load.
func TestLazyImage_ConfiguredSpyDefault(t *testing.T) {
	// Arrange
	cfg, err := config.Parse([]byte("viewport:\n  viewportSpy: true\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	obs := viewport.NewManualObserver()
	svc := viewport.NewService(obs, cfg.Viewport)
	mm := runtime.NewModifierManager()
	inviewport.Register(mm, svc,
		inviewport.WithRegistry(inviewport.NewWatchedSet()),
		inviewport.WithSpyDefault(cfg.Viewport.ViewportSpy),
	)

	c := &LazyImage{ID: "hero", Src: "/a.png", Placeholder: "/p.png"}
	renderer := testcomponents.NewTestRenderer(c).UseModifiers(mm)
	el := renderer.RenderRoot().Children[0].Element

	// Act
	obs.Enter(el)
	obs.Exit(el)
	obs.Enter(el)

	// Assert
	if !c.Loaded {
		t.Fatal("Expected the image to load on enter")
	}
	if !svc.IsWatching(el) {
		t.Error("Expected the image to stay watched with viewportSpy enabled in config")
	}
	if renderer.RenderCount() != 3 {
		t.Errorf("Expected 3 renders, got %d", renderer.RenderCount())
	}
}
