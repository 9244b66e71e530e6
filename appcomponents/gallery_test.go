package appcomponents

import (
	"testing"

	"github.com/vcrobe/nojs-viewport/config"
	"github.com/vcrobe/nojs-viewport/inviewport"
	"github.com/vcrobe/nojs-viewport/runtime"
	"github.com/vcrobe/nojs-viewport/testcomponents"
	"github.com/vcrobe/nojs-viewport/viewport"
)

// TestGallery_WatchesEveryImage verifies that the demo page installs one
// watcher per image and per feed item.
func TestGallery_WatchesEveryImage(t *testing.T) {
	g := &Gallery{}
	g.OnInit()
	defer g.OnDestroy()

	svc := viewport.NewService(viewport.NewManualObserver(), config.Default().Viewport)
	mm := runtime.NewModifierManager()
	inviewport.Register(mm, svc, inviewport.WithRegistry(inviewport.NewWatchedSet()))

	renderer := testcomponents.NewTestRenderer(g).UseModifiers(mm)
	renderer.RenderRoot()

	if err := renderer.ModifierError(); err != nil {
		t.Fatalf("Modifier error: %v", err)
	}
	want := len(g.Images) + len(g.Feed.Items)
	if svc.Len() != want {
		t.Errorf("Expected %d watched elements, got %d", want, svc.Len())
	}

	renderer.Unmount()
	if svc.Len() != 0 {
		t.Errorf("Expected no watched elements after unmount, got %d", svc.Len())
	}
}
