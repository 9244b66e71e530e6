package testcomponents

import (
	"strconv"

	"github.com/vcrobe/nojs-viewport/runtime"
	"github.com/vcrobe/nojs-viewport/vdom"
)

// TestRenderer is a minimal test harness that implements runtime.Renderer
// for in-memory testing without browser or WASM dependencies.
//
// It captures VDOM output from component renders and allows tests to:
// - Attach components to the renderer
// - Trigger re-renders via StateHasChanged()
// - Inspect the resulting VDOM tree
// - Drive element modifiers through a runtime.ModifierManager
//
// Mounting mirrors the browser patcher: a node keeps its element handle
// while its tag at the same position is unchanged.
type TestRenderer struct {
	currentVDOM *vdom.VNode
	component   runtime.Component
	modifiers   *runtime.ModifierManager
	modifierErr error
	renders     int
}

// Compile-time assertion to ensure TestRenderer implements runtime.Renderer interface.
var _ runtime.Renderer = (*TestRenderer)(nil)

// NewTestRenderer creates a test renderer attached to the given component.
func NewTestRenderer(comp runtime.Component) *TestRenderer {
	r := &TestRenderer{
		component: comp,
		modifiers: runtime.NewModifierManager(),
	}
	comp.SetRenderer(r)
	return r
}

// UseModifiers replaces the modifier manager. Call it before RenderRoot.
func (r *TestRenderer) UseModifiers(mm *runtime.ModifierManager) *TestRenderer {
	r.modifiers = mm
	return r
}

// RenderRoot performs the initial render of the component.
// This should be called at the start of a test to get the initial VDOM.
func (r *TestRenderer) RenderRoot() *vdom.VNode {
	r.render()
	return r.currentVDOM
}

// ReRender performs a re-render of the component.
// This is called by StateHasChanged() when the component requests a re-render.
func (r *TestRenderer) ReRender() {
	r.render()
}

func (r *TestRenderer) render() {
	next := r.component.Render(r)
	mount(r.currentVDOM, next, "0")
	r.currentVDOM = next
	r.renders++
	r.modifierErr = r.modifiers.ApplyTree(next)
}

// GetCurrentVDOM returns the most recently rendered VDOM tree.
// Tests use this to inspect the component's output after renders.
func (r *TestRenderer) GetCurrentVDOM() *vdom.VNode {
	return r.currentVDOM
}

// RenderCount returns how many times the component was rendered.
func (r *TestRenderer) RenderCount() int {
	return r.renders
}

// ModifierError returns the error reported by modifiers during the last render.
func (r *TestRenderer) ModifierError() error {
	return r.modifierErr
}

// Unmount disposes every modifier, as the renderer does when the
// application is torn down.
func (r *TestRenderer) Unmount() {
	r.modifiers.DisposeAll()
	r.currentVDOM = nil
}

// HTML serializes the current tree.
func (r *TestRenderer) HTML() (string, error) {
	return vdom.HTMLString(r.currentVDOM)
}

// FindByID returns the node of the current tree whose id attribute is id.
func (r *TestRenderer) FindByID(id string) *vdom.VNode {
	var found *vdom.VNode
	vdom.Walk(r.currentVDOM, func(_ string, n *vdom.VNode) {
		if found == nil && n.Attributes != nil && n.Attributes["id"] == id {
			found = n
		}
	})
	return found
}

// RenderChild is a stub for child component rendering.
func (r *TestRenderer) RenderChild(key string, child runtime.Component) *vdom.VNode {
	child.SetRenderer(r)
	return child.Render(r)
}

func mount(prev, next *vdom.VNode, path string) {
	if next == nil {
		return
	}
	switch {
	case prev != nil && prev.Tag == next.Tag && prev.Element != nil:
		next.Element = prev.Element
	case next.Tag != "#text":
		next.Element = vdom.NewElement(next.Tag, path)
	}
	for i, child := range next.Children {
		var prevChild *vdom.VNode
		if prev != nil && i < len(prev.Children) {
			prevChild = prev.Children[i]
		}
		mount(prevChild, child, path+"/"+strconv.Itoa(i))
	}
}
