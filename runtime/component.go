package runtime

import "github.com/vcrobe/nojs-viewport/vdom"

// Component interface defines the structure for all components in the framework.
// This interface has NO build tags, making it available to both WASM and native test builds.
// The Render method accepts the Renderer interface (not concrete type) so both WASM
// and test implementations can use it.
type Component interface {
	// Render generates the virtual DOM tree for this component.
	// The renderer parameter provides access to framework services like RenderChild.
	Render(r Renderer) *vdom.VNode

	// SetRenderer is called by the framework to attach the renderer to the component.
	// This enables StateHasChanged() to trigger re-renders.
	SetRenderer(r Renderer)
}

// Initializer is implemented by components that need setup before their
// first render.
type Initializer interface {
	OnInit()
}

// ParameterReceiver is implemented by components that react to new
// properties before every render.
type ParameterReceiver interface {
	OnPropertiesSet()
}

// PropUpdater copies the properties of a freshly constructed component onto
// the instance the renderer keeps alive.
type PropUpdater interface {
	ApplyProps(source Component)
}

// Cleaner is implemented by components that release resources when they
// leave the tree.
type Cleaner interface {
	OnDestroy()
}
