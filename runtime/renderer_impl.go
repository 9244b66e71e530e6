//go:build js && wasm
// +build js,wasm

package runtime

import (
	"go.uber.org/zap"

	"github.com/vcrobe/nojs-viewport/vdom"
)

// Compile-time assertion to ensure the concrete RendererImpl implements the Renderer interface.
var _ Renderer = (*RendererImpl)(nil)

// RendererImpl is the concrete implementation of the Renderer interface.
// It manages the component instance tree, patches the DOM and keeps the
// modifiers of the rendered elements in sync.
type RendererImpl struct {
	instances        map[string]Component
	initialized      map[string]bool // Track which components have been initialized
	activeKeys       map[string]bool // Track which components are active in the current render
	currentComponent Component       // The currently active root component
	modifiers        *ModifierManager
	mountID          string
	prevVDOM         *vdom.VNode // Previous VDOM tree for patching
	logger           *zap.Logger
}

// NewRenderer creates a new runtime renderer mounted at the element matching mountID.
// modifiers may be nil when the application uses no element modifiers.
func NewRenderer(modifiers *ModifierManager, mountID string) *RendererImpl {
	if modifiers == nil {
		modifiers = NewModifierManager()
	}
	return &RendererImpl{
		instances:   make(map[string]Component),
		initialized: make(map[string]bool),
		activeKeys:  make(map[string]bool),
		modifiers:   modifiers,
		mountID:     mountID,
		logger:      Logger().Named("renderer"),
	}
}

// SetCurrentComponent sets the component to be rendered.
func (r *RendererImpl) SetCurrentComponent(comp Component) {
	r.currentComponent = comp
}

// RenderRoot starts the rendering process for the entire application.
func (r *RendererImpl) RenderRoot() {
	if r.currentComponent == nil {
		return
	}

	// Reset activeKeys for this render cycle
	r.activeKeys = make(map[string]bool)

	r.currentComponent.SetRenderer(r)

	if !r.initialized["__root__"] {
		// Call OnInit only once, before first render
		if initializer, ok := r.currentComponent.(Initializer); ok {
			r.callOnInit(initializer, "__root__")
		}
		r.initialized["__root__"] = true
	}

	// Call OnParametersSet before every render (including first)
	if paramReceiver, ok := r.currentComponent.(ParameterReceiver); ok {
		r.callOnParametersSet(paramReceiver, "__root__")
	}

	newVDOM := r.currentComponent.Render(r)

	if r.prevVDOM == nil {
		// Initial render: clear and render fresh
		vdom.Clear(r.mountID, nil)
		vdom.RenderToSelector(r.mountID, newVDOM)
	} else {
		// Subsequent renders: patch the existing DOM
		vdom.Patch(r.mountID, r.prevVDOM, newVDOM)
	}

	// Store the new VDOM tree for the next render cycle
	r.prevVDOM = newVDOM

	// Elements are mounted now; bring their modifiers up to date.
	if err := r.modifiers.ApplyTree(newVDOM); err != nil {
		r.logger.Error("modifier update failed", zap.Error(err))
	}

	// Clean up components that were not rendered in this cycle
	r.cleanupUnmountedComponents()
}

// RenderChild handles instance creation and reuse for child components.
func (r *RendererImpl) RenderChild(key string, childWithProps Component) *vdom.VNode {
	// Mark this component as active in the current render cycle
	r.activeKeys[key] = true

	instance, exists := r.instances[key]
	isFirstRender := false

	if !exists {
		instance = childWithProps
		r.instances[key] = instance
		isFirstRender = true
	} else if updater, ok := instance.(PropUpdater); ok {
		// Preserve the existing instance to keep state, apply the new props.
		updater.ApplyProps(childWithProps)
	}

	instance.SetRenderer(r)

	if isFirstRender {
		if initializer, ok := instance.(Initializer); ok {
			r.callOnInit(initializer, key)
		}
		r.initialized[key] = true
	}

	if paramReceiver, ok := instance.(ParameterReceiver); ok {
		r.callOnParametersSet(paramReceiver, key)
	}

	return instance.Render(r)
}

// cleanupUnmountedComponents removes components that are no longer in the tree
// and calls their OnDestroy lifecycle method if they implement the Cleaner interface.
func (r *RendererImpl) cleanupUnmountedComponents() {
	for key, instance := range r.instances {
		if !r.activeKeys[key] {
			if cleaner, ok := instance.(Cleaner); ok {
				r.callOnDestroy(cleaner, key)
			}

			delete(r.instances, key)
			delete(r.initialized, key)
		}
	}
}

// ReRender patches the DOM with minimal changes.
func (r *RendererImpl) ReRender() {
	r.RenderRoot()
}

// Unmount disposes every modifier and clears the mount element.
func (r *RendererImpl) Unmount() {
	r.modifiers.DisposeAll()
	for key, instance := range r.instances {
		if cleaner, ok := instance.(Cleaner); ok {
			r.callOnDestroy(cleaner, key)
		}
	}
	r.instances = make(map[string]Component)
	r.initialized = make(map[string]bool)
	vdom.Clear(r.mountID, r.prevVDOM)
	r.prevVDOM = nil
}
