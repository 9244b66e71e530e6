package runtime

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/vcrobe/nojs-viewport/vdom"
)

// Modifier is an element-level behavior installed by the renderer. Modify
// runs when the element is attached and on every render after that;
// Dispose runs once when the element leaves the tree.
type Modifier interface {
	Modify(el *vdom.Element, positional []any, named map[string]any) error
	Dispose()
}

// ModifierFactory creates a fresh modifier instance.
type ModifierFactory func() Modifier

// ModifierManager owns the modifier instances of a render tree. It is the
// modifier counterpart of the component instance map kept by the renderer.
type ModifierManager struct {
	factories map[string]ModifierFactory
	instances map[string]*modifierInstance
	active    map[string]bool
	logger    *zap.Logger
}

type modifierInstance struct {
	name     string
	el       *vdom.Element
	modifier Modifier
}

// NewModifierManager creates an empty manager.
func NewModifierManager() *ModifierManager {
	return &ModifierManager{
		factories: make(map[string]ModifierFactory),
		instances: make(map[string]*modifierInstance),
		active:    make(map[string]bool),
		logger:    Logger().Named("modifiers"),
	}
}

// Register makes a modifier available under name.
func (m *ModifierManager) Register(name string, factory ModifierFactory) {
	m.factories[name] = factory
}

// BeginCycle starts a render pass.
func (m *ModifierManager) BeginCycle() {
	m.active = make(map[string]bool)
}

// Apply installs or updates the modifier identified by key. A new instance
// is created the first time a key is seen, or when the element behind the
// key was replaced.
func (m *ModifierManager) Apply(key, name string, el *vdom.Element, positional []any, named map[string]any) error {
	m.active[key] = true

	inst, ok := m.instances[key]
	if ok && (inst.name != name || inst.el != el) {
		m.dispose(key, inst)
		ok = false
	}

	if !ok {
		factory, found := m.factories[name]
		if !found {
			return fmt.Errorf("modifier %q is not registered", name)
		}
		inst = &modifierInstance{name: name, el: el, modifier: factory()}
		if err := m.callModify(inst.modifier, key, el, positional, named); err != nil {
			// Nothing else holds the instance, release it now.
			m.callDispose(inst.modifier, key)
			return fmt.Errorf("modifier %s on %s: %w", name, el, err)
		}
		m.instances[key] = inst
		m.logger.Debug("modifier installed", zap.String("key", key), zap.String("name", name))
		return nil
	}

	if err := m.callModify(inst.modifier, key, el, positional, named); err != nil {
		return fmt.Errorf("modifier %s on %s: %w", name, el, err)
	}
	return nil
}

// EndCycle disposes the modifiers that were not applied since BeginCycle.
func (m *ModifierManager) EndCycle() {
	for key, inst := range m.instances {
		if !m.active[key] {
			m.dispose(key, inst)
		}
	}
}

// ApplyTree runs a full cycle over every modifier binding in the tree.
// Bindings on nodes without a mounted element are reported as errors.
func (m *ModifierManager) ApplyTree(root *vdom.VNode) error {
	var errs error

	m.BeginCycle()
	vdom.Walk(root, func(path string, n *vdom.VNode) {
		for i, binding := range n.Modifiers {
			key := vdom.ModifierKey(path, n, i)
			if n.Element == nil {
				errs = multierr.Append(errs, fmt.Errorf("modifier %s at %s: node <%s> is not mounted", binding.Name, path, n.Tag))
				continue
			}
			errs = multierr.Append(errs, m.Apply(key, binding.Name, n.Element, binding.Positional, binding.Named))
		}
	})
	m.EndCycle()

	return errs
}

// DisposeAll disposes every modifier.
func (m *ModifierManager) DisposeAll() {
	for key, inst := range m.instances {
		m.dispose(key, inst)
	}
}

// Len returns the number of live modifiers.
func (m *ModifierManager) Len() int {
	return len(m.instances)
}

// Lookup returns the live modifier for key.
func (m *ModifierManager) Lookup(key string) (Modifier, bool) {
	inst, ok := m.instances[key]
	if !ok {
		return nil, false
	}
	return inst.modifier, true
}

func (m *ModifierManager) dispose(key string, inst *modifierInstance) {
	m.callDispose(inst.modifier, key)
	delete(m.instances, key)
	m.logger.Debug("modifier disposed", zap.String("key", key), zap.String("name", inst.name))
}
