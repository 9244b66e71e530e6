package inviewport

import "github.com/vcrobe/nojs-viewport/runtime"

var _ runtime.Modifier = (*Modifier)(nil)

// Register makes the modifier available to the renderer under Name. Every
// element gets its own Modifier bound to w.
func Register(mm *runtime.ModifierManager, w Watcher, opts ...Option) {
	mm.Register(Name, func() runtime.Modifier {
		return New(w, opts...)
	})
}
