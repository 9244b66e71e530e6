//go:build js && wasm && !dev
// +build js,wasm,!dev

package runtime

import "go.uber.org/zap"

// callOnInit invokes the OnInit lifecycle method in production mode.
// In production mode, panics are recovered and logged to prevent application crashes.
func (r *RendererImpl) callOnInit(initializer Initializer, key string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("OnInit panic", zap.String("component", key), zap.Any("panic", rec))
		}
	}()
	initializer.OnInit()
}

// callOnParametersSet invokes the OnParametersSet lifecycle method in production mode.
// In production mode, panics are recovered and logged to prevent application crashes.
func (r *RendererImpl) callOnParametersSet(receiver ParameterReceiver, key string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("OnParametersSet panic", zap.String("component", key), zap.Any("panic", rec))
		}
	}()
	receiver.OnPropertiesSet()
}

// callOnDestroy invokes the OnDestroy lifecycle method in production mode.
// In production mode, panics are recovered and logged to prevent application crashes.
func (r *RendererImpl) callOnDestroy(cleaner Cleaner, key string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("OnDestroy panic", zap.String("component", key), zap.Any("panic", rec))
		}
	}()
	cleaner.OnDestroy()
}
