//go:build js && wasm
// +build js,wasm

package main

import (
	_ "embed"

	"go.uber.org/zap"

	"github.com/vcrobe/nojs-viewport/appcomponents"
	"github.com/vcrobe/nojs-viewport/config"
	"github.com/vcrobe/nojs-viewport/console"
	"github.com/vcrobe/nojs-viewport/inviewport"
	"github.com/vcrobe/nojs-viewport/logging"
	"github.com/vcrobe/nojs-viewport/runtime"
	"github.com/vcrobe/nojs-viewport/viewport"
)

//go:embed nojs.yaml
var configYAML []byte

func main() {
	// 1. Load configuration and set up logging
	cfg, err := config.Parse(configYAML)
	if err != nil {
		console.Error("Invalid configuration:", err.Error())
		cfg = config.Default()
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		panic("Error creating logger: " + err.Error())
	}

	runtime.SetLogger(logger)
	viewport.SetLogger(logger)
	inviewport.SetLogger(logger)

	// 2. Create the viewport service over the browser's IntersectionObserver
	svc := viewport.NewService(viewport.DefaultObserver(), cfg.Viewport)

	// 3. Register element modifiers
	modifiers := runtime.NewModifierManager()
	inviewport.Register(modifiers, svc, inviewport.WithSpyDefault(cfg.Viewport.ViewportSpy))

	// 4. Create the Renderer and mount the page
	renderer := runtime.NewRenderer(modifiers, "#app")
	renderer.SetCurrentComponent(&appcomponents.Gallery{})
	renderer.RenderRoot()

	logger.Info("app mounted", zap.Int("watched", svc.Len()))

	// Keep the Go program running
	select {}
}
