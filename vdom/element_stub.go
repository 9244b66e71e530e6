//go:build !(js && wasm)
// +build !js !wasm

package vdom

// Outside the browser elements carry no platform node.
type handle struct{}
