//go:build js && wasm
// +build js,wasm

package vdom

import (
	"strconv"
	"syscall/js"

	"github.com/vcrobe/nojs-viewport/console"
)

// releaseCallbacks releases all js.Func objects stored in a VNode.
func releaseCallbacks(v *VNode) {
	if v == nil {
		return
	}

	for _, cb := range v.GetEventCallbacks() {
		if jsFunc, ok := cb.(js.Func); ok {
			jsFunc.Release()
		}
	}
	v.ClearEventCallbacks()
}

// deepReleaseCallbacks recursively releases all callbacks in the entire VNode tree.
func deepReleaseCallbacks(v *VNode) {
	if v == nil {
		return
	}

	releaseCallbacks(v)

	for _, child := range v.Children {
		deepReleaseCallbacks(child)
	}
}

// Clear empties the mount element and releases the callbacks of prevVDOM.
func Clear(selector string, prevVDOM *VNode) {
	if selector == "" {
		return
	}

	if prevVDOM != nil {
		deepReleaseCallbacks(prevVDOM)
	}

	mount := querySelector(selector)
	if !mount.Truthy() {
		return
	}

	mount.Set("innerHTML", "")
}

// RenderToSelector mounts the VNode under the first element matching the CSS selector.
func RenderToSelector(selector string, n *VNode) {
	if n == nil || selector == "" {
		return
	}

	mount := querySelector(selector)
	if !mount.Truthy() {
		return
	}

	RenderTo(mount, n)
}

// RenderTo appends the rendered node to a specific mount element.
func RenderTo(mount js.Value, n *VNode) {
	if n == nil {
		return
	}

	el := createElement(n, "0")
	if el.Truthy() {
		mount.Call("appendChild", el)
	}
}

func querySelector(selector string) js.Value {
	doc := js.Global().Get("document")
	if !doc.Truthy() {
		return js.Undefined()
	}
	mount := doc.Call("querySelector", selector)
	if !mount.Truthy() {
		console.Error("Mount element not found for selector:", selector)
	}
	return mount
}

// setAttributeValue sets an attribute on an element, handling boolean attributes and event handlers correctly.
func setAttributeValue(el js.Value, key string, value any) {
	switch v := value.(type) {
	case bool:
		// Boolean attributes are present or absent
		if v {
			el.Call("setAttribute", key, "")
		} else {
			el.Call("removeAttribute", key)
		}
		return
	case func(js.Value), func():
		// Handlers are attached with addEventListener
		return
	}
	el.Call("setAttribute", key, value)
}

// attachEventListeners processes attributes and attaches event listeners for event handlers.
// Event attributes start with "on" (e.g., onClick, onInput, onMousedown).
func attachEventListeners(el js.Value, vnode *VNode) {
	if vnode.OnClick != nil {
		onClick := vnode.OnClick
		cb := js.FuncOf(func(this js.Value, args []js.Value) any {
			onClick()
			return nil
		})
		el.Call("addEventListener", "click", cb)
		vnode.AddEventCallback(cb)
	}

	for key, value := range vnode.Attributes {
		if !isEventAttribute(key) {
			continue
		}
		handler, ok := value.(func(js.Value))
		if !ok {
			continue
		}
		// "onClick" -> "click"
		eventName := string(key[2]+('a'-'A')) + key[3:]

		cb := js.FuncOf(func(this js.Value, args []js.Value) any {
			if len(args) > 0 {
				handler(args[0])
			}
			return nil
		})
		el.Call("addEventListener", eventName, cb)
		vnode.AddEventCallback(cb)
	}
}

func createElement(n *VNode, path string) js.Value {
	doc := js.Global().Get("document")
	if !doc.Truthy() || n == nil {
		return js.Undefined()
	}

	if n.Tag == "#text" {
		if n.Content == "" {
			return js.Undefined()
		}
		return doc.Call("createTextNode", n.Content)
	}

	el := doc.Call("createElement", n.Tag)
	n.Element = WrapElement(n.Tag, path, el)

	for k, v := range n.Attributes {
		setAttributeValue(el, k, v)
	}
	attachEventListeners(el, n)

	switch n.Tag {
	case "input", "textarea", "select":
		if n.Content != "" {
			el.Set("value", n.Content)
		}
		return el
	}

	if n.Content != "" && len(n.Children) == 0 {
		el.Set("textContent", n.Content)
	}
	for i, child := range n.Children {
		childEl := createElement(child, path+"/"+strconv.Itoa(i))
		if childEl.Truthy() {
			el.Call("appendChild", childEl)
		}
	}
	return el
}

// Patch updates the DOM by comparing old and new VDOM trees and applying minimal changes.
func Patch(mountSelector string, oldVNode, newVNode *VNode) {
	if oldVNode == nil || newVNode == nil {
		return
	}

	mount := querySelector(mountSelector)
	if !mount.Truthy() {
		return
	}

	rootElement := mount.Get("firstChild")
	if !rootElement.Truthy() {
		// No existing DOM, just render fresh
		RenderTo(mount, newVNode)
		return
	}

	patchElement(rootElement, oldVNode, newVNode, "0")
}

// patchElement updates a single DOM element based on VDOM differences.
func patchElement(domElement js.Value, oldVNode, newVNode *VNode, path string) {
	if !domElement.Truthy() || oldVNode == nil || newVNode == nil {
		return
	}

	// If tags are different, replace the entire element
	if oldVNode.Tag != newVNode.Tag {
		deepReleaseCallbacks(oldVNode)

		newElement := createElement(newVNode, path)
		if newElement.Truthy() {
			parent := domElement.Get("parentNode")
			if parent.Truthy() {
				parent.Call("replaceChild", newElement, domElement)
			}
		}
		return
	}

	if newVNode.Tag == "#text" {
		if oldVNode.Content != newVNode.Content {
			domElement.Set("nodeValue", newVNode.Content)
		}
		return
	}

	// Same tag: the DOM node survives, and so does its handle.
	newVNode.Element = oldVNode.Element
	if newVNode.Element == nil {
		newVNode.Element = WrapElement(newVNode.Tag, path, domElement)
	}

	patchAttributes(domElement, oldVNode.Attributes, newVNode.Attributes)

	releaseCallbacks(oldVNode)
	attachEventListeners(domElement, newVNode)

	switch newVNode.Tag {
	case "input", "textarea":
		// Only update value if element is NOT currently focused
		isFocused := domElement.Call("matches", ":focus")
		if !isFocused.Bool() && newVNode.Content != "" {
			if domElement.Get("value").String() != newVNode.Content {
				domElement.Set("value", newVNode.Content)
			}
		}
	case "select":
		if newVNode.Content != "" {
			domElement.Set("value", newVNode.Content)
		}
	default:
		// Setting textContent wipes out all child nodes, so we must check first
		if len(newVNode.Children) == 0 && oldVNode.Content != newVNode.Content {
			domElement.Set("textContent", newVNode.Content)
		}
	}

	patchChildren(domElement, oldVNode.Children, newVNode.Children, path)
}

// patchAttributes updates the attributes of a DOM element.
func patchAttributes(domElement js.Value, oldAttrs, newAttrs map[string]any) {
	for key := range oldAttrs {
		if _, exists := newAttrs[key]; !exists && !isEventAttribute(key) {
			domElement.Call("removeAttribute", key)
		}
	}

	for key, value := range newAttrs {
		if isEventAttribute(key) {
			continue
		}
		if old, ok := oldAttrs[key]; !ok || !sameAttribute(old, value) {
			setAttributeValue(domElement, key, value)
		}
	}
}

func sameAttribute(a, b any) bool {
	switch a.(type) {
	case string, bool, int, int64, float64:
		return a == b
	}
	return false
}

// patchChildren updates the children of a DOM element.
func patchChildren(domElement js.Value, oldChildren, newChildren []*VNode, path string) {
	oldLen := len(oldChildren)
	newLen := len(newChildren)
	minLen := min(oldLen, newLen)

	domChildren := domElement.Get("childNodes")

	for i := 0; i < minLen; i++ {
		oldChild := oldChildren[i]
		newChild := newChildren[i]
		childPath := path + "/" + strconv.Itoa(i)

		switch {
		case oldChild == nil && newChild != nil:
			newChildEl := createElement(newChild, childPath)
			if !newChildEl.Truthy() {
				continue
			}
			if i < domChildren.Length() {
				domElement.Call("insertBefore", newChildEl, domChildren.Call("item", i))
			} else {
				domElement.Call("appendChild", newChildEl)
			}
		case oldChild != nil && newChild == nil:
			deepReleaseCallbacks(oldChild)
			childElement := domChildren.Call("item", i)
			if childElement.Truthy() {
				domElement.Call("removeChild", childElement)
			}
		case oldChild != nil && newChild != nil:
			childElement := domChildren.Call("item", i)
			if childElement.Truthy() {
				patchElement(childElement, oldChild, newChild, childPath)
			}
		}
	}

	for i := oldLen; i < newLen; i++ {
		newChild := createElement(newChildren[i], path+"/"+strconv.Itoa(i))
		if newChild.Truthy() {
			domElement.Call("appendChild", newChild)
		}
	}

	for i := oldLen - 1; i >= newLen; i-- {
		deepReleaseCallbacks(oldChildren[i])

		childElement := domChildren.Call("item", i)
		if childElement.Truthy() {
			domElement.Call("removeChild", childElement)
		}
	}
}
