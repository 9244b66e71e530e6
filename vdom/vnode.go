package vdom

import "strconv"

// VNode represents a virtual DOM node.
type VNode struct {
	Tag        string         // The HTML tag name
	Attributes map[string]any // The attributes of the node
	Children   []*VNode       // The child nodes
	Content    string         // The content of the node
	OnClick    func()         // Optional click event handler

	// Modifiers are element-level behaviors (e.g. "in-viewport") that the
	// renderer installs once the node is mounted.
	Modifiers []ModifierBinding

	// Element is the mounted element backing this node. It is set by the
	// renderer and carried over between renders while the tag is unchanged.
	Element *Element

	eventCallbacks []any
}

// ModifierBinding describes one modifier invocation on a node, the
// equivalent of {{name positional... key=value}} in a template.
type ModifierBinding struct {
	Name       string
	Positional []any
	Named      map[string]any
}

// NewVNode creates a new VNode.
func NewVNode(tag string, attributes map[string]any, children []*VNode, content string) *VNode {
	var onClick func()
	if attributes != nil {
		if v, ok := attributes["onClick"]; ok {
			if f, ok := v.(func()); ok {
				onClick = f
				// Remove from attributes so it doesn't get rendered as an HTML attribute
				delete(attributes, "onClick")
			}
		}
	}
	return &VNode{
		Tag:        tag,
		Attributes: attributes,
		Children:   children,
		Content:    content,
		OnClick:    onClick,
	}
}

// SetContent updates the Content field of the VNode.
func (v *VNode) SetContent(content string) {
	v.Content = content
}

// Modify attaches a modifier to the node and returns the node so calls can
// be chained inside Render.
//
//	vdom.Div(nil).Modify("in-viewport", map[string]any{"onEnter": c.show})
func (v *VNode) Modify(name string, named map[string]any, positional ...any) *VNode {
	v.Modifiers = append(v.Modifiers, ModifierBinding{
		Name:       name,
		Positional: positional,
		Named:      named,
	})
	return v
}

// AddEventCallback stores a platform callback so it can be released when
// the node is discarded.
func (v *VNode) AddEventCallback(cb any) {
	v.eventCallbacks = append(v.eventCallbacks, cb)
}

// GetEventCallbacks returns the callbacks stored with AddEventCallback.
func (v *VNode) GetEventCallbacks() []any {
	return v.eventCallbacks
}

// ClearEventCallbacks forgets all stored callbacks.
func (v *VNode) ClearEventCallbacks() {
	v.eventCallbacks = nil
}

// ModifierKey returns the identity of the i-th modifier on the node at the
// given tree path. Nodes with an "id" attribute are keyed by that id so they
// keep their modifiers when siblings move around.
func ModifierKey(path string, n *VNode, i int) string {
	base := path
	if n != nil && n.Attributes != nil {
		if id, ok := n.Attributes["id"].(string); ok && id != "" {
			base = "#" + id
		}
	}
	name := ""
	if n != nil && i < len(n.Modifiers) {
		name = n.Modifiers[i].Name
	}
	return base + "|" + name + "@" + strconv.Itoa(i)
}

// Walk visits n and its descendants depth first. The path of the root is
// "0"; children append "/<index>".
func Walk(n *VNode, fn func(path string, n *VNode)) {
	walk("0", n, fn)
}

func walk(path string, n *VNode, fn func(path string, n *VNode)) {
	if n == nil {
		return
	}
	fn(path, n)
	for i, child := range n.Children {
		walk(path+"/"+strconv.Itoa(i), child, fn)
	}
}

// Text creates a bare text node.
func Text(content string) *VNode {
	return NewVNode("#text", nil, nil, content)
}

// Paragraph creates a <p> VNode with the given text as its child and allows passing attributes.
func Paragraph(text string, attrs map[string]any) *VNode {
	return NewVNode("p", attrs, nil, text)
}

// InputText returns a VNode representing an <input type="text"> element.
// Optionally accepts a map of attributes (e.g., {"placeholder": "Type here"}).
func InputText(attrs map[string]any) *VNode {
	if attrs == nil {
		attrs = make(map[string]any)
	}
	attrs["type"] = "text"
	return NewVNode("input", attrs, nil, "")
}

// Div creates a <div> VNode with the given children and allows passing attributes.
func Div(attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("div", attrs, children, "")
}

// Section creates a <section> VNode.
func Section(attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("section", attrs, children, "")
}

// Image creates an <img> VNode with the given source.
func Image(src string, attrs map[string]any) *VNode {
	if attrs == nil {
		attrs = make(map[string]any)
	}
	attrs["src"] = src
	return NewVNode("img", attrs, nil, "")
}

// Button creates a <button> VNode with the given children and allows passing attributes.
func Button(content string, attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("button", attrs, children, content)
}
