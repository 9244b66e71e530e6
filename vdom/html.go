package vdom

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// ModifiersAttr is set on serialized nodes that carry modifiers. The value
// is the space separated list of modifier names.
const ModifiersAttr = "data-nojs-modifiers"

// RenderHTML writes the static markup of the tree rooted at n.
// Event handlers are dropped; modifiers are recorded in ModifiersAttr.
func RenderHTML(w io.Writer, n *VNode) error {
	node := HTMLNode(n)
	if node == nil {
		return nil
	}
	return html.Render(w, node)
}

// HTMLString is RenderHTML into a string.
func HTMLString(n *VNode) (string, error) {
	var b strings.Builder
	if err := RenderHTML(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}

// HTMLNode converts the tree rooted at n into an html.Node tree.
func HTMLNode(n *VNode) *html.Node {
	if n == nil {
		return nil
	}
	if n.Tag == "#text" {
		return &html.Node{Type: html.TextNode, Data: n.Content}
	}

	node := &html.Node{Type: html.ElementNode, Data: n.Tag}

	keys := make([]string, 0, len(n.Attributes))
	for k := range n.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if isEventAttribute(k) {
			continue
		}
		switch v := n.Attributes[k].(type) {
		case bool:
			if v {
				node.Attr = append(node.Attr, html.Attribute{Key: k})
			}
		case func(), nil:
		default:
			node.Attr = append(node.Attr, html.Attribute{Key: k, Val: fmt.Sprint(v)})
		}
	}

	if len(n.Modifiers) > 0 {
		names := make([]string, 0, len(n.Modifiers))
		for _, m := range n.Modifiers {
			names = append(names, m.Name)
		}
		node.Attr = append(node.Attr, html.Attribute{Key: ModifiersAttr, Val: strings.Join(names, " ")})
	}

	if n.Content != "" && n.Tag != "input" {
		node.AppendChild(&html.Node{Type: html.TextNode, Data: n.Content})
	}
	for _, child := range n.Children {
		if c := HTMLNode(child); c != nil {
			node.AppendChild(c)
		}
	}
	return node
}

// isEventAttribute reports whether key names an event handler ("onClick").
func isEventAttribute(key string) bool {
	return len(key) > 2 && key[0] == 'o' && key[1] == 'n' && key[2] >= 'A' && key[2] <= 'Z'
}
