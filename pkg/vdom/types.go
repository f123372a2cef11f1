// Package vdom is the widget element tree constructed by executing a
// compiled screen. Trees are cheap to rebuild; re-renders are compared
// with Diff to produce patch operations for live previews.
package vdom

import (
	"github.com/Jjop12/renpy/pkg/sl"
)

// Kind represents the type of node in a widget tree.
type Kind uint8

const (
	// KindWidget is a constructed widget (window, vbox, text button, ...).
	KindWidget Kind = iota
	// KindText is a bare text run.
	KindText
)

// Props holds the resolved keyword arguments a widget was constructed
// with, including the resolved style handle under "style".
type Props map[string]any

// Node is one element of a constructed widget tree. After an execution
// finishes the tree is only read; the next execution builds a fresh one.
type Node struct {
	// Kind determines how the node is interpreted.
	Kind Kind

	// Tag is the widget tag (only for KindWidget).
	Tag string

	// Props holds the construction keywords (only for KindWidget).
	Props Props

	// Kids holds attached children in attachment order.
	Kids []*Node

	// Key identifies this node for list reconciliation. Empty means
	// position-based matching.
	Key string

	// Text is the content of a KindText node.
	Text string
}

// NewWidget creates a widget node.
func NewWidget(tag string, props Props, kids ...*Node) *Node {
	node := &Node{
		Kind:  KindWidget,
		Tag:   tag,
		Props: props,
	}
	if props != nil {
		if key, ok := props["key"].(string); ok {
			node.Key = key
		}
	}
	for _, kid := range kids {
		if kid != nil {
			node.Kids = append(node.Kids, kid)
		}
	}
	return node
}

// NewText creates a text node.
func NewText(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

// Add attaches a child element. It implements the add-child operation of
// sl.Element; attaching anything but a *Node is a programming error.
func (n *Node) Add(child sl.Element) {
	kid, ok := child.(*Node)
	if !ok {
		panic("vdom: Add called with a non-vdom element")
	}
	n.Kids = append(n.Kids, kid)
}

var _ sl.Element = (*Node)(nil)

// IsWidget reports whether this is a widget node.
func (n *Node) IsWidget() bool { return n.Kind == KindWidget }

// IsText reports whether this is a text node.
func (n *Node) IsText() bool { return n.Kind == KindText }

// GetKey returns the reconciliation key, consulting Props as a fallback.
func (n *Node) GetKey() string {
	if n.Key != "" {
		return n.Key
	}
	if n.Props != nil {
		if key, ok := n.Props["key"].(string); ok {
			return key
		}
	}
	return ""
}
