// Package html renders constructed widget trees to HTML for previews.
// Widget tags become class-qualified div elements; properties render as
// data attributes.
package html

import (
	"fmt"
	"html"
	"io"
	"sort"
	"strings"

	"github.com/Jjop12/renpy/pkg/styling"
	"github.com/Jjop12/renpy/pkg/vdom"
)

// Renderer writes widget trees as HTML.
type Renderer struct {
	w   io.Writer
	err error
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Render writes one tree. It may be called for several top-level elements
// in sequence; the first write error sticks and is returned.
func (r *Renderer) Render(node *vdom.Node) error {
	r.renderNode(node)
	return r.err
}

func (r *Renderer) write(s string) {
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.w, s)
}

func (r *Renderer) renderNode(node *vdom.Node) {
	if node == nil || r.err != nil {
		return
	}

	switch node.Kind {
	case vdom.KindText:
		r.write(html.EscapeString(node.Text))

	case vdom.KindWidget:
		r.renderWidget(node)
	}
}

func (r *Renderer) renderWidget(node *vdom.Node) {
	r.write(`<div class="sl-`)
	r.write(node.Tag)
	r.write(`"`)

	// Sorted for deterministic output.
	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		if key == "key" || key == "scope" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		r.write(" data-")
		r.write(strings.ReplaceAll(key, "_", "-"))
		r.write(`="`)
		r.write(html.EscapeString(propValue(node.Props[key])))
		r.write(`"`)
	}

	r.write(">")
	for _, kid := range node.Kids {
		r.renderNode(kid)
	}
	r.write("</div>")
}

func propValue(v any) string {
	if style, ok := v.(*styling.Style); ok {
		return style.Name
	}
	return fmt.Sprintf("%v", v)
}

// RenderToString renders one tree to a string.
func RenderToString(node *vdom.Node) (string, error) {
	var buf strings.Builder
	if err := NewRenderer(&buf).Render(node); err != nil {
		return "", err
	}
	return buf.String(), nil
}
