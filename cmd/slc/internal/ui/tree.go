package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Jjop12/renpy/pkg/styling"
	"github.com/Jjop12/renpy/pkg/vdom"
)

var (
	tagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	propStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	textStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// renderTree formats a widget tree as an indented text outline.
func renderTree(nodes []*vdom.Node) string {
	var b strings.Builder
	for _, node := range nodes {
		writeNode(&b, node, 0)
	}
	return b.String()
}

func writeNode(b *strings.Builder, node *vdom.Node, depth int) {
	if node == nil {
		return
	}
	indent := strings.Repeat("  ", depth)

	if node.Kind == vdom.KindText {
		b.WriteString(indent)
		b.WriteString(textStyle.Render(fmt.Sprintf("%q", node.Text)))
		b.WriteString("\n")
		return
	}

	b.WriteString(indent)
	b.WriteString(tagStyle.Render(node.Tag))
	if props := formatProps(node.Props); props != "" {
		b.WriteString(" ")
		b.WriteString(propStyle.Render(props))
	}
	b.WriteString("\n")

	for _, kid := range node.Kids {
		writeNode(b, kid, depth+1)
	}
}

func formatProps(props vdom.Props) string {
	if len(props) == 0 {
		return ""
	}
	keys := make([]string, 0, len(props))
	for key := range props {
		if key == "scope" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+"="+propValue(props[key]))
	}
	return strings.Join(parts, " ")
}

func propValue(v any) string {
	switch v := v.(type) {
	case *styling.Style:
		return v.Name
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
