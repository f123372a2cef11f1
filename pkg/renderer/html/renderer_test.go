package html

import (
	"strings"
	"testing"

	"github.com/Jjop12/renpy/pkg/styling"
	"github.com/Jjop12/renpy/pkg/vdom"
)

func TestRenderToString(t *testing.T) {
	tests := []struct {
		name string
		node *vdom.Node
		want string
	}{
		{
			name: "bare widget",
			node: vdom.NewWidget("window", nil),
			want: `<div class="sl-window"></div>`,
		},
		{
			name: "text child is escaped",
			node: vdom.NewWidget("text", nil, vdom.NewText(`a < b & "c"`)),
			want: `<div class="sl-text">a &lt; b &amp; &#34;c&#34;</div>`,
		},
		{
			name: "props become sorted data attributes",
			node: vdom.NewWidget("window", vdom.Props{"ypos": 2, "xpos": 1}),
			want: `<div class="sl-window" data-xpos="1" data-ypos="2"></div>`,
		},
		{
			name: "underscores in prop names become dashes",
			node: vdom.NewWidget("bar", vdom.Props{"bar_width": 40}),
			want: `<div class="sl-bar" data-bar-width="40"></div>`,
		},
		{
			name: "style prop renders as its name",
			node: vdom.NewWidget("frame", vdom.Props{"style": styling.NewStyle("menu_frame", nil)}),
			want: `<div class="sl-frame" data-style="menu_frame"></div>`,
		},
		{
			name: "key and scope props are skipped",
			node: vdom.NewWidget("vbox", vdom.Props{"key": "k", "scope": map[string]any{}}),
			want: `<div class="sl-vbox"></div>`,
		},
		{
			name: "nested widgets",
			node: vdom.NewWidget("vbox", nil,
				vdom.NewWidget("text", nil, vdom.NewText("hi")),
				vdom.NewWidget("text", nil, vdom.NewText("there")),
			),
			want: `<div class="sl-vbox"><div class="sl-text">hi</div><div class="sl-text">there</div></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderToString(tt.node)
			if err != nil {
				t.Fatalf("RenderToString() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("RenderToString() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRendererMultipleTrees(t *testing.T) {
	var buf strings.Builder
	r := NewRenderer(&buf)

	if err := r.Render(vdom.NewText("a")); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if err := r.Render(vdom.NewText("b")); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if buf.String() != "ab" {
		t.Errorf("output = %q, want ab", buf.String())
	}
}
