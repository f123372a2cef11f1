package vdom

import "testing"

func TestNewWidgetKey(t *testing.T) {
	tests := []struct {
		name  string
		props Props
		want  string
	}{
		{name: "no props", props: nil, want: ""},
		{name: "key prop", props: Props{"key": "row-1"}, want: "row-1"},
		{name: "non-string key ignored", props: Props{"key": 5}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := NewWidget("vbox", tt.props)
			if got := node.GetKey(); got != tt.want {
				t.Errorf("GetKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNodeAdd(t *testing.T) {
	parent := NewWidget("vbox", nil)
	child := NewText("hi")
	parent.Add(child)

	if len(parent.Kids) != 1 || parent.Kids[0] != child {
		t.Fatalf("Kids = %v, want [child]", parent.Kids)
	}
}

func TestNodeKindPredicates(t *testing.T) {
	w := NewWidget("window", nil)
	txt := NewText("x")

	if !w.IsWidget() || w.IsText() {
		t.Error("widget node misclassified")
	}
	if !txt.IsText() || txt.IsWidget() {
		t.Error("text node misclassified")
	}
}
