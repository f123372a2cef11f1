package live

import (
	"testing"

	"github.com/Jjop12/renpy/pkg/renderer/html"
	"github.com/Jjop12/renpy/pkg/vdom"
)

func TestEncodePatches(t *testing.T) {
	prev := vdom.NewWidget("screen", nil,
		vdom.NewWidget("text", nil, vdom.NewText("old")),
	)
	next := vdom.NewWidget("screen", nil,
		vdom.NewWidget("text", nil, vdom.NewText("new")),
		vdom.NewWidget("bar", vdom.Props{"value": 5}),
	)

	patches := vdom.Diff(prev, next)
	if len(patches) == 0 {
		t.Fatal("Diff() produced no patches")
	}

	encoded, err := encodePatches(patches, html.RenderToString)
	if err != nil {
		t.Fatalf("encodePatches() error = %v", err)
	}
	if len(encoded) != len(patches) {
		t.Fatalf("encoded %d patches, want %d", len(encoded), len(patches))
	}

	var sawText, sawInsert bool
	for _, msg := range encoded {
		switch msg.Op {
		case "replace-text":
			sawText = true
			if msg.Value != "new" {
				t.Errorf("replace-text value = %q, want new", msg.Value)
			}
		case "insert-node":
			sawInsert = true
			if msg.HTML == "" {
				t.Error("insert-node carries no HTML")
			}
		case "":
			t.Errorf("patch op %v has no wire name", msg)
		}
	}
	if !sawText {
		t.Error("no replace-text patch encoded")
	}
	if !sawInsert {
		t.Error("no insert-node patch encoded")
	}
}

func TestPatchOpNamesComplete(t *testing.T) {
	ops := []vdom.PatchOp{
		vdom.OpReplaceText, vdom.OpSetProp, vdom.OpRemoveProp,
		vdom.OpRemoveNode, vdom.OpInsertNode, vdom.OpMoveNode,
	}
	for _, op := range ops {
		if patchOpNames[op] == "" {
			t.Errorf("op %d has no wire name", op)
		}
	}
}
