package widgets

import (
	"testing"

	"github.com/Jjop12/renpy/pkg/screen"
	"github.com/Jjop12/renpy/pkg/sl"
	"github.com/Jjop12/renpy/pkg/styling"
	"github.com/Jjop12/renpy/pkg/vdom"
)

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		entry, ok := Lookup(name)
		if !ok {
			t.Errorf("Lookup(%q) failed for a listed name", name)
		}
		if entry.Construct == nil {
			t.Errorf("%q has no constructor", name)
		}
	}

	if _, ok := Lookup("nosuchwidget"); ok {
		t.Error("Lookup found an unknown widget")
	}
}

func TestContainerConstructor(t *testing.T) {
	entry, _ := Lookup("vbox")

	t.Run("builds a tagged node", func(t *testing.T) {
		el, err := entry.Construct(nil, sl.Props{"spacing": 4})
		if err != nil {
			t.Fatalf("Construct() error = %v", err)
		}
		node := el.(*vdom.Node)
		if node.Tag != "vbox" {
			t.Errorf("Tag = %q, want vbox", node.Tag)
		}
		if node.Props["spacing"] != 4 {
			t.Errorf("spacing = %v, want 4", node.Props["spacing"])
		}
	})

	t.Run("rejects positional arguments", func(t *testing.T) {
		if _, err := entry.Construct([]any{1}, nil); err == nil {
			t.Fatal("Construct() error = nil, want error")
		}
	})
}

func TestTextualConstructor(t *testing.T) {
	entry, _ := Lookup("text")

	el, err := entry.Construct([]any{"hello"}, sl.Props{})
	if err != nil {
		t.Fatalf("Construct() error = %v", err)
	}
	node := el.(*vdom.Node)
	if len(node.Kids) != 1 || !node.Kids[0].IsText() || node.Kids[0].Text != "hello" {
		t.Errorf("Kids = %v, want a single text child %q", node.Kids, "hello")
	}

	if _, err := entry.Construct(nil, nil); err == nil {
		t.Fatal("Construct() with no arguments: error = nil, want error")
	}
}

func TestImageConstructor(t *testing.T) {
	entry, _ := Lookup("image")

	el, err := entry.Construct([]any{"logo"}, sl.Props{})
	if err != nil {
		t.Fatalf("Construct() error = %v", err)
	}
	if got := el.(*vdom.Node).Props["image"]; got != "logo" {
		t.Errorf("image = %v, want logo", got)
	}
}

func TestImagemapAndHotspot(t *testing.T) {
	instance := screen.NewInstance(&screen.Definition{Name: "t"}, nil)
	ctx := sl.NewContext(nil)
	ctx.Imagemaps = instance

	imagemap, _ := Lookup("imagemap")
	hotspot, _ := Lookup("hotspot")

	t.Run("hotspot outside an imagemap fails", func(t *testing.T) {
		if _, err := hotspot.Construct([]any{ctx, "area"}, sl.Props{}); err == nil {
			t.Fatal("Construct() error = nil, want error")
		}
	})

	t.Run("imagemap pushes and hotspot sees it", func(t *testing.T) {
		el, err := imagemap.Construct([]any{ctx}, sl.Props{})
		if err != nil {
			t.Fatalf("imagemap Construct() error = %v", err)
		}
		top, ok := instance.Imagemap()
		if !ok || top != el {
			t.Fatal("imagemap did not push itself onto the stack")
		}

		spot, err := hotspot.Construct([]any{ctx, []any{0, 0, 10, 10}}, sl.Props{})
		if err != nil {
			t.Fatalf("hotspot Construct() error = %v", err)
		}
		if spot.(*vdom.Node).Props["area"] == nil {
			t.Error("hotspot did not record its area")
		}

		if err := instance.Pop(); err != nil {
			t.Fatalf("Pop() error = %v", err)
		}
	})

	t.Run("missing context argument fails", func(t *testing.T) {
		if _, err := imagemap.Construct(nil, sl.Props{}); err == nil {
			t.Fatal("Construct() error = nil, want error")
		}
	})
}

func TestRegisterBaseStyles(t *testing.T) {
	reg := styling.NewRegistry()
	RegisterBaseStyles(reg)

	for _, name := range Names() {
		entry, _ := Lookup(name)
		if entry.Config.Style == "" {
			continue
		}
		if _, err := reg.GetStyle(entry.Config.Style); err != nil {
			t.Errorf("base style %q not registered: %v", entry.Config.Style, err)
		}
	}
}
