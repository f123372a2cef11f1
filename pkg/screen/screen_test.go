package screen_test

import (
	"testing"

	"github.com/Jjop12/renpy/pkg/screen"
	"github.com/Jjop12/renpy/pkg/script"
	"github.com/Jjop12/renpy/pkg/sl"
	"github.com/Jjop12/renpy/pkg/styling"
)

// recordedWidget is a minimal element for screen-level tests.
type recordedWidget struct {
	kw       sl.Props
	children []sl.Element
}

func (w *recordedWidget) Add(child sl.Element) {
	w.children = append(w.children, child)
}

func record(args []any, kw sl.Props) (sl.Element, error) {
	return &recordedWidget{kw: kw}, nil
}

// simpleDefinition builds a screen with one identifiable widget.
func simpleDefinition(t *testing.T, compiler sl.ExprCompiler) *screen.Definition {
	t.Helper()
	root := sl.NewBlock(compiler)
	d := sl.NewDisplayable(compiler, record, sl.DisplayableConfig{})
	d.AddKeyword("id", `"hero"`)
	d.AddKeyword("xpos", "offset")
	root.AddChild(d)

	def := &screen.Definition{Name: "demo", Root: root}
	if err := def.Prepare(); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	return def
}

func TestDefinitionPrepare(t *testing.T) {
	t.Run("missing body", func(t *testing.T) {
		def := &screen.Definition{Name: "empty"}
		if err := def.Prepare(); err == nil {
			t.Fatal("Prepare() error = nil, want error")
		}
	})

	t.Run("compile error carries the screen name", func(t *testing.T) {
		root := sl.NewBlock(script.New())
		root.AddKeyword("xpos", "1 +")
		def := &screen.Definition{Name: "broken", Root: root}
		err := def.Prepare()
		if err == nil {
			t.Fatal("Prepare() error = nil, want error")
		}
	})
}

func TestRegistry(t *testing.T) {
	compiler := script.New()
	reg := screen.NewRegistry()

	def := simpleDefinition(t, compiler)
	reg.Register(def)

	got, ok := reg.Get("demo")
	if !ok || got != def {
		t.Fatal("Get() did not return the registered definition")
	}
	if _, ok := reg.Get("other"); ok {
		t.Fatal("Get() found an unregistered screen")
	}

	if err := reg.PrepareAll(); err != nil {
		t.Fatalf("PrepareAll() error = %v", err)
	}
}

func TestInstanceRender(t *testing.T) {
	compiler := script.New()
	def := simpleDefinition(t, compiler)
	instance := screen.NewInstance(def, styling.NewRegistry())

	elements, err := instance.Render(sl.Scope{"offset": 10})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(elements) != 1 {
		t.Fatalf("got %d elements, want 1", len(elements))
	}

	w, ok := instance.Widget("hero")
	if !ok {
		t.Fatal("widget not registered under its id")
	}
	if w != elements[0] {
		t.Error("registered widget differs from the rendered element")
	}
	if got := w.(*recordedWidget).kw["xpos"]; got != 10 {
		t.Errorf("xpos = %v, want 10", got)
	}
}

func TestInstanceRenderResetsWidgets(t *testing.T) {
	compiler := script.New()

	root := sl.NewBlock(compiler)
	cond := sl.NewIf(compiler)
	branch := sl.NewBlock(compiler)
	d := sl.NewDisplayable(compiler, record, sl.DisplayableConfig{})
	d.AddKeyword("id", `"maybe"`)
	branch.AddChild(d)
	cond.AddBranch("show", branch)
	root.AddChild(cond)

	def := &screen.Definition{Name: "cond", Root: root}
	if err := def.Prepare(); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	instance := screen.NewInstance(def, styling.NewRegistry())

	if _, err := instance.Render(sl.Scope{"show": true}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if _, ok := instance.Widget("maybe"); !ok {
		t.Fatal("widget missing after first render")
	}

	if _, err := instance.Render(sl.Scope{"show": false}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if _, ok := instance.Widget("maybe"); ok {
		t.Error("stale widget survived the second render")
	}
}

func TestInstanceWidgetProperties(t *testing.T) {
	compiler := script.New()
	def := simpleDefinition(t, compiler)
	instance := screen.NewInstance(def, styling.NewRegistry())
	instance.SetWidgetProperties("hero", sl.Props{"xpos": 500})

	elements, err := instance.Render(sl.Scope{"offset": 10})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := elements[0].(*recordedWidget).kw["xpos"]; got != 500 {
		t.Errorf("xpos = %v, want the 500 override", got)
	}
}

func TestInstanceImagemapStack(t *testing.T) {
	instance := screen.NewInstance(&screen.Definition{Name: "im"}, nil)

	if _, ok := instance.Imagemap(); ok {
		t.Fatal("Imagemap() on an empty stack reported an entry")
	}
	if err := instance.Pop(); err == nil {
		t.Fatal("Pop() on an empty stack: error = nil, want error")
	}

	instance.Push("a")
	instance.Push("b")
	if top, ok := instance.Imagemap(); !ok || top != "b" {
		t.Fatalf("Imagemap() = %v, %v; want b, true", top, ok)
	}
	if err := instance.Pop(); err != nil {
		t.Fatalf("Pop() error = %v", err)
	}
	if top, _ := instance.Imagemap(); top != "a" {
		t.Errorf("Imagemap() = %v, want a", top)
	}
}
