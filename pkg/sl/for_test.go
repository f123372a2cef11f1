package sl_test

import (
	"reflect"
	"testing"

	"github.com/Jjop12/renpy/pkg/script"
	"github.com/Jjop12/renpy/pkg/sl"
)

func TestForExecute(t *testing.T) {
	compiler := script.New()

	node := sl.NewFor(compiler, "item", "items")
	body := sl.NewDisplayable(compiler, makeWidget("row"), sl.DisplayableConfig{})
	body.AddPositional("item")
	node.AddChild(body)
	if err := node.Prepare(); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	ctx := newTestContext(sl.Scope{"items": []any{"a", "b", "c"}})
	if err := node.Execute(ctx); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(*ctx.Children) != 3 {
		t.Fatalf("got %d children, want 3", len(*ctx.Children))
	}
	for i, want := range []string{"a", "b", "c"} {
		w := (*ctx.Children)[i].(*testWidget)
		if !reflect.DeepEqual(w.args, []any{want}) {
			t.Errorf("iteration %d args = %v, want [%q]", i, w.args, want)
		}
	}

	// The loop variable keeps its final value in the shared scope.
	if got := ctx.Scope["item"]; got != "c" {
		t.Errorf("item = %v after the loop, want %q", got, "c")
	}
}

func TestForConstantSource(t *testing.T) {
	compiler := script.New()

	node := sl.NewFor(compiler, "n", "[1, 2]")
	body := sl.NewDisplayable(compiler, makeWidget("row"), sl.DisplayableConfig{})
	body.AddPositional("n")
	node.AddChild(body)
	if err := node.Prepare(); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	ctx := newTestContext(nil)
	if err := node.Execute(ctx); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(*ctx.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(*ctx.Children))
	}
}

func TestForStringSource(t *testing.T) {
	compiler := script.New()

	node := sl.NewFor(compiler, "ch", `"ab"`)
	body := sl.NewDisplayable(compiler, makeWidget("row"), sl.DisplayableConfig{})
	body.AddPositional("ch")
	node.AddChild(body)
	if err := node.Prepare(); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	ctx := newTestContext(nil)
	if err := node.Execute(ctx); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var got []any
	for _, el := range *ctx.Children {
		got = append(got, el.(*testWidget).args[0])
	}
	want := []any{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("iterated %v, want %v", got, want)
	}
}

func TestForNotIterable(t *testing.T) {
	compiler := script.New()

	node := sl.NewFor(compiler, "x", "source")
	if err := node.Prepare(); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	for _, source := range []any{42, nil} {
		ctx := newTestContext(sl.Scope{"source": source})
		if err := node.Execute(ctx); err == nil {
			t.Errorf("Execute() with source %v: error = nil, want error", source)
		}
	}
}

func TestForKeywordsIsNoop(t *testing.T) {
	compiler := script.New()

	node := sl.NewFor(compiler, "x", "items")
	body := sl.NewBlock(compiler)
	body.AddKeyword("xpos", "1")
	node.AddChild(body)
	if err := node.Prepare(); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	ctx := newTestContext(sl.Scope{"items": []any{1}})
	if err := node.Keywords(ctx); err != nil {
		t.Fatalf("Keywords() error = %v", err)
	}
	if len(ctx.Keywords) != 0 {
		t.Errorf("Keywords contributed %v, want nothing", ctx.Keywords)
	}
}
