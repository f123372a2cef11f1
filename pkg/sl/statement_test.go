package sl_test

import (
	"testing"

	"github.com/Jjop12/renpy/pkg/script"
	"github.com/Jjop12/renpy/pkg/sl"
)

func TestPythonExecute(t *testing.T) {
	compiler := script.New()

	code, err := compiler.CompileCode("total = count * 2")
	if err != nil {
		t.Fatalf("CompileCode() error = %v", err)
	}

	node := sl.NewPython(code)
	if err := node.Prepare(); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	ctx := newTestContext(sl.Scope{"count": 4})
	if err := node.Execute(ctx); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := ctx.Scope["total"]; got != 8 {
		t.Errorf("total = %v, want 8", got)
	}
}

func TestPassExecute(t *testing.T) {
	node := sl.NewPass()
	if err := node.Prepare(); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	ctx := newTestContext(nil)
	if err := node.Execute(ctx); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(*ctx.Children) != 0 || len(ctx.Keywords) != 0 {
		t.Error("pass node mutated the context")
	}
}

func TestDefaultExecute(t *testing.T) {
	compiler := script.New()

	tests := []struct {
		name  string
		scope sl.Scope
		want  any
	}{
		{name: "binds when unbound", scope: sl.Scope{}, want: 10},
		{name: "leaves an existing binding alone", scope: sl.Scope{"speed": 99}, want: 99},
		{name: "nil counts as bound", scope: sl.Scope{"speed": nil}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := sl.NewDefault(compiler, "speed", "10")
			if err := node.Prepare(); err != nil {
				t.Fatalf("Prepare() error = %v", err)
			}

			ctx := newTestContext(tt.scope)
			if err := node.Execute(ctx); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if got := ctx.Scope["speed"]; got != tt.want {
				t.Errorf("speed = %v, want %v", got, tt.want)
			}
		})
	}
}
