package script

import (
	"testing"

	"github.com/Jjop12/renpy/pkg/sl"
)

func TestCompileCode(t *testing.T) {
	compiler := New()

	src := `
# setup
count = 2
total = count * 10

label = "n=" + string(total)
`
	code, err := compiler.CompileCode(src)
	if err != nil {
		t.Fatalf("CompileCode() error = %v", err)
	}

	scope := sl.Scope{}
	if err := code.Exec(scope); err != nil {
		t.Fatalf("Exec() error = %v", err)
	}

	if scope["count"] != 2 {
		t.Errorf("count = %v, want 2", scope["count"])
	}
	if scope["total"] != 20 {
		t.Errorf("total = %v, want 20", scope["total"])
	}
	if scope["label"] != "n=20" {
		t.Errorf("label = %v, want n=20", scope["label"])
	}
}

func TestCompileCodeComparisonIsNotAssignment(t *testing.T) {
	compiler := New()

	code, err := compiler.CompileCode("a == 1")
	if err != nil {
		t.Fatalf("CompileCode() error = %v", err)
	}

	scope := sl.Scope{"a": 1}
	if err := code.Exec(scope); err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	if _, bound := scope["a == 1"]; bound {
		t.Error("comparison treated as an assignment")
	}
	if scope["a"] != 1 {
		t.Errorf("a = %v, want unchanged 1", scope["a"])
	}
}

func TestCompileCodeSyntaxError(t *testing.T) {
	compiler := New()
	if _, err := compiler.CompileCode("x = 1 +"); err == nil {
		t.Fatal("CompileCode() error = nil, want compile error")
	}
}

func TestCodeExecUnboundName(t *testing.T) {
	compiler := New()

	code, err := compiler.CompileCode("y = missing + 1")
	if err != nil {
		t.Fatalf("CompileCode() error = %v", err)
	}
	if err := code.Exec(sl.Scope{}); err == nil {
		t.Fatal("Exec() error = nil, want unbound name error")
	}
}
