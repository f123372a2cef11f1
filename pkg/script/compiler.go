// Package script implements the screen language's expression-compiler
// boundary on top of expr-lang. Expressions compile once into reusable
// programs; constancy analysis over the parsed AST drives the core's
// constant folding.
package script

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"

	"github.com/Jjop12/renpy/pkg/sl"
)

// Compiler implements sl.ExprCompiler.
type Compiler struct{}

// New returns a compiler.
func New() *Compiler {
	return &Compiler{}
}

var _ sl.ExprCompiler = (*Compiler)(nil)

// compiledExpr is a compiled program plus the scope names it references.
// Referenced names must be bound at evaluation time; an unbound name is
// an evaluation error rather than a silent nil.
type compiledExpr struct {
	src     string
	program *vm.Program
	names   []string
}

func (e *compiledExpr) Eval(scope sl.Scope) (any, error) {
	env := map[string]any(scope)
	if env == nil {
		env = map[string]any{}
	}
	for _, name := range e.names {
		if _, bound := env[name]; !bound {
			return nil, fmt.Errorf("name %q is not defined", name)
		}
	}
	v, err := expr.Run(e.program, env)
	if err != nil {
		return nil, fmt.Errorf("eval %q: %w", e.src, err)
	}
	return v, nil
}

// Compile compiles a single expression.
func (c *Compiler) Compile(src string) (sl.CompiledExpr, error) {
	return compile(src)
}

func compile(src string) (*compiledExpr, error) {
	tree, err := parser.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", src, err)
	}
	program, err := expr.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", src, err)
	}
	return &compiledExpr{
		src:     src,
		program: program,
		names:   scopeNames(tree),
	}, nil
}

// CompileTuple combines several expressions into one unit evaluating to a
// []any in the given order, compiled once as an array literal.
func (c *Compiler) CompileTuple(srcs []string) (sl.CompiledExpr, error) {
	parts := make([]string, len(srcs))
	for i, src := range srcs {
		parts[i] = "(" + src + ")"
	}
	return compile("[" + strings.Join(parts, ", ") + "]")
}

// CompileDict combines keyword expressions into one unit evaluating to a
// map[string]any, compiled once as a map literal.
func (c *Compiler) CompileDict(keys, srcs []string) (sl.CompiledExpr, error) {
	if len(keys) != len(srcs) {
		return nil, fmt.Errorf("compile dict: %d keys for %d expressions", len(keys), len(srcs))
	}
	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = strconv.Quote(key) + ": (" + srcs[i] + ")"
	}
	return compile("{" + strings.Join(parts, ", ") + "}")
}

// Constant reports whether src is a compile-time constant: a literal, or
// an operator/collection/conditional expression built solely from
// constants. Any name reference, call or member access is dynamic.
func (c *Compiler) Constant(src string) (bool, error) {
	tree, err := parser.Parse(src)
	if err != nil {
		return false, fmt.Errorf("compile %q: %w", src, err)
	}
	return isConstant(tree.Node), nil
}
