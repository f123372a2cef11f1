package sl

import (
	"fmt"
	"reflect"
)

// For iterates a source expression, binding a single loop variable into
// the shared scope and executing its block body once per element. All
// iterations append into the same children sequence, and the variable
// keeps its last value after the loop — visible to siblings executed
// later in the same scope.
type For struct {
	Block

	variable   string
	expression string

	// Exactly one of these is used after Prepare: exprUnit when the
	// source is dynamic, exprValue when it folded to a constant.
	exprValue any
	exprUnit  CompiledExpr
}

// NewFor returns an iteration node binding variable over expression.
func NewFor(compiler ExprCompiler, variable, expression string) *For {
	return &For{
		Block:      Block{baseNode: newBaseNode(), compiler: compiler},
		variable:   variable,
		expression: expression,
	}
}

// Prepare classifies the source expression as constant or dynamic, then
// prepares the block body.
func (n *For) Prepare() error {
	constant, err := n.compiler.Constant(n.expression)
	if err != nil {
		return err
	}

	if constant {
		unit, err := n.compiler.Compile(n.expression)
		if err != nil {
			return err
		}
		v, err := unit.Eval(nil)
		if err != nil {
			return err
		}
		n.exprValue = v
		n.exprUnit = nil
	} else {
		unit, err := n.compiler.Compile(n.expression)
		if err != nil {
			return err
		}
		n.exprValue = nil
		n.exprUnit = unit
	}

	return n.Block.Prepare()
}

func (n *For) Execute(ctx *Context) error {
	value := n.exprValue
	if n.exprUnit != nil {
		v, err := n.exprUnit.Eval(ctx.Scope)
		if err != nil {
			return err
		}
		value = v
	}

	items, err := iterate(value)
	if err != nil {
		return fmt.Errorf("for %s: %w", n.variable, err)
	}

	for _, item := range items {
		ctx.Scope[n.variable] = item
		if err := n.Block.Execute(ctx); err != nil {
			return err
		}
	}

	return nil
}

// Keywords is a no-op: iteration nodes never contribute keywords to an
// enclosing displayable.
func (n *For) Keywords(*Context) error { return nil }

// iterate flattens an iterable value into its elements in iteration
// order. Slices and arrays of any element type iterate per element;
// strings iterate per rune, yielded as one-character strings.
func iterate(value any) ([]any, error) {
	switch v := value.(type) {
	case nil:
		return nil, fmt.Errorf("cannot iterate nil")
	case []any:
		return v, nil
	case string:
		items := make([]any, 0, len(v))
		for _, r := range v {
			items = append(items, string(r))
		}
		return items, nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return items, nil
	}

	return nil, fmt.Errorf("cannot iterate %T", value)
}
