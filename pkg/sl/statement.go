package sl

// Python runs a precompiled statement block directly against the current
// scope. It produces no elements and contributes no keywords; the block
// may read and write scope bindings arbitrarily.
type Python struct {
	baseNode

	code CompiledCode
}

// NewPython returns a statement node for already-compiled code.
func NewPython(code CompiledCode) *Python {
	return &Python{baseNode: newBaseNode(), code: code}
}

func (n *Python) Execute(ctx *Context) error {
	return n.code.Exec(ctx.Scope)
}

// Pass is a structurally valid empty statement.
type Pass struct {
	baseNode
}

// NewPass returns a no-op node.
func NewPass() *Pass {
	return &Pass{baseNode: newBaseNode()}
}

func (*Pass) Execute(*Context) error { return nil }

// Default binds a variable to an expression's value, but only when the
// variable is not already present in the scope.
type Default struct {
	baseNode

	compiler   ExprCompiler
	variable   string
	expression string

	expr CompiledExpr
}

// NewDefault returns a default-binding node.
func NewDefault(compiler ExprCompiler, variable, expression string) *Default {
	return &Default{
		baseNode:   newBaseNode(),
		compiler:   compiler,
		variable:   variable,
		expression: expression,
	}
}

// Prepare compiles the expression.
func (n *Default) Prepare() error {
	expr, err := n.compiler.Compile(n.expression)
	if err != nil {
		return err
	}
	n.expr = expr
	return nil
}

func (n *Default) Execute(ctx *Context) error {
	if _, bound := ctx.Scope[n.variable]; bound {
		return nil
	}
	v, err := n.expr.Eval(ctx.Scope)
	if err != nil {
		return err
	}
	ctx.Scope[n.variable] = v
	return nil
}
