package sl

// ifEntry is one declared branch: a condition source (empty for the
// unconditional else branch) and its block.
type ifEntry struct {
	cond  string
	block *Block
}

// preparedEntry pairs a compiled condition (nil for else) with its block.
type preparedEntry struct {
	cond  CompiledExpr
	block *Block
}

// If holds an ordered list of condition/block branches with if/elif/else
// semantics: the first branch whose condition is absent or truthy is acted
// on, and no other branch is evaluated.
type If struct {
	baseNode

	compiler ExprCompiler
	entries  []ifEntry
	prepared []preparedEntry
}

// NewIf returns an empty conditional node.
func NewIf(compiler ExprCompiler) *If {
	return &If{baseNode: newBaseNode(), compiler: compiler}
}

// AddBranch appends a branch. An empty cond marks the unconditional else
// branch, which only makes sense as the last entry.
func (n *If) AddBranch(cond string, block *Block) {
	n.entries = append(n.entries, ifEntry{cond: cond, block: block})
}

// Prepare compiles every present condition and prepares every branch.
func (n *If) Prepare() error {
	prepared := make([]preparedEntry, 0, len(n.entries))

	for _, entry := range n.entries {
		var cond CompiledExpr
		if entry.cond != "" {
			unit, err := n.compiler.Compile(entry.cond)
			if err != nil {
				return err
			}
			cond = unit
		}
		if err := entry.block.Prepare(); err != nil {
			return err
		}
		prepared = append(prepared, preparedEntry{cond: cond, block: entry.block})
	}

	n.prepared = prepared
	return nil
}

// match returns the first branch whose condition is absent or truthy, or
// nil when no branch applies.
func (n *If) match(scope Scope) (*Block, error) {
	for _, entry := range n.prepared {
		if entry.cond == nil {
			return entry.block, nil
		}
		v, err := entry.cond.Eval(scope)
		if err != nil {
			return nil, err
		}
		if Truthy(v) {
			return entry.block, nil
		}
	}
	return nil, nil
}

func (n *If) Execute(ctx *Context) error {
	block, err := n.match(ctx.Scope)
	if err != nil || block == nil {
		return err
	}
	return block.Execute(ctx)
}

func (n *If) Keywords(ctx *Context) error {
	block, err := n.match(ctx.Scope)
	if err != nil || block == nil {
		return err
	}
	return block.Keywords(ctx)
}
