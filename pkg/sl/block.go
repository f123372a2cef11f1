package sl

import (
	"fmt"
)

// keywordArg is a declared (name, expression-source) pair. Declaration
// order is preserved so constant keywords apply before dynamic ones.
type keywordArg struct {
	name string
	expr string
}

// Block is a composite node owning an ordered keyword list and an ordered
// child list. Prepare partitions the keywords into a constant mapping,
// folded once, and a single combined dictionary unit compiled from the
// remaining dynamic expressions.
type Block struct {
	baseNode

	compiler ExprCompiler
	keyword  []keywordArg
	children []Node

	// Filled by Prepare. Either may be nil, in which case it is never
	// consulted at execution time.
	keywordValues Props
	keywordExprs  CompiledExpr
}

// NewBlock returns an empty block whose expressions will be compiled with
// the given compiler.
func NewBlock(compiler ExprCompiler) *Block {
	return &Block{baseNode: newBaseNode(), compiler: compiler}
}

// AddKeyword appends a keyword argument. Order is significant.
func (b *Block) AddKeyword(name, expr string) {
	b.keyword = append(b.keyword, keywordArg{name: name, expr: expr})
}

// AddChild appends a child node.
func (b *Block) AddChild(n Node) {
	b.children = append(b.children, n)
}

// Children returns the block's child nodes.
func (b *Block) Children() []Node {
	return b.children
}

// Prepare recursively prepares every child, then folds the keyword list.
// Safe to call again: all compiled state is rebuilt from the declarations.
func (b *Block) Prepare() error {
	for _, child := range b.children {
		if err := child.Prepare(); err != nil {
			return err
		}
	}

	values := Props{}
	var dynKeys, dynExprs []string

	for _, kw := range b.keyword {
		constant, err := b.compiler.Constant(kw.expr)
		if err != nil {
			return fmt.Errorf("keyword %q: %w", kw.name, err)
		}
		if constant {
			unit, err := b.compiler.Compile(kw.expr)
			if err != nil {
				return fmt.Errorf("keyword %q: %w", kw.name, err)
			}
			v, err := unit.Eval(nil)
			if err != nil {
				return fmt.Errorf("keyword %q: %w", kw.name, err)
			}
			values[kw.name] = v
		} else {
			dynKeys = append(dynKeys, kw.name)
			dynExprs = append(dynExprs, kw.expr)
		}
	}

	if len(values) > 0 {
		b.keywordValues = values
	} else {
		b.keywordValues = nil
	}

	if len(dynKeys) > 0 {
		unit, err := b.compiler.CompileDict(dynKeys, dynExprs)
		if err != nil {
			return err
		}
		b.keywordExprs = unit
	} else {
		b.keywordExprs = nil
	}

	return nil
}

// Execute runs every child in order against the shared context.
func (b *Block) Execute(ctx *Context) error {
	for _, child := range b.children {
		if err := child.Execute(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Keywords merges the folded constant keywords, then the dynamic ones (so
// dynamic values can override constants), resolves any style_group, and
// finally recurses into the children.
func (b *Block) Keywords(ctx *Context) error {
	if err := b.ApplyKeywords(ctx); err != nil {
		return err
	}

	for _, child := range b.children {
		if err := child.Keywords(ctx); err != nil {
			return err
		}
	}

	return nil
}

// ApplyKeywords merges this block's own keyword list into the context
// without recursing into children. The screen layer uses it to apply
// screen-level keywords before executing the body.
func (b *Block) ApplyKeywords(ctx *Context) error {
	if b.keywordValues != nil {
		for k, v := range b.keywordValues {
			ctx.Keywords[k] = v
		}
	}

	if b.keywordExprs != nil {
		v, err := b.keywordExprs.Eval(ctx.Scope)
		if err != nil {
			return err
		}
		m, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("keyword unit evaluated to %T, not a mapping", v)
		}
		for k, val := range m {
			ctx.Keywords[k] = val
		}
	}

	// style_group never reaches a constructor; it rewrites the prefix
	// for the subtree instead. A nil value explicitly unsets the prefix.
	if group, given := ctx.Keywords["style_group"]; given {
		delete(ctx.Keywords, "style_group")
		switch g := group.(type) {
		case nil:
			ctx.StylePrefix = ""
		case string:
			ctx.StylePrefix = g + "_"
		default:
			return fmt.Errorf("style_group must be a string or nil, got %T", group)
		}
	}

	return nil
}
