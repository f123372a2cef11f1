// Package sl implements the compiled form of the screen language: a tree
// of nodes that is prepared once (compiling and constant-folding every
// attached expression) and then executed repeatedly against a mutable
// variable scope to produce a tree of UI elements.
package sl

import (
	"sync/atomic"
)

// serialCounter assigns a process-unique serial to every node at
// construction time. Execution never touches it.
var serialCounter atomic.Uint64

func nextSerial() uint64 {
	return serialCounter.Add(1)
}

// Scope is the mutable name-to-value mapping expressions evaluate against.
// It is shared by reference across a subtree's execution.
type Scope map[string]any

// Props is an ordered-insensitive keyword mapping assembled for a
// displayable during the keywords pass.
type Props map[string]any

// Element is an opaque constructed UI element. The core only needs the
// add-child operation; everything else about an element belongs to the
// widget layer.
type Element interface {
	Add(child Element)
}

// Transform wraps or replaces a constructed element before it is attached
// to its parent. Supplied through the reserved "at" keyword.
type Transform func(Element) (Element, error)

// Constructor builds a UI element from resolved positional and keyword
// arguments. Supplied per displayable node by the widget layer.
type Constructor func(args []any, kw Props) (Element, error)

// StyleResolver maps a qualified style name to an opaque style handle.
type StyleResolver interface {
	GetStyle(name string) (any, error)
}

// Screen is the externally owned per-screen registry: the core registers
// constructed widgets into it by id, and reads property overrides from it.
type Screen interface {
	RegisterWidget(id string, el Element)
	WidgetProperties(id string) (Props, bool)
}

// ImagemapStack is the external stack the core pops one entry from per
// imagemap displayable. The matching push happens inside the imagemap's
// constructor, outside this package's responsibility.
type ImagemapStack interface {
	Pop() error
}

// ExprCompiler compiles embedded-language expression source into reusable
// units. Implemented outside this package (see pkg/script).
type ExprCompiler interface {
	// Compile compiles a single expression.
	Compile(src string) (CompiledExpr, error)

	// CompileTuple compiles several expressions into one unit whose
	// evaluation yields a []any in the given order.
	CompileTuple(srcs []string) (CompiledExpr, error)

	// CompileDict compiles keyword expressions into one unit whose
	// evaluation yields a map[string]any. keys and srcs are parallel.
	CompileDict(keys, srcs []string) (CompiledExpr, error)

	// Constant reports whether src is a compile-time constant.
	Constant(src string) (bool, error)
}

// CompiledExpr is a reusable compiled expression.
type CompiledExpr interface {
	Eval(scope Scope) (any, error)
}

// CompiledCode is a reusable compiled statement block. Executing it may
// read and write scope bindings arbitrarily.
type CompiledCode interface {
	Exec(scope Scope) error
}

// Context is the per-execution environment threaded through the node tree.
// A root context owns fresh containers; a derived context shares its
// parent's until a node deliberately replaces them.
type Context struct {
	// Scope is shared by reference with every node of the execution
	// unless a child context replaces it, which no node in this core does.
	Scope Scope

	// Children accumulates constructed elements for the nearest
	// enclosing composite. A pointer so appends are visible to every
	// context sharing the list.
	Children *[]Element

	// Keywords accumulates keyword arguments for the nearest enclosing
	// displayable.
	Keywords Props

	// StylePrefix qualifies style lookups for this subtree.
	StylePrefix string

	// Collaborators, inherited unchanged by derived contexts.
	Styles    StyleResolver
	Screen    Screen
	Imagemaps ImagemapStack
}

// NewContext returns a root context with fresh containers. A nil scope is
// replaced with an empty one.
func NewContext(scope Scope) *Context {
	if scope == nil {
		scope = Scope{}
	}
	return &Context{
		Scope:    scope,
		Children: &[]Element{},
		Keywords: Props{},
	}
}

// Child derives a context that shares every container and collaborator
// with its parent. Callers that need isolation replace Keywords or
// Children on the returned context.
func (c *Context) Child() *Context {
	derived := *c
	return &derived
}

func (c *Context) appendChild(el Element) {
	*c.Children = append(*c.Children, el)
}

// Node is a compiled screen-language tree element. The node set is closed:
// Block, Displayable, If, For, Python, Pass and Default are the only
// implementations, so a traversal that handles those handles everything.
//
// Prepare is called once after the tree is built and once more after any
// late-bound initialization code has run; it must therefore be safe to
// call twice. After Prepare completes the node is immutable and the same
// tree may be executed any number of times, provided each execution uses
// its own Context.
type Node interface {
	// Serial returns the construction-time serial number. Ordering and
	// identity aid only; no effect on execution.
	Serial() uint64

	// Prepare compiles and constant-folds the node's expressions.
	Prepare() error

	// Execute runs the node, mutating ctx and appending any constructed
	// elements to ctx.Children.
	Execute(ctx *Context) error

	// Keywords contributes keyword and style-prefix data to ctx without
	// constructing any elements.
	Keywords(ctx *Context) error

	node()
}

// baseNode carries the serial number and the no-op defaults for Prepare
// and Keywords. It has no Execute: every concrete node supplies its own,
// which is what makes the "execute not implemented" failure of a naive
// base class statically impossible here.
type baseNode struct {
	serial uint64
}

func newBaseNode() baseNode {
	return baseNode{serial: nextSerial()}
}

func (b *baseNode) Serial() uint64 { return b.serial }

func (*baseNode) Prepare() error { return nil }

func (*baseNode) Keywords(*Context) error { return nil }

func (*baseNode) node() {}
