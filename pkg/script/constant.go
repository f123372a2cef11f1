package script

import (
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

// isConstant reports whether an expression node can be evaluated at
// prepare time. The set is conservative: anything not positively known to
// be constant is treated as dynamic.
func isConstant(node ast.Node) bool {
	switch n := node.(type) {
	case *ast.NilNode, *ast.IntegerNode, *ast.FloatNode, *ast.BoolNode,
		*ast.StringNode, *ast.ConstantNode:
		return true

	case *ast.UnaryNode:
		return isConstant(n.Node)

	case *ast.BinaryNode:
		return isConstant(n.Left) && isConstant(n.Right)

	case *ast.ConditionalNode:
		return isConstant(n.Cond) && isConstant(n.Exp1) && isConstant(n.Exp2)

	case *ast.ArrayNode:
		for _, item := range n.Nodes {
			if !isConstant(item) {
				return false
			}
		}
		return true

	case *ast.MapNode:
		for _, pair := range n.Pairs {
			if !isConstant(pair) {
				return false
			}
		}
		return true

	case *ast.PairNode:
		return isConstant(n.Key) && isConstant(n.Value)
	}

	return false
}

// nameCollector gathers every identifier an expression references.
type nameCollector struct {
	seen  map[string]bool
	names []string
}

func (c *nameCollector) Visit(node *ast.Node) {
	if ident, ok := (*node).(*ast.IdentifierNode); ok {
		if !c.seen[ident.Value] {
			c.seen[ident.Value] = true
			c.names = append(c.names, ident.Value)
		}
	}
}

// scopeNames returns the scope names referenced by a parsed expression,
// in first-reference order.
func scopeNames(tree *parser.Tree) []string {
	collector := &nameCollector{seen: map[string]bool{}}
	ast.Walk(&tree.Node, collector)
	return collector.names
}
