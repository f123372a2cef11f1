// Package sldoc loads screen definitions from YAML documents. The
// document describes an already-structured node tree; the expression
// sources inside it are compiled by the expression-compiler boundary
// during prepare, not here.
package sldoc

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Jjop12/renpy/pkg/screen"
	"github.com/Jjop12/renpy/pkg/sl"
	"github.com/Jjop12/renpy/pkg/widgets"
)

// Compiler is the loader's view of the expression compiler: everything
// the node tree needs, plus statement-block compilation for python nodes.
type Compiler interface {
	sl.ExprCompiler
	CompileCode(src string) (sl.CompiledCode, error)
}

// Document is the YAML shape of one screen definition.
type Document struct {
	Screen   string       `yaml:"screen"`
	Keywords []KeywordDoc `yaml:"keywords,omitempty"`
	Nodes    []NodeDoc    `yaml:"nodes"`
}

// KeywordDoc is one declared keyword argument. Declaration order is
// preserved into the compiled block.
type KeywordDoc struct {
	Name string `yaml:"name"`
	Expr string `yaml:"expr"`
}

// NodeDoc is one node of the tree. Exactly one of the variant fields may
// be set.
type NodeDoc struct {
	// Displayable
	Widget     string       `yaml:"widget,omitempty"`
	Positional []string     `yaml:"positional,omitempty"`
	Keywords   []KeywordDoc `yaml:"keywords,omitempty"`
	Children   []NodeDoc    `yaml:"children,omitempty"`

	// Control
	If      []BranchDoc `yaml:"if,omitempty"`
	For     *ForDoc     `yaml:"for,omitempty"`
	Python  string      `yaml:"python,omitempty"`
	Default *DefaultDoc `yaml:"default,omitempty"`
	Pass    bool        `yaml:"pass,omitempty"`
}

// BranchDoc is one branch of an if node. An absent cond marks the else
// branch.
type BranchDoc struct {
	Cond     string       `yaml:"cond,omitempty"`
	Keywords []KeywordDoc `yaml:"keywords,omitempty"`
	Then     []NodeDoc    `yaml:"then"`
}

// ForDoc is the loop variant.
type ForDoc struct {
	Var  string    `yaml:"var"`
	In   string    `yaml:"in"`
	Body []NodeDoc `yaml:"body"`
}

// DefaultDoc is the default-binding variant.
type DefaultDoc struct {
	Var  string `yaml:"var"`
	Expr string `yaml:"expr"`
}

// Loader builds screen definitions from documents.
type Loader struct {
	compiler Compiler
}

// NewLoader returns a loader compiling expressions with compiler.
func NewLoader(compiler Compiler) *Loader {
	return &Loader{compiler: compiler}
}

// LoadFile reads and loads one screen document.
func (l *Loader) LoadFile(path string) (*screen.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	def, err := l.Load(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return def, nil
}

// Load builds a definition from YAML bytes. The definition is not yet
// prepared; callers run Prepare (and again after any init code).
func (l *Loader) Load(data []byte) (*screen.Definition, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if doc.Screen == "" {
		return nil, fmt.Errorf("document has no screen name")
	}

	root, err := l.buildBlock(doc.Keywords, doc.Nodes)
	if err != nil {
		return nil, fmt.Errorf("screen %q: %w", doc.Screen, err)
	}

	return &screen.Definition{Name: doc.Screen, Root: root}, nil
}

func (l *Loader) buildBlock(keywords []KeywordDoc, nodes []NodeDoc) (*sl.Block, error) {
	block := sl.NewBlock(l.compiler)
	for _, kw := range keywords {
		if kw.Name == "" {
			return nil, fmt.Errorf("keyword with empty name")
		}
		block.AddKeyword(kw.Name, kw.Expr)
	}
	for i, node := range nodes {
		built, err := l.buildNode(node)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		block.AddChild(built)
	}
	return block, nil
}

func (l *Loader) buildNode(doc NodeDoc) (sl.Node, error) {
	variants := 0
	if doc.Widget != "" {
		variants++
	}
	if len(doc.If) > 0 {
		variants++
	}
	if doc.For != nil {
		variants++
	}
	if doc.Python != "" {
		variants++
	}
	if doc.Default != nil {
		variants++
	}
	if doc.Pass {
		variants++
	}
	if variants != 1 {
		return nil, fmt.Errorf("node must set exactly one of widget/if/for/python/default/pass")
	}

	switch {
	case doc.Widget != "":
		return l.buildDisplayable(doc)

	case len(doc.If) > 0:
		node := sl.NewIf(l.compiler)
		for i, branch := range doc.If {
			if branch.Cond == "" && i != len(doc.If)-1 {
				return nil, fmt.Errorf("else branch must be last")
			}
			block, err := l.buildBlock(branch.Keywords, branch.Then)
			if err != nil {
				return nil, err
			}
			node.AddBranch(branch.Cond, block)
		}
		return node, nil

	case doc.For != nil:
		if doc.For.Var == "" || doc.For.In == "" {
			return nil, fmt.Errorf("for needs var and in")
		}
		node := sl.NewFor(l.compiler, doc.For.Var, doc.For.In)
		for i, child := range doc.For.Body {
			built, err := l.buildNode(child)
			if err != nil {
				return nil, fmt.Errorf("body %d: %w", i, err)
			}
			node.AddChild(built)
		}
		return node, nil

	case doc.Python != "":
		code, err := l.compiler.CompileCode(doc.Python)
		if err != nil {
			return nil, err
		}
		return sl.NewPython(code), nil

	case doc.Default != nil:
		if doc.Default.Var == "" {
			return nil, fmt.Errorf("default needs var")
		}
		return sl.NewDefault(l.compiler, doc.Default.Var, doc.Default.Expr), nil

	default:
		return sl.NewPass(), nil
	}
}

func (l *Loader) buildDisplayable(doc NodeDoc) (sl.Node, error) {
	entry, ok := widgets.Lookup(doc.Widget)
	if !ok {
		return nil, fmt.Errorf("unknown widget %q (have %v)", doc.Widget, widgets.Names())
	}

	d := sl.NewDisplayable(l.compiler, entry.Construct, entry.Config)
	for _, pos := range doc.Positional {
		d.AddPositional(pos)
	}
	for _, kw := range doc.Keywords {
		if kw.Name == "" {
			return nil, fmt.Errorf("keyword with empty name")
		}
		d.AddKeyword(kw.Name, kw.Expr)
	}

	children := doc.Children

	// Single-child widgets get extra children folded into a fixed.
	if entry.Config.ChildOrFixed && len(children) > 1 {
		fixed, ok := widgets.Lookup("fixed")
		if !ok {
			return nil, fmt.Errorf("fixed widget missing from catalog")
		}
		fold := sl.NewDisplayable(l.compiler, fixed.Construct, fixed.Config)
		for i, child := range children {
			built, err := l.buildNode(child)
			if err != nil {
				return nil, fmt.Errorf("child %d: %w", i, err)
			}
			fold.AddChild(built)
		}
		d.AddChild(fold)
		return d, nil
	}

	for i, child := range children {
		built, err := l.buildNode(child)
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i, err)
		}
		d.AddChild(built)
	}
	return d, nil
}
