package sl

import (
	"fmt"
)

// argSlot records how one positional argument position is filled on each
// execution: from a precomputed constant, or from the combined dynamic
// unit's result.
type argSlot struct {
	dynamic bool
	value   any
}

// DisplayableConfig carries the construction-time configuration of a
// Displayable node, normally taken from the widget catalog.
type DisplayableConfig struct {
	// Style is the base style name; resolved through the context's
	// style prefix when no explicit "style" keyword is given.
	Style string

	// PassScope supplies the execution scope as a "scope" keyword.
	PassScope bool

	// PassContext prepends the child context as the first positional
	// argument.
	PassContext bool

	// ChildOrFixed marks constructors that expect a single child; when
	// a document gives several, the loader folds them into a containing
	// fixed before this node is built.
	ChildOrFixed bool

	// Imagemap marks displayables whose constructor pushes onto the
	// imagemap stack; this node pops the entry when execution finishes.
	Imagemap bool
}

// Displayable is a block that additionally constructs a UI element. Its
// positional argument expressions are constant-folded at prepare time and
// recombined with the per-execution dynamic results in declared order.
type Displayable struct {
	Block

	construct  Constructor
	config     DisplayableConfig
	positional []string

	// Filled by Prepare. positionalValues is nil when no argument is
	// constant (pure-dynamic fast path); positionalExprs is nil when no
	// argument is dynamic (pure-constant fast path).
	positionalValues []argSlot
	positionalExprs  CompiledExpr
}

// NewDisplayable returns a displayable node that builds elements with the
// given constructor.
func NewDisplayable(compiler ExprCompiler, construct Constructor, config DisplayableConfig) *Displayable {
	return &Displayable{
		Block:     Block{baseNode: newBaseNode(), compiler: compiler},
		construct: construct,
		config:    config,
	}
}

// AddPositional appends a positional argument expression.
func (d *Displayable) AddPositional(expr string) {
	d.positional = append(d.positional, expr)
}

// Prepare folds the keyword list via Block.Prepare, then classifies every
// positional expression as constant or dynamic. Constants are evaluated
// once here; the dynamic expressions are compiled into a single tuple
// unit preserving their relative order.
func (d *Displayable) Prepare() error {
	if err := d.Block.Prepare(); err != nil {
		return err
	}

	slots := make([]argSlot, 0, len(d.positional))
	var dynamic []string
	hasValues := false

	for i, src := range d.positional {
		constant, err := d.compiler.Constant(src)
		if err != nil {
			return fmt.Errorf("positional %d: %w", i, err)
		}
		if constant {
			unit, err := d.compiler.Compile(src)
			if err != nil {
				return fmt.Errorf("positional %d: %w", i, err)
			}
			v, err := unit.Eval(nil)
			if err != nil {
				return fmt.Errorf("positional %d: %w", i, err)
			}
			slots = append(slots, argSlot{value: v})
			hasValues = true
		} else {
			slots = append(slots, argSlot{dynamic: true})
			dynamic = append(dynamic, src)
		}
	}

	if hasValues {
		d.positionalValues = slots
	} else {
		d.positionalValues = nil
	}

	if len(dynamic) > 0 {
		unit, err := d.compiler.CompileTuple(dynamic)
		if err != nil {
			return err
		}
		d.positionalExprs = unit
	} else {
		d.positionalExprs = nil
	}

	return nil
}

// resolvePositional rebuilds the positional argument list for one
// execution, merging constants and dynamic results in declared order.
func (d *Displayable) resolvePositional(scope Scope) ([]any, error) {
	values := d.positionalValues
	exprs := d.positionalExprs

	switch {
	case values != nil && exprs != nil:
		result, err := exprs.Eval(scope)
		if err != nil {
			return nil, err
		}
		dyn, ok := result.([]any)
		if !ok {
			return nil, fmt.Errorf("positional unit evaluated to %T, not a tuple", result)
		}
		positional := make([]any, 0, len(values))
		next := 0
		for _, slot := range values {
			if slot.dynamic {
				positional = append(positional, dyn[next])
				next++
			} else {
				positional = append(positional, slot.value)
			}
		}
		return positional, nil

	case values != nil:
		positional := make([]any, 0, len(values))
		for _, slot := range values {
			positional = append(positional, slot.value)
		}
		return positional, nil

	case exprs != nil:
		result, err := exprs.Eval(scope)
		if err != nil {
			return nil, err
		}
		dyn, ok := result.([]any)
		if !ok {
			return nil, fmt.Errorf("positional unit evaluated to %T, not a tuple", result)
		}
		return dyn, nil

	default:
		return nil, nil
	}
}

// Execute constructs this node's element and the elements of its children,
// then appends the (possibly transformed) result to the caller's children.
func (d *Displayable) Execute(context *Context) error {
	positional, err := d.resolvePositional(context.Scope)
	if err != nil {
		return err
	}

	// The child context isolates this node's keyword and child-element
	// contributions; scope and style prefix are inherited.
	ctx := context.Child()
	ctx.Keywords = Props{}
	ctx.Children = &[]Element{}

	if err := d.Block.Keywords(ctx); err != nil {
		return err
	}
	kw := ctx.Keywords

	if d.config.PassContext {
		positional = append([]any{ctx}, positional...)
	}

	if _, given := kw["style"]; !given && d.config.Style != "" {
		style, err := ctx.Styles.GetStyle(ctx.StylePrefix + d.config.Style)
		if err != nil {
			return err
		}
		kw["style"] = style
	}

	if d.config.PassScope {
		kw["scope"] = ctx.Scope
	}

	// id and at are reserved; neither reaches the constructor.
	var widgetID string
	idValue, hasID := kw["id"]
	if hasID {
		delete(kw, "id")
		s, ok := idValue.(string)
		if !ok {
			return fmt.Errorf("widget id must be a string, got %T", idValue)
		}
		widgetID = s
	}

	var transform Transform
	if atValue, given := kw["at"]; given {
		delete(kw, "at")
		t, ok := atValue.(Transform)
		if !ok {
			return fmt.Errorf("at must be a transform, got %T", atValue)
		}
		transform = t
	}

	// External overrides win over everything declared on the node,
	// including an explicit style keyword.
	if hasID && ctx.Screen != nil {
		if overrides, ok := ctx.Screen.WidgetProperties(widgetID); ok {
			for k, v := range overrides {
				kw[k] = v
			}
		}
	}

	el, err := d.construct(positional, kw)
	if err != nil {
		return err
	}

	if err := d.Block.Execute(ctx); err != nil {
		return err
	}

	for _, child := range *ctx.Children {
		el.Add(child)
	}

	if hasID && ctx.Screen != nil {
		ctx.Screen.RegisterWidget(widgetID, el)
	}

	if transform != nil {
		el, err = transform(el)
		if err != nil {
			return err
		}
	}

	context.appendChild(el)

	if d.config.Imagemap {
		if err := ctx.Imagemaps.Pop(); err != nil {
			return err
		}
	}

	return nil
}
