package screen

import (
	"fmt"
	"sync"

	"github.com/Jjop12/renpy/pkg/sl"
)

// Instance is one showing of a screen. It owns the widget registry the
// core writes into, the property-override table the core reads from, and
// the imagemap stack. Executions of a single instance must be serialized
// by the caller; the locks here only make lookups from other goroutines
// safe.
type Instance struct {
	def    *Definition
	styles sl.StyleResolver

	mu         sync.RWMutex
	widgets    map[string]sl.Element
	properties map[string]sl.Props
	imagemaps  []any
}

// NewInstance creates an instance of a prepared definition.
func NewInstance(def *Definition, styles sl.StyleResolver) *Instance {
	return &Instance{
		def:        def,
		styles:     styles,
		widgets:    make(map[string]sl.Element),
		properties: make(map[string]sl.Props),
	}
}

// Definition returns the screen definition this instance shows.
func (i *Instance) Definition() *Definition { return i.def }

// RegisterWidget records a constructed element under its widget id.
func (i *Instance) RegisterWidget(id string, el sl.Element) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.widgets[id] = el
}

// Widget returns the element registered under id by the latest render.
func (i *Instance) Widget(id string) (sl.Element, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	el, ok := i.widgets[id]
	return el, ok
}

// SetWidgetProperties installs external property overrides for a widget
// id. They are merged over the widget's declared keywords on every
// subsequent render.
func (i *Instance) SetWidgetProperties(id string, props sl.Props) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.properties[id] = props
}

// WidgetProperties returns the override set for a widget id.
func (i *Instance) WidgetProperties(id string) (sl.Props, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	props, ok := i.properties[id]
	return props, ok
}

// Push pushes an imagemap entry. Called by imagemap constructors; the
// core pops the entry when the displayable finishes executing.
func (i *Instance) Push(v any) {
	i.imagemaps = append(i.imagemaps, v)
}

// Pop removes the top imagemap entry.
func (i *Instance) Pop() error {
	if len(i.imagemaps) == 0 {
		return fmt.Errorf("imagemap stack is empty")
	}
	i.imagemaps = i.imagemaps[:len(i.imagemaps)-1]
	return nil
}

// Imagemap returns the top imagemap entry, if any. Hotspot constructors
// consult it for the enclosing imagemap.
func (i *Instance) Imagemap() (any, bool) {
	if len(i.imagemaps) == 0 {
		return nil, false
	}
	return i.imagemaps[len(i.imagemaps)-1], true
}

// Render executes the screen body against scope and returns the
// constructed top-level elements. The widget registry is rebuilt from
// scratch on every render; a failed render leaves whatever had been
// registered and constructed so far, and callers must treat the whole
// render as failed.
func (i *Instance) Render(scope sl.Scope) ([]sl.Element, error) {
	i.mu.Lock()
	i.widgets = make(map[string]sl.Element)
	i.mu.Unlock()
	i.imagemaps = i.imagemaps[:0]

	ctx := sl.NewContext(scope)
	ctx.Styles = i.styles
	ctx.Screen = i
	ctx.Imagemaps = i

	// Screen-level keywords apply before the body runs, so a screen's
	// style_group qualifies every style lookup below it.
	if err := i.def.Root.ApplyKeywords(ctx); err != nil {
		return nil, fmt.Errorf("screen %q: %w", i.def.Name, err)
	}

	if err := i.def.Root.Execute(ctx); err != nil {
		return nil, fmt.Errorf("screen %q: %w", i.def.Name, err)
	}
	return *ctx.Children, nil
}

var (
	_ sl.Screen        = (*Instance)(nil)
	_ sl.ImagemapStack = (*Instance)(nil)
)
