// Package screen implements the screen layer around the compiled node
// tree: named definitions, a registry with the late-initialization
// re-prepare pass, and per-showing instances that own the widget
// registry, property overrides, and the imagemap stack.
package screen

import (
	"fmt"
	"sync"

	"github.com/Jjop12/renpy/pkg/sl"
)

// Definition is a named screen: a prepared-once node tree that can be
// instantiated any number of times.
type Definition struct {
	// Name identifies the screen in the registry.
	Name string

	// Root is the compiled body of the screen.
	Root *sl.Block
}

// Prepare compiles and constant-folds the screen body. Called once after
// the definition is built and again after late initialization code runs.
func (d *Definition) Prepare() error {
	if d.Root == nil {
		return fmt.Errorf("screen %q has no body", d.Name)
	}
	if err := d.Root.Prepare(); err != nil {
		return fmt.Errorf("screen %q: %w", d.Name, err)
	}
	return nil
}

// Registry maps screen names to definitions.
type Registry struct {
	mu      sync.RWMutex
	screens map[string]*Definition
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{screens: make(map[string]*Definition)}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide screen registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds a definition, replacing any previous one with the same
// name.
func (r *Registry) Register(def *Definition) {
	if def == nil || def.Name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.screens[def.Name] = def
}

// Get looks up a definition by name.
func (r *Registry) Get(name string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.screens[name]
	return def, ok
}

// PrepareAll re-prepares every registered screen. Run after init-level
// code has executed so late-bound names resolve.
func (r *Registry) PrepareAll() error {
	r.mu.RLock()
	defs := make([]*Definition, 0, len(r.screens))
	for _, def := range r.screens {
		defs = append(defs, def)
	}
	r.mu.RUnlock()

	for _, def := range defs {
		if err := def.Prepare(); err != nil {
			return err
		}
	}
	return nil
}
