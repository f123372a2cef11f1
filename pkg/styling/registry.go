package styling

import (
	"fmt"
	"strings"
	"sync"
)

// Registry maps style names to handles. It satisfies the core's
// StyleResolver contract and is safe for concurrent lookups.
type Registry struct {
	mu     sync.RWMutex
	styles map[string]*Style
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{styles: make(map[string]*Style)}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a style under its own name. A later registration with the
// same name replaces the earlier one.
func (r *Registry) Register(style *Style) {
	if style == nil || style.Name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.styles[style.Name] = style
}

// GetStyle resolves a qualified style name. A prefixed name such as
// "pref_button" falls back to its base name "button" when no style was
// registered under the prefixed form, deriving a prefixed handle from the
// base so group prefixes work without registering every variant.
func (r *Registry) GetStyle(name string) (any, error) {
	r.mu.RLock()
	style, ok := r.styles[name]
	r.mu.RUnlock()
	if ok {
		return style, nil
	}

	if idx := strings.Index(name, "_"); idx >= 0 {
		base := name[idx+1:]
		r.mu.RLock()
		parent, ok := r.styles[base]
		r.mu.RUnlock()
		if ok {
			derived := parent.Derive(name)
			r.Register(derived)
			return derived, nil
		}
	}

	return nil, fmt.Errorf("style %q is not defined", name)
}

// Reset clears all registered styles (useful for testing).
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.styles = make(map[string]*Style)
}
