// Package styling implements the style-lookup collaborator of the screen
// language: named style handles resolved through a registry, with the
// group-prefix fallback the style prefix mechanism relies on.
package styling

import (
	"fmt"
)

// Style is the opaque handle handed to widget constructors under the
// "style" keyword.
type Style struct {
	// Name is the fully qualified name the style was registered under.
	Name string

	// Parent, when set, names the style this one was derived from.
	Parent string

	// Properties holds the style's declared properties.
	Properties map[string]any
}

// NewStyle creates a style with the given name and properties.
func NewStyle(name string, properties map[string]any) *Style {
	if properties == nil {
		properties = map[string]any{}
	}
	return &Style{Name: name, Properties: properties}
}

// Derive creates a child style that records its parent's name and starts
// from a copy of its properties.
func (s *Style) Derive(name string) *Style {
	properties := make(map[string]any, len(s.Properties))
	for k, v := range s.Properties {
		properties[k] = v
	}
	return &Style{Name: name, Parent: s.Name, Properties: properties}
}

func (s *Style) String() string {
	return fmt.Sprintf("Style(%s)", s.Name)
}
