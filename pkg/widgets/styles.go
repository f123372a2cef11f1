package widgets

import (
	"github.com/Jjop12/renpy/pkg/styling"
)

// RegisterBaseStyles installs a plain style for every base style name the
// catalog references, so documents resolve without a style sheet.
func RegisterBaseStyles(reg *styling.Registry) {
	seen := map[string]bool{}
	for _, entry := range catalog {
		name := entry.Config.Style
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		reg.Register(styling.NewStyle(name, nil))
	}
}
