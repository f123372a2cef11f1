package main

import (
	"fmt"
	"strings"

	"github.com/Jjop12/renpy/pkg/script"
	"github.com/Jjop12/renpy/pkg/sl"
)

// parseVars builds an initial scope from --var name=expression flags.
// Each right-hand side is an expression evaluated against the scope built
// so far, so later vars can reference earlier ones.
func parseVars(compiler *script.Compiler, vars []string) (sl.Scope, error) {
	scope := sl.Scope{}
	for _, assignment := range vars {
		name, src, found := strings.Cut(assignment, "=")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			return nil, fmt.Errorf("--var %q: want name=expression", assignment)
		}
		unit, err := compiler.Compile(strings.TrimSpace(src))
		if err != nil {
			return nil, fmt.Errorf("--var %s: %w", name, err)
		}
		v, err := unit.Eval(scope)
		if err != nil {
			return nil, fmt.Errorf("--var %s: %w", name, err)
		}
		scope[name] = v
	}
	return scope, nil
}
