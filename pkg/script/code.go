package script

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Jjop12/renpy/pkg/sl"
)

// assignPattern matches "name = expression". The negative first character
// of the right-hand side keeps "==" comparisons out.
var assignPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*=\s*([^=].*)$`)

// statement is one compiled line of an embedded code block: either an
// assignment into the scope, or a bare expression evaluated for effect.
type statement struct {
	target string // empty for bare expressions
	expr   *compiledExpr
}

// code is a compiled statement block, satisfying sl.CompiledCode.
type code struct {
	statements []statement
}

// CompileCode compiles an embedded statement block: one statement per
// line, each either "name = expression" or a bare expression. Blank lines
// and "#" comments are skipped.
func (c *Compiler) CompileCode(src string) (sl.CompiledCode, error) {
	var statements []statement

	for i, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if m := assignPattern.FindStringSubmatch(line); m != nil {
			unit, err := compile(m[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			statements = append(statements, statement{target: m[1], expr: unit})
			continue
		}

		unit, err := compile(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		statements = append(statements, statement{expr: unit})
	}

	return &code{statements: statements}, nil
}

func (c *code) Exec(scope sl.Scope) error {
	for _, stmt := range c.statements {
		v, err := stmt.expr.Eval(scope)
		if err != nil {
			return err
		}
		if stmt.target != "" {
			scope[stmt.target] = v
		}
	}
	return nil
}
