package query

import (
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/rzbill/flexbuf/internal/linering"
)

// Filter wraps a compiled CEL program evaluated against buffered lines.
// When disabled (compiled from an empty expression), Match always
// returns true.
type Filter struct {
	prog    cel.Program
	enabled bool
}

// Compile parses and type-checks expr against the line variables.
// Whitespace-only input yields a match-all filter.
func Compile(expr string) (Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Filter{enabled: false}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("id", cel.IntType),
		cel.Variable("size", cel.IntType),
		cel.Variable("text", cel.StringType),
	)
	if err != nil {
		return Filter{}, err
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return Filter{}, iss.Err()
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return Filter{}, iss2.Err()
	}
	prog, err := env.Program(checked)
	if err != nil {
		return Filter{}, err
	}
	return Filter{prog: prog, enabled: true}, nil
}

// Match evaluates the expression against a line. Evaluation errors
// (for example a non-boolean result) count as a non-match.
func (f Filter) Match(ln linering.Line[byte]) bool {
	return f.match(ln.ID(), ln.Data())
}

// MatchRaw evaluates against an id and byte payload directly, for
// sources other than a live ring such as archived entries.
func (f Filter) MatchRaw(id uint32, data []byte) bool {
	return f.match(id, data)
}

func (f Filter) match(id uint32, data []byte) bool {
	if !f.enabled {
		return true
	}
	out, _, err := f.prog.Eval(map[string]any{
		"id":   int64(id),
		"size": int64(len(data)),
		"text": string(data),
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
