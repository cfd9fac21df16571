package semantic

import "github.com/turingarena/turingarena/internal/reference"

// scope is the static variable symbol table in effect at a given point in
// the tree: every VarDecl and Constant that precedes the current statement,
// plus every enclosing For's index (as a zero-dimension variable). It is
// distinct from Context.Actions, which tracks reference actions (read
// resolution), not declared existence.
type scope struct {
	vars map[string]reference.Variable
}

func newScope() scope {
	return scope{vars: map[string]reference.Variable{}}
}

// with returns a copy of s with v added, leaving s unmodified.
func (s scope) with(v reference.Variable) scope {
	next := scope{vars: make(map[string]reference.Variable, len(s.vars)+1)}
	for k, val := range s.vars {
		next.vars[k] = val
	}
	next.vars[v.Name] = v
	return next
}

func (s scope) lookup(name string) (reference.Variable, bool) {
	v, ok := s.vars[name]
	return v, ok
}
