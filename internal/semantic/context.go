package semantic

import "github.com/turingarena/turingarena/internal/reference"

// Context is threaded through the tree during lowering: each statement (and
// each synthesized node) is analyzed against the Context accumulated by
// everything that runs before it, and produces the Context seen by whatever
// runs after it. Contexts are immutable; a new one is derived rather than
// mutated in place, mirroring the reference implementation's dataclasses
// but without re-copying the slices they share structurally.
type Context struct {
	// Global is true only for the outermost context, before the main
	// block's first statement.
	Global bool

	// MainBlock is true for contexts inside the main block (as opposed to
	// a callback implementation's body). The analyzer records it, but no
	// diagnostic check reads it.
	MainBlock bool

	// InLoop is true when the context is nested inside a For or Loop,
	// making Break/Continue valid.
	InLoop bool

	// IndexVariables holds the names bound by enclosing For statements,
	// innermost last, so a For body may reference its own index and any
	// enclosing ones.
	IndexVariables []string

	// Actions accumulates every reference.Action produced by nodes that
	// ran earlier in program order, in declaration order. Membership
	// here is what the VariableReused check consults; VariableNotDeclared
	// is decided by the static scope instead.
	Actions []reference.Action
}

// Root returns the initial Context for a main block: global, inside the
// main block, not in a loop, no index variables, no actions yet.
func Root() Context {
	return Context{Global: true, MainBlock: true}
}

// CallbackRoot returns the initial Context for a callback implementation
// body: not the main block, not in a loop, starting from the given
// parameter-declaration actions (a callback's parameters are declared
// before its body runs).
func CallbackRoot(paramActions []reference.Action) Context {
	return Context{Actions: append([]reference.Action(nil), paramActions...)}
}

// WithAction returns a copy of c with act appended to Actions.
func (c Context) WithAction(act reference.Action) Context {
	next := c
	next.Global = false
	next.Actions = append(append([]reference.Action(nil), c.Actions...), act)
	return next
}

// WithActions appends several actions at once.
func (c Context) WithActions(acts []reference.Action) Context {
	next := c
	next.Global = false
	next.Actions = append(append([]reference.Action(nil), c.Actions...), acts...)
	return next
}

// EnterLoop returns a copy of c suitable for a For/Loop body: InLoop set,
// and (for For) the loop index appended to IndexVariables.
func (c Context) EnterLoop(index string) Context {
	next := c
	next.Global = false
	next.InLoop = true
	if index != "" {
		next.IndexVariables = append(append([]string(nil), c.IndexVariables...), index)
	}
	return next
}

// Declared reports whether ref's variable was previously declared, and
// under what dimensionality, by scanning Actions for the most recent
// Declaration of that variable.
func (c Context) Declared(name string) (dims int, ok bool) {
	for i := len(c.Actions) - 1; i >= 0; i-- {
		act := c.Actions[i]
		if act.Reference.Variable.Name != name {
			continue
		}
		if act.Kind == reference.DeclarationKind {
			return act.Dimensions, true
		}
	}
	return 0, false
}

// Resolved reports whether ref was already the target of a Resolution
// action earlier in this context. VARIABLE_REUSED is detected with
// DeclaredRef, not with this method.
func (c Context) Resolved(ref reference.Reference) bool {
	for _, act := range c.Actions {
		if act.Kind == reference.ResolutionKind && act.Reference == ref {
			return true
		}
	}
	return false
}

// DeclaredRef reports whether ref was already the target of a Declaration
// action earlier in this context — used to detect VARIABLE_REUSED when a
// second Read targets the same scalar reference.
func (c Context) DeclaredRef(ref reference.Reference) bool {
	for _, act := range c.Actions {
		if act.Kind == reference.DeclarationKind && act.Reference == ref {
			return true
		}
	}
	return false
}

// HasIndex reports whether name is one of the enclosing For loop indices.
func (c Context) HasIndex(name string) bool {
	for _, idx := range c.IndexVariables {
		if idx == name {
			return true
		}
	}
	return false
}
