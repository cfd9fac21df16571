package semantic

import (
	"github.com/turingarena/turingarena/internal/ast"
	"github.com/turingarena/turingarena/internal/block"
	"github.com/turingarena/turingarena/internal/diagnostic"
	"github.com/turingarena/turingarena/internal/reference"
)

// Step is one grouped run of lowered nodes sharing a data-flow direction,
// ready for the driver to execute as a single request/response round trip.
type Step = block.Step[*Lowered]

// Lowered wraps one statement (original or synthesized) together with the
// nested, already-grouped Steps of any block it controls. Leaf statements
// (Read, Write, Checkpoint, Break, Continue, Exit, Return) leave Body, Else,
// Cases, Default and Callbacks empty.
type Lowered struct {
	Statement ast.Statement

	// Body holds the lowered body of a For or Loop, or the then-branch of
	// an If; Else holds an If's else-branch.
	Body, Else []Step

	// Cases holds a Switch's lowered, still-labeled branches; Default
	// mirrors Else for the switch's default branch.
	Cases   []LoweredCase
	Default []Step

	// Callbacks holds, by callback name, the lowered body the driver
	// runs each time a Call raises that callback.
	Callbacks map[string][]Step
}

// LoweredCase is one Switch branch, with its integer labels resolved.
type LoweredCase struct {
	Labels []int64
	Body   []Step
}

// Program is the fully analyzed, lowered form of a compiled interface: the
// method/constant declarations pass through unchanged, and MainSteps holds
// the main block's grouped, ready-to-drive Steps.
type Program struct {
	Methods   []*ast.MethodPrototype
	Constants []*ast.Constant
	MainSteps []Step
}

// Lower runs the context threader, the reference-action/groupability
// analyzers, and the validator over def in one pass, returning the lowered
// Program and any diagnostics found. A non-empty Diagnostics return does
// not necessarily mean MainSteps is unusable — the caller decides whether
// to treat diagnostics as fatal.
func Lower(def *ast.InterfaceDefinition) (*Program, diagnostic.Diagnostics) {
	a := &analyzer{def: def, consts: map[string]int64{}}
	a.validateCallbackPrototypes()
	s := newScope()
	for _, c := range def.Constants {
		s = s.with(reference.Variable{Name: c.Name, Dimensions: 0})
		a.consts[c.Name] = c.Value
	}
	steps, _, _ := a.block(def.MainBlock, Root(), s)
	return &Program{Methods: def.Methods, Constants: def.Constants, MainSteps: steps}, a.diags
}

// validateCallbackPrototypes checks every declared callback's parameters,
// independent of whether any call site in the main block ever implements
// that callback — a method that is never called (or called without
// implementing one of its callbacks) must still reject an array-typed
// callback parameter in its prototype.
func (a *analyzer) validateCallbackPrototypes() {
	for _, method := range a.def.Methods {
		for _, cb := range method.Callbacks {
			for _, p := range cb.Parameters {
				if p.Dimensions != 0 {
					a.diags = append(a.diags, diagnostic.New(diagnostic.CallbackParametersMustBeScalars, cb.Pos))
				}
			}
		}
	}
}

type analyzer struct {
	def    *ast.InterfaceDefinition
	consts map[string]int64
	diags  diagnostic.Diagnostics
}

func (a *analyzer) errf(kind diagnostic.Kind, pos ast.Node, args ...any) {
	a.diags = append(a.diags, diagnostic.New(kind, pos.Pos(), args...))
}

// block analyzes one sequence of statements, threading scope and Context
// through it, and returns the grouped Steps plus the final scope/Context
// seen after the last statement (used by callers that need to know what a
// loop body declared, e.g. nothing currently, but kept for symmetry).
func (a *analyzer) block(b *ast.Block, ctx Context, s scope) ([]Step, Context, scope) {
	var items []block.Item[*Lowered]
	for _, stmt := range b.Statements {
		var produced []block.Item[*Lowered]
		produced, ctx, s = a.statement(stmt, ctx, s)
		items = append(items, produced...)
	}
	return block.Group(items), ctx, s
}

func item(l *Lowered, dir reference.Direction, groupable bool) block.Item[*Lowered] {
	return block.Item[*Lowered]{Node: l, Direction: dir, Groupable: groupable}
}

func (a *analyzer) statement(stmt ast.Statement, ctx Context, s scope) ([]block.Item[*Lowered], Context, scope) {
	switch n := stmt.(type) {
	case *ast.VarDecl:
		for _, name := range n.Names {
			s = s.with(reference.Variable{Name: name, Dimensions: n.Dimensions})
		}
		return nil, ctx, s

	case *ast.Read:
		for _, arg := range n.Arguments {
			r := a.resolveDeclaring(s, ctx, arg, n)
			if r.Found {
				ctx = ctx.WithAction(reference.Declaration(r.ref, r.Variable.Dimensions-len(r.Indexes)))
			}
		}
		return []block.Item[*Lowered]{item(&Lowered{Statement: n}, reference.Downward, true)}, ctx, s

	case *ast.Write:
		for _, arg := range n.Arguments {
			r := a.resolveResolving(s, ctx, arg, n)
			if r.Found {
				ctx = ctx.WithAction(reference.Resolution(r.ref))
			}
		}
		return []block.Item[*Lowered]{item(&Lowered{Statement: n}, reference.Upward, true)}, ctx, s

	case *ast.Checkpoint:
		return []block.Item[*Lowered]{item(&Lowered{Statement: n}, reference.Upward, false)}, ctx, s

	case *ast.Break:
		if !ctx.InLoop {
			a.errf(diagnostic.UnexpectedBreak, n)
		}
		return []block.Item[*Lowered]{item(&Lowered{Statement: n}, reference.Downward, false)}, ctx, s

	case *ast.Continue:
		if !ctx.InLoop {
			a.errf(diagnostic.UnexpectedBreak, n)
		}
		return []block.Item[*Lowered]{item(&Lowered{Statement: n}, reference.Downward, false)}, ctx, s

	case *ast.Exit:
		return []block.Item[*Lowered]{item(&Lowered{Statement: n}, reference.Downward, false)}, ctx, s

	case *ast.Return:
		if n.Value != nil {
			r := a.resolveResolving(s, ctx, n.Value, n)
			if r.Found {
				ctx = ctx.WithAction(reference.Resolution(r.ref))
			}
		}
		return []block.Item[*Lowered]{item(&Lowered{Statement: n}, reference.Upward, false)}, ctx, s

	case *ast.For:
		if _, exists := s.lookup(n.Index); exists {
			a.errf(diagnostic.VariableReused, n, n.Index)
		}
		r := a.resolveResolving(s, ctx, n.Range, n)
		if r.Found {
			ctx = ctx.WithAction(reference.Resolution(r.ref))
		}
		bodyScope := s.with(reference.Variable{Name: n.Index, Dimensions: 0})
		bodyCtx := ctx.EnterLoop(n.Index)
		steps, _, _ := a.block(n.Body, bodyCtx, bodyScope)
		return []block.Item[*Lowered]{item(&Lowered{Statement: n, Body: steps}, reference.Downward, false)}, ctx, s

	case *ast.Loop:
		bodyCtx := ctx.EnterLoop("")
		steps, _, _ := a.block(n.Body, bodyCtx, s)
		return []block.Item[*Lowered]{item(&Lowered{Statement: n, Body: steps}, reference.Downward, false)}, ctx, s

	case *ast.If:
		r := a.resolveResolving(s, ctx, n.Cond, n)
		if r.Found {
			ctx = ctx.WithAction(reference.Resolution(r.ref))
		}
		thenSteps, _, _ := a.block(n.Then, ctx, s)
		var elseSteps []Step
		if n.Else != nil {
			elseSteps, _, _ = a.block(n.Else, ctx, s)
		}
		return []block.Item[*Lowered]{item(&Lowered{Statement: n, Body: thenSteps, Else: elseSteps}, reference.Downward, false)}, ctx, s

	case *ast.Switch:
		return a.switchStmt(n, ctx, s), ctx, s

	case *ast.Call:
		return a.callStmt(n, ctx, s), ctx, s

	default:
		return nil, ctx, s
	}
}

func (a *analyzer) switchStmt(n *ast.Switch, ctx Context, s scope) []block.Item[*Lowered] {
	r := a.resolveResolving(s, ctx, n.Value, n)
	if r.Found {
		ctx = ctx.WithAction(reference.Resolution(r.ref))
	}
	if len(n.Cases) == 0 {
		a.errf(diagnostic.EmptySwitchBody, n)
	}
	seen := map[int64]bool{}
	lowered := &Lowered{Statement: n, Callbacks: nil}
	for _, c := range n.Cases {
		var labels []int64
		for _, lit := range c.Labels {
			if lit == nil {
				a.errf(diagnostic.SwitchLabelNotLiteral, n)
				continue
			}
			if seen[lit.Value] {
				a.errf(diagnostic.DuplicatedCaseLabel, lit, lit.Value)
			}
			seen[lit.Value] = true
			labels = append(labels, lit.Value)
		}
		steps, _, _ := a.block(c.Body, ctx, s)
		lowered.Cases = append(lowered.Cases, LoweredCase{Labels: labels, Body: steps})
	}
	if n.Default != nil {
		steps, _, _ := a.block(n.Default, ctx, s)
		lowered.Default = steps
	}
	return []block.Item[*Lowered]{item(lowered, reference.Downward, false)}
}

func (a *analyzer) callStmt(n *ast.Call, ctx Context, s scope) []block.Item[*Lowered] {
	method := a.def.MethodByName(n.MethodName)
	if method == nil {
		a.errf(diagnostic.MethodNotDeclared, n, n.MethodName)
		return []block.Item[*Lowered]{item(&Lowered{Statement: n}, reference.Downward, false)}
	}
	if len(n.Arguments) != len(method.Parameters) {
		a.errf(diagnostic.CallWrongArgsNumber, n, n.MethodName, len(method.Parameters), len(n.Arguments))
	}
	for i, arg := range n.Arguments {
		if i >= len(method.Parameters) {
			break
		}
		param := method.Parameters[i]
		r := a.resolveResolving(s, ctx, arg, n)
		if r.Found {
			ctx = ctx.WithAction(reference.Resolution(r.ref))
			if r.Variable.Dimensions-len(r.Indexes) != param.Dimensions {
				a.errf(diagnostic.CallWrongArgsType, n, param.Name, n.MethodName, param.Dimensions, r.Variable.Dimensions-len(r.Indexes))
			}
		}
	}
	if n.ReturnValue != nil && !method.HasReturnValue {
		a.errf(diagnostic.MethodDoesNotReturnValue, n, n.MethodName)
	}
	if n.ReturnValue == nil && method.HasReturnValue {
		a.errf(diagnostic.CallNoReturnExpression, n, n.MethodName)
	}
	if n.ReturnValue != nil {
		r := a.resolveDeclaring(s, ctx, n.ReturnValue, n)
		if r.Found {
			ctx = ctx.WithAction(reference.Declaration(r.ref, r.Variable.Dimensions-len(r.Indexes)))
		}
	}

	for _, impl := range n.Callbacks {
		found := false
		for _, cb := range method.Callbacks {
			if cb.Name == impl.Name {
				found = true
				break
			}
		}
		if !found {
			a.errf(diagnostic.UnexpectedCallback, impl, impl.Name)
		}
	}

	lowered := &Lowered{Statement: n}
	if len(method.Callbacks) > 0 {
		lowered.Callbacks = map[string][]Step{}
		for _, cb := range method.Callbacks {
			impl := n.ByName(cb.Name)
			if impl == nil {
				continue
			}
			cbScope := s
			var paramActions []reference.Action
			for i, p := range cb.Parameters {
				// Array-typed callback parameters are already reported by
				// validateCallbackPrototypes at Lower's entry, independent
				// of whether any call site implements this callback.
				localName := p.Name
				if i < len(impl.Params) {
					localName = impl.Params[i]
				}
				v := reference.Variable{Name: localName, Dimensions: p.Dimensions}
				cbScope = cbScope.with(v)
				paramActions = append(paramActions, reference.Declaration(v.AsReference(), v.Dimensions))
			}
			steps, _, _ := a.block(impl.Body, CallbackRoot(paramActions), cbScope)
			lowered.Callbacks[cb.Name] = steps
		}
	}
	return []block.Item[*Lowered]{item(lowered, reference.Downward, false)}
}

type resolveResult struct {
	ref reference.Reference
	resolved
}

// resolveDeclaring resolves expr in a declaring position (a Read target or
// a Call's bound return value): a bare literal is never valid here, and an
// undeclared base variable is reported once.
func (a *analyzer) resolveDeclaring(s scope, ctx Context, expr ast.Expression, at ast.Node) resolveResult {
	if _, ok := expr.(*ast.IntLiteral); ok {
		a.errf(diagnostic.UnexpectedLiteralInDeclaration, at)
		return resolveResult{}
	}
	r := resolveExpr(s, expr)
	if !r.Found {
		if vr, ok := baseName(expr); ok {
			a.errf(diagnostic.VariableNotDeclared, at, vr)
		}
		return resolveResult{resolved: r}
	}
	ref := r.Variable.AsReference().WithIndexCount(len(r.Indexes))
	if ctx.DeclaredRef(ref) {
		a.errf(diagnostic.VariableReused, at, r.Variable.Name)
	}
	for _, d := range checkIndexes(ctx, r, at.Pos()) {
		a.diags = append(a.diags, d)
	}
	return resolveResult{ref: ref, resolved: r}
}

// resolveResolving resolves expr in a resolving position (a Write/Call
// argument/condition): literals are fine here, they just carry no
// reference; only a VariableReference/Subscript base needs to exist.
func (a *analyzer) resolveResolving(s scope, ctx Context, expr ast.Expression, at ast.Node) resolveResult {
	if _, ok := expr.(*ast.IntLiteral); ok {
		return resolveResult{}
	}
	r := resolveExpr(s, expr)
	if !r.Found {
		if vr, ok := baseName(expr); ok {
			a.errf(diagnostic.VariableNotDeclared, at, vr)
		}
		return resolveResult{resolved: r}
	}
	ref := r.Variable.AsReference().WithIndexCount(len(r.Indexes))
	for _, d := range checkIndexes(ctx, r, at.Pos()) {
		a.diags = append(a.diags, d)
	}
	return resolveResult{ref: ref, resolved: r}
}

func baseName(expr ast.Expression) (string, bool) {
	cur := expr
	for {
		switch n := cur.(type) {
		case *ast.Subscript:
			cur = n.Array
		case *ast.VariableReference:
			return n.Name, true
		default:
			return "", false
		}
	}
}
