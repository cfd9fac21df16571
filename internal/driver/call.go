package driver

import (
	"context"
	"fmt"
	"sort"

	"github.com/turingarena/turingarena/internal/ast"
	"github.com/turingarena/turingarena/internal/semantic"
	"github.com/turingarena/turingarena/internal/wire"
)

// runCall drives one Call: it issues the method_call request, services
// whatever callbacks the solution raises by running the matching
// CallbackImplementation body, and binds the method's return value if
// any. The round trip is bounded by e.CallTimeout when set.
func (e *Engine) runCall(ctx context.Context, n *ast.Call, l *semantic.Lowered, frame *Frame) error {
	if e.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.CallTimeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() { done <- e.doCall(ctx, n, l, frame) }()

	select {
	case <-ctx.Done():
		return &AlgorithmRuntimeError{MethodName: n.MethodName, Cause: ctx.Err()}
	case err := <-done:
		return err
	}
}

func (e *Engine) doCall(ctx context.Context, n *ast.Call, l *semantic.Lowered, frame *Frame) error {
	args := make([]wire.Value, len(n.Arguments))
	for i, a := range n.Arguments {
		v, err := evalExpr(frame, a)
		if err != nil {
			return err
		}
		args[i] = v
	}

	var callbacks []wire.CallbackArity
	var names []string
	for name := range l.Callbacks {
		names = append(names, name)
	}
	// Deterministic order: callback index i refers to names[i], the
	// implemented callbacks sorted by name. l.Callbacks is a map, whose
	// iteration order is not stable, so sort to keep the wire contract
	// stable.
	sort.Strings(names)
	for _, name := range names {
		paramCount := 0
		if impl := n.ByName(name); impl != nil {
			paramCount = len(impl.Params)
		}
		callbacks = append(callbacks, wire.CallbackArity{Name: name, ParamCount: paramCount})
	}

	req := wire.Request{
		Kind:           wire.MethodCall,
		MethodName:     n.MethodName,
		Arguments:      args,
		HasReturnValue: n.ReturnValue != nil,
		Callbacks:      callbacks,
	}
	if e.Phase == Run {
		if err := req.Write(e.Out); err != nil {
			return err
		}
	}

	for {
		idx, err := e.Conn.ReadInt()
		if err != nil {
			return &ProtocolError{Context: fmt.Sprintf("reading callback index for %s", n.MethodName), Cause: err}
		}
		if idx == NoMoreCallbacks {
			break
		}
		if idx < 0 || int(idx) >= len(names) {
			return &InterfaceError{
				Message: fmt.Sprintf("call %s raised unknown callback index %d", n.MethodName, idx),
				At:      n.Pos(),
			}
		}
		impl := n.ByName(names[idx])
		if err := e.runCallback(ctx, impl, l.Callbacks[names[idx]], frame); err != nil {
			return err
		}
	}

	if n.ReturnValue != nil {
		v, err := e.Conn.ReadInt()
		if err != nil {
			return &ProtocolError{Context: fmt.Sprintf("reading return value for %s", n.MethodName), Cause: err}
		}
		if err := bindExpr(frame, n.ReturnValue, wire.Int(v)); err != nil {
			return err
		}
	}
	return nil
}

// runCallback reads impl's declared parameters off the wire, one scalar
// each in order, binds them by their local names in a fresh child Frame,
// then runs the lowered body. A Return statement in the body writes its
// value to the solution when it runs; runCallback itself sends nothing
// after the body completes.
func (e *Engine) runCallback(ctx context.Context, impl *ast.CallbackImplementation, body []semantic.Step, frame *Frame) error {
	child := frame.Child()
	if impl != nil {
		for _, name := range impl.Params {
			v, err := e.Conn.ReadInt()
			if err != nil {
				return &ProtocolError{Context: fmt.Sprintf("reading parameter %s for callback %s", name, impl.Name), Cause: err}
			}
			child.Bind(name, wire.Int(v))
		}
	}
	return e.runSteps(ctx, body, child)
}
