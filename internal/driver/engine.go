// Package driver executes a lowered Program against a live solution
// process: a Frame tree holds variable bindings, Read statements take
// scalars from the evaluator's input and send them to the process, Write
// statements hand scalars to the evaluator's output, and Call statements
// send a method_call request to the process and read back callback
// indices, callback parameters and return values as bare integers.
package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/turingarena/turingarena/internal/ast"
	"github.com/turingarena/turingarena/internal/event"
	"github.com/turingarena/turingarena/internal/semantic"
	"github.com/turingarena/turingarena/internal/wire"
)

// Phase is one of the two modes an Engine runs in: Preflight walks the
// tree without touching the solution process, sanity-checking that every
// expression resolves; Run drives the wire for real.
type Phase int

const (
	Preflight Phase = iota
	Run
)

func (p Phase) String() string {
	if p == Preflight {
		return "preflight"
	}
	return "run"
}

// NoMoreCallbacks is the sentinel callback index meaning the solution
// (or, in Preflight, nothing) has no further callbacks to raise during
// the current Call.
const NoMoreCallbacks = -1

// breakSignal and continueSignal are sentinel errors used to unwind a
// For/Loop body, and exitSignal unwinds the whole evaluation from an Exit,
// keeping non-local control flow strictly internal to this package.
type breakSignal struct{}
type continueSignal struct{}
type exitSignal struct{}

func (breakSignal) Error() string    { return "break" }
func (continueSignal) Error() string { return "continue" }
func (exitSignal) Error() string     { return "exit" }

// Engine drives one evaluation of a Program against a solution process.
type Engine struct {
	Conn   *wire.Reader
	Out    *wire.Writer
	Input  InputSource
	Output OutputSink
	Logger *slog.Logger

	Phase Phase

	// CallTimeout bounds each Call's wire round trip; zero means no
	// timeout beyond ctx's own deadline, if any.
	CallTimeout time.Duration

	// Events, if non-nil, receives one event per output value, Checkpoint
	// and Exit so an evaluator can consume the evaluation as a lazy stream
	// instead of reading OutputSink synchronously. The Engine never
	// closes it; callers close it after Run returns.
	Events chan<- event.Event
}

func (e *Engine) emit(ev event.Event) {
	if e.Events != nil {
		e.Events <- ev
	}
}

// NewEngine builds an Engine ready to Run.
func NewEngine(conn *wire.Reader, out *wire.Writer, in InputSource, output OutputSink) *Engine {
	return &Engine{
		Conn:   conn,
		Out:    out,
		Input:  in,
		Output: output,
		Logger: slog.Default(),
		Phase:  Run,
	}
}

// Run executes prog's main block from a fresh root Frame, with prog's
// constants bound in it. An Exit statement ends the run successfully.
func (e *Engine) Run(ctx context.Context, prog *semantic.Program) error {
	frame := NewRootFrame()
	for _, c := range prog.Constants {
		frame.Bind(c.Name, wire.Int(c.Value))
	}
	err := e.runSteps(ctx, prog.MainSteps, frame)
	if _, ok := err.(exitSignal); ok {
		return nil
	}
	return err
}

func (e *Engine) runSteps(ctx context.Context, steps []semantic.Step, frame *Frame) error {
	for _, step := range steps {
		for _, l := range step.Nodes {
			if err := e.runLowered(ctx, l, frame); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Engine) runLowered(ctx context.Context, l *semantic.Lowered, frame *Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch n := l.Statement.(type) {
	case *ast.Read:
		return e.runRead(n, frame)
	case *ast.Write:
		return e.runWrite(n, frame)
	case *ast.Checkpoint:
		if e.Phase == Run {
			if _, err := e.Conn.ReadLine(); err != nil {
				return &ProtocolError{Context: fmt.Sprintf("reading checkpoint acknowledgement at %s", n.Pos()), Cause: err}
			}
		}
		e.Logger.Debug("checkpoint", "pos", n.Pos())
		e.emit(event.Checkpoint())
		return nil
	case *ast.Break:
		return breakSignal{}
	case *ast.Continue:
		return continueSignal{}
	case *ast.Exit:
		if e.Phase == Run {
			tok, err := e.Conn.ReadIdent()
			if err != nil {
				return &ProtocolError{Context: fmt.Sprintf("reading exit request at %s", n.Pos()), Cause: err}
			}
			if tok != wire.Exit.String() {
				return &InterfaceError{Message: fmt.Sprintf("expected exit request, got %q", tok), At: n.Pos()}
			}
		}
		e.Logger.Info("exit reached", "pos", n.Pos())
		e.emit(event.Exit())
		return exitSignal{}
	case *ast.Return:
		if n.Value == nil {
			return nil
		}
		v, err := evalExpr(frame, n.Value)
		if err != nil {
			return err
		}
		if v.IsArray {
			return fmt.Errorf("driver: return value at %s must be scalar", n.Pos())
		}
		if err := e.Out.WriteInt(v.Scalar); err != nil {
			return err
		}
		return e.Out.Flush()
	case *ast.For:
		return e.runFor(ctx, n, l, frame)
	case *ast.Loop:
		return e.runLoop(ctx, n, l, frame)
	case *ast.If:
		return e.runIf(ctx, n, l, frame)
	case *ast.Switch:
		return e.runSwitch(ctx, n, l, frame)
	case *ast.Call:
		return e.runCall(ctx, n, l, frame)
	default:
		return fmt.Errorf("driver: unsupported lowered statement %T", n)
	}
}

func (e *Engine) runRead(n *ast.Read, frame *Frame) error {
	for _, arg := range n.Arguments {
		val, err := e.Input.NextScalar()
		if err != nil {
			return fmt.Errorf("driver: reading input for %s: %w", arg, err)
		}
		if e.Phase == Run {
			if err := e.Out.WriteInt(val); err != nil {
				return err
			}
		}
		if err := bindExpr(frame, arg, wire.Int(val)); err != nil {
			return err
		}
	}
	if e.Phase == Run {
		return e.Out.Flush()
	}
	return nil
}

func (e *Engine) runWrite(n *ast.Write, frame *Frame) error {
	for _, arg := range n.Arguments {
		v, err := evalExpr(frame, arg)
		if err != nil {
			return err
		}
		if v.IsArray {
			return fmt.Errorf("driver: output at %s must be scalar", n.Pos())
		}
		if err := e.Output.EmitScalar(v.Scalar); err != nil {
			return err
		}
		e.emit(event.Output(v.Scalar))
	}
	return nil
}

func (e *Engine) runFor(ctx context.Context, n *ast.For, l *semantic.Lowered, frame *Frame) error {
	rangeVal, err := evalExpr(frame, n.Range)
	if err != nil {
		return err
	}
	if rangeVal.IsArray {
		return fmt.Errorf("driver: for range at %s must be scalar", n.Pos())
	}
	for i := int64(0); i < rangeVal.Scalar; i++ {
		child := frame.Child()
		child.Bind(n.Index, wire.Int(i))
		if err := e.runSteps(ctx, l.Body, child); err != nil {
			if _, ok := err.(breakSignal); ok {
				return nil
			}
			if _, ok := err.(continueSignal); ok {
				continue
			}
			return err
		}
	}
	return nil
}

func (e *Engine) runLoop(ctx context.Context, n *ast.Loop, l *semantic.Lowered, frame *Frame) error {
	for {
		child := frame.Child()
		if err := e.runSteps(ctx, l.Body, child); err != nil {
			if _, ok := err.(breakSignal); ok {
				return nil
			}
			if _, ok := err.(continueSignal); ok {
				continue
			}
			return err
		}
	}
}

func (e *Engine) runIf(ctx context.Context, n *ast.If, l *semantic.Lowered, frame *Frame) error {
	cond, err := evalExpr(frame, n.Cond)
	if err != nil {
		return err
	}
	if cond.IsArray {
		return fmt.Errorf("driver: if condition at %s must be scalar", n.Pos())
	}
	if cond.Scalar != 0 {
		return e.runSteps(ctx, l.Body, frame.Child())
	}
	if l.Else != nil {
		return e.runSteps(ctx, l.Else, frame.Child())
	}
	return nil
}

func (e *Engine) runSwitch(ctx context.Context, n *ast.Switch, l *semantic.Lowered, frame *Frame) error {
	val, err := evalExpr(frame, n.Value)
	if err != nil {
		return err
	}
	if val.IsArray {
		return fmt.Errorf("driver: switch value at %s must be scalar", n.Pos())
	}
	for _, c := range l.Cases {
		for _, label := range c.Labels {
			if label == val.Scalar {
				return e.runSteps(ctx, c.Body, frame.Child())
			}
		}
	}
	if l.Default != nil {
		return e.runSteps(ctx, l.Default, frame.Child())
	}
	return &InterfaceError{
		Message: fmt.Sprintf("switch has no matching case for %d", val.Scalar),
		At:      n.Pos(),
	}
}
