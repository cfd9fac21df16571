package driver

import (
	"errors"
	"fmt"

	"github.com/turingarena/turingarena/internal/lexer"
)

// Sentinel errors distinguishing the three runtime failure categories the
// engine can raise, matched with errors.Is. errors.As recovers the
// concrete type (InterfaceError, AlgorithmRuntimeError, ProtocolError) for
// its extra fields.
var (
	// ErrInterface marks a failure caused by the running program violating
	// the compiled interface's own semantics (an unmatched switch, an
	// unknown callback index) rather than the transport or the grammar.
	ErrInterface = errors.New("interface error")
	// ErrAlgorithmRuntime marks a failure attributable to the solution
	// process itself during a Call: exceeding its time budget. A solution
	// that exits before replying surfaces as a ProtocolError instead.
	ErrAlgorithmRuntime = errors.New("algorithm runtime error")
	// ErrProtocol marks a failure decoding the wire protocol: a malformed
	// token, or an I/O error on the underlying pipe.
	ErrProtocol = errors.New("protocol error")
)

// InterfaceError reports that the running program took an action the wire
// protocol's shape allowed but the compiled interface forbids.
type InterfaceError struct {
	Message string
	At      lexer.Position
}

func (e *InterfaceError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.At)
}

func (e *InterfaceError) Unwrap() error { return ErrInterface }

// Position satisfies errors.SourceError.
func (e *InterfaceError) Position() lexer.Position { return e.At }

// AlgorithmRuntimeError reports a failure originating from the solution
// process during a Call.
type AlgorithmRuntimeError struct {
	MethodName string
	Cause      error
}

func (e *AlgorithmRuntimeError) Error() string {
	return fmt.Sprintf("algorithm runtime error in %s: %s", e.MethodName, e.Cause)
}

func (e *AlgorithmRuntimeError) Unwrap() []error { return []error{ErrAlgorithmRuntime, e.Cause} }

// ProtocolError reports a failure decoding the wire protocol itself.
type ProtocolError struct {
	Context string
	Cause   error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error %s: %s", e.Context, e.Cause)
}

func (e *ProtocolError) Unwrap() []error { return []error{ErrProtocol, e.Cause} }
