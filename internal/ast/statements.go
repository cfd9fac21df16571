package ast

import "github.com/turingarena/turingarena/internal/lexer"

// Block is an ordered sequence of statements, as written in the source.
// Derived fields (flattened/grouped children) are computed by the semantic
// package during lowering and stored separately, in its Lowered values,
// rather than on the Block itself.
type Block struct {
	Base
	Statements []Statement
}

func (*Block) statementNode() {}
func (b *Block) String() string { return "block" }

// VarDecl declares one or more variables of a given array depth, e.g.
// `var int n;` (Dimensions=0) or `var int[] v;` (Dimensions=1). It
// registers variable symbols in scope but does not itself emit a
// ReferenceAction; only the statement that first declares a reference
// to the variable (a Read target, a Call return value, a For-body lift,
// or a callback's parameter list) does.
type VarDecl struct {
	Base
	Names      []string
	Dimensions int
}

func (*VarDecl) statementNode() {}
func (d *VarDecl) String() string { return "var" }

// Read is the `input a, b;` statement: the driver sends values downward to
// the solution for each argument, declaring each reference.
type Read struct {
	Base
	Arguments []Expression
}

func (*Read) statementNode() {}
func (r *Read) String() string { return "input" }

// Write is the `output a, b;` statement: the solution already holds the
// value, and the driver asserts it has been resolved.
type Write struct {
	Base
	Arguments []Expression
}

func (*Write) statementNode() {}
func (w *Write) String() string { return "output" }

// Checkpoint is a synchronization point: the driver expects the solution to
// send an (empty) acknowledgement before continuing.
type Checkpoint struct {
	Base
}

func (*Checkpoint) statementNode() {}
func (*Checkpoint) String() string { return "checkpoint" }

// Call invokes a declared method, optionally binding its return value and
// supplying a body for each callback the method may raise.
type Call struct {
	Base
	MethodName  string
	Arguments   []Expression
	ReturnValue Expression // nil if the call result is discarded
	Callbacks   []*CallbackImplementation
}

func (*Call) statementNode() {}
func (c *Call) String() string { return "call " + c.MethodName }

// CallbackImplementation supplies the body a Call runs each time the
// solution raises the named callback during that call.
type CallbackImplementation struct {
	Base
	Name   string
	Params []string // local names bound to the prototype's parameters, in order
	Body   *Block
}

func (*CallbackImplementation) statementNode() {}
func (c *CallbackImplementation) String() string { return "callback " + c.Name }

// ByName finds the implementation for a given callback name among a Call's
// Callbacks, or returns nil if this Call supplies no body for it.
func (c *Call) ByName(name string) *CallbackImplementation {
	for _, impl := range c.Callbacks {
		if impl.Name == name {
			return impl
		}
	}
	return nil
}

// Return is used inside a CallbackImplementation body to hand a value back
// to the solution that raised the callback.
type Return struct {
	Base
	Value Expression
}

func (*Return) statementNode() {}
func (*Return) String() string { return "return" }

// For iterates Index from 0 (inclusive) to Range (exclusive), running Body
// once per iteration with Index bound in a fresh frame.
type For struct {
	Base
	Index string
	Range Expression
	Body  *Block
}

func (*For) statementNode() {}
func (*For) String() string { return "for" }

// Loop repeats Body until a Break is observed or the solution exits.
type Loop struct {
	Base
	Body *Block
}

func (*Loop) statementNode() {}
func (*Loop) String() string { return "loop" }

// If runs Then when Cond is nonzero, Else (if present) otherwise.
type If struct {
	Base
	Cond Expression
	Then *Block
	Else *Block // nil if there is no else-branch
}

func (*If) statementNode() {}
func (*If) String() string { return "if" }

// Case is one labeled branch of a Switch.
type Case struct {
	Labels []*IntLiteral
	Body   *Block
}

// Switch runs the first Case whose label matches Value, or Default.
type Switch struct {
	Base
	Value   Expression
	Cases   []Case
	Default *Block // nil if there is no default case
}

func (*Switch) statementNode() {}
func (*Switch) String() string { return "switch" }

// Break exits the nearest enclosing Loop or For.
type Break struct {
	Base
}

func (*Break) statementNode() {}
func (*Break) String() string { return "break" }

// Continue skips to the next iteration of the nearest enclosing Loop or For.
type Continue struct {
	Base
}

func (*Continue) statementNode() {}
func (*Continue) String() string { return "continue" }

// Exit terminates the evaluation; the solution is expected to send an
// "exit" request at this point.
type Exit struct {
	Base
}

func (*Exit) statementNode() {}
func (*Exit) String() string { return "exit" }

// Parameter is a method or callback formal parameter; callback parameters
// are constrained by the validator to Dimensions == 0 (scalars).
type Parameter struct {
	Name       string
	Dimensions int
}

// CallbackPrototype declares a callback the evaluator may raise during a
// method call.
type CallbackPrototype struct {
	Name           string
	Parameters     []Parameter
	HasReturnValue bool
	Pos            lexer.Position
}

// MethodPrototype declares a method the solution must implement.
type MethodPrototype struct {
	Base
	Name           string
	Parameters     []Parameter
	HasReturnValue bool
	Callbacks      []CallbackPrototype
}

func (*MethodPrototype) statementNode() {}
func (m *MethodPrototype) String() string { return "function " + m.Name }

// Constant is a value known to the driver and the solution alike, bound
// into the main block's initial context before execution starts.
type Constant struct {
	Base
	Name  string
	Value int64
}

// InterfaceDefinition is the root of a compiled IDL document.
type InterfaceDefinition struct {
	Methods   []*MethodPrototype
	Constants []*Constant
	MainBlock *Block
}

// MethodByName looks up a declared method prototype, or returns nil.
func (d *InterfaceDefinition) MethodByName(name string) *MethodPrototype {
	for _, m := range d.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}
