// Package ast defines the typed node variants of the IDL abstract syntax
// tree: expressions, statements, and the top-level interface definition.
//
// Nodes are immutable once parsed. Each node carries a NodeID, assigned
// sequentially by the parser, so that later passes (the context threader,
// the analyzer) can attach derived data in side tables keyed by NodeID
// instead of embedding back-pointers on the node itself — this keeps the
// tree acyclic and the nodes safe to share across goroutines read-only.
package ast

import (
	"strconv"

	"github.com/turingarena/turingarena/internal/lexer"
)

// Node is the common interface implemented by every AST node.
type Node interface {
	// ID returns this node's arena index, assigned at parse time.
	ID() int
	// Pos returns the node's source position, for diagnostic targeting.
	Pos() lexer.Position
	// String renders the node for debugging and snapshot tests.
	String() string
}

// Base is embedded by every concrete node to provide ID() and Pos().
type Base struct {
	NodeID   int
	Position lexer.Position
}

func (b Base) ID() int              { return b.NodeID }
func (b Base) Pos() lexer.Position  { return b.Position }

// NewBase constructs a Base with the given arena id and source position.
func NewBase(id int, pos lexer.Position) Base {
	return Base{NodeID: id, Position: pos}
}

// Expression is a node that produces an integer value: a literal, a
// variable reference, or a subscript. Expressions are deliberately
// restricted (no arithmetic, no function calls) per the IDL's non-goal of
// a Turing-complete expression language.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a node that performs an action in the main block, a
// callback body, or a for/loop/if/switch body.
type Statement interface {
	Node
	statementNode()
}

// IntLiteral is a bare integer constant, e.g. `3`.
type IntLiteral struct {
	Base
	Value int64
}

func (*IntLiteral) expressionNode() {}
func (e *IntLiteral) String() string { return strconv.FormatInt(e.Value, 10) }

// VariableReference names a previously declared Variable.
type VariableReference struct {
	Base
	Name string
}

func (*VariableReference) expressionNode() {}
func (e *VariableReference) String() string { return e.Name }

// Subscript indexes one level into an array expression, e.g. `v[i]`.
type Subscript struct {
	Base
	Array Expression
	Index Expression
}

func (*Subscript) expressionNode() {}
func (e *Subscript) String() string { return e.Array.String() + "[" + e.Index.String() + "]" }
