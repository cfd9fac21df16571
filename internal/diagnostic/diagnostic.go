// Package diagnostic defines the fixed taxonomy of semantic issues the
// validator can report against an otherwise well-formed IDL parse.
package diagnostic

import (
	"fmt"

	"github.com/turingarena/turingarena/internal/lexer"
)

// Kind is one of the fixed diagnostic tags the validator emits.
type Kind int

const (
	VariableNotDeclared Kind = iota
	VariableReused
	UnexpectedArrayIndex
	WrongArrayIndex
	UnexpectedBreak
	EmptySwitchBody
	DuplicatedCaseLabel
	SwitchLabelNotLiteral
	MethodNotDeclared
	CallNoReturnExpression
	MethodDoesNotReturnValue
	CallWrongArgsNumber
	CallWrongArgsType
	UnexpectedCallback
	CallbackParametersMustBeScalars
	UnexpectedLiteralInDeclaration
)

var names = map[Kind]string{
	VariableNotDeclared:             "VARIABLE_NOT_DECLARED",
	VariableReused:                  "VARIABLE_REUSED",
	UnexpectedArrayIndex:            "UNEXPECTED_ARRAY_INDEX",
	WrongArrayIndex:                 "WRONG_ARRAY_INDEX",
	UnexpectedBreak:                 "UNEXPECTED_BREAK",
	EmptySwitchBody:                 "EMPTY_SWITCH_BODY",
	DuplicatedCaseLabel:             "DUPLICATED_CASE_LABEL",
	SwitchLabelNotLiteral:           "SWITCH_LABEL_NOT_LITERAL",
	MethodNotDeclared:               "METHOD_NOT_DECLARED",
	CallNoReturnExpression:          "CALL_NO_RETURN_EXPRESSION",
	MethodDoesNotReturnValue:        "METHOD_DOES_NOT_RETURN_VALUE",
	CallWrongArgsNumber:             "CALL_WRONG_ARGS_NUMBER",
	CallWrongArgsType:               "CALL_WRONG_ARGS_TYPE",
	UnexpectedCallback:              "UNEXPECTED_CALLBACK",
	CallbackParametersMustBeScalars: "CALLBACK_PARAMETERS_MUST_BE_SCALARS",
	UnexpectedLiteralInDeclaration:  "UNEXPECTED_LITERAL_IN_DECLARATION",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Diagnostic is a single validation finding, carrying its source position
// and whatever arguments its message template needs (a variable name, an
// expected dimension, and so on).
type Diagnostic struct {
	Kind Kind
	Args []any
	Pos  lexer.Position
}

// New builds a Diagnostic at the given position.
func New(kind Kind, pos lexer.Position, args ...any) Diagnostic {
	return Diagnostic{Kind: kind, Args: args, Pos: pos}
}

// Error implements the error interface so a Diagnostic (or a slice of them,
// see Diagnostics.Error) can be returned/wrapped like any other Go error.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s at %s", d.Kind, d.message(), d.Pos)
}

// Position satisfies errors.SourceError, letting a Diagnostic be rendered
// with source context by the errors package.
func (d Diagnostic) Position() lexer.Position {
	return d.Pos
}

func (d Diagnostic) message() string {
	switch d.Kind {
	case VariableNotDeclared:
		return fmt.Sprintf("variable %v not declared", arg(d.Args, 0))
	case VariableReused:
		return fmt.Sprintf("variable %v declared more than once", arg(d.Args, 0))
	case UnexpectedArrayIndex:
		return "unexpected array index"
	case WrongArrayIndex:
		return fmt.Sprintf("expected index variable %v", arg(d.Args, 0))
	case UnexpectedBreak:
		return "break outside of a loop"
	case EmptySwitchBody:
		return "switch has no cases"
	case DuplicatedCaseLabel:
		return fmt.Sprintf("duplicated case label %v", arg(d.Args, 0))
	case SwitchLabelNotLiteral:
		return "case label must be an integer literal"
	case MethodNotDeclared:
		return fmt.Sprintf("method %v not declared", arg(d.Args, 0))
	case CallNoReturnExpression:
		return fmt.Sprintf("call to %v must bind its return value", arg(d.Args, 0))
	case MethodDoesNotReturnValue:
		return fmt.Sprintf("method %v does not return a value", arg(d.Args, 0))
	case CallWrongArgsNumber:
		return fmt.Sprintf("method %v expects %v argument(s), got %v", arg(d.Args, 0), arg(d.Args, 1), arg(d.Args, 2))
	case CallWrongArgsType:
		return fmt.Sprintf("parameter %v of %v expects dimension %v, got %v", arg(d.Args, 0), arg(d.Args, 1), arg(d.Args, 2), arg(d.Args, 3))
	case UnexpectedCallback:
		return fmt.Sprintf("unexpected callback %v", arg(d.Args, 0))
	case CallbackParametersMustBeScalars:
		return "callback parameters must be scalars"
	case UnexpectedLiteralInDeclaration:
		return "literal cannot appear in a declaring position"
	default:
		return "unknown diagnostic"
	}
}

func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return "?"
}

// Diagnostics is a collection of findings from one validation run.
type Diagnostics []Diagnostic

// Error renders every diagnostic, one per line; satisfies the error
// interface so a non-empty Diagnostics can be returned directly as the
// failure from a compile step.
func (ds Diagnostics) Error() string {
	s := ""
	for i, d := range ds {
		if i > 0 {
			s += "\n"
		}
		s += d.Error()
	}
	return s
}
