package semantic

import (
	"github.com/turingarena/turingarena/internal/ast"
	"github.com/turingarena/turingarena/internal/diagnostic"
	"github.com/turingarena/turingarena/internal/lexer"
	"github.com/turingarena/turingarena/internal/reference"
)

// resolved is the outcome of walking an expression's Subscript chain down
// to its base VariableReference.
type resolved struct {
	Variable reference.Variable
	// Indexes holds, outermost-first, the index variable name used at
	// each subscript level, or "" if that subscript was an integer
	// literal rather than an index variable.
	Indexes []string
	Found   bool
}

// resolveExpr walks expr (a chain of zero or more Subscripts over a base
// VariableReference) and reports the base variable plus the index
// variables used at each level. It does not itself check the indices
// against the enclosing for-loop nest; callers do that with checkIndexes,
// in declaring and resolving positions alike.
func resolveExpr(s scope, expr ast.Expression) resolved {
	var indexes []string
	cur := expr
	for {
		switch n := cur.(type) {
		case *ast.Subscript:
			switch idx := n.Index.(type) {
			case *ast.VariableReference:
				indexes = append(indexes, idx.Name)
			default:
				indexes = append(indexes, "")
			}
			cur = n.Array
		case *ast.VariableReference:
			v, ok := s.lookup(n.Name)
			// reverse indexes: we walked from outermost subscript to
			// base, so the first index collected is the last applied.
			for i, j := 0, len(indexes)-1; i < j; i, j = i+1, j-1 {
				indexes[i], indexes[j] = indexes[j], indexes[i]
			}
			return resolved{Variable: v, Indexes: indexes, Found: ok}
		default:
			return resolved{}
		}
	}
}

// checkIndexes validates that a resolved reference's subscripts are the
// enclosing for-loop indices, in order, innermost-last: erroring with
// one WrongArrayIndex per mismatched position, and UnexpectedArrayIndex when
// there are more subscripts than the variable has dimensions.
func checkIndexes(c Context, r resolved, pos lexer.Position) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic
	if len(r.Indexes) > r.Variable.Dimensions {
		diags = append(diags, diagnostic.New(diagnostic.UnexpectedArrayIndex, pos))
		return diags
	}
	// The innermost len(r.Indexes) loop indices, outermost-first, must
	// equal r.Indexes exactly.
	enclosing := c.IndexVariables
	if len(enclosing) < len(r.Indexes) {
		diags = append(diags, diagnostic.New(diagnostic.WrongArrayIndex, pos, ""))
		return diags
	}
	start := len(enclosing) - len(r.Indexes)
	for i, want := range r.Indexes {
		got := enclosing[start+i]
		if want != got {
			diags = append(diags, diagnostic.New(diagnostic.WrongArrayIndex, pos, got))
		}
	}
	return diags
}
