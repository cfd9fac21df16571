package driver

import (
	"fmt"

	"github.com/turingarena/turingarena/internal/ast"
	"github.com/turingarena/turingarena/internal/wire"
)

// evalExpr evaluates expr (a literal, a variable reference, or a chain of
// subscripts over one) against f, returning the wire.Value it denotes.
func evalExpr(f *Frame, expr ast.Expression) (wire.Value, error) {
	switch n := expr.(type) {
	case *ast.IntLiteral:
		return wire.Int(n.Value), nil
	case *ast.VariableReference:
		v, ok := f.Lookup(n.Name)
		if !ok {
			return wire.Value{}, fmt.Errorf("driver: %s not bound at %s", n.Name, n.Pos())
		}
		return v, nil
	case *ast.Subscript:
		base, err := evalExpr(f, n.Array)
		if err != nil {
			return wire.Value{}, err
		}
		idx, err := evalExpr(f, n.Index)
		if err != nil {
			return wire.Value{}, err
		}
		if idx.IsArray {
			return wire.Value{}, fmt.Errorf("driver: subscript index at %s is not a scalar", n.Pos())
		}
		v, ok := Index(base, idx.Scalar)
		if !ok {
			return wire.Value{}, fmt.Errorf("driver: index %d out of range at %s", idx.Scalar, n.Pos())
		}
		return v, nil
	default:
		return wire.Value{}, fmt.Errorf("driver: cannot evaluate expression of type %T", expr)
	}
}

// bindExpr assigns v to the variable expr names, through zero or more
// subscripts. A bare variable is assigned in the nearest frame that already
// binds it, or in f if none does. A one-level subscript over a bare variable (the common
// `v[i]` shape produced by a `for i to n { input v[i]; }` loop) grows that
// variable's array lazily, since the driver is never told array sizes up
// front by a VarDecl — it only learns how large `v` needs to be from the
// highest index actually written. Deeper nesting requires the outer array
// to already be bound (by a prior bindExpr at a shallower depth).
func bindExpr(f *Frame, expr ast.Expression, v wire.Value) error {
	switch n := expr.(type) {
	case *ast.VariableReference:
		target := f.owner(n.Name)
		if target == nil {
			target = f
		}
		target.Bind(n.Name, v)
		return nil
	case *ast.Subscript:
		idx, err := evalExpr(f, n.Index)
		if err != nil {
			return err
		}
		if idx.IsArray || idx.Scalar < 0 {
			return fmt.Errorf("driver: bad index at %s", n.Pos())
		}
		if base, ok := n.Array.(*ast.VariableReference); ok {
			owner := f.owner(base.Name)
			if owner == nil {
				owner = f.root()
			}
			arr, _ := owner.Lookup(base.Name)
			arr.IsArray = true
			for int64(len(arr.Array)) <= idx.Scalar {
				arr.Array = append(arr.Array, wire.Value{})
			}
			arr.Array[idx.Scalar] = v
			owner.Bind(base.Name, arr)
			return nil
		}
		base, err := evalExpr(f, n.Array)
		if err != nil {
			return err
		}
		if !base.IsArray || int(idx.Scalar) >= len(base.Array) {
			return fmt.Errorf("driver: cannot assign %s[%v] at %s", exprName(n.Array), idx.Scalar, n.Pos())
		}
		base.Array[idx.Scalar] = v
		return nil
	default:
		return fmt.Errorf("driver: cannot bind to expression of type %T", expr)
	}
}

func exprName(expr ast.Expression) string {
	switch n := expr.(type) {
	case *ast.VariableReference:
		return n.Name
	case *ast.Subscript:
		return exprName(n.Array)
	default:
		return "?"
	}
}
