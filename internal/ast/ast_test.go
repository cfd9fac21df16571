package ast_test

import (
	"testing"

	"github.com/turingarena/turingarena/internal/ast"
)

func TestIntLiteralString(t *testing.T) {
	cases := map[int64]string{0: "0", 42: "42", -7: "-7"}
	for v, want := range cases {
		lit := &ast.IntLiteral{Value: v}
		if got := lit.String(); got != want {
			t.Errorf("IntLiteral{%d}.String() = %q, want %q", v, got, want)
		}
	}
}

func TestSubscriptString(t *testing.T) {
	expr := &ast.Subscript{
		Array: &ast.VariableReference{Name: "v"},
		Index: &ast.VariableReference{Name: "i"},
	}
	if got, want := expr.String(), "v[i]"; got != want {
		t.Errorf("Subscript.String() = %q, want %q", got, want)
	}
}

func TestCallByNameFindsImplementation(t *testing.T) {
	call := &ast.Call{
		MethodName: "solve",
		Callbacks: []*ast.CallbackImplementation{
			{Name: "report", Params: []string{"x"}},
		},
	}
	if impl := call.ByName("report"); impl == nil || impl.Name != "report" {
		t.Fatalf("expected to find callback report, got %+v", impl)
	}
	if impl := call.ByName("missing"); impl != nil {
		t.Fatalf("expected nil for an undeclared callback, got %+v", impl)
	}
}
