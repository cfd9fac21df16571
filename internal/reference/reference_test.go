package reference_test

import (
	"testing"

	"github.com/turingarena/turingarena/internal/reference"
)

func TestReferenceValid(t *testing.T) {
	v := reference.Variable{Name: "a", Dimensions: 2}
	cases := []struct {
		indexCount int
		want       bool
	}{
		{-1, false},
		{0, true},
		{1, true},
		{2, true},
		{3, false},
	}
	for _, c := range cases {
		ref := v.AsReference().WithIndexCount(c.indexCount)
		if got := ref.Valid(); got != c.want {
			t.Errorf("Reference{%q, %d}.Valid() = %v, want %v", v.Name, c.indexCount, got, c.want)
		}
	}
}

func TestReferenceEquality(t *testing.T) {
	a := reference.Variable{Name: "v", Dimensions: 1}.AsReference().WithIndexCount(1)
	b := reference.Variable{Name: "v", Dimensions: 1}.AsReference().WithIndexCount(1)
	c := reference.Variable{Name: "v", Dimensions: 1}.AsReference().WithIndexCount(0)
	if a != b {
		t.Errorf("expected equal references to compare equal: %+v vs %+v", a, b)
	}
	if a == c {
		t.Errorf("expected references with different index counts to differ: %+v vs %+v", a, c)
	}
}

func TestDeclarationAndResolutionActions(t *testing.T) {
	ref := reference.Variable{Name: "n"}.AsReference()
	decl := reference.Declaration(ref, 0)
	if decl.Kind != reference.DeclarationKind || decl.Reference != ref || decl.Dimensions != 0 {
		t.Errorf("unexpected Declaration action: %+v", decl)
	}
	res := reference.Resolution(ref)
	if res.Kind != reference.ResolutionKind || res.Reference != ref {
		t.Errorf("unexpected Resolution action: %+v", res)
	}
}
