package semantic_test

import (
	"testing"

	"github.com/turingarena/turingarena/internal/parser"
	"github.com/turingarena/turingarena/internal/reference"
	"github.com/turingarena/turingarena/internal/semantic"
)

func TestLowerReadWriteArraySequence(t *testing.T) {
	src := `
main {
	var int n;
	var int[] v;
	input n;
	for i to n {
		input v[i];
	}
	for i to n {
		output v[i];
	}
}
`
	def, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	prog, diags := semantic.Lower(def)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(prog.MainSteps) != 3 {
		t.Fatalf("expected 3 top-level steps (input n, for-input, for-output), got %d", len(prog.MainSteps))
	}
	if prog.MainSteps[0].Direction != reference.Downward {
		t.Errorf("expected first step to be downward (input n)")
	}
}

func TestLowerCallWithCallback(t *testing.T) {
	src := `
function solve(int n) {
	callback report(int x) -> int;
}
main {
	var int n;
	input n;
	call solve(n) {
		callback report(x) {
			output x;
			return 0;
		}
	}
}
`
	def, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	prog, diags := semantic.Lower(def)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(prog.MainSteps) != 2 {
		t.Fatalf("expected 2 steps (input n, call), got %d", len(prog.MainSteps))
	}
}

func TestLowerUndeclaredVariableDiagnostic(t *testing.T) {
	src := `
main {
	input n;
}
`
	def, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, diags := semantic.Lower(def)
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %v", len(diags), diags)
	}
}

func TestLowerSwitchDuplicateCaseLabelSingleDiagnostic(t *testing.T) {
	src := `
main {
	var int k;
	input k;
	switch k { case 1 { } case 1 { } }
}
`
	def, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, diags := semantic.Lower(def)
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic for a duplicated case label, got %d: %v", len(diags), diags)
	}
}

func TestLowerCallbackArrayParameterRejectedEvenIfNeverCalled(t *testing.T) {
	src := `
function f() {
	callback cb(int[] a);
}
main {
}
`
	def, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, diags := semantic.Lower(def)
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic for a non-scalar callback parameter, got %d: %v", len(diags), diags)
	}
}

func TestLowerBreakOutsideLoopDiagnostic(t *testing.T) {
	src := `
main {
	break;
}
`
	def, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, diags := semantic.Lower(def)
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %v", len(diags), diags)
	}
}
