package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/turingarena/turingarena/internal/parser"
	"github.com/turingarena/turingarena/internal/semantic"
)

func TestEngineReadForWrite(t *testing.T) {
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

	sol := NewMemSolution()
	defer sol.Out.Flush()

	in := NewSliceInput([]int64{3, 10, 20, 30})
	out := &SliceOutput{}
	e := NewEngine(sol.Conn, sol.Out, in, out)

	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background(), prog) }()

	// Drain every line the engine writes (n, then v[0..2]) so it never
	// blocks on an unread pipe.
	for i := 0; i < 4; i++ {
		if _, err := sol.FromEngine.ReadLine(); err != nil {
			t.Fatalf("reading engine output line %d: %v", i, err)
		}
	}

	if err := <-done; err != nil {
		t.Fatalf("engine run: %v", err)
	}
	if len(out.Values) != 3 || out.Values[0] != 10 || out.Values[1] != 20 || out.Values[2] != 30 {
		t.Errorf("unexpected output values: %v", out.Values)
	}
}

func TestEngineCallWithCallback(t *testing.T) {
	src := `
function solve(int n) {
	callback report(int x);
}
main {
	var int n;
	input n;
	call solve(n) {
		callback report(x) {
			output x;
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

	sol := NewMemSolution()
	in := NewSliceInput([]int64{5})
	out := &SliceOutput{}
	e := NewEngine(sol.Conn, sol.Out, in, out)

	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background(), prog) }()

	// Drain the input-echo line for n.
	if _, err := sol.FromEngine.ReadLine(); err != nil {
		t.Fatalf("reading input echo: %v", err)
	}
	// Drain the method_call request: kind, name, argc, arg(tag,val),
	// has_return_value, callback count, callback name, callback arity.
	for i := 0; i < 9; i++ {
		if _, err := sol.FromEngine.ReadLine(); err != nil {
			t.Fatalf("reading method_call field %d: %v", i, err)
		}
	}
	// Raise callback index 0 with parameter x=99.
	if err := sol.ToEngine.WriteInt(0); err != nil {
		t.Fatalf("writing callback index: %v", err)
	}
	if err := sol.ToEngine.WriteInt(99); err != nil {
		t.Fatalf("writing callback param: %v", err)
	}
	if err := sol.ToEngine.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	// No more callbacks.
	if err := sol.ToEngine.WriteInt(NoMoreCallbacks); err != nil {
		t.Fatalf("writing sentinel: %v", err)
	}
	if err := sol.ToEngine.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	if err := <-done; err != nil {
		t.Fatalf("engine run: %v", err)
	}
	if len(out.Values) != 1 || out.Values[0] != 99 {
		t.Errorf("expected callback to output 99, got %v", out.Values)
	}
}

func TestEngineSwitchNoMatchingCaseIsInterfaceError(t *testing.T) {
	src := `
main {
	var int k;
	input k;
	switch k { case 1 { checkpoint; } case 2 { } }
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

	sol := NewMemSolution()
	defer sol.Out.Flush()

	in := NewSliceInput([]int64{3})
	out := &SliceOutput{}
	e := NewEngine(sol.Conn, sol.Out, in, out)

	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background(), prog) }()

	if _, err := sol.FromEngine.ReadLine(); err != nil {
		t.Fatalf("reading input echo: %v", err)
	}

	runErr := <-done
	if runErr == nil {
		t.Fatal("expected an error when no switch case matches")
	}
	var ifaceErr *InterfaceError
	if !errors.As(runErr, &ifaceErr) {
		t.Fatalf("expected *InterfaceError, got %T: %v", runErr, runErr)
	}
	if !errors.Is(runErr, ErrInterface) {
		t.Errorf("expected errors.Is(runErr, ErrInterface) to hold")
	}
}
