package parser_test

import (
	"testing"

	"github.com/turingarena/turingarena/internal/ast"
	"github.com/turingarena/turingarena/internal/parser"
)

func TestParseMethodsConstantsAndMain(t *testing.T) {
	src := `
var int limit : 100;
function solve(int n, int v) -> int {
	callback report(int x) -> int;
}
main {
	var int n;
	input n;
	call solve(n, n) -> n;
	exit;
}
`
	def, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(def.Constants) != 1 || def.Constants[0].Name != "limit" || def.Constants[0].Value != 100 {
		t.Fatalf("unexpected constants: %+v", def.Constants)
	}
	if len(def.Methods) != 1 || def.Methods[0].Name != "solve" {
		t.Fatalf("unexpected methods: %+v", def.Methods)
	}
	if def.MainBlock == nil || len(def.MainBlock.Statements) != 4 {
		t.Fatalf("unexpected main block: %+v", def.MainBlock)
	}
}

func TestParseMissingMainBlockFails(t *testing.T) {
	_, err := parser.Parse(`function solve(n) { }`)
	if err == nil {
		t.Fatal("expected an error for a document with no main block")
	}
	if _, ok := err.(*parser.ParseError); !ok {
		t.Fatalf("expected *parser.ParseError, got %T", err)
	}
}

func TestParseDuplicateMainBlockFails(t *testing.T) {
	_, err := parser.Parse(`main { } main { }`)
	if err == nil {
		t.Fatal("expected an error for a document with two main blocks")
	}
}

func TestParseCallbackImplementationCapturesLocalParamNames(t *testing.T) {
	src := `
function solve(int n) {
	callback report(int x);
}
main {
	var int n;
	input n;
	call solve(n) {
		callback report(y) {
			output y;
		}
	}
}
`
	def, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var call *ast.Call
	for _, stmt := range def.MainBlock.Statements {
		if c, ok := stmt.(*ast.Call); ok {
			call = c
		}
	}
	if call == nil {
		t.Fatal("expected a Call statement in the main block")
	}
	impl := call.ByName("report")
	if impl == nil {
		t.Fatal("expected a callback implementation named report")
	}
	if len(impl.Params) != 1 || impl.Params[0] != "y" {
		t.Fatalf("expected local param name y, got %+v", impl.Params)
	}
}

func TestParseSwitchNoParensBraceDelimitedCases(t *testing.T) {
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
	var sw *ast.Switch
	for _, stmt := range def.MainBlock.Statements {
		if s, ok := stmt.(*ast.Switch); ok {
			sw = s
		}
	}
	if sw == nil {
		t.Fatal("expected a Switch statement in the main block")
	}
	if len(sw.Cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(sw.Cases))
	}
	if len(sw.Cases[0].Labels) != 1 || sw.Cases[0].Labels[0].Value != 1 {
		t.Fatalf("unexpected first case labels: %+v", sw.Cases[0].Labels)
	}
	if len(sw.Cases[0].Body.Statements) != 1 {
		t.Fatalf("expected first case to hold one statement (checkpoint), got %d", len(sw.Cases[0].Body.Statements))
	}
	if len(sw.Cases[1].Labels) != 1 || sw.Cases[1].Labels[0].Value != 2 {
		t.Fatalf("unexpected second case labels: %+v", sw.Cases[1].Labels)
	}
	if len(sw.Cases[1].Body.Statements) != 0 {
		t.Fatalf("expected second case to be empty, got %d statements", len(sw.Cases[1].Body.Statements))
	}
}

func TestParseSwitchDuplicateCaseLabels(t *testing.T) {
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
	var sw *ast.Switch
	for _, stmt := range def.MainBlock.Statements {
		if s, ok := stmt.(*ast.Switch); ok {
			sw = s
		}
	}
	if sw == nil || len(sw.Cases) != 2 {
		t.Fatalf("expected 2 parsed cases (duplication is a semantic, not a parse, error), got %+v", sw)
	}
}
