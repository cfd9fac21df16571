package errors_test

import (
	"strings"
	"testing"

	"github.com/turingarena/turingarena/internal/diagnostic"
	"github.com/turingarena/turingarena/internal/errors"
	"github.com/turingarena/turingarena/internal/lexer"
)

func TestFormatAllEmpty(t *testing.T) {
	if got := errors.FormatAll(nil, false); got != "" {
		t.Errorf("expected empty output for no errors, got %q", got)
	}
}

func TestFormatAllNumbersMultipleErrors(t *testing.T) {
	d1 := diagnostic.New(diagnostic.VariableNotDeclared, lexer.Position{Line: 1, Column: 1}, "n")
	d2 := diagnostic.New(diagnostic.UnexpectedBreak, lexer.Position{Line: 2, Column: 1})
	source := "input n;\nbreak;\n"
	out := errors.FormatAll([]*errors.CompilerError{
		errors.New(d1, source, "f.ta"),
		errors.New(d2, source, "f.ta"),
	}, false)
	if !strings.Contains(out, "2 error(s)") {
		t.Errorf("expected a count header, got %q", out)
	}
	if !strings.Contains(out, "[1/2]") || !strings.Contains(out, "[2/2]") {
		t.Errorf("expected both errors numbered, got %q", out)
	}
}

func TestFormatPointsCaretAtColumn(t *testing.T) {
	d := diagnostic.New(diagnostic.VariableNotDeclared, lexer.Position{Line: 1, Column: 7}, "n")
	ce := errors.New(d, "input n;\n", "")
	out := ce.Format(false)
	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Fatalf("expected at least 3 lines, got %d: %q", len(lines), out)
	}
	caretLine := lines[2]
	if !strings.HasSuffix(caretLine, "^") {
		t.Errorf("expected caret line to end with ^, got %q", caretLine)
	}
}
