// Package errors formats compiler-facing errors — parse failures and
// validator diagnostics — with source context and a caret pointing at the
// offending position, for display on the CLI surface.
package errors

import (
	"fmt"
	"strings"

	"github.com/turingarena/turingarena/internal/lexer"
)

// SourceError is anything that carries a message and a source Position;
// both ParseError and diagnostic.Diagnostic satisfy it.
type SourceError interface {
	error
	Position() lexer.Position
}

// CompilerError pairs a SourceError with the source text it came from, so
// it can render a caret under the exact offending column.
type CompilerError struct {
	Err    SourceError
	Source string
	File   string
}

// New builds a CompilerError.
func New(err SourceError, source, file string) *CompilerError {
	return &CompilerError{Err: err, Source: source, File: file}
}

// Format renders the error with a source line and caret indicator. If
// color is true, ANSI escapes highlight the caret and message.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	pos := e.Err.Position()
	if e.File != "" {
		fmt.Fprintf(&sb, "%s:%d:%d: ", e.File, pos.Line, pos.Column)
	} else {
		fmt.Fprintf(&sb, "%d:%d: ", pos.Line, pos.Column)
	}
	sb.WriteString(e.Err.Error())
	sb.WriteString("\n")

	if line := sourceLine(e.Source, pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAll renders a batch of errors, numbered, separated by blank lines.
func FormatAll(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d error(s):\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&sb, "[%d/%d] ", i+1, len(errs))
		sb.WriteString(e.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
