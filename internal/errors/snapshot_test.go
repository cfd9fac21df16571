package errors_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	goerrors "github.com/turingarena/turingarena/internal/errors"
	"github.com/turingarena/turingarena/internal/parser"
)

func TestFormatMalformedSourceSnapshot(t *testing.T) {
	source := "function solve(int n) -> int\nmain {\n}\n"
	_, err := parser.Parse(source)
	if err == nil {
		t.Fatal("expected a parse error for a missing semicolon")
	}
	se, ok := err.(goerrors.SourceError)
	if !ok {
		t.Fatalf("parser error does not satisfy SourceError: %v", err)
	}
	ce := goerrors.New(se, source, "malformed.ta")
	snaps.MatchSnapshot(t, ce.Format(false))
}
