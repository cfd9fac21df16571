package lexer

import "testing"

func TestNextTokenPunctuationAndKeywords(t *testing.T) {
	src := `function solve(n) -> int { callback report(x); }`
	want := []TokenType{
		FUNCTION, IDENT, LPAREN, IDENT, RPAREN, ARROW, INT_TYPE, LBRACE,
		CALLBACK, IDENT, LPAREN, IDENT, RPAREN, SEMI, RBRACE, EOF,
	}
	l := New(src)
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w {
			t.Fatalf("token %d: got %s, want %s", i, tok.Type, w)
		}
	}
}

func TestNextTokenNegativeIntLiteral(t *testing.T) {
	l := New("-7")
	tok := l.NextToken()
	if tok.Type != INT || tok.Literal != "-7" {
		t.Fatalf("got %+v", tok)
	}
}

func TestNextTokenSkipsComments(t *testing.T) {
	l := New("// a line comment\n/* a block\ncomment */n")
	tok := l.NextToken()
	if tok.Type != IDENT || tok.Literal != "n" {
		t.Fatalf("got %+v", tok)
	}
}

func TestNextTokenTracksLineAndColumn(t *testing.T) {
	l := New("a\nb")
	first := l.NextToken()
	second := l.NextToken()
	if first.Pos.Line != 1 || second.Pos.Line != 2 {
		t.Fatalf("expected line 1 then 2, got %+v then %+v", first.Pos, second.Pos)
	}
}

func TestSaveRestoreRewindsScanPosition(t *testing.T) {
	l := New("a b")
	saved := l.Save()
	first := l.NextToken()
	l.Restore(saved)
	again := l.NextToken()
	if first != again {
		t.Fatalf("expected restoring to reproduce the same token, got %+v then %+v", first, again)
	}
}
