// Package parser implements a recursive-descent parser turning IDL source
// text into an *ast.InterfaceDefinition.
//
// IDL expressions need no precedence climbing: they are restricted to
// literals, variable references, and subscripting, so a single
// parseExpression/parsePrimary pair suffices.
package parser

import (
	"fmt"

	"github.com/turingarena/turingarena/internal/ast"
	"github.com/turingarena/turingarena/internal/lexer"
)

// ParseError is a fatal, malformed-source error. It carries no semantic
// meaning beyond "the text does not match the grammar" and is never
// collected alongside diagnostic.Diagnostic values — parsing either
// succeeds completely or fails on the first error.
type ParseError struct {
	Message string
	At      lexer.Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.At)
}

// Position satisfies errors.SourceError.
func (e *ParseError) Position() lexer.Position { return e.At }

// Parser consumes a token stream and builds an AST, assigning each node a
// sequential NodeID as it is constructed.
type Parser struct {
	l *lexer.Lexer

	curToken  lexer.Token
	peekToken lexer.Token

	nextID int
}

// New creates a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) id() int {
	p.nextID++
	return p.nextID
}

func (p *Parser) fail(format string, args ...any) {
	panic(&ParseError{Message: fmt.Sprintf(format, args...), At: p.curToken.Pos})
}

func (p *Parser) expect(t lexer.TokenType) lexer.Token {
	if p.curToken.Type != t {
		p.fail("expected %s, got %s", t, p.curToken.Type)
	}
	tok := p.curToken
	p.next()
	return tok
}

func (p *Parser) accept(t lexer.TokenType) bool {
	if p.curToken.Type == t {
		p.next()
		return true
	}
	return false
}

// Parse parses a complete IDL document. On a malformed document it returns
// a *ParseError; semantic validity is not checked here.
func Parse(source string) (def *ast.InterfaceDefinition, err error) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*ParseError); ok {
				err = pe
				return
			}
			panic(r)
		}
	}()

	p := New(lexer.New(source))
	return p.parseInterface(), nil
}

func (p *Parser) parseInterface() *ast.InterfaceDefinition {
	def := &ast.InterfaceDefinition{}

	for p.curToken.Type != lexer.EOF {
		switch p.curToken.Type {
		case lexer.FUNCTION:
			def.Methods = append(def.Methods, p.parseMethod())
		case lexer.VAR:
			def.Constants = append(def.Constants, p.parseConstant())
		case lexer.MAIN:
			if def.MainBlock != nil {
				p.fail("duplicate main block")
			}
			def.MainBlock = p.parseMainBlock()
		default:
			p.fail("expected function, var, or main, got %s", p.curToken.Type)
		}
	}

	if def.MainBlock == nil {
		p.fail("interface has no main block")
	}
	return def
}

// parseConstant parses a top-level `var int NAME : VALUE;` declaration.
// Top-level var is the only place a value accompanies the declaration;
// constants are pre-resolved, unlike in-block `var`.
func (p *Parser) parseConstant() *ast.Constant {
	pos := p.curToken.Pos
	p.expect(lexer.VAR)
	p.expect(lexer.INT_TYPE)
	name := p.expect(lexer.IDENT).Literal
	p.expect(lexer.COLON)
	valTok := p.expect(lexer.INT)
	p.expect(lexer.SEMI)

	return &ast.Constant{
		Base:  ast.NewBase(p.id(), pos),
		Name:  name,
		Value: parseInt(valTok),
	}
}

func (p *Parser) parseMethod() *ast.MethodPrototype {
	pos := p.curToken.Pos
	p.expect(lexer.FUNCTION)
	name := p.expect(lexer.IDENT).Literal
	p.expect(lexer.LPAREN)

	var params []ast.Parameter
	for p.curToken.Type != lexer.RPAREN {
		if len(params) > 0 {
			p.expect(lexer.COMMA)
		}
		params = append(params, p.parseParameter())
	}
	p.expect(lexer.RPAREN)

	hasReturn := p.accept(lexer.ARROW)
	if hasReturn {
		p.expect(lexer.INT_TYPE)
	}

	m := &ast.MethodPrototype{
		Base:           ast.NewBase(p.id(), pos),
		Name:           name,
		Parameters:     params,
		HasReturnValue: hasReturn,
	}

	if p.accept(lexer.LBRACE) {
		for p.curToken.Type != lexer.RBRACE {
			m.Callbacks = append(m.Callbacks, p.parseCallback())
		}
		p.expect(lexer.RBRACE)
	} else {
		p.expect(lexer.SEMI)
	}

	return m
}

func (p *Parser) parseCallback() ast.CallbackPrototype {
	pos := p.curToken.Pos
	p.expect(lexer.CALLBACK)
	name := p.expect(lexer.IDENT).Literal
	p.expect(lexer.LPAREN)

	var params []ast.Parameter
	for p.curToken.Type != lexer.RPAREN {
		if len(params) > 0 {
			p.expect(lexer.COMMA)
		}
		params = append(params, p.parseParameter())
	}
	p.expect(lexer.RPAREN)

	hasReturn := p.accept(lexer.ARROW)
	if hasReturn {
		p.expect(lexer.INT_TYPE)
	}
	p.expect(lexer.SEMI)

	return ast.CallbackPrototype{
		Name:           name,
		Parameters:     params,
		HasReturnValue: hasReturn,
		Pos:            pos,
	}
}

func (p *Parser) parseParameter() ast.Parameter {
	p.expect(lexer.INT_TYPE)
	dims := 0
	for p.accept(lexer.LBRACK) {
		p.expect(lexer.RBRACK)
		dims++
	}
	name := p.expect(lexer.IDENT).Literal
	return ast.Parameter{Name: name, Dimensions: dims}
}

func (p *Parser) parseMainBlock() *ast.Block {
	p.expect(lexer.MAIN)
	return p.parseBlock()
}

func (p *Parser) parseBlock() *ast.Block {
	pos := p.curToken.Pos
	p.expect(lexer.LBRACE)
	b := &ast.Block{Base: ast.NewBase(p.id(), pos)}
	for p.curToken.Type != lexer.RBRACE {
		b.Statements = append(b.Statements, p.parseStatement())
	}
	p.expect(lexer.RBRACE)
	return b
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case lexer.VAR:
		return p.parseVarDecl()
	case lexer.INPUT:
		return p.parseRead()
	case lexer.OUTPUT:
		return p.parseWrite()
	case lexer.CHECKPOINT:
		pos := p.curToken.Pos
		p.next()
		p.expect(lexer.SEMI)
		return &ast.Checkpoint{Base: ast.NewBase(p.id(), pos)}
	case lexer.CALL:
		return p.parseCall()
	case lexer.FOR:
		return p.parseFor()
	case lexer.LOOP:
		return p.parseLoop()
	case lexer.IF:
		return p.parseIf()
	case lexer.SWITCH:
		return p.parseSwitch()
	case lexer.BREAK:
		pos := p.curToken.Pos
		p.next()
		p.expect(lexer.SEMI)
		return &ast.Break{Base: ast.NewBase(p.id(), pos)}
	case lexer.CONTINUE:
		pos := p.curToken.Pos
		p.next()
		p.expect(lexer.SEMI)
		return &ast.Continue{Base: ast.NewBase(p.id(), pos)}
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.EXIT:
		pos := p.curToken.Pos
		p.next()
		p.expect(lexer.SEMI)
		return &ast.Exit{Base: ast.NewBase(p.id(), pos)}
	default:
		p.fail("unexpected token %s in statement", p.curToken.Type)
		return nil
	}
}

func (p *Parser) parseVarDecl() *ast.VarDecl {
	pos := p.curToken.Pos
	p.expect(lexer.VAR)
	p.expect(lexer.INT_TYPE)
	dims := 0
	for p.accept(lexer.LBRACK) {
		p.expect(lexer.RBRACK)
		dims++
	}
	var names []string
	names = append(names, p.expect(lexer.IDENT).Literal)
	for p.accept(lexer.COMMA) {
		names = append(names, p.expect(lexer.IDENT).Literal)
	}
	p.expect(lexer.SEMI)
	return &ast.VarDecl{Base: ast.NewBase(p.id(), pos), Names: names, Dimensions: dims}
}

func (p *Parser) parseRead() *ast.Read {
	pos := p.curToken.Pos
	p.expect(lexer.INPUT)
	args := p.parseExpressionList()
	p.expect(lexer.SEMI)
	return &ast.Read{Base: ast.NewBase(p.id(), pos), Arguments: args}
}

func (p *Parser) parseWrite() *ast.Write {
	pos := p.curToken.Pos
	p.expect(lexer.OUTPUT)
	args := p.parseExpressionList()
	p.expect(lexer.SEMI)
	return &ast.Write{Base: ast.NewBase(p.id(), pos), Arguments: args}
}

func (p *Parser) parseExpressionList() []ast.Expression {
	var exprs []ast.Expression
	exprs = append(exprs, p.parseExpression())
	for p.accept(lexer.COMMA) {
		exprs = append(exprs, p.parseExpression())
	}
	return exprs
}

func (p *Parser) parseCall() *ast.Call {
	pos := p.curToken.Pos
	p.expect(lexer.CALL)
	name := p.expect(lexer.IDENT).Literal
	p.expect(lexer.LPAREN)

	var args []ast.Expression
	for p.curToken.Type != lexer.RPAREN {
		if len(args) > 0 {
			p.expect(lexer.COMMA)
		}
		args = append(args, p.parseExpression())
	}
	p.expect(lexer.RPAREN)

	var ret ast.Expression
	if p.accept(lexer.ARROW) {
		ret = p.parseExpression()
	}

	var callbacks []*ast.CallbackImplementation
	if p.accept(lexer.LBRACE) {
		for p.curToken.Type != lexer.RBRACE {
			callbacks = append(callbacks, p.parseCallbackImplementation())
		}
		p.expect(lexer.RBRACE)
	} else {
		p.expect(lexer.SEMI)
	}

	return &ast.Call{Base: ast.NewBase(p.id(), pos), MethodName: name, Arguments: args, ReturnValue: ret, Callbacks: callbacks}
}

func (p *Parser) parseCallbackImplementation() *ast.CallbackImplementation {
	pos := p.curToken.Pos
	p.expect(lexer.CALLBACK)
	name := p.expect(lexer.IDENT).Literal
	p.expect(lexer.LPAREN)
	var params []string
	for p.curToken.Type != lexer.RPAREN {
		if len(params) > 0 {
			p.expect(lexer.COMMA)
		}
		params = append(params, p.expect(lexer.IDENT).Literal)
	}
	p.expect(lexer.RPAREN)
	body := p.parseBlock()
	return &ast.CallbackImplementation{Base: ast.NewBase(p.id(), pos), Name: name, Params: params, Body: body}
}

func (p *Parser) parseReturn() *ast.Return {
	pos := p.curToken.Pos
	p.expect(lexer.RETURN)
	var val ast.Expression
	if p.curToken.Type != lexer.SEMI {
		val = p.parseExpression()
	}
	p.expect(lexer.SEMI)
	return &ast.Return{Base: ast.NewBase(p.id(), pos), Value: val}
}

func (p *Parser) parseFor() *ast.For {
	pos := p.curToken.Pos
	p.expect(lexer.FOR)
	index := p.expect(lexer.IDENT).Literal
	p.expect(lexer.TO)
	rangeExpr := p.parseExpression()
	body := p.parseBlock()
	return &ast.For{Base: ast.NewBase(p.id(), pos), Index: index, Range: rangeExpr, Body: body}
}

func (p *Parser) parseLoop() *ast.Loop {
	pos := p.curToken.Pos
	p.expect(lexer.LOOP)
	body := p.parseBlock()
	return &ast.Loop{Base: ast.NewBase(p.id(), pos), Body: body}
}

func (p *Parser) parseIf() *ast.If {
	pos := p.curToken.Pos
	p.expect(lexer.IF)
	p.expect(lexer.LPAREN)
	cond := p.parseExpression()
	p.expect(lexer.RPAREN)
	then := p.parseBlock()

	var elseBlock *ast.Block
	if p.accept(lexer.ELSE) {
		elseBlock = p.parseBlock()
	}

	return &ast.If{Base: ast.NewBase(p.id(), pos), Cond: cond, Then: then, Else: elseBlock}
}

// parseSwitch parses `switch <value> { case <label>(,<label>)* <block>
// (case ... <block>)* (default <block>)? }` — no parens around the subject
// and no colons before a case's body, since each arm is its own brace-
// delimited block rather than a C-style fallthrough body.
func (p *Parser) parseSwitch() *ast.Switch {
	pos := p.curToken.Pos
	p.expect(lexer.SWITCH)
	value := p.parseExpression()
	p.expect(lexer.LBRACE)

	sw := &ast.Switch{Base: ast.NewBase(p.id(), pos), Value: value}
	for p.curToken.Type == lexer.CASE || p.curToken.Type == lexer.DEFAULT {
		if p.curToken.Type == lexer.DEFAULT {
			if sw.Default != nil {
				p.fail("duplicate default case")
			}
			p.next()
			sw.Default = p.parseBlock()
			continue
		}

		p.expect(lexer.CASE)
		var labels []*ast.IntLiteral
		labels = append(labels, p.parseIntLiteral())
		for p.accept(lexer.COMMA) {
			labels = append(labels, p.parseIntLiteral())
		}
		sw.Cases = append(sw.Cases, ast.Case{Labels: labels, Body: p.parseBlock()})
	}
	p.expect(lexer.RBRACE)
	return sw
}

func (p *Parser) parseIntLiteral() *ast.IntLiteral {
	pos := p.curToken.Pos
	tok := p.expect(lexer.INT)
	return &ast.IntLiteral{Base: ast.NewBase(p.id(), pos), Value: parseInt(tok)}
}

func (p *Parser) parseExpression() ast.Expression {
	var expr ast.Expression
	pos := p.curToken.Pos

	switch p.curToken.Type {
	case lexer.INT:
		expr = &ast.IntLiteral{Base: ast.NewBase(p.id(), pos), Value: parseInt(p.curToken)}
		p.next()
	case lexer.IDENT:
		expr = &ast.VariableReference{Base: ast.NewBase(p.id(), pos), Name: p.curToken.Literal}
		p.next()
	default:
		p.fail("expected expression, got %s", p.curToken.Type)
	}

	for p.curToken.Type == lexer.LBRACK {
		subPos := p.curToken.Pos
		p.next()
		index := p.parseExpression()
		p.expect(lexer.RBRACK)
		expr = &ast.Subscript{Base: ast.NewBase(p.id(), subPos), Array: expr, Index: index}
	}

	return expr
}

func parseInt(tok lexer.Token) int64 {
	neg := false
	s := tok.Literal
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var v int64
	for _, ch := range s {
		v = v*10 + int64(ch-'0')
	}
	if neg {
		v = -v
	}
	return v
}
