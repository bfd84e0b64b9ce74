// Package parser builds the surface tree from a token stream.
//
// Expressions are parsed with precedence climbing. Application is written by
// juxtaposition and binds tighter than every infix operator:
//
//	f x !! 0 + 1   parses as   ((f x) !! 0) + 1
package parser

import (
	"github.com/galelang/gale/internal/ast"
	"github.com/galelang/gale/internal/diagnostics"
	"github.com/galelang/gale/internal/pipeline"
	"github.com/galelang/gale/internal/token"
)

const (
	_ int = iota
	LOWEST
	SUM     // +
	PRODUCT // *
	INDEX   // !!
)

var precedences = map[token.TokenType]int{
	token.PLUS:     SUM,
	token.ASTERISK: PRODUCT,
	token.INDEX:    INDEX,
}

var operators = map[token.TokenType]ast.Operator{
	token.PLUS:     ast.Plus,
	token.ASTERISK: ast.Mult,
	token.INDEX:    ast.ArrIndex,
}

type (
	prefixParseFn func() ast.Node
	infixParseFn  func(ast.Node) ast.Node
)

type Parser struct {
	stream pipeline.TokenStream

	curToken  token.Token
	peekToken token.Token

	// err is the first failure. Parsing stops as soon as it is set.
	err *diagnostics.DiagnosticError

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(stream pipeline.TokenStream) *Parser {
	p := &Parser{stream: stream}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.IDENT:     p.parseIdentifier,
		token.NUMBER:    p.parseNumber,
		token.STRING:    p.parseText,
		token.TRUE:      p.parseBoolean,
		token.FALSE:     p.parseBoolean,
		token.LBRACKET:  p.parseArray,
		token.LPAREN:    p.parseTuple,
		token.LBRACE:    p.parseBlock,
		token.BACKSLASH: p.parseLambda,
	}
	p.infixParseFns = map[token.TokenType]infixParseFn{
		token.PLUS:     p.parseBinOp,
		token.ASTERISK: p.parseBinOp,
		token.INDEX:    p.parseBinOp,
	}

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()
	return p
}

// Err returns the first parse error, or nil.
func (p *Parser) Err() *diagnostics.DiagnosticError {
	return p.err
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.stream.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

// expectPeek advances if the next token has type t and records an error otherwise.
func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.TokenType) {
	p.errorf(p.peekToken, "expected %q, got %s", t, describe(p.peekToken))
}

func (p *Parser) errorf(tok token.Token, format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	p.err = diagnostics.Errorf(diagnostics.ErrP001, tok, format, args...)
}

func describe(tok token.Token) string {
	if tok.Type == token.ILLEGAL {
		if msg, ok := tok.Literal.(string); ok && msg != tok.Lexeme {
			return msg
		}
		return "illegal character " + tok.Lexeme
	}
	return tok.String()
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// ParseFile parses statements each terminated by ';' until end of input.
func (p *Parser) ParseFile() *ast.File {
	file := &ast.File{Token: p.curToken}
	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if p.err != nil {
			return nil
		}
		file.Statements = append(file.Statements, stmt)
		if !p.expectPeek(token.SEMICOLON) {
			return nil
		}
		p.nextToken()
	}
	return file
}

func (p *Parser) parseStatement() ast.Node {
	if p.curTokenIs(token.LET) {
		return p.parseLet()
	}
	return p.parseExpression(LOWEST)
}

// let <identifier> : <type> = <expr>
func (p *Parser) parseLet() ast.Node {
	let := &ast.Let{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	let.ID = &ast.Identifier{Token: p.curToken, Name: ast.Name(p.curToken.Lexeme)}
	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	let.ExpType = p.parseType()
	if p.err != nil {
		return nil
	}
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	let.Exp = p.parseExpression(LOWEST)
	if p.err != nil {
		return nil
	}
	return let
}
