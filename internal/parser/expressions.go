package parser

import (
	"github.com/galelang/gale/internal/ast"
	"github.com/galelang/gale/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Node {
	left := p.parseApplication()
	if p.err != nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
		if p.err != nil {
			return nil
		}
	}
	return left
}

// parseApplication parses a value followed by any number of juxtaposed
// arguments, each applied in turn: f x y is (f x) y.
func (p *Parser) parseApplication() ast.Node {
	fn := p.parsePrimary()
	for p.err == nil && startsArgument(p.peekToken.Type) {
		app := &ast.App{Token: fn.GetToken(), Fn: fn}
		p.nextToken()
		app.Arg = p.parsePrimary()
		fn = app
	}
	if p.err != nil {
		return nil
	}
	return fn
}

func startsArgument(t token.TokenType) bool {
	switch t {
	case token.IDENT, token.NUMBER, token.STRING, token.TRUE, token.FALSE,
		token.LPAREN, token.LBRACKET, token.BACKSLASH:
		return true
	}
	return false
}

func (p *Parser) parsePrimary() ast.Node {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.errorf(p.curToken, "expected expression, got %s", describe(p.curToken))
		return nil
	}
	return prefix()
}

func (p *Parser) parseBinOp(left ast.Node) ast.Node {
	expression := &ast.BinOp{
		Token: p.curToken,
		Op:    operators[p.curToken.Type],
		LHS:   left,
	}
	precedence := p.curPrecedence()
	p.nextToken()
	expression.RHS = p.parseExpression(precedence)
	return expression
}

func (p *Parser) parseIdentifier() ast.Node {
	return &ast.Identifier{Token: p.curToken, Name: ast.Name(p.curToken.Lexeme)}
}

func (p *Parser) parseNumber() ast.Node {
	return &ast.Number{Token: p.curToken, Value: p.curToken.Literal.(int64)}
}

func (p *Parser) parseText() ast.Node {
	return &ast.Text{Token: p.curToken, Value: p.curToken.Literal.(string)}
}

func (p *Parser) parseBoolean() ast.Node {
	return &ast.Boolean{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

// [a, b, c]
func (p *Parser) parseArray() ast.Node {
	arr := &ast.Array{Token: p.curToken}
	arr.Elements = p.parseExpressionList(token.RBRACKET)
	if p.err != nil {
		return nil
	}
	return arr
}

// () is the empty tuple, (e) is just e.
func (p *Parser) parseTuple() ast.Node {
	tuple := &ast.Tuple{Token: p.curToken}
	tuple.Elements = p.parseExpressionList(token.RPAREN)
	if p.err != nil {
		return nil
	}
	if len(tuple.Elements) == 1 {
		return tuple.Elements[0]
	}
	return tuple
}

// parseExpressionList parses comma separated expressions up to end.
// curToken is the opening bracket on entry and end on return.
func (p *Parser) parseExpressionList(end token.TokenType) []ast.Node {
	list := []ast.Node{}
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}

	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))
	for p.err == nil && p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}
	if p.err != nil || !p.expectPeek(end) {
		return nil
	}
	return list
}

// { s1; s2; e } with an optional trailing ';'. A single statement block is
// just that statement.
func (p *Parser) parseBlock() ast.Node {
	block := &ast.Block{Token: p.curToken, Statements: []ast.Node{}}
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) {
		stmt := p.parseStatement()
		if p.err != nil {
			return nil
		}
		block.Statements = append(block.Statements, stmt)
		p.nextToken()
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}
		if !p.curTokenIs(token.RBRACE) {
			p.errorf(p.curToken, "expected %q or %q, got %s", token.SEMICOLON, token.RBRACE, describe(p.curToken))
			return nil
		}
	}
	if len(block.Statements) == 1 {
		return block.Statements[0]
	}
	return block
}

// \x => body or \(x, y) => body
func (p *Parser) parseLambda() ast.Node {
	lambda := &ast.Lambda{Token: p.curToken}
	p.nextToken()

	switch {
	case p.curTokenIs(token.IDENT):
		lambda.Parameters = []*ast.Identifier{p.parseParameter()}
	case p.curTokenIs(token.LPAREN):
		lambda.Parameters = []*ast.Identifier{}
		if p.peekTokenIs(token.RPAREN) {
			p.nextToken()
			break
		}
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		lambda.Parameters = append(lambda.Parameters, p.parseParameter())
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			if !p.expectPeek(token.IDENT) {
				return nil
			}
			lambda.Parameters = append(lambda.Parameters, p.parseParameter())
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
	default:
		p.errorf(p.curToken, "expected lambda parameters, got %s", describe(p.curToken))
		return nil
	}

	if !p.expectPeek(token.FAT_ARROW) {
		return nil
	}
	p.nextToken()
	lambda.Body = p.parseExpression(LOWEST)
	if p.err != nil {
		return nil
	}
	return lambda
}

func (p *Parser) parseParameter() *ast.Identifier {
	return &ast.Identifier{Token: p.curToken, Name: ast.Name(p.curToken.Lexeme)}
}
