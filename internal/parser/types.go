package parser

import (
	"github.com/galelang/gale/internal/ast"
	"github.com/galelang/gale/internal/token"
)

// parseType parses a sum of function types:
//
//	A | B -> C | [D; 3]
//
// curToken is the first token of the type on entry and the last on return.
func (p *Parser) parseType() ast.TypeNode {
	first := p.parseFunctionType()
	if p.err != nil {
		return nil
	}
	if !p.peekTokenIs(token.PIPE) {
		return first
	}

	sum := &ast.SumType{Token: p.peekToken, Options: []ast.TypeNode{first}}
	for p.peekTokenIs(token.PIPE) {
		p.nextToken()
		p.nextToken()
		opt := p.parseFunctionType()
		if p.err != nil {
			return nil
		}
		sum.Options = append(sum.Options, opt)
	}
	return sum
}

// A -> B -> C is A -> (B -> C).
func (p *Parser) parseFunctionType() ast.TypeNode {
	from := p.parseTypeAtom()
	if p.err != nil {
		return nil
	}
	if !p.peekTokenIs(token.ARROW) {
		return from
	}
	p.nextToken()
	fn := &ast.FunctionType{Token: p.curToken, From: from}
	p.nextToken()
	fn.To = p.parseFunctionType()
	if p.err != nil {
		return nil
	}
	return fn
}

func (p *Parser) parseTypeAtom() ast.TypeNode {
	switch p.curToken.Type {
	case token.IDENT:
		return &ast.IdentifierType{Token: p.curToken, Name: ast.Name(p.curToken.Lexeme)}
	case token.LPAREN:
		return p.parseProductType()
	case token.LBRACKET:
		return p.parseArrayType()
	}
	p.errorf(p.curToken, "expected type, got %s", describe(p.curToken))
	return nil
}

// () is the empty product and (T) is T.
func (p *Parser) parseProductType() ast.TypeNode {
	product := &ast.ProductType{Token: p.curToken, Elements: []ast.TypeNode{}}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return product
	}

	p.nextToken()
	product.Elements = append(product.Elements, p.parseType())
	for p.err == nil && p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		product.Elements = append(product.Elements, p.parseType())
	}
	if p.err != nil || !p.expectPeek(token.RPAREN) {
		return nil
	}
	if len(product.Elements) == 1 {
		return product.Elements[0]
	}
	return product
}

// [T; n]
func (p *Parser) parseArrayType() ast.TypeNode {
	arr := &ast.ArrayType{Token: p.curToken}
	p.nextToken()
	arr.ValueType = p.parseType()
	if p.err != nil {
		return nil
	}
	if !p.expectPeek(token.SEMICOLON) || !p.expectPeek(token.NUMBER) {
		return nil
	}
	arr.Length = uint64(p.curToken.Literal.(int64))
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return arr
}
