package ast

import (
	"github.com/galelang/gale/internal/token"
)

// SumType: A | B
type SumType struct {
	Token   token.Token
	Options []TypeNode
}

func (s *SumType) hlrNode()              {}
func (s *SumType) typeNode()             {}
func (s *SumType) TokenLiteral() string  { return s.Token.Lexeme }
func (s *SumType) GetToken() token.Token { return s.Token }

// ProductType: (A, B). () is the empty product.
type ProductType struct {
	Token    token.Token
	Elements []TypeNode
}

func (p *ProductType) hlrNode()              {}
func (p *ProductType) typeNode()             {}
func (p *ProductType) TokenLiteral() string  { return p.Token.Lexeme }
func (p *ProductType) GetToken() token.Token { return p.Token }

// IdentifierType names a type: ui8, string
type IdentifierType struct {
	Token token.Token
	Name  Name
}

func (i *IdentifierType) hlrNode()              {}
func (i *IdentifierType) typeNode()             {}
func (i *IdentifierType) TokenLiteral() string  { return i.Token.Lexeme }
func (i *IdentifierType) GetToken() token.Token { return i.Token }

// FunctionType: A -> B
type FunctionType struct {
	Token token.Token // The '->' token
	From  TypeNode
	To    TypeNode
}

func (f *FunctionType) hlrNode()              {}
func (f *FunctionType) typeNode()             {}
func (f *FunctionType) TokenLiteral() string  { return f.Token.Lexeme }
func (f *FunctionType) GetToken() token.Token { return f.Token }

// ArrayType: [T; n]
type ArrayType struct {
	Token     token.Token // The '[' token
	ValueType TypeNode
	Length    uint64
}

func (a *ArrayType) hlrNode()              {}
func (a *ArrayType) typeNode()             {}
func (a *ArrayType) TokenLiteral() string  { return a.Token.Lexeme }
func (a *ArrayType) GetToken() token.Token { return a.Token }

type UnitType struct {
	Token token.Token
}

func (u *UnitType) hlrNode()              {}
func (u *UnitType) typeNode()             {}
func (u *UnitType) TokenLiteral() string  { return u.Token.Lexeme }
func (u *UnitType) GetToken() token.Token { return u.Token }
