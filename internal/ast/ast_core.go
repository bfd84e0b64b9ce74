// Package ast defines the surface tree produced by the parser. Nodes own their
// children exclusively and are never mutated after construction.
package ast

import (
	"github.com/galelang/gale/internal/token"
)

// Name is an identifier as written in source.
type Name string

// Node is implemented by every surface tree variant. The set of variants is
// closed; passes switch over the concrete types.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
	hlrNode()
}

// TypeNode is a Node that appears in type position.
type TypeNode interface {
	Node
	typeNode()
}

// Operator is the kind of a BinOp.
type Operator int

const (
	Mult Operator = iota
	Plus
	ArrIndex
)

func (o Operator) String() string {
	switch o {
	case Mult:
		return "*"
	case Plus:
		return "+"
	case ArrIndex:
		return "!!"
	default:
		return "?"
	}
}

// File is the root of every tree the parser produces.
type File struct {
	Token      token.Token
	Path       string
	Statements []Node
}

func (f *File) hlrNode() {}
func (f *File) TokenLiteral() string {
	if len(f.Statements) > 0 {
		return f.Statements[0].TokenLiteral()
	}
	return ""
}
func (f *File) GetToken() token.Token { return f.Token }

// Let binds ID to Exp with the declared type ExpType.
// let x : ui8 = 3
type Let struct {
	Token   token.Token // The 'let' token
	ID      *Identifier
	ExpType TypeNode
	Exp     Node
}

func (l *Let) hlrNode()              {}
func (l *Let) TokenLiteral() string  { return l.Token.Lexeme }
func (l *Let) GetToken() token.Token { return l.Token }

// Block is a braced list of statements. The last statement is its value.
type Block struct {
	Token      token.Token // The '{' token
	Statements []Node
}

func (b *Block) hlrNode()              {}
func (b *Block) TokenLiteral() string  { return b.Token.Lexeme }
func (b *Block) GetToken() token.Token { return b.Token }
