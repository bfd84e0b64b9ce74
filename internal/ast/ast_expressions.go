package ast

import (
	"github.com/galelang/gale/internal/token"
)

type Identifier struct {
	Token token.Token
	Name  Name
}

func (i *Identifier) hlrNode()              {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }

// BinOp is an infix operation: a * b, a + b, xs !! i
type BinOp struct {
	Token token.Token // The operator token
	LHS   Node
	RHS   Node
	Op    Operator
}

func (b *BinOp) hlrNode()              {}
func (b *BinOp) TokenLiteral() string  { return b.Token.Lexeme }
func (b *BinOp) GetToken() token.Token { return b.Token }

// Lambda is an anonymous function: \x => body or \(x, y) => body
type Lambda struct {
	Token      token.Token // The '\' token
	Parameters []*Identifier
	Body       Node
}

func (l *Lambda) hlrNode()              {}
func (l *Lambda) TokenLiteral() string  { return l.Token.Lexeme }
func (l *Lambda) GetToken() token.Token { return l.Token }

// App applies Fn to a single argument by juxtaposition: f x
type App struct {
	Token token.Token // First token of the function expression
	Fn    Node
	Arg   Node
}

func (a *App) hlrNode()              {}
func (a *App) TokenLiteral() string  { return a.Token.Lexeme }
func (a *App) GetToken() token.Token { return a.Token }

type Number struct {
	Token token.Token
	Value int64
}

func (n *Number) hlrNode()              {}
func (n *Number) TokenLiteral() string  { return n.Token.Lexeme }
func (n *Number) GetToken() token.Token { return n.Token }

type Boolean struct {
	Token token.Token
	Value bool
}

func (b *Boolean) hlrNode()              {}
func (b *Boolean) TokenLiteral() string  { return b.Token.Lexeme }
func (b *Boolean) GetToken() token.Token { return b.Token }

type Text struct {
	Token token.Token
	Value string
}

func (t *Text) hlrNode()              {}
func (t *Text) TokenLiteral() string  { return t.Token.Lexeme }
func (t *Text) GetToken() token.Token { return t.Token }

// Tuple is a parenthesized list with zero or at least two elements.
// A single parenthesized expression is not a tuple.
type Tuple struct {
	Token    token.Token // The '(' token
	Elements []Node
}

func (t *Tuple) hlrNode()              {}
func (t *Tuple) TokenLiteral() string  { return t.Token.Lexeme }
func (t *Tuple) GetToken() token.Token { return t.Token }

type Array struct {
	Token    token.Token // The '[' token
	Elements []Node
}

func (a *Array) hlrNode()              {}
func (a *Array) TokenLiteral() string  { return a.Token.Lexeme }
func (a *Array) GetToken() token.Token { return a.Token }
