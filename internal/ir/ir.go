// Package ir defines the arena-resident intermediate representation produced by
// lowering. Nodes refer to each other by flattree.NodeId.
package ir

import (
	"github.com/galelang/gale/internal/ast"
	"github.com/galelang/gale/internal/flattree"
)

type NodeId = flattree.NodeId

// Tree is the arena holding a lowered program. The root is always a *File.
type Tree = flattree.FlatTree[Node]

// Node is implemented by every arena payload. The set is closed.
type Node interface {
	irNode()
}

// File lists the top-level functions of a program.
type File struct {
	Functions []NodeId
}

// Let binds the Identifier at ID to the value of Exp, declared with ExpType.
type Let struct {
	ID      NodeId
	ExpType NodeId
	Exp     NodeId
}

// Seq evaluates Elements in order; the last one is its value.
type Seq struct {
	Elements []NodeId
}

type Identifier struct {
	Name ast.Name
}

type BinOp struct {
	LHS NodeId
	RHS NodeId
	Op  ast.Operator
}

type Number struct {
	Value int64
}

type Boolean struct {
	Value bool
}

type Text struct {
	Value string
}

type Tuple struct {
	Elements []NodeId
}

type Array struct {
	Elements []NodeId
}

// Function is a named function whose parameters are Identifier nodes and whose
// body is Implementation. Anonymous functions come from lambdas not bound by let.
type Function struct {
	Name           ast.Name
	Parameters     []NodeId
	Implementation NodeId
	Anonymous      bool
}

// Apply calls Fn with the single argument Param.
type Apply struct {
	Fn    NodeId
	Param NodeId
}

type SumType struct {
	Options []NodeId
}

type ProductType struct {
	Elements []NodeId
}

type IdentifierType struct {
	Name ast.Name
}

type FunctionType struct {
	From NodeId
	To   NodeId
}

type ArrayType struct {
	ValueType NodeId
	Length    uint64
}

type UnitType struct{}

func (*File) irNode()           {}
func (*Let) irNode()            {}
func (*Seq) irNode()            {}
func (*Identifier) irNode()     {}
func (*BinOp) irNode()          {}
func (*Number) irNode()         {}
func (*Boolean) irNode()        {}
func (*Text) irNode()           {}
func (*Tuple) irNode()          {}
func (*Array) irNode()          {}
func (*Function) irNode()       {}
func (*Apply) irNode()          {}
func (*SumType) irNode()        {}
func (*ProductType) irNode()    {}
func (*IdentifierType) irNode() {}
func (*FunctionType) irNode()   {}
func (*ArrayType) irNode()      {}
func (*UnitType) irNode()       {}
