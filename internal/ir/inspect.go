package ir

import (
	"fmt"
	"strconv"

	"github.com/galelang/gale/internal/diagnostics"
)

// Kind returns the variant name of n.
func Kind(n Node) string {
	switch n.(type) {
	case *File:
		return "File"
	case *Let:
		return "Let"
	case *Seq:
		return "Seq"
	case *Identifier:
		return "Identifier"
	case *BinOp:
		return "BinOp"
	case *Number:
		return "Number"
	case *Boolean:
		return "Boolean"
	case *Text:
		return "Text"
	case *Tuple:
		return "Tuple"
	case *Array:
		return "Array"
	case *Function:
		return "Function"
	case *Apply:
		return "Apply"
	case *SumType:
		return "SumType"
	case *ProductType:
		return "ProductType"
	case *IdentifierType:
		return "IdentifierType"
	case *FunctionType:
		return "FunctionType"
	case *ArrayType:
		return "ArrayType"
	case *UnitType:
		return "UnitType"
	case nil:
		return "<nil>"
	}
	diagnostics.Invariantf("unknown ir node %T", n)
	return ""
}

// Label is Kind plus the payload of leaf nodes, used in dumps and DOT output.
func Label(n Node) string {
	switch n := n.(type) {
	case *Identifier:
		return "Identifier " + string(n.Name)
	case *IdentifierType:
		return "IdentifierType " + string(n.Name)
	case *Number:
		return "Number " + strconv.FormatInt(n.Value, 10)
	case *Boolean:
		return "Boolean " + strconv.FormatBool(n.Value)
	case *Text:
		return "Text " + strconv.Quote(n.Value)
	case *BinOp:
		return "BinOp " + n.Op.String()
	case *Function:
		return "Function " + string(n.Name)
	case *ArrayType:
		return fmt.Sprintf("ArrayType %d", n.Length)
	}
	return Kind(n)
}

// References returns every node id n refers to, in field order.
func References(n Node) []NodeId {
	switch n := n.(type) {
	case *File:
		return n.Functions
	case *Let:
		return []NodeId{n.ID, n.ExpType, n.Exp}
	case *Seq:
		return n.Elements
	case *BinOp:
		return []NodeId{n.LHS, n.RHS}
	case *Tuple:
		return n.Elements
	case *Array:
		return n.Elements
	case *Function:
		refs := make([]NodeId, 0, len(n.Parameters)+1)
		refs = append(refs, n.Parameters...)
		return append(refs, n.Implementation)
	case *Apply:
		return []NodeId{n.Fn, n.Param}
	case *SumType:
		return n.Options
	case *ProductType:
		return n.Elements
	case *FunctionType:
		return []NodeId{n.From, n.To}
	case *ArrayType:
		return []NodeId{n.ValueType}
	}
	return nil
}
