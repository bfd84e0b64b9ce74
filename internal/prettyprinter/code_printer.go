package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/galelang/gale/internal/ast"
)

// --- Code Printer (Output looks like source code) ---

// Precedence levels, higher binds tighter. Lambdas extend as far right as
// possible, so they sit below every operator.
const (
	precLambda = iota
	precSum
	precProduct
	precIndex
	precApply
	precAtom
)

var operatorPrecedence = map[ast.Operator]int{
	ast.Plus:     precSum,
	ast.Mult:     precProduct,
	ast.ArrIndex: precIndex,
}

type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Code renders n as parseable source.
func Code(n ast.Node) string {
	p := NewCodePrinter()
	p.Print(n)
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeln() {
	p.buf.WriteString("\n")
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

// Print writes n. A File is written one statement per line.
func (p *CodePrinter) Print(n ast.Node) {
	switch n := n.(type) {
	case *ast.File:
		for _, stmt := range n.Statements {
			p.printExpr(stmt, precLambda, false)
			p.write(";")
			p.writeln()
		}
	case ast.TypeNode:
		p.printType(n, false)
	default:
		p.printExpr(n, precLambda, false)
	}
}

func precedence(n ast.Node) int {
	switch n := n.(type) {
	case *ast.Lambda, *ast.Let:
		return precLambda
	case *ast.BinOp:
		return operatorPrecedence[n.Op]
	case *ast.App:
		return precApply
	}
	return precAtom
}

// printExpr prints an expression, adding parentheses only if needed. All
// binary operators and application are left-associative, so a right operand
// of equal precedence needs them.
func (p *CodePrinter) printExpr(n ast.Node, parentPrec int, isRight bool) {
	prec := precedence(n)
	needParens := prec < parentPrec || (isRight && prec == parentPrec && prec != precAtom)
	if needParens {
		p.write("(")
	}

	switch n := n.(type) {
	case nil:
		p.write("<???>")
	case *ast.Let:
		p.write("let ")
		p.write(string(n.ID.Name))
		p.write(" : ")
		p.printType(n.ExpType, false)
		p.write(" = ")
		p.printExpr(n.Exp, precLambda, false)
	case *ast.Block:
		p.printBlock(n)
	case *ast.Identifier:
		p.write(string(n.Name))
	case *ast.BinOp:
		p.printExpr(n.LHS, prec, false)
		p.write(" " + n.Op.String() + " ")
		p.printExpr(n.RHS, prec, true)
	case *ast.Lambda:
		p.write(`\`)
		if len(n.Parameters) == 1 {
			p.write(string(n.Parameters[0].Name))
		} else {
			names := make([]string, len(n.Parameters))
			for i, param := range n.Parameters {
				names[i] = string(param.Name)
			}
			p.write("(" + strings.Join(names, ", ") + ")")
		}
		p.write(" => ")
		p.printExpr(n.Body, precLambda, false)
	case *ast.App:
		p.printExpr(n.Fn, precApply, false)
		p.write(" ")
		p.printExpr(n.Arg, precApply, true)
	case *ast.Number:
		p.write(strconv.FormatInt(n.Value, 10))
	case *ast.Boolean:
		p.write(strconv.FormatBool(n.Value))
	case *ast.Text:
		p.write(`"` + n.Value + `"`)
	case *ast.Tuple:
		p.write("(")
		p.printList(n.Elements)
		p.write(")")
	case *ast.Array:
		p.write("[")
		p.printList(n.Elements)
		p.write("]")
	default:
		p.write("<???>")
	}

	if needParens {
		p.write(")")
	}
}

func (p *CodePrinter) printList(elems []ast.Node) {
	for i, el := range elems {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(el, precLambda, false)
	}
}

func (p *CodePrinter) printBlock(n *ast.Block) {
	if len(n.Statements) == 0 {
		p.write("{}")
		return
	}
	p.write("{")
	p.writeln()
	p.indent++
	for i, stmt := range n.Statements {
		p.writeIndent()
		p.printExpr(stmt, precLambda, false)
		if i < len(n.Statements)-1 {
			p.write(";")
		}
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

// printType writes a type. Function types are right-associative, so a
// function or sum on the left of -> is parenthesized.
func (p *CodePrinter) printType(t ast.TypeNode, inFunctionLHS bool) {
	switch t := t.(type) {
	case nil:
		p.write("<???>")
	case *ast.IdentifierType:
		p.write(string(t.Name))
	case *ast.UnitType:
		p.write("()")
	case *ast.SumType:
		if inFunctionLHS {
			p.write("(")
		}
		for i, opt := range t.Options {
			if i > 0 {
				p.write(" | ")
			}
			p.printType(opt, true)
		}
		if inFunctionLHS {
			p.write(")")
		}
	case *ast.FunctionType:
		if inFunctionLHS {
			p.write("(")
		}
		p.printType(t.From, true)
		p.write(" -> ")
		p.printType(t.To, false)
		if inFunctionLHS {
			p.write(")")
		}
	case *ast.ProductType:
		p.write("(")
		for i, el := range t.Elements {
			if i > 0 {
				p.write(", ")
			}
			p.printType(el, false)
		}
		p.write(")")
	case *ast.ArrayType:
		p.write("[")
		p.printType(t.ValueType, false)
		p.write("; " + strconv.FormatUint(t.Length, 10) + "]")
	default:
		p.write("<???>")
	}
}
