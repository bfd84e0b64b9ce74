package analyzer

import (
	"github.com/galelang/gale/internal/ast"
	"github.com/galelang/gale/internal/diagnostics"
	"github.com/galelang/gale/internal/symbols"
	"github.com/galelang/gale/internal/typesystem"
)

// checkLet resolves the declared type, binds the name (so the initializer may
// refer to itself) and checks the initializer against the declared type.
// A let statement itself has type unit.
func (a *Analyzer) checkLet(n *ast.Let) (typesystem.Type, error) {
	expected, err := a.check(n.ExpType, nil)
	if err != nil {
		return nil, err
	}
	a.symbolTable.Define(n.ID.Name, expected, n, "")
	a.TypeMap[n.ID] = expected

	actual, err := a.check(n.Exp, MustBe(expected))
	if err != nil {
		return nil, err
	}
	if !typesystem.Equal(expected, actual) {
		return nil, diagnostics.Errorf(diagnostics.ErrA001, n.Token,
			"let %s: declared type %s does not match expression type %s", n.ID.Name, expected, actual)
	}
	return typesystem.TUnit{}, nil
}

// checkBlock checks every statement for effect; the last one gives the block
// its type and receives the block's constraint.
func (a *Analyzer) checkBlock(n *ast.Block, c *Constraint) (typesystem.Type, error) {
	if len(n.Statements) == 0 {
		return nil, diagnostics.NewError(diagnostics.ErrA005, n.Token, "empty block has no value")
	}
	last := len(n.Statements) - 1
	for _, stmt := range n.Statements[:last] {
		if _, err := a.check(stmt, nil); err != nil {
			return nil, err
		}
	}
	return a.check(n.Statements[last], c)
}

func (a *Analyzer) checkIdentifier(n *ast.Identifier) (typesystem.Type, error) {
	sym, ok := a.symbolTable.Find(n.Name)
	if !ok {
		return nil, diagnostics.Errorf(diagnostics.ErrA002, n.Token, "unknown variable %s", n.Name)
	}
	return sym.Type, nil
}

func (a *Analyzer) checkBinOp(n *ast.BinOp, c *Constraint) (typesystem.Type, error) {
	if n.Op == ast.ArrIndex {
		return a.checkIndex(n)
	}

	lhs, err := a.check(n.LHS, c)
	if err != nil {
		return nil, err
	}
	rhs, err := a.check(n.RHS, c)
	if err != nil {
		return nil, err
	}
	if !typesystem.Equal(lhs, rhs) {
		return nil, diagnostics.Errorf(diagnostics.ErrA001, n.Token,
			"operands of %s must have equal types, got %s and %s", n.Op, lhs, rhs)
	}
	return lhs, nil
}

// checkIndex: xs !! i where xs synthesizes an array type and i is checked
// against ui64. The result is the element type.
func (a *Analyzer) checkIndex(n *ast.BinOp) (typesystem.Type, error) {
	lhs, err := a.check(n.LHS, nil)
	if err != nil {
		return nil, err
	}
	arr, ok := lhs.(typesystem.TArray)
	if !ok {
		return nil, diagnostics.Errorf(diagnostics.ErrA001, n.Token,
			"left side of %s must have array type, got %s", n.Op, lhs)
	}
	rhs, err := a.check(n.RHS, MustBe(typesystem.Atom(typesystem.UI64)))
	if err != nil {
		return nil, err
	}
	if atom, ok := rhs.(typesystem.TAtom); !ok || !atom.Kind.IsInteger() {
		return nil, diagnostics.Errorf(diagnostics.ErrA001, n.Token,
			"array index must be an integer, got %s", rhs)
	}
	return arr.Element, nil
}

// checkLambda needs an equality constraint to a function type. The parameter
// part of that type decides how the lambda's parameters are typed:
//
//	(A, B) -> R   one parameter per product element
//	unit -> R     no parameters
//	A -> R        exactly one parameter
func (a *Analyzer) checkLambda(n *ast.Lambda, c *Constraint) (typesystem.Type, error) {
	if c == nil {
		return nil, diagnostics.NewError(diagnostics.ErrA004, n.Token, "lambda requires a type constraint")
	}
	target, ok := c.target()
	if !ok {
		return nil, diagnostics.NewError(diagnostics.ErrA004, n.Token, "lambda requires an equality constraint")
	}
	fn, ok := target.(typesystem.TFunc)
	if !ok {
		return nil, diagnostics.Errorf(diagnostics.ErrA004, n.Token, "expected function constraint, got %s", target)
	}

	outer := a.symbolTable
	a.symbolTable = symbols.NewEnclosedSymbolTable(outer, symbols.ScopeFunction)
	defer func() { a.symbolTable = outer }()

	switch from := fn.From.(type) {
	case typesystem.TProduct:
		if len(from.Elements) != len(n.Parameters) {
			return nil, diagnostics.Errorf(diagnostics.ErrA001, n.Token,
				"lambda has %d parameters but its type %s expects %d", len(n.Parameters), fn, len(from.Elements))
		}
		for i, p := range n.Parameters {
			a.bindParameter(p, from.Elements[i])
		}
	case typesystem.TUnit:
		if len(n.Parameters) != 0 {
			return nil, diagnostics.Errorf(diagnostics.ErrA001, n.Token,
				"lambda has %d parameters but its type %s takes none", len(n.Parameters), fn)
		}
	default:
		if len(n.Parameters) != 1 {
			return nil, diagnostics.Errorf(diagnostics.ErrA001, n.Token,
				"lambda has %d parameters but its type %s takes a single %s", len(n.Parameters), fn, from)
		}
		a.bindParameter(n.Parameters[0], from)
	}

	body, err := a.check(n.Body, MustBe(fn.To))
	if err != nil {
		return nil, err
	}
	if !typesystem.Equal(body, fn.To) {
		return nil, diagnostics.Errorf(diagnostics.ErrA001, n.Body.GetToken(),
			"lambda body has type %s, expected %s", body, fn.To)
	}
	return typesystem.Func(fn.From, fn.To), nil
}

func (a *Analyzer) bindParameter(p *ast.Identifier, t typesystem.Type) {
	a.symbolTable.Define(p.Name, t, p, "")
	a.TypeMap[p] = t
}

// checkApp synthesizes both sides; the argument must equal the parameter type.
func (a *Analyzer) checkApp(n *ast.App) (typesystem.Type, error) {
	callee, err := a.check(n.Fn, nil)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(typesystem.TFunc)
	if !ok {
		return nil, diagnostics.Errorf(diagnostics.ErrA005, n.Token, "cannot apply a value of type %s", callee)
	}
	arg, err := a.check(n.Arg, nil)
	if err != nil {
		return nil, err
	}
	if !typesystem.Equal(fn.From, arg) {
		return nil, diagnostics.Errorf(diagnostics.ErrA001, n.Arg.GetToken(),
			"argument type %s does not match parameter type %s", arg, fn.From)
	}
	return fn.To, nil
}

// checkNumber adopts the constrained integer kind, or defaults to i64.
func (a *Analyzer) checkNumber(n *ast.Number, c *Constraint) (typesystem.Type, error) {
	target, ok := c.target()
	if !ok {
		return typesystem.Atom(typesystem.I64), nil
	}
	if atom, ok := target.(typesystem.TAtom); ok && atom.Kind.IsInteger() {
		return atom, nil
	}
	return nil, diagnostics.Errorf(diagnostics.ErrA001, n.Token, "number literal cannot have type %s", target)
}

// checkTuple synthesizes each element independently.
func (a *Analyzer) checkTuple(n *ast.Tuple) (typesystem.Type, error) {
	elems := make([]typesystem.Type, len(n.Elements))
	for i, e := range n.Elements {
		t, err := a.check(e, Placeholder())
		if err != nil {
			return nil, err
		}
		elems[i] = t
	}
	return typesystem.TProduct{Elements: elems}, nil
}

// checkArray synthesizes the element type from the first element. An empty
// literal takes its element type from the constraint.
func (a *Analyzer) checkArray(n *ast.Array, c *Constraint) (typesystem.Type, error) {
	var elemConstraint *Constraint
	if target, ok := c.target(); ok {
		arr, ok := target.(typesystem.TArray)
		if !ok {
			return nil, diagnostics.Errorf(diagnostics.ErrA001, n.Token, "array literal cannot have type %s", target)
		}
		elemConstraint = MustBe(arr.Element)
	}

	if len(n.Elements) == 0 {
		if elemConstraint == nil {
			return nil, diagnostics.NewError(diagnostics.ErrA004, n.Token,
				"empty array requires a type constraint to determine its type")
		}
		return typesystem.Array(elemConstraint.MustBe, 0), nil
	}

	first, err := a.check(n.Elements[0], elemConstraint)
	if err != nil {
		return nil, err
	}
	for _, e := range n.Elements[1:] {
		t, err := a.check(e, elemConstraint)
		if err != nil {
			return nil, err
		}
		if !typesystem.Equal(first, t) {
			return nil, diagnostics.Errorf(diagnostics.ErrA001, e.GetToken(),
				"array elements must have equal types, got %s and %s", first, t)
		}
	}
	return typesystem.Array(first, uint64(len(n.Elements))), nil
}
