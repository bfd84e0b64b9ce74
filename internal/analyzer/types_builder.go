package analyzer

import (
	"github.com/galelang/gale/internal/ast"
	"github.com/galelang/gale/internal/diagnostics"
	"github.com/galelang/gale/internal/typesystem"
)

// buildType resolves a type expression to a Type.
func (a *Analyzer) buildType(n ast.TypeNode) (typesystem.Type, error) {
	switch n := n.(type) {
	case *ast.IdentifierType:
		t, ok := a.symbolTable.FindType(n.Name)
		if !ok {
			return nil, diagnostics.Errorf(diagnostics.ErrA003, n.Token, "unknown type %s", n.Name)
		}
		return t, nil
	case *ast.FunctionType:
		from, err := a.check(n.From, nil)
		if err != nil {
			return nil, err
		}
		to, err := a.check(n.To, nil)
		if err != nil {
			return nil, err
		}
		return typesystem.Func(from, to), nil
	case *ast.ArrayType:
		elem, err := a.check(n.ValueType, nil)
		if err != nil {
			return nil, err
		}
		return typesystem.Array(elem, n.Length), nil
	case *ast.ProductType:
		elems := make([]typesystem.Type, len(n.Elements))
		for i, e := range n.Elements {
			t, err := a.check(e, nil)
			if err != nil {
				return nil, err
			}
			elems[i] = t
		}
		return typesystem.TProduct{Elements: elems}, nil
	case *ast.UnitType:
		return typesystem.TUnit{}, nil
	case *ast.SumType:
		// Sum types parse but are not checked yet.
		return typesystem.TUnknown{}, nil
	}
	diagnostics.Invariantf("unknown type node %T", n)
	return nil, nil
}
