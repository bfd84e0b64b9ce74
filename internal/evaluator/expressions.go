package evaluator

import (
	"github.com/galelang/gale/internal/ast"
	"github.com/galelang/gale/internal/diagnostics"
	"github.com/galelang/gale/internal/ir"
)

func (in *Interpreter) eval(id ir.NodeId, env *Environment) (Value, error) {
	switch n := in.node(id).(type) {
	case *ir.Let:
		v, err := in.eval(n.Exp, env)
		if err != nil {
			return nil, err
		}
		env.Set(in.identifier(n.ID), v)
		return VOID, nil
	case *ir.Seq:
		return in.evalSeq(n, env)
	case *ir.Identifier:
		return in.evalIdentifier(id, n, env)
	case *ir.BinOp:
		return in.evalBinOp(n, env)
	case *ir.Apply:
		return in.evalApply(n, env)
	case *ir.Function:
		ref := &FunctionRef{Name: in.keys[id]}
		if !n.Anonymous {
			env.Set(n.Name, ref)
		}
		return ref, nil
	case *ir.Number:
		return &Number{Value: n.Value}, nil
	case *ir.Boolean:
		return &Boolean{Value: n.Value}, nil
	case *ir.Text:
		return &Text{Value: n.Value}, nil
	case *ir.Tuple:
		elems, err := in.evalAll(n.Elements, env)
		if err != nil {
			return nil, err
		}
		return &Tuple{Elements: elems}, nil
	case *ir.Array:
		elems, err := in.evalAll(n.Elements, env)
		if err != nil {
			return nil, err
		}
		return &Array{Elements: elems}, nil
	default:
		diagnostics.Invariantf("cannot evaluate %s node %d", ir.Kind(n), id)
	}
	return nil, nil
}

func (in *Interpreter) evalAll(ids []ir.NodeId, env *Environment) ([]Value, error) {
	vs := make([]Value, 0, len(ids))
	for _, id := range ids {
		v, err := in.eval(id, env)
		if err != nil {
			return nil, err
		}
		vs = append(vs, v)
	}
	return vs, nil
}

func (in *Interpreter) evalSeq(n *ir.Seq, env *Environment) (Value, error) {
	if len(n.Elements) == 0 {
		return nil, runtimeErrorf("expected sequence to produce a value")
	}
	last := len(n.Elements) - 1
	for _, id := range n.Elements[:last] {
		if _, err := in.eval(id, env); err != nil {
			return nil, err
		}
	}
	return in.eval(n.Elements[last], env)
}

// Names missing from env resolve to the function the enclosing blocks
// define under that name, then to functions of the program. A call body can
// so refer to itself and to the functions around it.
func (in *Interpreter) evalIdentifier(id ir.NodeId, n *ir.Identifier, env *Environment) (Value, error) {
	if v, ok := env.Get(n.Name); ok {
		return v, nil
	}
	if key, ok := in.resolve(id, n.Name); ok {
		return &FunctionRef{Name: key}, nil
	}
	if _, ok := in.program.Lookup(n.Name); ok {
		return &FunctionRef{Name: n.Name}, nil
	}
	return nil, runtimeErrorf("could not find identifier %s", n.Name)
}

func (in *Interpreter) evalBinOp(n *ir.BinOp, env *Environment) (Value, error) {
	lhs, err := in.eval(n.LHS, env)
	if err != nil {
		return nil, err
	}
	rhs, err := in.eval(n.RHS, env)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case ast.Mult, ast.Plus:
		l, lok := lhs.(*Number)
		r, rok := rhs.(*Number)
		if !lok || !rok {
			break
		}
		if n.Op == ast.Mult {
			return &Number{Value: l.Value * r.Value}, nil
		}
		return &Number{Value: l.Value + r.Value}, nil
	case ast.ArrIndex:
		arr, aok := lhs.(*Array)
		idx, iok := rhs.(*Number)
		if !aok || !iok {
			break
		}
		i := int(idx.Value)
		if i < 0 || i >= len(arr.Elements) {
			diagnostics.Invariantf("array index %d out of range [0, %d)", idx.Value, len(arr.Elements))
		}
		return arr.Elements[i], nil
	}
	return nil, runtimeErrorf("invalid operands for %s: %s, %s", n.Op, lhs.Type(), rhs.Type())
}

func (in *Interpreter) evalApply(n *ir.Apply, env *Environment) (Value, error) {
	arg, err := in.eval(n.Param, env)
	if err != nil {
		return nil, err
	}
	f, err := in.callee(n.Fn, env)
	if err != nil {
		return nil, err
	}

	params := f.ParameterNames()
	callEnv := NewEnvironment()
	switch arg := arg.(type) {
	case *Tuple:
		if len(arg.Elements) == 1 {
			// A one-element tuple is passed whole to the only parameter.
			checkArity(f, 1)
			callEnv.Set(params[0], arg)
			break
		}
		checkArity(f, len(arg.Elements))
		for i, p := range params {
			callEnv.Set(p, arg.Elements[i])
		}
	default:
		checkArity(f, 1)
		callEnv.Set(params[0], arg)
	}
	return in.invoke(f, callEnv)
}

func (in *Interpreter) callee(id ir.NodeId, env *Environment) (Function, error) {
	v, err := in.eval(id, env)
	if err != nil {
		if ident, ok := in.node(id).(*ir.Identifier); ok {
			return nil, runtimeErrorf("could not find function %s", ident.Name)
		}
		return nil, err
	}
	ref, ok := v.(*FunctionRef)
	if !ok {
		return nil, runtimeErrorf("cannot call a value of type %s", v.Type())
	}
	f, ok := in.program.Lookup(ref.Name)
	if !ok {
		return nil, runtimeErrorf("could not find function %s", ref.Name)
	}
	return f, nil
}

func checkArity(f Function, got int) {
	if want := len(f.ParameterNames()); want != got {
		diagnostics.Invariantf("%s takes %d parameters, called with %d", f.FunctionName(), want, got)
	}
}
