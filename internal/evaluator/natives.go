package evaluator

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/galelang/gale/internal/ast"
	"github.com/galelang/gale/internal/config"
)

var structural = spew.ConfigState{
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Natives returns the host functions every program can call. Each reads its
// argument from the binding named config.NativeParamName.
func Natives() []*NativeFunction {
	return []*NativeFunction{
		native(config.PrintFuncName, nativePrint),
		native(config.PrintlnFuncName, nativePrintln),
		native(config.ReadFuncName, nativeRead),
		native(config.ToStringFuncName, nativeToString),
	}
}

func native(name string, fn NativeFn) *NativeFunction {
	return &NativeFunction{
		Name:       ast.Name(name),
		Parameters: []ast.Name{config.NativeParamName},
		Fn:         fn,
	}
}

func argument(env *Environment, fn string) (Value, error) {
	v, ok := env.Get(config.NativeParamName)
	if !ok {
		return nil, runtimeErrorf("%s: missing argument %q", fn, config.NativeParamName)
	}
	return v, nil
}

func nativePrint(in *Interpreter, env *Environment) (Value, error) {
	v, err := argument(env, config.PrintFuncName)
	if err != nil {
		return nil, err
	}
	if _, err := fmt.Fprint(in.Out, v.Inspect()); err != nil {
		return nil, runtimeErrorf("%s: %v", config.PrintFuncName, err)
	}
	return VOID, nil
}

func nativePrintln(in *Interpreter, env *Environment) (Value, error) {
	v, err := argument(env, config.PrintlnFuncName)
	if err != nil {
		return nil, err
	}
	if _, err := fmt.Fprintln(in.Out, v.Inspect()); err != nil {
		return nil, runtimeErrorf("%s: %v", config.PrintlnFuncName, err)
	}
	return VOID, nil
}

func nativeRead(_ *Interpreter, env *Environment) (Value, error) {
	v, err := argument(env, config.ReadFuncName)
	if err != nil {
		return nil, err
	}
	path, ok := v.(*Text)
	if !ok {
		return nil, runtimeErrorf("%s: expected text argument, got %s", config.ReadFuncName, v.Type())
	}
	data, err := os.ReadFile(path.Value)
	if err != nil {
		return nil, runtimeErrorf("%s: %v", config.ReadFuncName, err)
	}
	return &Text{Value: string(data)}, nil
}

func nativeToString(_ *Interpreter, env *Environment) (Value, error) {
	v, err := argument(env, config.ToStringFuncName)
	if err != nil {
		return nil, err
	}
	return &Text{Value: structural.Sprintf("%#v", v)}, nil
}
