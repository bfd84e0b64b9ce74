package evaluator

import (
	"strconv"
	"strings"

	"github.com/galelang/gale/internal/ast"
)

type ValueType string

const (
	NUMBER_VAL   = "NUMBER"
	BOOLEAN_VAL  = "BOOLEAN"
	TEXT_VAL     = "TEXT"
	TUPLE_VAL    = "TUPLE"
	ARRAY_VAL    = "ARRAY"
	FUNCTION_VAL = "FUNCTION"
	EXTERN_VAL   = "EXTERN"
	VOID_VAL     = "VOID"
)

// Value is a runtime value. Inspect returns the display form used by print.
type Value interface {
	Type() ValueType
	Inspect() string
}

type Number struct {
	Value int64
}

func (n *Number) Type() ValueType { return NUMBER_VAL }
func (n *Number) Inspect() string { return strconv.FormatInt(n.Value, 10) }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ValueType { return BOOLEAN_VAL }
func (b *Boolean) Inspect() string { return strconv.FormatBool(b.Value) }

type Text struct {
	Value string
}

func (t *Text) Type() ValueType { return TEXT_VAL }
func (t *Text) Inspect() string { return t.Value }

type Tuple struct {
	Elements []Value
}

func (t *Tuple) Type() ValueType { return TUPLE_VAL }
func (t *Tuple) Inspect() string { return "(" + join(t.Elements) + ")" }

type Array struct {
	Elements []Value
}

func (a *Array) Type() ValueType { return ARRAY_VAL }
func (a *Array) Inspect() string { return "[" + join(a.Elements) + "]" }

// FunctionRef names an entry of the Program.
type FunctionRef struct {
	Name ast.Name
}

func (f *FunctionRef) Type() ValueType { return FUNCTION_VAL }
func (f *FunctionRef) Inspect() string { return string(f.Name) }

// Extern carries values produced outside the language.
type Extern struct {
	Values []Value
}

func (e *Extern) Type() ValueType { return EXTERN_VAL }
func (e *Extern) Inspect() string { return "extern(" + join(e.Values) + ")" }

// Void is the value of statements.
type Void struct{}

func (v *Void) Type() ValueType { return VOID_VAL }
func (v *Void) Inspect() string { return "void" }

var VOID = &Void{}

func join(vs []Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.Inspect()
	}
	return strings.Join(parts, ", ")
}
