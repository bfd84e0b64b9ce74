package analyzer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/galelang/gale/internal/ast"
	"github.com/galelang/gale/internal/diagnostics"
	"github.com/galelang/gale/internal/lexer"
	"github.com/galelang/gale/internal/parser"
	"github.com/galelang/gale/internal/typesystem"
)

var (
	ui8  = typesystem.Atom(typesystem.UI8)
	ui64 = typesystem.Atom(typesystem.UI64)
	i64  = typesystem.Atom(typesystem.I64)
	text = typesystem.Atom(typesystem.Text)
)

func parse(t *testing.T, input string) *ast.File {
	t.Helper()
	p := parser.New(lexer.New(input))
	file := p.ParseFile()
	if err := p.Err(); err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	return file
}

func analyze(t *testing.T, input string) (*Analyzer, error) {
	t.Helper()
	a := New()
	return a, a.Analyze(parse(t, input))
}

func TestLetBindsDeclaredType(t *testing.T) {
	a, err := analyze(t, "let x : ui8 = 3;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := a.Lookup("x")
	if !ok {
		t.Fatal("x is not bound")
	}
	if !typesystem.Equal(got, ui8) {
		t.Errorf("x : %s, want ui8", got)
	}
}

func TestNumberAdoptsConstraint(t *testing.T) {
	file := parse(t, "let x : ui8 = 3;")
	types, err := Check(file)
	if err != nil {
		t.Fatal(err)
	}
	num := file.Statements[0].(*ast.Let).Exp
	if !typesystem.Equal(types[num], ui8) {
		t.Errorf("literal typed %s, want ui8", types[num])
	}
}

func TestCheckSucceeds(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"array", "let a : [ui8; 3] = [1, 2, 3];"},
		{"empty array under constraint", "let e : [ui8; 0] = [];"},
		{"index", "let a : [ui8; 2] = [1, 2]; let b : ui8 = a !! 1;"},
		{"lambda", "let f : ui8 -> ui8 = \\x => x + 1;"},
		{"lambda product", "let g : (ui8, ui8) -> ui8 = \\(a, b) => a * b;"},
		{"lambda empty product", "let h : () -> ui8 = \\() => 1;"},
		{"native call", "let main : string -> unit = \\s => std.println s;"},
		{"read", "let r : string -> string = \\p => std.read p;"},
		{"tuple", "let t : (i64, bool, string) = (1, true, \"a\");"},
		{"block", "let b : ui8 = { let y : ui8 = 2; y * y };"},
		{"recursive name visible", "let f : ui8 -> ui8 = \\x => f x;"},
		{"unit result", "let u : string -> unit = \\s => std.print s;"},
		{"extra type names", "let a : i8 = 1; let b : i64 = 2; let c : ui64 = 3; let d : bool = false;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := analyze(t, tt.input); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCheckFails(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diagnostics.ErrorCode
		want  string
	}{
		{"number as string", "let x : string = 3;", diagnostics.ErrA001, "number literal cannot have type string"},
		{"text as number", "let x : ui8 = \"3\";", diagnostics.ErrA001, "does not match"},
		{"unknown variable", "let x : ui8 = y;", diagnostics.ErrA002, "unknown variable y"},
		{"unknown type", "let x : u128 = 1;", diagnostics.ErrA003, "unknown type u128"},
		{"empty array unconstrained", "let t : ([ui8; 0], ui8) = ([], 1);", diagnostics.ErrA004, "empty array requires a type constraint"},
		{"empty array length", "let e : [ui8; 2] = [];", diagnostics.ErrA001, "does not match"},
		{"array non-array constraint", "let a : ui8 = [1];", diagnostics.ErrA001, "array literal cannot have type ui8"},
		{"array mixed", "let a : [ui8; 2] = [1, \"b\"];", diagnostics.ErrA001, "array elements must have equal types"},
		{"array mixed unconstrained", "let t : ([i64; 2], ui8) = ([1, true], 1);", diagnostics.ErrA001, "array elements must have equal types"},
		{"binop mismatch", "let x : ui8 = 1; let y : string = \"a\"; let z : ui8 = x + y;", diagnostics.ErrA001, "operands of + must have equal types"},
		{"index non-array", "let x : ui8 = 1; let y : ui8 = x !! 0;", diagnostics.ErrA001, "must have array type"},
		{"index by text", "let a : [ui8; 1] = [1]; let b : ui8 = a !! \"0\";", diagnostics.ErrA001, "array index must be an integer"},
		{"lambda without constraint", "(\\x => x) 1;", diagnostics.ErrA004, "lambda requires a type constraint"},
		{"lambda in tuple", "let t : (ui8 -> ui8, ui8) = (\\x => x, 1);", diagnostics.ErrA004, "lambda requires an equality constraint"},
		{"lambda non-function", "let f : ui8 = \\x => x;", diagnostics.ErrA004, "expected function constraint"},
		{"lambda arity", "let g : (ui8, ui8) -> ui8 = \\x => x;", diagnostics.ErrA001, "lambda has 1 parameters but its type"},
		{"lambda single type", "let g : ui8 -> ui8 = \\(a, b) => a;", diagnostics.ErrA001, "takes a single ui8"},
		{"lambda body", "let g : ui8 -> string = \\x => x;", diagnostics.ErrA001, "lambda body has type ui8, expected string"},
		{"apply non-function", "let x : ui8 = 1; let y : ui8 = x x;", diagnostics.ErrA005, "cannot apply"},
		{"apply unconstrained literal", "let f : ui8 -> ui8 = \\x => x; let y : ui8 = f 1;", diagnostics.ErrA001, "argument type i64 does not match parameter type ui8"},
		{"empty block", "let b : ui8 = {};", diagnostics.ErrA005, "empty block"},
		{"sum type", "let s : ui8 | string = 1;", diagnostics.ErrA001, "number literal cannot have type"},
		{"lambda param scope", "let f : ui8 -> ui8 = \\p => p; let q : ui8 = p;", diagnostics.ErrA002, "unknown variable p"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analyze(t, tt.input)
			if err == nil {
				t.Fatal("expected error")
			}
			de := diagnostics.FromError(err, "")
			if de.Code != tt.code {
				t.Errorf("code = %s, want %s (%v)", de.Code, tt.code, err)
			}
			if !strings.Contains(de.Message, tt.want) {
				t.Errorf("error %q does not contain %q", de.Message, tt.want)
			}
		})
	}
}

func TestEmptyArrayConstraint(t *testing.T) {
	arr := &ast.Array{}

	if _, err := New().CheckNode(arr, nil); err == nil {
		t.Error("unconstrained empty array should fail")
	}
	got, err := New().CheckNode(arr, MustBe(typesystem.Array(ui8, 0)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(typesystem.Array(ui8, 0), got); diff != "" {
		t.Errorf("type mismatch (-want +got):\n%s", diff)
	}
}

func TestSynthesizedTypes(t *testing.T) {
	tests := []struct {
		input string
		want  typesystem.Type
	}{
		{"5", i64},
		{"true", typesystem.Atom(typesystem.Boolean)},
		{"\"s\"", text},
		{"(1, \"a\")", typesystem.Product(i64, text)},
		{"()", typesystem.Product()},
		{"[1, 2] !! 0", i64},
		{"std.read \"f\"", text},
		{"{ 1; \"x\" }", text},
	}
	for _, tt := range tests {
		file := parse(t, tt.input+";")
		got, err := New().CheckNode(file.Statements[0], nil)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.input, err)
			continue
		}
		if !typesystem.Equal(got, tt.want) {
			t.Errorf("%s: got %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestIndexAdoptsUI64(t *testing.T) {
	file := parse(t, "[1, 2] !! 0;")
	a := New()
	if _, err := a.CheckNode(file.Statements[0], nil); err != nil {
		t.Fatal(err)
	}
	idx := file.Statements[0].(*ast.BinOp).RHS
	if !typesystem.Equal(a.TypeMap[idx], ui64) {
		t.Errorf("index typed %s, want ui64", a.TypeMap[idx])
	}
}

func TestPrelude(t *testing.T) {
	a := New()
	for name, want := range NativeSignatures() {
		got, ok := a.Lookup(name)
		if !ok || !typesystem.Equal(got, want) {
			t.Errorf("%s : %v, want %s", name, got, want)
		}
	}
	got, _ := a.Lookup("std.to_string")
	if diff := cmp.Diff(typesystem.Func(ui8, text), got); diff != "" {
		t.Errorf("std.to_string mismatch (-want +got):\n%s", diff)
	}
}

func TestInvariantOnFileNode(t *testing.T) {
	_, err := New().CheckNode(&ast.File{}, nil)
	if !diagnostics.IsInvariant(err) {
		t.Errorf("expected invariant violation, got %v", err)
	}
}
