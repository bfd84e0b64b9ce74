package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/galelang/gale/internal/ast"
	"github.com/galelang/gale/internal/diagnostics"
	"github.com/galelang/gale/internal/lexer"
)

func parse(t *testing.T, input string) *ast.File {
	t.Helper()
	p := New(lexer.New(input))
	file := p.ParseFile()
	if err := p.Err(); err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	return file
}

// sexpr renders a surface tree compactly for comparison.
func sexpr(n ast.Node) string {
	switch n := n.(type) {
	case *ast.File:
		return "(file " + list(n.Statements) + ")"
	case *ast.Let:
		return fmt.Sprintf("(let %s %s %s)", n.ID.Name, sexpr(n.ExpType), sexpr(n.Exp))
	case *ast.Block:
		return "(block " + list(n.Statements) + ")"
	case *ast.Identifier:
		return string(n.Name)
	case *ast.BinOp:
		return fmt.Sprintf("(%s %s %s)", n.Op, sexpr(n.LHS), sexpr(n.RHS))
	case *ast.Lambda:
		params := make([]string, len(n.Parameters))
		for i, p := range n.Parameters {
			params[i] = string(p.Name)
		}
		return fmt.Sprintf("(\\(%s) %s)", strings.Join(params, " "), sexpr(n.Body))
	case *ast.App:
		return fmt.Sprintf("(app %s %s)", sexpr(n.Fn), sexpr(n.Arg))
	case *ast.Number:
		return fmt.Sprint(n.Value)
	case *ast.Boolean:
		return fmt.Sprint(n.Value)
	case *ast.Text:
		return fmt.Sprintf("%q", n.Value)
	case *ast.Tuple:
		return "(tuple " + list(n.Elements) + ")"
	case *ast.Array:
		return "(array " + list(n.Elements) + ")"
	case *ast.SumType:
		return "(sum " + typeList(n.Options) + ")"
	case *ast.ProductType:
		return "(product " + typeList(n.Elements) + ")"
	case *ast.IdentifierType:
		return string(n.Name)
	case *ast.FunctionType:
		return fmt.Sprintf("(-> %s %s)", sexpr(n.From), sexpr(n.To))
	case *ast.ArrayType:
		return fmt.Sprintf("[%s; %d]", sexpr(n.ValueType), n.Length)
	case *ast.UnitType:
		return "unit"
	}
	return fmt.Sprintf("<%T>", n)
}

func list(ns []ast.Node) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = sexpr(n)
	}
	return strings.Join(parts, " ")
}

func typeList(ns []ast.TypeNode) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = sexpr(n)
	}
	return strings.Join(parts, " ")
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"let x : ui8 = 3;", "(file (let x ui8 3))"},
		{"let f : ui8 -> ui8 = \\x => x + 1;", "(file (let f (-> ui8 ui8) (\\(x) (+ x 1))))"},
		{"let g : (ui8, ui8) -> ui8 = \\(a, b) => a * b;", "(file (let g (-> (product ui8 ui8) ui8) (\\(a b) (* a b))))"},
		{"let u : () -> ui8 = \\() => 1;", "(file (let u (-> (product ) ui8) (\\() 1)))"},
		{"let t : (ui8) = 1;", "(file (let t ui8 1))"},
		{"let a : [ui8; 3] = [1, 2, 3];", "(file (let a [ui8; 3] (array 1 2 3)))"},
		{"let e : [ui8; 0] = [];", "(file (let e [ui8; 0] (array )))"},
		{"let s : ui8 | string = 1;", "(file (let s (sum ui8 string) 1))"},
		{"let h : ui8 -> ui8 -> ui8 = f;", "(file (let h (-> ui8 (-> ui8 ui8)) f))"},
		{"x; y;", "(file x y)"},
		{"", "(file )"},
	}
	for _, tt := range tests {
		if got := sexpr(parse(t, tt.input)); got != tt.want {
			t.Errorf("parse(%q)\n got: %s\nwant: %s", tt.input, got, tt.want)
		}
	}
}

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"1 * 2 + 3", "(+ (* 1 2) 3)"},
		{"1 + 2 + 3", "(+ (+ 1 2) 3)"},
		{"xs !! 1 * 2", "(* (!! xs 1) 2)"},
		{"f x", "(app f x)"},
		{"f x y", "(app (app f x) y)"},
		{"f x !! 0 + 1", "(+ (!! (app f x) 0) 1)"},
		{"std.println \"hi\"", "(app std.println \"hi\")"},
		{"(\\x => x * x) 5", "(app (\\(x) (* x x)) 5)"},
		{"(1)", "1"},
		{"()", "(tuple )"},
		{"(1, true, \"a\")", "(tuple 1 true \"a\")"},
		{"[10, 20, 30] !! 1", "(!! (array 10 20 30) 1)"},
		{"{ 1 }", "1"},
		{"{ let y : ui8 = 1; y }", "(block (let y ui8 1) y)"},
		{"{ a; b; }", "(block a b)"},
		{"{}", "(block )"},
		{"f \\x => x", "(app f (\\(x) x))"},
		{"false", "false"},
	}
	for _, tt := range tests {
		file := parse(t, tt.input+";")
		if len(file.Statements) != 1 {
			t.Fatalf("parse(%q): %d statements", tt.input, len(file.Statements))
		}
		if got := sexpr(file.Statements[0]); got != tt.want {
			t.Errorf("parse(%q)\n got: %s\nwant: %s", tt.input, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"let x = 3;", `expected ":"`},
		{"let x : = 3;", "expected type"},
		{"x", `expected ";", got end of input`},
		{"let a : [ui8; n] = [];", `expected "NUMBER"`},
		{"{ a b c", `expected ";" or "}"`},
		{"\\ => 1;", "expected lambda parameters"},
		{"(1, 2;", `expected ")"`},
		{"@;", "illegal character @"},
		{"\"open", "unterminated string"},
		{"+;", "expected expression"},
	}
	for _, tt := range tests {
		p := New(lexer.New(tt.input))
		p.ParseFile()
		err := p.Err()
		if err == nil {
			t.Errorf("parse(%q): expected error", tt.input)
			continue
		}
		if err.Code != diagnostics.ErrP001 {
			t.Errorf("parse(%q): code = %s", tt.input, err.Code)
		}
		if !strings.Contains(err.Message, tt.want) {
			t.Errorf("parse(%q): error %q does not contain %q", tt.input, err.Message, tt.want)
		}
	}
}

func TestErrorPosition(t *testing.T) {
	p := New(lexer.New("let x : ui8 = 1;\nlet y 2;"))
	p.ParseFile()
	err := p.Err()
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Token.Line != 2 || err.Token.Column != 7 {
		t.Errorf("error at %d:%d, want 2:7", err.Token.Line, err.Token.Column)
	}
}
