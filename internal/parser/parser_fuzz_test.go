package parser

import (
	"testing"

	"github.com/galelang/gale/internal/lexer"
)

// FuzzParser feeds arbitrary text through the lexer and parser. The parser
// must not panic and must return a file exactly when it reports no error.
func FuzzParser(f *testing.F) {
	f.Add(`let main : ui8 -> ui8 = \x => x + 1;`)
	f.Add(`let xs : [ui8; 3] = [1, 2, 3]; xs !! 1;`)
	f.Add(`let f : (ui8, bool) -> ui8 = \(a, b) => { let c : ui8 = a; c * 2 };`)
	f.Add(`let s : ui8 | string -> () = \() => ();`)
	f.Add(`let broken : = ;`)
	f.Add(`"unterminated`)

	f.Fuzz(func(t *testing.T, input string) {
		if len(input) > 1000 {
			return
		}
		p := New(lexer.New(input))
		file := p.ParseFile()
		if (file == nil) != (p.Err() != nil) {
			t.Fatalf("file = %v, err = %v for %q", file, p.Err(), input)
		}
	})
}
