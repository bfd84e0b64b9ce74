// Package typesystem holds the structural types assigned by the checker.
package typesystem

import (
	"fmt"
	"strings"

	"github.com/galelang/gale/internal/config"
)

// Type is the interface for all types in our system.
type Type interface {
	String() string
	typeTag()
}

// AtomKind enumerates the primitive types.
type AtomKind int

const (
	I8 AtomKind = iota
	I64
	UI8
	UI64
	Boolean
	Text
)

func (k AtomKind) String() string {
	switch k {
	case I8:
		return config.I8TypeName
	case I64:
		return config.I64TypeName
	case UI8:
		return config.UI8TypeName
	case UI64:
		return config.UI64TypeName
	case Boolean:
		return config.BoolTypeName
	case Text:
		return config.StringTypeName
	default:
		return fmt.Sprintf("atom(%d)", int(k))
	}
}

// IsInteger reports whether k is one of the integer kinds a number literal may adopt.
func (k AtomKind) IsInteger() bool {
	switch k {
	case I8, I64, UI8, UI64:
		return true
	}
	return false
}

// TFunc is a function from From to To. Multiple parameters are a TProduct.
type TFunc struct {
	From Type
	To   Type
}

func (t TFunc) typeTag() {}
func (t TFunc) String() string {
	from := t.From.String()
	if _, ok := t.From.(TFunc); ok {
		from = "(" + from + ")"
	}
	return from + " -> " + t.To.String()
}

type TProduct struct {
	Elements []Type
}

func (t TProduct) typeTag() {}
func (t TProduct) String() string {
	return "(" + join(t.Elements, ", ") + ")"
}

// TArray is a fixed-length array.
type TArray struct {
	Element Type
	Length  uint64
}

func (t TArray) typeTag() {}
func (t TArray) String() string {
	return fmt.Sprintf("[%s; %d]", t.Element, t.Length)
}

// TSum is modelled but never produced by the checker.
type TSum struct {
	Options []Type
}

func (t TSum) typeTag() {}
func (t TSum) String() string {
	return join(t.Options, " | ")
}

type TAtom struct {
	Kind AtomKind
}

func (t TAtom) typeTag()       {}
func (t TAtom) String() string { return t.Kind.String() }

// TExtern is an opaque host type.
type TExtern struct {
	Name string
}

func (t TExtern) typeTag()       {}
func (t TExtern) String() string { return t.Name }

type TUnit struct{}

func (t TUnit) typeTag()       {}
func (t TUnit) String() string { return "unit" }

type TUnknown struct{}

func (t TUnknown) typeTag()       {}
func (t TUnknown) String() string { return "?" }

func Atom(k AtomKind) Type { return TAtom{Kind: k} }

func Func(from, to Type) Type { return TFunc{From: from, To: to} }

func Product(elems ...Type) Type { return TProduct{Elements: elems} }

func Array(elem Type, length uint64) Type { return TArray{Element: elem, Length: length} }

func join(ts []Type, sep string) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, sep)
}
