package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/galelang/gale/internal/ast"
	"github.com/galelang/gale/internal/flattree"
)

func TestReferences(t *testing.T) {
	tests := []struct {
		node Node
		want []NodeId
	}{
		{&Let{ID: 1, ExpType: 2, Exp: 3}, []NodeId{1, 2, 3}},
		{&Function{Name: "f", Parameters: []NodeId{4, 5}, Implementation: 6}, []NodeId{4, 5, 6}},
		{&Apply{Fn: 7, Param: 8}, []NodeId{7, 8}},
		{&ArrayType{ValueType: 9, Length: 2}, []NodeId{9}},
		{&Number{Value: 1}, nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, References(tt.node)); diff != "" {
			t.Errorf("References(%s) mismatch (-want +got):\n%s", Kind(tt.node), diff)
		}
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{&Identifier{Name: "x"}, "Identifier x"},
		{&BinOp{Op: ast.ArrIndex}, "BinOp !!"},
		{&Text{Value: "hi"}, `Text "hi"`},
		{&Function{Name: "main"}, "Function main"},
		{&Seq{}, "Seq"},
	}
	for _, tt := range tests {
		if got := Label(tt.node); got != tt.want {
			t.Errorf("Label = %q, want %q", got, tt.want)
		}
	}
}

func TestTreeHoldsNodes(t *testing.T) {
	tr := flattree.NewWithRoot[Node](&File{})
	fn := tr.NewNode(&Function{Name: "main"}, flattree.RootID)
	file, _ := tr.MutNodeValue(flattree.RootID)
	(*file).(*File).Functions = append((*file).(*File).Functions, fn)

	root, ok := tr.NodeValue(flattree.RootID)
	if !ok {
		t.Fatal("root missing")
	}
	if diff := cmp.Diff([]NodeId{fn}, root.(*File).Functions); diff != "" {
		t.Errorf("functions mismatch (-want +got):\n%s", diff)
	}
}
