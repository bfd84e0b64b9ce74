package bundle

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/galelang/gale/internal/ast"
	"github.com/galelang/gale/internal/flattree"
	"github.com/galelang/gale/internal/ir"
)

// Payload messages:
//
//	Bundle { 1: source string; 2: repeated Slot }
//	Slot   { 1: parent varint; 2: dead bool; 3: node Node }
//	Node   { 1: kind varint; 2: name string; 3: value zigzag; 4: flag bool;
//	         5: refs packed varint; 6: length varint; 7: op varint }
const (
	bundleSource protowire.Number = 1
	bundleSlot   protowire.Number = 2

	slotParent protowire.Number = 1
	slotDead   protowire.Number = 2
	slotNode   protowire.Number = 3

	nodeKind   protowire.Number = 1
	nodeName   protowire.Number = 2
	nodeValue  protowire.Number = 3
	nodeFlag   protowire.Number = 4
	nodeRefs   protowire.Number = 5
	nodeLength protowire.Number = 6
	nodeOp     protowire.Number = 7
)

type kind uint64

const (
	kindNone kind = iota
	kindFile
	kindLet
	kindSeq
	kindIdentifier
	kindBinOp
	kindNumber
	kindBoolean
	kindText
	kindTuple
	kindArray
	kindFunction
	kindApply
	kindSumType
	kindProductType
	kindIdentifierType
	kindFunctionType
	kindArrayType
	kindUnitType
)

func kindOf(n ir.Node) kind {
	switch n.(type) {
	case nil:
		return kindNone
	case *ir.File:
		return kindFile
	case *ir.Let:
		return kindLet
	case *ir.Seq:
		return kindSeq
	case *ir.Identifier:
		return kindIdentifier
	case *ir.BinOp:
		return kindBinOp
	case *ir.Number:
		return kindNumber
	case *ir.Boolean:
		return kindBoolean
	case *ir.Text:
		return kindText
	case *ir.Tuple:
		return kindTuple
	case *ir.Array:
		return kindArray
	case *ir.Function:
		return kindFunction
	case *ir.Apply:
		return kindApply
	case *ir.SumType:
		return kindSumType
	case *ir.ProductType:
		return kindProductType
	case *ir.IdentifierType:
		return kindIdentifierType
	case *ir.FunctionType:
		return kindFunctionType
	case *ir.ArrayType:
		return kindArrayType
	case *ir.UnitType:
		return kindUnitType
	}
	// Kind raises the invariant for unknown payloads.
	ir.Kind(n)
	return kindNone
}

func appendBundle(b []byte, bundle *Bundle) []byte {
	b = protowire.AppendTag(b, bundleSource, protowire.BytesType)
	b = protowire.AppendString(b, bundle.SourceFile)
	for _, s := range bundle.Tree.Slots() {
		b = protowire.AppendTag(b, bundleSlot, protowire.BytesType)
		b = protowire.AppendBytes(b, appendSlot(nil, s))
	}
	return b
}

func appendSlot(b []byte, s flattree.Slot[ir.Node]) []byte {
	b = protowire.AppendTag(b, slotParent, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(s.Parent))
	if s.Dead {
		b = protowire.AppendTag(b, slotDead, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(true))
	}
	b = protowire.AppendTag(b, slotNode, protowire.BytesType)
	return protowire.AppendBytes(b, appendNode(nil, s.Value))
}

func appendNode(b []byte, n ir.Node) []byte {
	b = protowire.AppendTag(b, nodeKind, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(kindOf(n)))

	switch n := n.(type) {
	case *ir.Identifier:
		b = appendName(b, string(n.Name))
	case *ir.IdentifierType:
		b = appendName(b, string(n.Name))
	case *ir.Text:
		b = appendName(b, n.Value)
	case *ir.Function:
		b = appendName(b, string(n.Name))
		b = appendFlag(b, n.Anonymous)
	case *ir.Number:
		b = protowire.AppendTag(b, nodeValue, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(n.Value))
	case *ir.Boolean:
		b = appendFlag(b, n.Value)
	case *ir.BinOp:
		b = protowire.AppendTag(b, nodeOp, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(n.Op))
	case *ir.ArrayType:
		b = protowire.AppendTag(b, nodeLength, protowire.VarintType)
		b = protowire.AppendVarint(b, n.Length)
	}

	if n == nil {
		return b
	}
	if refs := ir.References(n); len(refs) > 0 {
		var packed []byte
		for _, r := range refs {
			packed = protowire.AppendVarint(packed, uint64(r))
		}
		b = protowire.AppendTag(b, nodeRefs, protowire.BytesType)
		b = protowire.AppendBytes(b, packed)
	}
	return b
}

func appendName(b []byte, s string) []byte {
	b = protowire.AppendTag(b, nodeName, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendFlag(b []byte, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, nodeFlag, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

// fields walks the top-level fields of a message. visit receives the raw
// value for varints and the payload for length-delimited fields.
func fields(b []byte, visit func(num protowire.Number, typ protowire.Type, v uint64, payload []byte) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
			if err := visit(num, typ, v, nil); err != nil {
				return err
			}
		case protowire.BytesType:
			payload, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
			if err := visit(num, typ, 0, payload); err != nil {
				return err
			}
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return nil
}

func consumeBundle(data []byte) (*Bundle, error) {
	bundle := &Bundle{}
	var slots []flattree.Slot[ir.Node]
	err := fields(data, func(num protowire.Number, _ protowire.Type, _ uint64, payload []byte) error {
		switch num {
		case bundleSource:
			bundle.SourceFile = string(payload)
		case bundleSlot:
			s, err := consumeSlot(payload)
			if err != nil {
				return errors.Wrapf(err, "node %d", len(slots))
			}
			slots = append(slots, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	tree, err := flattree.FromSlots(slots)
	if err != nil {
		return nil, err
	}
	if err := checkReferences(tree); err != nil {
		return nil, err
	}
	bundle.Tree = tree
	return bundle, nil
}

func consumeSlot(data []byte) (flattree.Slot[ir.Node], error) {
	var s flattree.Slot[ir.Node]
	err := fields(data, func(num protowire.Number, _ protowire.Type, v uint64, payload []byte) error {
		switch num {
		case slotParent:
			s.Parent = ir.NodeId(v)
		case slotDead:
			s.Dead = protowire.DecodeBool(v)
		case slotNode:
			n, err := consumeNode(payload)
			if err != nil {
				return err
			}
			s.Value = n
		}
		return nil
	})
	return s, err
}

type rawNode struct {
	kind   kind
	name   string
	value  int64
	flag   bool
	refs   []ir.NodeId
	length uint64
	op     ast.Operator
}

func consumeNode(data []byte) (ir.Node, error) {
	var r rawNode
	err := fields(data, func(num protowire.Number, _ protowire.Type, v uint64, payload []byte) error {
		switch num {
		case nodeKind:
			r.kind = kind(v)
		case nodeName:
			r.name = string(payload)
		case nodeValue:
			r.value = protowire.DecodeZigZag(v)
		case nodeFlag:
			r.flag = protowire.DecodeBool(v)
		case nodeLength:
			r.length = v
		case nodeOp:
			r.op = ast.Operator(v)
		case nodeRefs:
			for len(payload) > 0 {
				ref, n := protowire.ConsumeVarint(payload)
				if n < 0 {
					return protowire.ParseError(n)
				}
				r.refs = append(r.refs, ir.NodeId(ref))
				payload = payload[n:]
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.build()
}

func (r *rawNode) build() (ir.Node, error) {
	switch r.kind {
	case kindNone:
		return nil, nil
	case kindFile:
		return &ir.File{Functions: r.refs}, nil
	case kindLet:
		if err := r.arity(3); err != nil {
			return nil, err
		}
		return &ir.Let{ID: r.refs[0], ExpType: r.refs[1], Exp: r.refs[2]}, nil
	case kindSeq:
		return &ir.Seq{Elements: r.refs}, nil
	case kindIdentifier:
		return &ir.Identifier{Name: ast.Name(r.name)}, nil
	case kindBinOp:
		if err := r.arity(2); err != nil {
			return nil, err
		}
		if r.op < ast.Mult || r.op > ast.ArrIndex {
			return nil, errors.Errorf("unknown operator %d", r.op)
		}
		return &ir.BinOp{LHS: r.refs[0], RHS: r.refs[1], Op: r.op}, nil
	case kindNumber:
		return &ir.Number{Value: r.value}, nil
	case kindBoolean:
		return &ir.Boolean{Value: r.flag}, nil
	case kindText:
		return &ir.Text{Value: r.name}, nil
	case kindTuple:
		return &ir.Tuple{Elements: r.refs}, nil
	case kindArray:
		return &ir.Array{Elements: r.refs}, nil
	case kindFunction:
		if len(r.refs) == 0 {
			return nil, errors.New("function has no implementation")
		}
		last := len(r.refs) - 1
		return &ir.Function{
			Name:           ast.Name(r.name),
			Parameters:     r.refs[:last],
			Implementation: r.refs[last],
			Anonymous:      r.flag,
		}, nil
	case kindApply:
		if err := r.arity(2); err != nil {
			return nil, err
		}
		return &ir.Apply{Fn: r.refs[0], Param: r.refs[1]}, nil
	case kindSumType:
		return &ir.SumType{Options: r.refs}, nil
	case kindProductType:
		return &ir.ProductType{Elements: r.refs}, nil
	case kindIdentifierType:
		return &ir.IdentifierType{Name: ast.Name(r.name)}, nil
	case kindFunctionType:
		if err := r.arity(2); err != nil {
			return nil, err
		}
		return &ir.FunctionType{From: r.refs[0], To: r.refs[1]}, nil
	case kindArrayType:
		if err := r.arity(1); err != nil {
			return nil, err
		}
		return &ir.ArrayType{ValueType: r.refs[0], Length: r.length}, nil
	case kindUnitType:
		return &ir.UnitType{}, nil
	}
	return nil, errors.Errorf("unknown node kind %d", r.kind)
}

func (r *rawNode) arity(want int) error {
	if len(r.refs) != want {
		return errors.Errorf("node kind %d has %d references, want %d", r.kind, len(r.refs), want)
	}
	return nil
}

// checkReferences rejects trees whose live nodes point at ids that were never
// issued, so later stages cannot hit an invariant on bundle input.
func checkReferences(tree *ir.Tree) error {
	for id, n := range tree.All() {
		if n == nil {
			continue
		}
		for _, ref := range ir.References(n) {
			if ref < 0 || int(ref) >= tree.Len() {
				return errors.Errorf("node %d refers to unknown node %d", id, ref)
			}
		}
	}
	return nil
}
