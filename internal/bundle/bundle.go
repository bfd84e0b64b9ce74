// Package bundle stores a lowered arena in a .galeb file so it can be run
// without the source.
//
// Format:
//   - Magic number (4 bytes): "GALB"
//   - Version (1 byte): 0x01
//   - Protobuf wire encoded payload (see codec.go)
package bundle

import (
	"bytes"
	"os"

	"github.com/pkg/errors"

	"github.com/galelang/gale/internal/ir"
)

var magic = []byte{'G', 'A', 'L', 'B'}

const formatVersion byte = 0x01

// Bundle is a lowered program. Deleted nodes are kept so ids survive.
type Bundle struct {
	// SourceFile is the path the tree was lowered from, for error messages.
	SourceFile string
	Tree       *ir.Tree
}

// IsBundle reports whether data starts with the bundle magic number.
func IsBundle(data []byte) bool {
	return bytes.HasPrefix(data, magic)
}

func (b *Bundle) Serialize() ([]byte, error) {
	if b.Tree == nil {
		return nil, errors.New("bundle has no tree")
	}
	out := make([]byte, 0, 64+b.Tree.Len()*16)
	out = append(out, magic...)
	out = append(out, formatVersion)
	return appendBundle(out, b), nil
}

func Deserialize(data []byte) (*Bundle, error) {
	if len(data) < len(magic)+1 {
		return nil, errors.New("bundle data too short")
	}
	if !IsBundle(data) {
		return nil, errors.New("invalid magic number, expected GALB")
	}
	if v := data[len(magic)]; v != formatVersion {
		return nil, errors.Errorf("unsupported bundle version %d (this binary reads version %d)", v, formatVersion)
	}
	b, err := consumeBundle(data[len(magic)+1:])
	if err != nil {
		return nil, errors.Wrap(err, "decoding bundle")
	}
	return b, nil
}

func WriteFile(path string, b *Bundle) error {
	data, err := b.Serialize()
	if err != nil {
		return err
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "writing %s", path)
}

func ReadFile(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return Deserialize(data)
}
