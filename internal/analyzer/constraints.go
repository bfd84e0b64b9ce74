package analyzer

import (
	"github.com/galelang/gale/internal/typesystem"
)

// Constraint is a top-down obligation on a node's type. A nil *Constraint
// means the node is unconstrained. A Constraint with a nil MustBe is an
// equality placeholder with no target yet; most nodes treat it the same as no
// constraint, but a lambda needs the target to know its parameter types.
type Constraint struct {
	MustBe typesystem.Type
}

// MustBe returns an equality constraint on t.
func MustBe(t typesystem.Type) *Constraint {
	return &Constraint{MustBe: t}
}

// Placeholder returns an equality constraint without a target.
func Placeholder() *Constraint {
	return &Constraint{}
}

// target returns the required type, if there is one.
func (c *Constraint) target() (typesystem.Type, bool) {
	if c == nil || c.MustBe == nil {
		return nil, false
	}
	return c.MustBe, true
}
