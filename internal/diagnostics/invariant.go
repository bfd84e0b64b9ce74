package diagnostics

import (
	"fmt"

	"github.com/galelang/gale/internal/token"
	"github.com/pkg/errors"
)

// InvariantError reports a broken internal contract: an arena id that was
// never issued, an out-of-range array index, a call binding with the wrong
// arity. It is raised with panic and is not recoverable where it happens.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return "internal invariant violated: " + e.Message
}

// Invariantf panics with an *InvariantError carrying a stack trace.
func Invariantf(format string, args ...interface{}) {
	panic(errors.WithStack(&InvariantError{Message: fmt.Sprintf(format, args...)}))
}

// CatchInvariant converts an invariant panic into *errp. Other panics are re-raised.
// Use it deferred at stage entry points:
//
//	defer diagnostics.CatchInvariant(&err)
func CatchInvariant(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	err, ok := r.(error)
	if !ok {
		panic(r)
	}
	var inv *InvariantError
	if !errors.As(err, &inv) {
		panic(r)
	}
	*errp = err
}

// IsInvariant reports whether err carries an *InvariantError.
func IsInvariant(err error) bool {
	var inv *InvariantError
	return errors.As(err, &inv)
}

// FromError converts any stage error into a DiagnosticError.
// Invariant violations become I001; untyped errors get fallback.
func FromError(err error, fallback ErrorCode) *DiagnosticError {
	if err == nil {
		return nil
	}
	var de *DiagnosticError
	if errors.As(err, &de) {
		return de
	}
	var inv *InvariantError
	if errors.As(err, &inv) {
		return NewError(ErrI001, token.Token{}, inv.Error())
	}
	return NewError(fallback, token.Token{}, err.Error())
}
