// Package diagnostics defines the errors reported by every pipeline stage.
package diagnostics

import (
	"fmt"

	"github.com/galelang/gale/internal/token"
)

type ErrorCode string

const (
	// Parser
	ErrP001 ErrorCode = "P001" // unexpected or missing token

	// Type checker
	ErrA001 ErrorCode = "A001" // type mismatch
	ErrA002 ErrorCode = "A002" // unknown identifier
	ErrA003 ErrorCode = "A003" // unknown type name
	ErrA004 ErrorCode = "A004" // missing or unsatisfiable constraint
	ErrA005 ErrorCode = "A005" // malformed construct

	// Lowering
	ErrL001 ErrorCode = "L001"

	// Runtime
	ErrR001 ErrorCode = "R001"

	// Internal invariant violated
	ErrI001 ErrorCode = "I001"
)

// Stage returns the pipeline stage a code belongs to.
func (c ErrorCode) Stage() string {
	if c == "" {
		return "unknown"
	}
	switch c[0] {
	case 'P':
		return "parse"
	case 'A':
		return "check"
	case 'L':
		return "lower"
	case 'R':
		return "runtime"
	case 'I':
		return "internal"
	}
	return "unknown"
}

type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	File    string
	Message string
}

func NewError(code ErrorCode, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: message}
}

// Errorf builds a DiagnosticError with a formatted message.
func Errorf(code ErrorCode, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return NewError(code, tok, fmt.Sprintf(format, args...))
}

func (e *DiagnosticError) Error() string {
	loc := ""
	if e.File != "" {
		loc = e.File + ":"
	}
	if e.Token.Line > 0 {
		loc += fmt.Sprintf("%d:%d:", e.Token.Line, e.Token.Column)
	}
	if loc != "" {
		loc += " "
	}
	return fmt.Sprintf("%serror [%s]: %s", loc, e.Code, e.Message)
}
