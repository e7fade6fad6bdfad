package types

import "fmt"

// LexError reports a tokenization failure: an unrecognized character, an
// unterminated string, or an unsupported escape sequence.
type LexError struct {
	Offset int // byte offset of the offending input
	Reason string
}

// Error implements the error interface.
func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at offset %d: %s", e.Offset, e.Reason)
}

// ParseError reports a syntax failure. Parse errors are terminal for the
// expression: no partial AST is ever returned alongside one.
type ParseError struct {
	Offset  int    // byte offset of the offending token
	Message string
	Token   string // literal text of the offending token, if any
	Err     error  // underlying cause (e.g. a LexError)
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("parse error at offset %d near %q: %s", e.Offset, e.Token, e.Message)
	}
	return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Message)
}

// Unwrap returns the wrapped error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// EvalErrorKind enumerates the evaluation failures the engine can report.
// All other "missing data" situations (absent field, non-indexable base,
// ordering comparison on non-numbers) resolve to null rather than error.
type EvalErrorKind uint8

const (
	UnknownFunction  EvalErrorKind = iota + 1 // function name not in the table
	ArityMismatch                             // wrong number of arguments
	TypeMismatch                              // argument type outside the declared signature
	InvalidStep0                              // slice step of zero in a hand-built AST
	MaxDepthExceeded                          // recursion bound reached
)

// String returns a stable tag for the kind.
func (k EvalErrorKind) String() string {
	switch k {
	case UnknownFunction:
		return "unknown-function"
	case ArityMismatch:
		return "arity-mismatch"
	case TypeMismatch:
		return "type-mismatch"
	case InvalidStep0:
		return "invalid-step-0"
	case MaxDepthExceeded:
		return "max-depth-exceeded"
	default:
		return "(unknown)"
	}
}

// EvalError reports an evaluation failure.
type EvalError struct {
	Kind    EvalErrorKind
	Message string
}

// NewEvalError creates a new evaluation error.
func NewEvalError(kind EvalErrorKind, format string, args ...interface{}) *EvalError {
	return &EvalError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluation error (%s): %s", e.Kind, e.Message)
}
