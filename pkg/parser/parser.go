// Package parser implements the expression parser.
//
// The parser is a hand-written recursive descent parser using Pratt's
// "Top Down Operator Precedence" technique. It consumes tokens lazily from
// the lexer with a two-token look-ahead window (enough to disambiguate the
// bracket forms) and never backtracks.
//
// # Example
//
//	expr, err := parser.Parse("foo[*].bar")
//	if err != nil {
//	    var perr *types.ParseError
//	    if errors.As(err, &perr) {
//	        fmt.Printf("parse error at offset %d\n", perr.Offset)
//	    }
//	    return
//	}
//	ast := expr.AST()
package parser

import (
	"github.com/Celebrate-future/jmesgo/pkg/types"
)

// defaultMaxDepth bounds the recursive descent. Exceeding it is a parse
// error rather than a stack overflow on adversarial input.
const defaultMaxDepth = 100

// Parse parses an expression and returns the compiled Expression.
//
// The function tokenizes the input, builds an AST, and validates the
// syntax. If parsing fails it returns a *types.ParseError carrying the
// byte offset of the offending token.
func Parse(input string, opts ...CompileOption) (*types.Expression, error) {
	p := NewParser(input, opts...)
	return p.Parse()
}

// Compile is an alias for Parse, provided for API consistency.
func Compile(input string, opts ...CompileOption) (*types.Expression, error) {
	return Parse(input, opts...)
}

// CompileOption configures parsing behavior.
type CompileOption func(*CompileOptions)

// CompileOptions holds parser configuration.
type CompileOptions struct {
	// MaxDepth limits nesting depth (brackets, subexpressions, call
	// arguments) to prevent unbounded recursion. Defaults to 100.
	MaxDepth int
}

// WithMaxDepth sets the maximum parsing depth.
func WithMaxDepth(depth int) CompileOption {
	return func(opts *CompileOptions) {
		opts.MaxDepth = depth
	}
}
