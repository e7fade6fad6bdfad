// Package types defines the core type system shared by the parser and the
// evaluator.
//
// This package contains type definitions for:
//   - Expression: a compiled, reusable expression
//   - ASTNode: Abstract Syntax Tree nodes, one kind per grammar production
//   - Error types: structured lex, parse and evaluation errors
//
// Document values use Go's generic JSON representation: nil, bool, float64,
// string, []interface{} and map[string]interface{}. The engine never
// mutates a value it is given.
package types

// Expression represents a compiled expression.
//
// An Expression can be evaluated any number of times against different
// documents and is safe for concurrent use by multiple goroutines: the
// underlying AST is immutable after parsing.
type Expression struct {
	ast    *ASTNode
	source string
}

// NewExpression creates a new Expression from an AST.
func NewExpression(ast *ASTNode, source string) *Expression {
	return &Expression{
		ast:    ast,
		source: source,
	}
}

// AST returns the root node of the expression.
func (e *Expression) AST() *ASTNode {
	return e.ast
}

// Source returns the original expression text.
func (e *Expression) Source() string {
	return e.source
}

// String returns the original expression text.
func (e *Expression) String() string {
	return e.source
}
