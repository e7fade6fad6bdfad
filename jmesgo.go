// Package jmesgo implements a JMESPath-style query language for JSON
// documents.
//
// An expression selects and reshapes values out of decoded JSON data
// (the generic interface{} trees produced by encoding/json). The
// language covers field access, array indexes and slices, wildcard and
// flatten projections, filters, multiselects, pipes, boolean logic and
// a typed builtin function library.
//
// # Quick Start
//
//	// Simple evaluation
//	result, err := jmesgo.Search("locations[?state == 'WA'].name", data)
//
//	// Compile once, evaluate many times
//	expr, err := jmesgo.Compile("reservations[].instances[].state")
//	ev := evaluator.New()
//	result1, _ := ev.Eval(expr, data1)
//	result2, _ := ev.Eval(expr, data2)
//
// # Semantics
//
// Evaluation never mutates the input document, and missing data is not
// an error: selecting an absent field, indexing out of range or applying
// a structural operator to the wrong type all yield nil. Errors are
// reserved for syntax problems at compile time and for function-call
// failures, a zero slice step and recursion-depth exhaustion at
// evaluation time.
//
// # More Information
//
// For detailed documentation, see:
//   - Parser: github.com/Celebrate-future/jmesgo/pkg/parser
//   - Evaluator: github.com/Celebrate-future/jmesgo/pkg/evaluator
//   - Functions: github.com/Celebrate-future/jmesgo/pkg/functions
//   - Types: github.com/Celebrate-future/jmesgo/pkg/types
package jmesgo

import (
	"github.com/Celebrate-future/jmesgo/pkg/evaluator"
	"github.com/Celebrate-future/jmesgo/pkg/parser"
	"github.com/Celebrate-future/jmesgo/pkg/types"
)

// Version returns the current version of jmesgo.
func Version() string {
	return "v0.1.0-dev"
}

// Compile parses an expression for repeated evaluation.
//
// The compiled expression is immutable and safe for concurrent use.
//
// Example:
//
//	expr, err := jmesgo.Compile("locations[?state == 'WA'].name")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, _ := evaluator.New().Eval(expr, data)
func Compile(expression string, opts ...parser.CompileOption) (*types.Expression, error) {
	return parser.Compile(expression, opts...)
}

// Parse checks expression syntax and returns the compiled form without
// evaluating anything. It is the entry point for validation-only
// callers, such as configuration checks at build time.
func Parse(expression string, opts ...parser.CompileOption) (*types.Expression, error) {
	return parser.Parse(expression, opts...)
}

// MustCompile is like Compile but panics on error. It simplifies safe
// initialization of global variables holding compiled expressions.
func MustCompile(expression string, opts ...parser.CompileOption) *types.Expression {
	expr, err := Compile(expression, opts...)
	if err != nil {
		panic("jmesgo: Compile(" + expression + "): " + err.Error())
	}
	return expr
}

// Search compiles and evaluates an expression against data in a single
// call.
//
// For repeated evaluations of the same expression, use Compile and an
// Evaluator instead.
//
// Example:
//
//	result, err := jmesgo.Search("locations[?state == 'WA'].name", data)
func Search(expression string, data interface{}, opts ...evaluator.EvalOption) (interface{}, error) {
	expr, err := Compile(expression)
	if err != nil {
		return nil, err
	}
	return evaluator.New(opts...).Eval(expr, data)
}
