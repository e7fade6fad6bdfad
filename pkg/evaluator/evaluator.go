// Package evaluator walks a compiled AST against a decoded JSON document.
//
// Evaluation is pure: the input document is never mutated, and the same
// expression evaluated against equal documents yields equal results. An
// Evaluator holds only immutable configuration, so a single instance may
// be shared by any number of goroutines.
package evaluator

import (
	"log/slog"

	"github.com/Celebrate-future/jmesgo/pkg/functions"
	"github.com/Celebrate-future/jmesgo/pkg/types"
)

// defaultMaxDepth bounds the evaluation recursion depth.
const defaultMaxDepth = 100

// EvalOptions configures an Evaluator.
type EvalOptions struct {
	// MaxDepth is the maximum evaluation recursion depth. Zero or
	// negative means the default of 100.
	MaxDepth int

	// Functions is the function table used to resolve calls. Nil means
	// the builtin set.
	Functions functions.Table

	// Logger receives debug records when Debug is set. Nil means
	// slog.Default().
	Logger *slog.Logger

	// Debug enables per-function-call debug logging.
	Debug bool
}

// EvalOption mutates EvalOptions.
type EvalOption func(*EvalOptions)

// WithMaxDepth sets the maximum evaluation recursion depth.
func WithMaxDepth(n int) EvalOption {
	return func(o *EvalOptions) { o.MaxDepth = n }
}

// WithFunctions sets the function table. Use functions.Default() as the
// base when extending the builtins.
func WithFunctions(t functions.Table) EvalOption {
	return func(o *EvalOptions) { o.Functions = t }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) EvalOption {
	return func(o *EvalOptions) { o.Logger = l }
}

// WithDebug toggles debug logging of function dispatch.
func WithDebug(debug bool) EvalOption {
	return func(o *EvalOptions) { o.Debug = debug }
}

// Evaluator evaluates compiled expressions. It is immutable after New
// and safe for concurrent use.
type Evaluator struct {
	opts EvalOptions
}

// New creates an Evaluator with the given options.
func New(opts ...EvalOption) *Evaluator {
	o := EvalOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = defaultMaxDepth
	}
	if o.Functions == nil {
		o.Functions = functions.Default()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return &Evaluator{opts: o}
}

// Eval evaluates expr against document and returns the result. Missing
// fields, out-of-range indexes and type mismatches on structural
// operators all resolve to nil; errors are reserved for function-call
// failures, a zero slice step and exceeding the depth bound.
func (e *Evaluator) Eval(expr *types.Expression, document interface{}) (interface{}, error) {
	run := &evalRun{ev: e}
	v, _, err := run.eval(expr.AST(), document)
	return v, err
}
