// Package functions provides the typed function library used by the
// evaluator.
//
// The library is a static, read-only table mapping each function name to
// its arity, per-argument type signature and implementation. A Table is
// safe for concurrent use once built; [Default] returns a fresh copy of
// the builtin set, so callers may extend it with their own entries and
// pass the superset to the evaluator.
package functions

import (
	"github.com/Celebrate-future/jmesgo/pkg/types"
)

// ArgType describes one acceptable runtime type for a function argument.
type ArgType uint8

const (
	ArgAny         ArgType = iota + 1 // any value, including null
	ArgNumber                         // float64
	ArgString                         // string
	ArgBoolean                        // bool
	ArgArray                          // []interface{}
	ArgObject                         // map[string]interface{}
	ArgArrayNumber                    // array whose elements are all numbers
	ArgArrayString                    // array whose elements are all strings
	ArgExpRef                         // &expr argument, passed unevaluated
)

// String returns a human-readable name for the argument type.
func (at ArgType) String() string {
	switch at {
	case ArgAny:
		return "any"
	case ArgNumber:
		return "number"
	case ArgString:
		return "string"
	case ArgBoolean:
		return "boolean"
	case ArgArray:
		return "array"
	case ArgObject:
		return "object"
	case ArgArrayNumber:
		return "array[number]"
	case ArgArrayString:
		return "array[string]"
	case ArgExpRef:
		return "expression"
	default:
		return "(unknown)"
	}
}

// ArgSpec declares the accepted types for one parameter position.
// Variadic is only meaningful on the last spec and means "one or more".
type ArgSpec struct {
	Types    []ArgType
	Variadic bool
}

// ExprRef is the runtime value of an &expr argument: the unevaluated AST,
// invoked lazily by higher-order functions against elements they supply.
type ExprRef struct {
	Node *types.ASTNode
}

// Caller lets function implementations call back into the evaluator to
// apply an ExprRef to a value (e.g. the sort key of each element in
// sort_by).
type Caller interface {
	ApplyRef(ref *ExprRef, value interface{}) (interface{}, error)
}

// Impl is the implementation of a function. Arguments have already been
// validated against the declared ArgSpecs.
type Impl func(c Caller, args []interface{}) (interface{}, error)

// Def defines a single function: its name, signature and implementation.
type Def struct {
	Name string
	Args []ArgSpec
	Impl Impl
}

// Table maps function names to definitions. It is read-only after
// construction and therefore safe to share across goroutines.
type Table map[string]*Def

// Call validates the argument count and types for name and invokes its
// implementation. An unknown name, a wrong argument count, or an argument
// outside the declared signature yields a *types.EvalError.
func (t Table) Call(c Caller, name string, args []interface{}) (interface{}, error) {
	def, ok := t[name]
	if !ok {
		return nil, types.NewEvalError(types.UnknownFunction, "unknown function %q", name)
	}
	if err := def.checkArity(len(args)); err != nil {
		return nil, err
	}
	if err := def.checkTypes(args); err != nil {
		return nil, err
	}
	return def.Impl(c, args)
}

func (d *Def) variadic() bool {
	return len(d.Args) > 0 && d.Args[len(d.Args)-1].Variadic
}

func (d *Def) checkArity(n int) error {
	if d.variadic() {
		if n < len(d.Args) {
			return types.NewEvalError(types.ArityMismatch,
				"function %q expects at least %d argument(s), got %d", d.Name, len(d.Args), n)
		}
		return nil
	}
	if n != len(d.Args) {
		return types.NewEvalError(types.ArityMismatch,
			"function %q expects %d argument(s), got %d", d.Name, len(d.Args), n)
	}
	return nil
}

func (d *Def) checkTypes(args []interface{}) error {
	for i, arg := range args {
		spec := d.Args[min(i, len(d.Args)-1)]
		if !matchesAny(arg, spec.Types) {
			return types.NewEvalError(types.TypeMismatch,
				"function %q argument %d: expected %s, got %s",
				d.Name, i+1, specString(spec.Types), typeOf(arg))
		}
	}
	return nil
}

func matchesAny(v interface{}, accepted []ArgType) bool {
	for _, at := range accepted {
		if matches(v, at) {
			return true
		}
	}
	return false
}

func matches(v interface{}, at ArgType) bool {
	switch at {
	case ArgAny:
		return true
	case ArgNumber:
		_, ok := v.(float64)
		return ok
	case ArgString:
		_, ok := v.(string)
		return ok
	case ArgBoolean:
		_, ok := v.(bool)
		return ok
	case ArgArray:
		_, ok := v.([]interface{})
		return ok
	case ArgObject:
		_, ok := v.(map[string]interface{})
		return ok
	case ArgArrayNumber:
		arr, ok := v.([]interface{})
		if !ok {
			return false
		}
		for _, item := range arr {
			if _, ok := item.(float64); !ok {
				return false
			}
		}
		return true
	case ArgArrayString:
		arr, ok := v.([]interface{})
		if !ok {
			return false
		}
		for _, item := range arr {
			if _, ok := item.(string); !ok {
				return false
			}
		}
		return true
	case ArgExpRef:
		_, ok := v.(*ExprRef)
		return ok
	default:
		return false
	}
}

func specString(accepted []ArgType) string {
	s := ""
	for i, at := range accepted {
		if i > 0 {
			s += "|"
		}
		s += at.String()
	}
	return s
}

// typeOf returns the language-level type tag of a value.
func typeOf(v interface{}) string {
	if _, ok := v.(*ExprRef); ok {
		return "expref"
	}
	return types.TypeName(v)
}

// Default returns a table pre-populated with the builtin set. The returned
// map is a fresh copy: adding entries does not affect other callers.
func Default() Table {
	t := make(Table, len(builtins))
	for name, def := range builtins {
		t[name] = def
	}
	return t
}
