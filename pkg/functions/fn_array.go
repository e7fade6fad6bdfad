package functions

import (
	"sort"
	"unicode/utf8"

	"github.com/Celebrate-future/jmesgo/pkg/types"
)

// length counts runes for strings, elements for arrays, keys for objects.
func fnLength(_ Caller, args []interface{}) (interface{}, error) {
	switch v := args[0].(type) {
	case string:
		return float64(utf8.RuneCountInString(v)), nil
	case []interface{}:
		return float64(len(v)), nil
	case map[string]interface{}:
		return float64(len(v)), nil
	}
	return nil, nil
}

func fnMap(c Caller, args []interface{}) (interface{}, error) {
	ref := args[0].(*ExprRef)
	arr := args[1].([]interface{})
	out := make([]interface{}, len(arr))
	for i, item := range arr {
		v, err := c.ApplyRef(ref, item)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func fnMax(_ Caller, args []interface{}) (interface{}, error) {
	return extreme(args[0].([]interface{}), false)
}

func fnMin(_ Caller, args []interface{}) (interface{}, error) {
	return extreme(args[0].([]interface{}), true)
}

// extreme finds the min or max of a homogeneous number or string array.
// The signature check guarantees homogeneity before we get here.
func extreme(arr []interface{}, least bool) (interface{}, error) {
	if len(arr) == 0 {
		return nil, nil
	}
	best := arr[0]
	for _, item := range arr[1:] {
		if lessValue(item, best) == least {
			best = item
		}
	}
	return best, nil
}

func lessValue(a, b interface{}) bool {
	switch av := a.(type) {
	case float64:
		return av < b.(float64)
	case string:
		return av < b.(string)
	}
	return false
}

func fnMaxBy(c Caller, args []interface{}) (interface{}, error) {
	return extremeBy(c, "max_by", args, false)
}

func fnMinBy(c Caller, args []interface{}) (interface{}, error) {
	return extremeBy(c, "min_by", args, true)
}

func extremeBy(c Caller, name string, args []interface{}, least bool) (interface{}, error) {
	arr := args[0].([]interface{})
	ref := args[1].(*ExprRef)
	if len(arr) == 0 {
		return nil, nil
	}
	keys, err := refKeys(c, name, arr, ref)
	if err != nil {
		return nil, err
	}
	bestIdx := 0
	for i := 1; i < len(keys); i++ {
		if lessValue(keys[i], keys[bestIdx]) == least {
			bestIdx = i
		}
	}
	return arr[bestIdx], nil
}

func fnNotNull(_ Caller, args []interface{}) (interface{}, error) {
	for _, arg := range args {
		if arg != nil {
			return arg, nil
		}
	}
	return nil, nil
}

func fnReverse(_ Caller, args []interface{}) (interface{}, error) {
	switch v := args[0].(type) {
	case string:
		runes := []rune(v)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return string(runes), nil
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[len(v)-1-i] = item
		}
		return out, nil
	}
	return nil, nil
}

func fnSort(_ Caller, args []interface{}) (interface{}, error) {
	arr := args[0].([]interface{})
	out := make([]interface{}, len(arr))
	copy(out, arr)
	sort.SliceStable(out, func(i, j int) bool { return lessValue(out[i], out[j]) })
	return out, nil
}

func fnSortBy(c Caller, args []interface{}) (interface{}, error) {
	arr := args[0].([]interface{})
	ref := args[1].(*ExprRef)
	if len(arr) == 0 {
		return []interface{}{}, nil
	}
	keys, err := refKeys(c, "sort_by", arr, ref)
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(arr))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return lessValue(keys[idx[i]], keys[idx[j]]) })
	out := make([]interface{}, len(arr))
	for i, j := range idx {
		out[i] = arr[j]
	}
	return out, nil
}

// refKeys applies ref to every element and validates that the resulting
// keys are all numbers or all strings.
func refKeys(c Caller, name string, arr []interface{}, ref *ExprRef) ([]interface{}, error) {
	keys := make([]interface{}, len(arr))
	for i, item := range arr {
		k, err := c.ApplyRef(ref, item)
		if err != nil {
			return nil, err
		}
		keys[i] = k
	}
	switch keys[0].(type) {
	case float64:
		for i, k := range keys {
			if _, ok := k.(float64); !ok {
				return nil, types.NewEvalError(types.TypeMismatch,
					"function %q: element %d has key of type %s, expected number", name, i, typeOf(k))
			}
		}
	case string:
		for i, k := range keys {
			if _, ok := k.(string); !ok {
				return nil, types.NewEvalError(types.TypeMismatch,
					"function %q: element %d has key of type %s, expected string", name, i, typeOf(k))
			}
		}
	default:
		return nil, types.NewEvalError(types.TypeMismatch,
			"function %q: keys must be numbers or strings, got %s", name, typeOf(keys[0]))
	}
	return keys, nil
}

func fnToArray(_ Caller, args []interface{}) (interface{}, error) {
	if arr, ok := args[0].([]interface{}); ok {
		return arr, nil
	}
	return []interface{}{args[0]}, nil
}
