package evaluator

import (
	"sort"

	"github.com/Celebrate-future/jmesgo/pkg/types"
)

// isTruthy implements the language truthiness rule: null, false, the
// empty string, the empty array and the empty object are falsy. Every
// number is truthy, including zero.
func isTruthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case []interface{}:
		return len(t) > 0
	case map[string]interface{}:
		return len(t) > 0
	default:
		return true
	}
}

// indexValue resolves an array index, counting from the end when
// negative. Anything out of range or non-array yields nil.
func indexValue(v interface{}, idx int) interface{} {
	arr, ok := v.([]interface{})
	if !ok {
		return nil
	}
	if idx < 0 {
		idx += len(arr)
	}
	if idx < 0 || idx >= len(arr) {
		return nil
	}
	return arr[idx]
}

// flattenOne splices one level of nested arrays into the result;
// non-array elements pass through unchanged.
func flattenOne(arr []interface{}) []interface{} {
	out := []interface{}{}
	for _, elem := range arr {
		if sub, ok := elem.([]interface{}); ok {
			out = append(out, sub...)
		} else {
			out = append(out, elem)
		}
	}
	return out
}

// sortedValues returns an object's values in sorted key order so that
// wildcard results are deterministic.
func sortedValues(obj map[string]interface{}) []interface{} {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]interface{}, 0, len(obj))
	for _, k := range keys {
		out = append(out, obj[k])
	}
	return out
}

// compare applies a comparison operator. Equality works on any pair of
// values; ordering is defined for numbers only and yields nil otherwise.
func compare(op types.CompareOp, lhs, rhs interface{}) interface{} {
	switch op {
	case types.CompareEQ:
		return types.Equal(lhs, rhs)
	case types.CompareNE:
		return !types.Equal(lhs, rhs)
	}

	l, lok := lhs.(float64)
	r, rok := rhs.(float64)
	if !lok || !rok {
		return nil
	}
	switch op {
	case types.CompareLT:
		return l < r
	case types.CompareLTE:
		return l <= r
	case types.CompareGT:
		return l > r
	case types.CompareGTE:
		return l >= r
	}
	return nil
}
