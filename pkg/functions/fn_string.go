package functions

import (
	"encoding/json"
	"strings"

	"github.com/Celebrate-future/jmesgo/pkg/types"
)

func fnContains(_ Caller, args []interface{}) (interface{}, error) {
	search := args[1]
	switch subject := args[0].(type) {
	case string:
		needle, ok := search.(string)
		if !ok {
			return false, nil
		}
		return strings.Contains(subject, needle), nil
	case []interface{}:
		for _, item := range subject {
			if types.Equal(item, search) {
				return true, nil
			}
		}
		return false, nil
	}
	return false, nil
}

func fnStartsWith(_ Caller, args []interface{}) (interface{}, error) {
	return strings.HasPrefix(args[0].(string), args[1].(string)), nil
}

func fnEndsWith(_ Caller, args []interface{}) (interface{}, error) {
	return strings.HasSuffix(args[0].(string), args[1].(string)), nil
}

func fnJoin(_ Caller, args []interface{}) (interface{}, error) {
	glue := args[0].(string)
	arr := args[1].([]interface{})
	parts := make([]string, len(arr))
	for i, item := range arr {
		parts[i] = item.(string)
	}
	return strings.Join(parts, glue), nil
}

// to_string returns string input unchanged; anything else is rendered as
// compact JSON.
func fnToString(_ Caller, args []interface{}) (interface{}, error) {
	if s, ok := args[0].(string); ok {
		return s, nil
	}
	b, err := json.Marshal(args[0])
	if err != nil {
		return nil, types.NewEvalError(types.TypeMismatch,
			"to_string: value is not representable as JSON: %v", err)
	}
	return string(b), nil
}

func fnType(_ Caller, args []interface{}) (interface{}, error) {
	return typeOf(args[0]), nil
}
