package functions

import (
	"math"
	"strconv"
)

func fnAbs(_ Caller, args []interface{}) (interface{}, error) {
	return math.Abs(args[0].(float64)), nil
}

func fnCeil(_ Caller, args []interface{}) (interface{}, error) {
	return math.Ceil(args[0].(float64)), nil
}

func fnFloor(_ Caller, args []interface{}) (interface{}, error) {
	return math.Floor(args[0].(float64)), nil
}

// avg of an empty array is null; sum of an empty array is 0.
func fnAvg(_ Caller, args []interface{}) (interface{}, error) {
	arr := args[0].([]interface{})
	if len(arr) == 0 {
		return nil, nil
	}
	total := 0.0
	for _, item := range arr {
		total += item.(float64)
	}
	return total / float64(len(arr)), nil
}

func fnSum(_ Caller, args []interface{}) (interface{}, error) {
	total := 0.0
	for _, item := range args[0].([]interface{}) {
		total += item.(float64)
	}
	return total, nil
}

func fnToNumber(_ Caller, args []interface{}) (interface{}, error) {
	switch v := args[0].(type) {
	case float64:
		return v, nil
	case string:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, nil
		}
		return n, nil
	default:
		return nil, nil
	}
}
