package evaluator

import "github.com/Celebrate-future/jmesgo/pkg/types"

// sliceValue applies Python-style slice semantics: negative bounds count
// from the end, out-of-range bounds clamp, and a negative step walks the
// array in reverse. Non-array input yields nil.
func sliceValue(v interface{}, bounds types.SliceBounds) (interface{}, error) {
	arr, ok := v.([]interface{})
	if !ok {
		return nil, nil
	}

	step := 1
	if bounds.Step != nil {
		step = *bounds.Step
	}
	if step == 0 {
		return nil, types.NewEvalError(types.InvalidStep0, "slice step cannot be zero")
	}

	n := len(arr)
	start, stop := sliceBound(bounds.Start, n, step, true), sliceBound(bounds.Stop, n, step, false)

	out := []interface{}{}
	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, arr[i])
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, arr[i])
		}
	}
	return out, nil
}

// sliceBound resolves one slice endpoint against an array of length n,
// filling in the step-dependent default when the endpoint is absent.
func sliceBound(b *int, n, step int, isStart bool) int {
	if b == nil {
		if step > 0 {
			if isStart {
				return 0
			}
			return n
		}
		if isStart {
			return n - 1
		}
		return -1
	}

	i := *b
	if i < 0 {
		i += n
		if i < 0 {
			if step < 0 {
				return -1
			}
			return 0
		}
	}
	if i >= n {
		if step < 0 {
			return n - 1
		}
		return n
	}
	return i
}
