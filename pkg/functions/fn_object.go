package functions

import "sort"

// keys and values iterate the object in sorted key order so results are
// deterministic across runs.
func fnKeys(_ Caller, args []interface{}) (interface{}, error) {
	obj := args[0].(map[string]interface{})
	out := make([]interface{}, 0, len(obj))
	for _, k := range sortedKeys(obj) {
		out = append(out, k)
	}
	return out, nil
}

func fnValues(_ Caller, args []interface{}) (interface{}, error) {
	obj := args[0].(map[string]interface{})
	out := make([]interface{}, 0, len(obj))
	for _, k := range sortedKeys(obj) {
		out = append(out, obj[k])
	}
	return out, nil
}

// merge builds a new object; later arguments win on key collisions and
// no input object is modified.
func fnMerge(_ Caller, args []interface{}) (interface{}, error) {
	out := make(map[string]interface{})
	for _, arg := range args {
		for k, v := range arg.(map[string]interface{}) {
			out[k] = v
		}
	}
	return out, nil
}

func sortedKeys(obj map[string]interface{}) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
