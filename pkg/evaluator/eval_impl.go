package evaluator

import (
	"github.com/Celebrate-future/jmesgo/pkg/functions"
	"github.com/Celebrate-future/jmesgo/pkg/types"
)

// evalRun is the per-call evaluation state. A fresh run is created for
// every Eval invocation so concurrent evaluations never share state.
type evalRun struct {
	ev    *Evaluator
	depth int
}

// ApplyRef implements functions.Caller: it evaluates an expression
// reference against a value supplied by a higher-order function.
func (r *evalRun) ApplyRef(ref *functions.ExprRef, value interface{}) (interface{}, error) {
	v, _, err := r.eval(ref.Node, value)
	return v, err
}

func (r *evalRun) enter() error {
	r.depth++
	if r.depth > r.ev.opts.MaxDepth {
		return types.NewEvalError(types.MaxDepthExceeded,
			"maximum evaluation depth %d exceeded", r.ev.opts.MaxDepth)
	}
	return nil
}

func (r *evalRun) leave() {
	r.depth--
}

// eval evaluates node against cur. The second return value reports
// whether the result is a projection: an array whose elements downstream
// postfix expressions apply to one at a time, dropping null outcomes.
// A pipe, a multiselect, an operand position or a function argument
// materializes the projection back into a plain array.
func (r *evalRun) eval(node *types.ASTNode, cur interface{}) (interface{}, bool, error) {
	if err := r.enter(); err != nil {
		return nil, false, err
	}
	defer r.leave()

	switch node.Type {
	case types.NodeIdentifier:
		obj, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false, nil
		}
		return obj[node.Name], false, nil

	case types.NodeCurrent:
		return cur, false, nil

	case types.NodeLiteral, types.NodeRawString:
		return node.Value, false, nil

	case types.NodeSubexpression:
		base, projected, err := r.eval(node.LHS, cur)
		if err != nil {
			return nil, false, err
		}
		if projected {
			return r.projectEach(base, func(elem interface{}) (interface{}, error) {
				v, _, err := r.eval(node.RHS, elem)
				return v, err
			})
		}
		return r.eval(node.RHS, base)

	case types.NodeIndex:
		base, projected, err := r.evalBase(node.LHS, cur)
		if err != nil {
			return nil, false, err
		}
		if projected {
			return r.projectEach(base, func(elem interface{}) (interface{}, error) {
				return indexValue(elem, node.Index), nil
			})
		}
		return indexValue(base, node.Index), false, nil

	case types.NodeSlice:
		base, projected, err := r.evalBase(node.LHS, cur)
		if err != nil {
			return nil, false, err
		}
		if projected {
			return r.projectEach(base, func(elem interface{}) (interface{}, error) {
				return sliceValue(elem, node.Slice)
			})
		}
		v, err := sliceValue(base, node.Slice)
		return v, false, err

	case types.NodeFlatten:
		base, _, err := r.evalBase(node.LHS, cur)
		if err != nil {
			return nil, false, err
		}
		arr, ok := base.([]interface{})
		if !ok {
			return nil, false, nil
		}
		return flattenOne(arr), true, nil

	case types.NodeWildcardObject:
		base, projected, err := r.evalBase(node.LHS, cur)
		if err != nil {
			return nil, false, err
		}
		if projected {
			return r.projectEach(base, func(elem interface{}) (interface{}, error) {
				obj, ok := elem.(map[string]interface{})
				if !ok {
					return nil, nil
				}
				return sortedValues(obj), nil
			})
		}
		obj, ok := base.(map[string]interface{})
		if !ok {
			return nil, false, nil
		}
		return sortedValues(obj), true, nil

	case types.NodeWildcardArray:
		base, projected, err := r.evalBase(node.LHS, cur)
		if err != nil {
			return nil, false, err
		}
		if projected {
			return r.projectEach(base, func(elem interface{}) (interface{}, error) {
				if arr, ok := elem.([]interface{}); ok {
					return arr, nil
				}
				return nil, nil
			})
		}
		arr, ok := base.([]interface{})
		if !ok {
			return nil, false, nil
		}
		return arr, true, nil

	case types.NodeFilter:
		base, _, err := r.evalBase(node.LHS, cur)
		if err != nil {
			return nil, false, err
		}
		arr, ok := base.([]interface{})
		if !ok {
			return nil, false, nil
		}
		kept := []interface{}{}
		for _, elem := range arr {
			pred, _, err := r.eval(node.RHS, elem)
			if err != nil {
				return nil, false, err
			}
			if isTruthy(pred) {
				kept = append(kept, elem)
			}
		}
		return kept, true, nil

	case types.NodePipe:
		lhs, _, err := r.eval(node.LHS, cur)
		if err != nil {
			return nil, false, err
		}
		return r.eval(node.RHS, lhs)

	case types.NodeOr:
		lhs, _, err := r.eval(node.LHS, cur)
		if err != nil {
			return nil, false, err
		}
		if isTruthy(lhs) {
			return lhs, false, nil
		}
		rhs, _, err := r.eval(node.RHS, cur)
		return rhs, false, err

	case types.NodeAnd:
		lhs, _, err := r.eval(node.LHS, cur)
		if err != nil {
			return nil, false, err
		}
		if !isTruthy(lhs) {
			return lhs, false, nil
		}
		rhs, _, err := r.eval(node.RHS, cur)
		return rhs, false, err

	case types.NodeNot:
		v, _, err := r.eval(node.LHS, cur)
		if err != nil {
			return nil, false, err
		}
		return !isTruthy(v), false, nil

	case types.NodeComparison:
		lhs, _, err := r.eval(node.LHS, cur)
		if err != nil {
			return nil, false, err
		}
		rhs, _, err := r.eval(node.RHS, cur)
		if err != nil {
			return nil, false, err
		}
		return compare(node.Operator, lhs, rhs), false, nil

	case types.NodeMultiselectList:
		if cur == nil {
			return nil, false, nil
		}
		out := make([]interface{}, len(node.Children))
		for i, child := range node.Children {
			v, _, err := r.eval(child, cur)
			if err != nil {
				return nil, false, err
			}
			out[i] = v
		}
		return out, false, nil

	case types.NodeMultiselectHash:
		if cur == nil {
			return nil, false, nil
		}
		out := make(map[string]interface{}, len(node.Children))
		for i, child := range node.Children {
			v, _, err := r.eval(child, cur)
			if err != nil {
				return nil, false, err
			}
			out[node.Keys[i]] = v
		}
		return out, false, nil

	case types.NodeFunctionCall:
		args := make([]interface{}, len(node.Children))
		for i, child := range node.Children {
			v, _, err := r.eval(child, cur)
			if err != nil {
				return nil, false, err
			}
			args[i] = v
		}
		if r.ev.opts.Debug {
			r.ev.opts.Logger.Debug("calling function",
				"name", node.Name, "args", len(args))
		}
		v, err := r.ev.opts.Functions.Call(r, node.Name, args)
		return v, false, err

	case types.NodeExpressionRef:
		return &functions.ExprRef{Node: node.LHS}, false, nil
	}

	return nil, false, types.NewEvalError(types.TypeMismatch,
		"unsupported node type %s", node.Type)
}

// evalBase evaluates the base of a postfix expression; a nil base means
// the expression applies to the current value.
func (r *evalRun) evalBase(lhs *types.ASTNode, cur interface{}) (interface{}, bool, error) {
	if lhs == nil {
		return cur, false, nil
	}
	return r.eval(lhs, cur)
}

// projectEach applies fn to every element of a projected array, dropping
// null results, and keeps the projection going.
func (r *evalRun) projectEach(base interface{}, fn func(interface{}) (interface{}, error)) (interface{}, bool, error) {
	arr, ok := base.([]interface{})
	if !ok {
		return nil, false, nil
	}
	out := []interface{}{}
	for _, elem := range arr {
		v, err := fn(elem)
		if err != nil {
			return nil, false, err
		}
		if v != nil {
			out = append(out, v)
		}
	}
	return out, true, nil
}
