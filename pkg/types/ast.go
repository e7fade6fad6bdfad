package types

// NodeType identifies the grammar production an AST node represents.
type NodeType uint8

// One node kind per grammar production. The set is closed: the evaluator
// switches exhaustively over it, so adding a production is a compile-time
// visible change everywhere it must be handled.
const (
	NodeIdentifier NodeType = iota + 1 // field access by name
	NodeCurrent                        // @
	NodeLiteral                        // `...` JSON literal
	NodeRawString                      // '...'
	NodeIndex                          // [n]
	NodeSlice                          // [start:stop:step]
	NodeFlatten                        // []
	NodeSubexpression                  // lhs.rhs
	NodeWildcardObject                 // * or lhs.*
	NodeWildcardArray                  // [*]
	NodePipe                           // lhs | rhs
	NodeOr                             // lhs || rhs
	NodeAnd                            // lhs && rhs
	NodeNot                            // !expr
	NodeComparison                     // ==, !=, <, <=, >, >=
	NodeFilter                         // [?predicate]
	NodeMultiselectList                // [e1, e2, ...]
	NodeMultiselectHash                // {k1: e1, k2: e2, ...}
	NodeFunctionCall                   // name(args...)
	NodeExpressionRef                  // &expr
)

// String returns a human-readable name for the node type.
func (nt NodeType) String() string {
	switch nt {
	case NodeIdentifier:
		return "identifier"
	case NodeCurrent:
		return "current"
	case NodeLiteral:
		return "literal"
	case NodeRawString:
		return "raw-string"
	case NodeIndex:
		return "index"
	case NodeSlice:
		return "slice"
	case NodeFlatten:
		return "flatten"
	case NodeSubexpression:
		return "subexpression"
	case NodeWildcardObject:
		return "wildcard-object"
	case NodeWildcardArray:
		return "wildcard-array"
	case NodePipe:
		return "pipe"
	case NodeOr:
		return "or"
	case NodeAnd:
		return "and"
	case NodeNot:
		return "not"
	case NodeComparison:
		return "comparison"
	case NodeFilter:
		return "filter"
	case NodeMultiselectList:
		return "multiselect-list"
	case NodeMultiselectHash:
		return "multiselect-hash"
	case NodeFunctionCall:
		return "function-call"
	case NodeExpressionRef:
		return "expression-ref"
	default:
		return "(unknown)"
	}
}

// CompareOp identifies a comparison operator.
type CompareOp uint8

const (
	CompareEQ CompareOp = iota + 1 // ==
	CompareNE                      // !=
	CompareLT                      // <
	CompareLTE                     // <=
	CompareGT                      // >
	CompareGTE                     // >=
)

// String returns the source form of the operator.
func (op CompareOp) String() string {
	switch op {
	case CompareEQ:
		return "=="
	case CompareNE:
		return "!="
	case CompareLT:
		return "<"
	case CompareLTE:
		return "<="
	case CompareGT:
		return ">"
	case CompareGTE:
		return ">="
	default:
		return "(unknown)"
	}
}

// SliceBounds holds the optional components of a slice expression.
// A nil field means the component was omitted and takes its direction-aware
// default at evaluation time (step defaults to 1).
type SliceBounds struct {
	Start *int
	Stop  *int
	Step  *int
}

// ASTNode represents a node in the Abstract Syntax Tree.
//
// A node is immutable once the parser returns it: the evaluator only reads
// it, so the same tree may be evaluated concurrently against any number of
// documents.
//
// Postfix forms (index, slice, flatten, wildcards, filter) store their base
// expression in LHS; a nil LHS means the implicit current node, e.g. a
// bracket form opening the expression.
type ASTNode struct {
	Type     NodeType
	Position int // byte offset in the source expression

	Name     string      // identifier name, function name
	Value    interface{} // literal or raw-string payload
	Operator CompareOp   // comparison operator

	LHS *ASTNode // left operand, base expression, or unary child
	RHS *ASTNode // right operand or filter predicate

	Children []*ASTNode // multiselect items or function arguments
	Keys     []string   // multiselect-hash keys, parallel to Children

	Index int         // resolved index for NodeIndex
	Slice SliceBounds // bounds for NodeSlice

	Quoted bool // identifier came from a quoted token; not callable
}

// NewASTNode creates a new AST node of the specified type.
func NewASTNode(nodeType NodeType, position int) *ASTNode {
	return &ASTNode{
		Type:     nodeType,
		Position: position,
	}
}

// String returns a string representation of the node type.
func (n *ASTNode) String() string {
	return n.Type.String()
}
