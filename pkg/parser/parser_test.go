package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/Celebrate-future/jmesgo/pkg/types"
)

func mustParse(t *testing.T, input string, opts ...CompileOption) *types.ASTNode {
	t.Helper()
	expr, err := Parse(input, opts...)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", input, err)
	}
	return expr.AST()
}

func parseError(t *testing.T, input string) *types.ParseError {
	t.Helper()
	_, err := Parse(input)
	if err == nil {
		t.Fatalf("Parse(%q) succeeded, want error", input)
	}
	var perr *types.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Parse(%q): got %T (%v), want ParseError", input, err, err)
	}
	return perr
}

func TestParseIdentifier(t *testing.T) {
	ast := mustParse(t, "foo")
	if ast.Type != types.NodeIdentifier || ast.Name != "foo" {
		t.Errorf("got {%s %q}, want identifier foo", ast.Type, ast.Name)
	}
}

func TestParseQuotedIdentifier(t *testing.T) {
	ast := mustParse(t, `"foo bar"`)
	if ast.Type != types.NodeIdentifier || ast.Name != "foo bar" || !ast.Quoted {
		t.Errorf("got {%s %q quoted=%v}, want quoted identifier", ast.Type, ast.Name, ast.Quoted)
	}
}

func TestParseSubexpressionChain(t *testing.T) {
	// a.b.c associates left: ((a.b).c)
	ast := mustParse(t, "a.b.c")
	if ast.Type != types.NodeSubexpression {
		t.Fatalf("root = %s, want subexpression", ast.Type)
	}
	if ast.RHS.Type != types.NodeIdentifier || ast.RHS.Name != "c" {
		t.Errorf("rhs = {%s %q}, want identifier c", ast.RHS.Type, ast.RHS.Name)
	}
	inner := ast.LHS
	if inner.Type != types.NodeSubexpression ||
		inner.LHS.Name != "a" || inner.RHS.Name != "b" {
		t.Errorf("lhs is not a.b: %s", inner)
	}
}

func TestParseBracketForms(t *testing.T) {
	tests := []struct {
		input string
		want  types.NodeType
	}{
		{"foo[*]", types.NodeWildcardArray},
		{"foo[0]", types.NodeIndex},
		{"foo[-1]", types.NodeIndex},
		{"foo[1:3]", types.NodeSlice},
		{"foo[:2]", types.NodeSlice},
		{"foo[::2]", types.NodeSlice},
		{"foo[]", types.NodeFlatten},
		{"foo[?a]", types.NodeFilter},
	}
	for _, tt := range tests {
		ast := mustParse(t, tt.input)
		if ast.Type != tt.want {
			t.Errorf("Parse(%q) root = %s, want %s", tt.input, ast.Type, tt.want)
			continue
		}
		if ast.LHS == nil || ast.LHS.Name != "foo" {
			t.Errorf("Parse(%q): base is not foo", tt.input)
		}
	}
}

func TestParseIndex(t *testing.T) {
	ast := mustParse(t, "foo[-2]")
	if ast.Index != -2 {
		t.Errorf("index = %d, want -2", ast.Index)
	}
}

func TestParseSliceBounds(t *testing.T) {
	ast := mustParse(t, "foo[1:10:2]")
	s := ast.Slice
	if s.Start == nil || *s.Start != 1 || s.Stop == nil || *s.Stop != 10 || s.Step == nil || *s.Step != 2 {
		t.Errorf("unexpected bounds %+v", s)
	}

	ast = mustParse(t, "foo[:3]")
	s = ast.Slice
	if s.Start != nil || s.Stop == nil || *s.Stop != 3 || s.Step != nil {
		t.Errorf("unexpected bounds %+v", s)
	}
}

func TestParseMultiselect(t *testing.T) {
	ast := mustParse(t, "foo.[a, b]")
	if ast.Type != types.NodeSubexpression || ast.RHS.Type != types.NodeMultiselectList {
		t.Fatalf("got %s, want subexpression with multiselect list", ast)
	}
	if len(ast.RHS.Children) != 2 {
		t.Errorf("children = %d, want 2", len(ast.RHS.Children))
	}

	ast = mustParse(t, `foo.{x: a, "y z": b}`)
	hash := ast.RHS
	if hash.Type != types.NodeMultiselectHash {
		t.Fatalf("rhs = %s, want multiselect hash", hash.Type)
	}
	if len(hash.Keys) != 2 || hash.Keys[0] != "x" || hash.Keys[1] != "y z" {
		t.Errorf("keys = %v", hash.Keys)
	}
}

func TestParsePrecedence(t *testing.T) {
	// && binds tighter than ||, which binds tighter than |.
	ast := mustParse(t, "a | b || c && d")
	if ast.Type != types.NodePipe {
		t.Fatalf("root = %s, want pipe", ast.Type)
	}
	or := ast.RHS
	if or.Type != types.NodeOr {
		t.Fatalf("pipe rhs = %s, want or", or.Type)
	}
	if or.RHS.Type != types.NodeAnd {
		t.Errorf("or rhs = %s, want and", or.RHS.Type)
	}
}

func TestParseComparison(t *testing.T) {
	tests := []struct {
		input string
		op    types.CompareOp
	}{
		{"a == b", types.CompareEQ},
		{"a != b", types.CompareNE},
		{"a < b", types.CompareLT},
		{"a <= b", types.CompareLTE},
		{"a > b", types.CompareGT},
		{"a >= b", types.CompareGTE},
	}
	for _, tt := range tests {
		ast := mustParse(t, tt.input)
		if ast.Type != types.NodeComparison || ast.Operator != tt.op {
			t.Errorf("Parse(%q) = {%s %s}, want comparison %s",
				tt.input, ast.Type, ast.Operator, tt.op)
		}
	}
}

func TestParseFunctionCall(t *testing.T) {
	ast := mustParse(t, "sort_by(@, &name)")
	if ast.Type != types.NodeFunctionCall || ast.Name != "sort_by" {
		t.Fatalf("got {%s %q}, want call to sort_by", ast.Type, ast.Name)
	}
	if len(ast.Children) != 2 {
		t.Fatalf("args = %d, want 2", len(ast.Children))
	}
	if ast.Children[0].Type != types.NodeCurrent {
		t.Errorf("arg 0 = %s, want current", ast.Children[0].Type)
	}
	ref := ast.Children[1]
	if ref.Type != types.NodeExpressionRef || ref.LHS.Name != "name" {
		t.Errorf("arg 1 = %s, want expression ref over name", ref)
	}
}

func TestParseQuotedIdentifierNotCallable(t *testing.T) {
	perr := parseError(t, `"length"(@)`)
	if !strings.Contains(perr.Message, "quoted") {
		t.Errorf("message %q does not mention quoted identifiers", perr.Message)
	}
}

func TestParseLiteral(t *testing.T) {
	ast := mustParse(t, "`{\"a\": [1, true, null]}`")
	if ast.Type != types.NodeLiteral {
		t.Fatalf("got %s, want literal", ast.Type)
	}
	obj, ok := ast.Value.(map[string]interface{})
	if !ok {
		t.Fatalf("value = %T, want object", ast.Value)
	}
	arr := obj["a"].([]interface{})
	if arr[0] != 1.0 || arr[1] != true || arr[2] != nil {
		t.Errorf("unexpected literal value %v", obj)
	}
}

func TestParseMalformedLiteral(t *testing.T) {
	parseError(t, "`{not json}`")
}

func TestParseNotExpression(t *testing.T) {
	ast := mustParse(t, "!a && b")
	if ast.Type != types.NodeAnd {
		t.Fatalf("root = %s, want and", ast.Type)
	}
	if ast.LHS.Type != types.NodeNot {
		t.Errorf("lhs = %s, want not", ast.LHS.Type)
	}
}

func TestParseNotBindsLooserThanComparison(t *testing.T) {
	// ! negates the whole comparison: !a == b is !(a == b).
	ast := mustParse(t, "!a == b")
	if ast.Type != types.NodeNot {
		t.Fatalf("root = %s, want not", ast.Type)
	}
	cmp := ast.LHS
	if cmp.Type != types.NodeComparison || cmp.Operator != types.CompareEQ {
		t.Errorf("operand = %s, want == comparison", cmp)
	}
	if cmp.LHS.Name != "a" || cmp.RHS.Name != "b" {
		t.Errorf("comparison operands = %s, %s", cmp.LHS, cmp.RHS)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"foo.",
		".foo",
		"foo bar",
		"foo[*",
		"foo..bar",
		"foo[1:2:3:4]",
		"{a: b",
		"f(",
		"@(",
	}
	for _, input := range tests {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", input)
		}
	}
}

func TestParseUnterminatedBracketOffset(t *testing.T) {
	perr := parseError(t, "foo[")
	if perr.Offset != 3 {
		t.Errorf("offset = %d, want 3", perr.Offset)
	}
}

func TestParseZeroStep(t *testing.T) {
	perr := parseError(t, "foo[::0]")
	if !strings.Contains(perr.Message, "step") {
		t.Errorf("message %q does not mention the step", perr.Message)
	}
}

func TestParseLexErrorWrapped(t *testing.T) {
	_, err := Parse("foo=bar")
	var lerr *types.LexError
	if !errors.As(err, &lerr) {
		t.Fatalf("got %v, want wrapped LexError", err)
	}
	if lerr.Offset != 3 {
		t.Errorf("offset = %d, want 3", lerr.Offset)
	}
}

func TestParseDepthBound(t *testing.T) {
	deep := strings.Repeat("(", 200) + "a" + strings.Repeat(")", 200)
	if _, err := Parse(deep); err == nil {
		t.Error("deeply nested expression parsed, want depth error")
	}

	shallow := "((a))"
	if _, err := Parse(shallow, WithMaxDepth(2)); err == nil {
		t.Error("Parse with MaxDepth 2 accepted ((a))")
	}
	if _, err := Parse(shallow); err != nil {
		t.Errorf("Parse(%q) failed: %v", shallow, err)
	}
}

func TestParsePipeVersusProjection(t *testing.T) {
	// foo[*].bar | [0] : the pipe cuts the projection, so the root is a
	// pipe whose rhs is a bare index.
	ast := mustParse(t, "foo[*].bar | [0]")
	if ast.Type != types.NodePipe {
		t.Fatalf("root = %s, want pipe", ast.Type)
	}
	idx := ast.RHS
	if idx.Type != types.NodeIndex || idx.LHS != nil {
		t.Errorf("pipe rhs = %s, want bare index", idx)
	}
}
