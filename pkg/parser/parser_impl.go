package parser

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Celebrate-future/jmesgo/pkg/types"
)

// Parser implements a recursive descent parser using Pratt's "Top Down
// Operator Precedence" algorithm. It holds a two-token look-ahead window
// over the lexer, which is enough to disambiguate every bracket form.
type Parser struct {
	lexer   *Lexer
	current Token
	next    Token
	depth   int
	opts    CompileOptions
}

// NewParser creates a new parser for the given input string.
func NewParser(input string, opts ...CompileOption) *Parser {
	options := CompileOptions{
		MaxDepth: defaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&options)
	}

	p := &Parser{
		lexer: NewLexer(input),
		opts:  options,
	}

	// Fill the look-ahead window.
	p.advance()
	p.advance()

	return p
}

// Parse parses the entire expression and returns the compiled Expression.
func (p *Parser) Parse() (*types.Expression, error) {
	if p.current.Type == TokenError {
		return nil, p.lexFailure()
	}
	if p.current.Type == TokenEOF {
		return nil, &types.ParseError{Offset: 0, Message: "empty expression"}
	}

	node, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}

	switch p.current.Type {
	case TokenEOF:
		return types.NewExpression(node, p.lexer.input), nil
	case TokenError:
		return nil, p.lexFailure()
	default:
		return nil, p.syntaxError(fmt.Sprintf("unexpected token %s", p.current.Type))
	}
}

// Operator binding powers. Higher values bind more tightly; postfix chains
// (dot, bracket, call) sit above every boolean and comparison operator.
var bindingPowers = map[TokenType]int{
	TokenPipe:     1,
	TokenOr:       2,
	TokenAnd:      3,
	TokenEQ:       5,
	TokenNE:       5,
	TokenLT:       5,
	TokenLE:       5,
	TokenGT:       5,
	TokenGE:       5,
	TokenFlatten:  9,
	TokenFilter:   21,
	TokenDot:      40,
	TokenLbracket: 55,
	TokenLparen:   60,
}

// notBindingPower is the right binding power of the prefix ! operator:
// tighter than && but looser than the comparisons, so !a == b negates
// the whole comparison.
const notBindingPower = 4

// advance moves the look-ahead window one token forward.
func (p *Parser) advance() {
	p.current = p.next
	p.next = p.lexer.Next()
}

// expect checks that the current token matches the expected type, then
// advances past it.
func (p *Parser) expect(tt TokenType) error {
	if p.current.Type == TokenError {
		return p.lexFailure()
	}
	if p.current.Type != tt {
		return p.syntaxError(fmt.Sprintf("expected %s", tt))
	}
	p.advance()
	return nil
}

// syntaxError creates a parse error at the current token.
func (p *Parser) syntaxError(message string) error {
	return &types.ParseError{
		Offset:  p.current.Position,
		Message: message,
		Token:   p.current.Value,
	}
}

// lexFailure converts the lexer's stored error into a parse error.
func (p *Parser) lexFailure() error {
	err := p.lexer.Error()
	offset := p.current.Position
	if lexErr, ok := err.(*types.LexError); ok {
		offset = lexErr.Offset
	}
	return &types.ParseError{
		Offset:  offset,
		Message: "invalid token",
		Err:     err,
	}
}

// enter counts one level of nesting; leave undoes it. Exceeding the
// configured maximum is a parse error, not a crash.
func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.opts.MaxDepth {
		return &types.ParseError{
			Offset:  p.current.Position,
			Message: "maximum nesting depth exceeded",
		}
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// parseExpression parses an expression with operator precedence.
// rbp is the right binding power (minimum precedence).
func (p *Parser) parseExpression(rbp int) (*types.ASTNode, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	// Prefix expression (nud - null denotation)
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	// Infix expressions while precedence allows (led - left denotation)
	for rbp < bindingPowers[p.current.Type] {
		left, err = p.parseInfix(left)
		if err != nil {
			return nil, err
		}
	}

	return left, nil
}

// parsePrefix parses a prefix expression (nud - null denotation).
// These are expressions that don't require a left-hand side.
func (p *Parser) parsePrefix() (*types.ASTNode, error) {
	token := p.current

	switch token.Type {
	case TokenJSONLiteral:
		return p.parseLiteral()
	case TokenRawString:
		node := types.NewASTNode(types.NodeRawString, token.Position)
		node.Value = token.Value
		p.advance()
		return node, nil
	case TokenIdentifier:
		node := types.NewASTNode(types.NodeIdentifier, token.Position)
		node.Name = token.Value
		p.advance()
		return node, nil
	case TokenQuotedIdentifier:
		node := types.NewASTNode(types.NodeIdentifier, token.Position)
		node.Name = token.Value
		node.Quoted = true
		p.advance()
		return node, nil
	case TokenCurrent:
		node := types.NewASTNode(types.NodeCurrent, token.Position)
		p.advance()
		return node, nil
	case TokenStar:
		node := types.NewASTNode(types.NodeWildcardObject, token.Position)
		p.advance()
		return node, nil
	case TokenFlatten:
		node := types.NewASTNode(types.NodeFlatten, token.Position)
		p.advance()
		return node, nil
	case TokenFilter:
		return p.parseFilter(nil)
	case TokenLbracket:
		return p.parseBracket(nil)
	case TokenLbrace:
		return p.parseMultiselectHash()
	case TokenNot:
		p.advance()
		child, err := p.parseExpression(notBindingPower)
		if err != nil {
			return nil, err
		}
		node := types.NewASTNode(types.NodeNot, token.Position)
		node.LHS = child
		return node, nil
	case TokenExpref:
		p.advance()
		child, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		node := types.NewASTNode(types.NodeExpressionRef, token.Position)
		node.LHS = child
		return node, nil
	case TokenLparen:
		p.advance()
		expr, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRparen); err != nil {
			return nil, err
		}
		return expr, nil
	case TokenError:
		return nil, p.lexFailure()
	default:
		return nil, p.syntaxError(fmt.Sprintf("unexpected token %s", token.Type))
	}
}

// parseInfix parses an infix expression (led - left denotation).
// These are expressions that require a left-hand side.
func (p *Parser) parseInfix(left *types.ASTNode) (*types.ASTNode, error) {
	token := p.current

	switch token.Type {
	case TokenDot:
		return p.parseDot(left)
	case TokenFlatten:
		p.advance()
		node := types.NewASTNode(types.NodeFlatten, token.Position)
		node.LHS = left
		return node, nil
	case TokenFilter:
		return p.parseFilter(left)
	case TokenLbracket:
		return p.parseBracket(left)
	case TokenPipe, TokenOr, TokenAnd:
		p.advance()
		right, err := p.parseExpression(bindingPowers[token.Type])
		if err != nil {
			return nil, err
		}
		var nt types.NodeType
		switch token.Type {
		case TokenPipe:
			nt = types.NodePipe
		case TokenOr:
			nt = types.NodeOr
		default:
			nt = types.NodeAnd
		}
		node := types.NewASTNode(nt, token.Position)
		node.LHS = left
		node.RHS = right
		return node, nil
	case TokenEQ, TokenNE, TokenLT, TokenLE, TokenGT, TokenGE:
		return p.parseComparison(left)
	case TokenLparen:
		return p.parseFunctionCall(left)
	default:
		return nil, p.syntaxError(fmt.Sprintf("unexpected infix token %s", token.Type))
	}
}

// parseComparison parses a binary comparison. All six operators share one
// binding power, so chains associate left like the other infix forms.
func (p *Parser) parseComparison(left *types.ASTNode) (*types.ASTNode, error) {
	token := p.current
	p.advance()

	right, err := p.parseExpression(bindingPowers[token.Type])
	if err != nil {
		return nil, err
	}

	node := types.NewASTNode(types.NodeComparison, token.Position)
	switch token.Type {
	case TokenEQ:
		node.Operator = types.CompareEQ
	case TokenNE:
		node.Operator = types.CompareNE
	case TokenLT:
		node.Operator = types.CompareLT
	case TokenLE:
		node.Operator = types.CompareLTE
	case TokenGT:
		node.Operator = types.CompareGT
	case TokenGE:
		node.Operator = types.CompareGTE
	}
	node.LHS = left
	node.RHS = right
	return node, nil
}

// parseDot parses the right-hand side of a '.' operator.
func (p *Parser) parseDot(left *types.ASTNode) (*types.ASTNode, error) {
	pos := p.current.Position
	p.advance() // skip '.'

	// expr.* is an object-wildcard projection over expr's value.
	if p.current.Type == TokenStar {
		node := types.NewASTNode(types.NodeWildcardObject, pos)
		node.LHS = left
		p.advance()
		return node, nil
	}

	right, err := p.parseDotRHS()
	if err != nil {
		return nil, err
	}

	node := types.NewASTNode(types.NodeSubexpression, pos)
	node.LHS = left
	node.RHS = right
	return node, nil
}

// parseDotRHS parses the constructs allowed after a '.': an identifier
// chain (including function calls and further postfix forms), a
// multiselect list, or a multiselect hash.
func (p *Parser) parseDotRHS() (*types.ASTNode, error) {
	switch p.current.Type {
	case TokenIdentifier, TokenQuotedIdentifier:
		return p.parseExpression(bindingPowers[TokenDot])
	case TokenLbracket:
		pos := p.current.Position
		p.advance()
		return p.parseMultiselectList(pos)
	case TokenLbrace:
		return p.parseMultiselectHash()
	case TokenError:
		return nil, p.lexFailure()
	default:
		return nil, p.syntaxError("expected identifier, '[' or '{' after '.'")
	}
}

// parseBracket disambiguates a '[' that is not a flatten or filter token:
// wildcard-array projection, index, slice, or multiselect list.
// lhs is the base expression, or nil for the implicit current node.
func (p *Parser) parseBracket(lhs *types.ASTNode) (*types.ASTNode, error) {
	pos := p.current.Position
	p.advance() // skip '['

	switch {
	case p.current.Type == TokenEOF:
		return nil, &types.ParseError{Offset: pos, Message: "unterminated bracket expression"}
	case p.current.Type == TokenStar && p.next.Type == TokenRbracket:
		node := types.NewASTNode(types.NodeWildcardArray, pos)
		node.LHS = lhs
		p.advance()
		p.advance()
		return node, nil
	case p.current.Type == TokenNumber || p.current.Type == TokenColon:
		return p.parseIndexOrSlice(lhs, pos)
	default:
		ms, err := p.parseMultiselectList(pos)
		if err != nil {
			return nil, err
		}
		if lhs == nil {
			return ms, nil
		}
		node := types.NewASTNode(types.NodeSubexpression, pos)
		node.LHS = lhs
		node.RHS = ms
		return node, nil
	}
}

// parseIndexOrSlice parses the interior of a bracket that starts with a
// number or colon: up to three optional signed integers separated by at
// most two colons. No colon means a plain index.
func (p *Parser) parseIndexOrSlice(lhs *types.ASTNode, pos int) (*types.ASTNode, error) {
	var parts [3]*int
	ncolons := 0

	for p.current.Type != TokenRbracket {
		switch p.current.Type {
		case TokenColon:
			ncolons++
			if ncolons > 2 {
				return nil, p.syntaxError("too many colons in slice expression")
			}
			p.advance()
		case TokenNumber:
			if parts[ncolons] != nil {
				return nil, p.syntaxError("unexpected number in bracket expression")
			}
			v, err := strconv.Atoi(p.current.Value)
			if err != nil {
				return nil, p.syntaxError(fmt.Sprintf("invalid index %q", p.current.Value))
			}
			parts[ncolons] = &v
			p.advance()
		case TokenEOF:
			return nil, &types.ParseError{Offset: pos, Message: "unterminated bracket expression"}
		case TokenError:
			return nil, p.lexFailure()
		default:
			return nil, p.syntaxError("expected number, ':' or ']' in bracket expression")
		}
	}
	p.advance() // skip ']'

	if ncolons == 0 {
		node := types.NewASTNode(types.NodeIndex, pos)
		node.LHS = lhs
		node.Index = *parts[0]
		return node, nil
	}

	if parts[2] != nil && *parts[2] == 0 {
		return nil, &types.ParseError{Offset: pos, Message: "slice step cannot be zero"}
	}
	node := types.NewASTNode(types.NodeSlice, pos)
	node.LHS = lhs
	node.Slice = types.SliceBounds{Start: parts[0], Stop: parts[1], Step: parts[2]}
	return node, nil
}

// parseMultiselectList parses the interior of a multiselect list; the
// opening '[' is already consumed.
func (p *Parser) parseMultiselectList(pos int) (*types.ASTNode, error) {
	node := types.NewASTNode(types.NodeMultiselectList, pos)

	for {
		expr, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, expr)

		if p.current.Type == TokenRbracket {
			p.advance()
			return node, nil
		}
		if err := p.expect(TokenComma); err != nil {
			return nil, err
		}
	}
}

// parseMultiselectHash parses a '{key: expr, ...}' construct.
func (p *Parser) parseMultiselectHash() (*types.ASTNode, error) {
	pos := p.current.Position
	p.advance() // skip '{'

	node := types.NewASTNode(types.NodeMultiselectHash, pos)

	for {
		if p.current.Type != TokenIdentifier && p.current.Type != TokenQuotedIdentifier {
			if p.current.Type == TokenError {
				return nil, p.lexFailure()
			}
			return nil, p.syntaxError("expected identifier key in multiselect hash")
		}
		key := p.current.Value
		p.advance()

		if err := p.expect(TokenColon); err != nil {
			return nil, err
		}

		value, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		node.Keys = append(node.Keys, key)
		node.Children = append(node.Children, value)

		if p.current.Type == TokenRbrace {
			p.advance()
			return node, nil
		}
		if err := p.expect(TokenComma); err != nil {
			return nil, err
		}
	}
}

// parseFilter parses a '[?predicate]' construct. lhs is the source
// expression, or nil for the implicit current node.
func (p *Parser) parseFilter(lhs *types.ASTNode) (*types.ASTNode, error) {
	pos := p.current.Position
	p.advance() // skip '[?'

	predicate, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenRbracket); err != nil {
		return nil, err
	}

	node := types.NewASTNode(types.NodeFilter, pos)
	node.LHS = lhs
	node.RHS = predicate
	return node, nil
}

// parseFunctionCall parses 'name(args...)'. Called from infix position
// when '(' follows an expression; only an unquoted identifier is callable.
func (p *Parser) parseFunctionCall(nameNode *types.ASTNode) (*types.ASTNode, error) {
	if nameNode.Type != types.NodeIdentifier {
		return nil, p.syntaxError("only a function name can be called")
	}
	if nameNode.Quoted {
		return nil, p.syntaxError("quoted identifier cannot be a function name")
	}
	p.advance() // skip '('

	node := types.NewASTNode(types.NodeFunctionCall, nameNode.Position)
	node.Name = nameNode.Name

	if p.current.Type != TokenRparen {
		for {
			arg, err := p.parseExpression(0)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, arg)

			if p.current.Type == TokenRparen {
				break
			}
			if err := p.expect(TokenComma); err != nil {
				return nil, err
			}
		}
	}

	if err := p.expect(TokenRparen); err != nil {
		return nil, err
	}
	return node, nil
}

// parseLiteral decodes a back-tick literal's JSON payload at parse time.
func (p *Parser) parseLiteral() (*types.ASTNode, error) {
	token := p.current
	payload := strings.TrimSpace(token.Value)
	if payload == "" {
		return nil, p.syntaxError("empty JSON literal")
	}

	var value interface{}
	if err := json.Unmarshal([]byte(payload), &value); err != nil {
		return nil, &types.ParseError{
			Offset:  token.Position,
			Message: fmt.Sprintf("malformed JSON literal: %v", err),
			Token:   token.Value,
		}
	}

	node := types.NewASTNode(types.NodeLiteral, token.Position)
	node.Value = value
	p.advance()
	return node, nil
}
